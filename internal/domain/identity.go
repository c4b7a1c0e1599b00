package domain

import "time"

// Role is the advisory role a wallet connects with
type Role string

const (
	RoleAdmin     Role = "Admin"
	RoleCommunity Role = "Community"
	RoleAuditor   Role = "Auditor"
	RolePublic    Role = "Public"
)

// NoWallet is the sentinel address used by the public role
const NoWallet = "No Wallet"

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCommunity, RoleAuditor, RolePublic:
		return true
	}
	return false
}

// Identity Model: one role per wallet address
type Identity struct {
	ID            uint      `gorm:"primaryKey" json:"id"`                               // Primary key
	WalletAddress string    `gorm:"size:128;uniqueIndex;not null" json:"walletAddress"` // Unique wallet address
	Role          Role      `gorm:"size:16;not null" json:"role"`                       // Current role
	CreatedAt     time.Time `json:"createdAt"`                                          // First connection
	UpdatedAt     time.Time `json:"updatedAt"`                                          // Last role change
}
