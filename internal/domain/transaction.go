package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction log kinds written by the ledger and request lifecycle
const (
	KindAddFund      = "Add Fund"      // Money entering the pool
	KindAllocateFund = "Allocate Fund" // Money earmarked for a center
	KindRequest      = "Request"       // A center asked for money
)

// Transaction Model: one append-only audit entry per money-moving operation.
// Status changes use the new status string as Kind.
type Transaction struct {
	ID            uint            `gorm:"primaryKey" json:"id"`                      // Primary key, also the chain order
	Kind          string          `gorm:"size:32;not null;index" json:"type"`        // Operation kind
	CenterName    string          `gorm:"size:255" json:"centerName,omitempty"`      // Center involved, if any
	Source        string          `gorm:"size:255" json:"source,omitempty"`          // Pool source, if any
	WalletAddress string          `gorm:"size:128" json:"walletAddress,omitempty"`   // Center wallet, if any
	Amount        decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"` // Amount moved or earmarked
	Purpose       string          `gorm:"size:512" json:"purpose,omitempty"`         // Purpose or reason
	Notes         string          `gorm:"size:1024" json:"notes,omitempty"`          // Free-text notes
	ApprovedBy    string          `gorm:"size:128" json:"approvedBy,omitempty"`      // Approver identity
	RefTag        string          `gorm:"size:16" json:"txHash,omitempty"`           // Display reference tag
	PrevHash      string          `gorm:"size:64" json:"prevHash"`                   // Hash of the previous entry
	Hash          string          `gorm:"size:64;uniqueIndex" json:"hash"`           // Hash of this entry
	CreatedAt     time.Time       `gorm:"index" json:"createdAt"`                    // Timestamp of creation
}
