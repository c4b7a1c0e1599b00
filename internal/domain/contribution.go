package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true // Amounts are JSON numbers
}

// PoolContribution Model: money entering the pool. Never updated.
type PoolContribution struct {
	ID        uint            `gorm:"primaryKey" json:"id"`                      // Primary key
	Source    string          `gorm:"size:255;not null" json:"source"`           // Government grant, NGO, ...
	Amount    decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"` // Contributed amount
	Purpose   string          `gorm:"size:512;not null" json:"purpose"`          // Education, healthcare, ...
	Notes     string          `gorm:"size:1024" json:"notes,omitempty"`          // Optional notes
	RefTag    string          `gorm:"size:16" json:"txHash"`                     // Display reference tag
	CreatedAt time.Time       `gorm:"index" json:"createdAt"`                    // Timestamp of creation
}

// Allocation Model: money earmarked from the pool for a center. Never updated.
type Allocation struct {
	ID            uint            `gorm:"primaryKey" json:"id"`                      // Primary key
	CenterName    string          `gorm:"size:255;not null;index" json:"centerName"` // Receiving center
	WalletAddress string          `gorm:"size:128" json:"walletAddress,omitempty"`   // Center wallet for tracking
	Amount        decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"` // Allocated amount
	Purpose       string          `gorm:"size:512;not null" json:"purpose"`          // Reason for allocation
	ApprovedBy    string          `gorm:"size:128" json:"approvedBy,omitempty"`      // Admin who approved
	RefTag        string          `gorm:"size:16" json:"txHash"`                     // Display reference tag
	CreatedAt     time.Time       `gorm:"index" json:"createdAt"`                    // Timestamp of creation
}

// Summary is the derived view of the pool. It is never stored.
type Summary struct {
	TotalPool        decimal.Decimal `json:"totalPool"`
	TotalAllocated   decimal.Decimal `json:"totalAllocated"`
	AvailableBalance decimal.Decimal `json:"availableBalance"`
}
