package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequestStatus is the lifecycle state of a funding request
type RequestStatus string

const (
	StatusPending  RequestStatus = "Pending"  // Initial state
	StatusReviewed RequestStatus = "Reviewed" // Auditor sign-off, awaiting verification
	StatusApproved RequestStatus = "Approved" // Terminal
	StatusRejected RequestStatus = "Rejected" // Terminal
)

// Terminal reports whether no further transition is possible
func (s RequestStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Valid reports whether s is a known status
func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusReviewed, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// FundingRequest Model: a center's ask for additional money
type FundingRequest struct {
	ID         uint            `gorm:"primaryKey" json:"id"`                                            // Primary key
	CenterName string          `gorm:"size:255;not null;index" json:"centerName"`                       // Requesting center
	Amount     decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`                       // Amount requested
	Reason     string          `gorm:"size:1024;not null" json:"reason"`                                // Why the money is needed
	Status     RequestStatus   `gorm:"size:16;not null;default:Pending;index" json:"status"`            // Lifecycle state
	ProofURL   string          `gorm:"size:512" json:"proofUrl,omitempty"`                              // Proof-of-spend reference
	ApprovedBy string          `gorm:"size:128" json:"approvedBy,omitempty"`                            // Last approver
	Remarks    []Remark        `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE" json:"remarks"` // Reviewer remarks
	CreatedAt  time.Time       `gorm:"index" json:"createdAt"`                                          // Timestamp of creation
	UpdatedAt  time.Time       `json:"updatedAt"`                                                       // Timestamp of last change
}

// Remark Model: a timestamped note appended to a request
type Remark struct {
	ID        uint      `gorm:"primaryKey" json:"id"`             // Primary key, insertion order
	RequestID uint      `gorm:"not null;index" json:"-"`          // Owning request
	Text      string    `gorm:"size:2048;not null" json:"remark"` // Remark body
	CreatedAt time.Time `json:"createdAt"`                        // Timestamp of creation
}
