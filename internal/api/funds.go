package api

import (
	"net/http" // HTTP status codes

	"chainvora/internal/domain"  // Importing domain models
	"chainvora/internal/ledger"  // Pool and allocation ledger
	"chainvora/internal/metrics" // Prometheus collectors

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Exact amounts
	"github.com/sirupsen/logrus"    // Logging library
)

// AllocateRequest represents money earmarked for a center
type AllocateRequest struct {
	CenterName    string          `json:"centerName"`    // Receiving center
	WalletAddress string          `json:"walletAddress"` // Optional center wallet
	Amount        decimal.Decimal `json:"amount"`        // Allocated amount
	Purpose       string          `json:"purpose"`       // Reason for allocation
	ApprovedBy    string          `json:"approvedBy"`    // Approving admin, defaults to the session wallet
}

// AllocateHandler earmarks pool money for a center
func AllocateHandler(l *ledger.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AllocateRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
		approvedBy := actor(c, req.ApprovedBy)
		alloc, err := l.Allocate(c.Request.Context(), req.CenterName, req.Amount, req.Purpose, req.WalletAddress, approvedBy)
		metrics.RecordOperation(domain.KindAllocateFund, req.Amount, err) // Count the attempt
		if err != nil {
			respondError(c, err, logrus.Fields{
				"center": req.CenterName,      // Receiving center
				"amount": req.Amount.String(), // Allocated amount
			})
			return
		}
		// Log successful allocation
		logrus.WithFields(logrus.Fields{
			"id":          alloc.ID,              // Allocation ID
			"center":      alloc.CenterName,      // Receiving center
			"amount":      alloc.Amount.String(), // Allocated amount
			"approved_by": alloc.ApprovedBy,      // Approver
			"tx_hash":     alloc.RefTag,          // Reference tag
		}).Info("Fund allocated")
		c.JSON(http.StatusCreated, alloc)
	}
}

// ListAllocationsHandler returns every allocation, newest first.
// It also serves the public approved-funds view.
func ListAllocationsHandler(l *ledger.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		allocations, err := l.ListAllocations(c.Request.Context())
		if err != nil {
			respondError(c, err, logrus.Fields{"list": "funds"})
			return
		}
		c.JSON(http.StatusOK, allocations)
	}
}
