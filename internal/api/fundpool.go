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

// AddFundRequest represents money entering the pool
type AddFundRequest struct {
	Source  string          `json:"source"`  // Government grant, NGO donation, ...
	Amount  decimal.Decimal `json:"amount"`  // Contributed amount
	Purpose string          `json:"purpose"` // What the money is for
	Notes   string          `json:"notes"`   // Optional notes
}

// AddFundHandler records a pool contribution
func AddFundHandler(l *ledger.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddFundRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
		fund, err := l.AddPoolContribution(c.Request.Context(), req.Source, req.Amount, req.Purpose, req.Notes)
		metrics.RecordOperation(domain.KindAddFund, req.Amount, err) // Count the attempt
		if err != nil {
			respondError(c, err, logrus.Fields{
				"source": req.Source,          // Contribution source
				"amount": req.Amount.String(), // Contribution amount
			})
			return
		}
		// Log successful contribution
		logrus.WithFields(logrus.Fields{
			"id":      fund.ID,              // Contribution ID
			"source":  fund.Source,          // Contribution source
			"amount":  fund.Amount.String(), // Contribution amount
			"purpose": fund.Purpose,         // Contribution purpose
			"tx_hash": fund.RefTag,          // Reference tag
		}).Info("Fund added to pool")
		c.JSON(http.StatusCreated, fund)
	}
}

// ListFundPoolHandler returns every contribution, newest first
func ListFundPoolHandler(l *ledger.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		funds, err := l.ListContributions(c.Request.Context())
		if err != nil {
			respondError(c, err, logrus.Fields{"list": "fund-pool"})
			return
		}
		c.JSON(http.StatusOK, funds)
	}
}

// SummaryHandler returns total pool, total allocated and available balance
func SummaryHandler(l *ledger.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := l.Summary(c.Request.Context())
		if err != nil {
			respondError(c, err, logrus.Fields{"list": "summary"})
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}
