package api

import (
	"net/http" // HTTP status codes

	"chainvora/internal/ledger" // Pool and allocation ledger

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// ListTransactionsHandler returns the transaction log, newest first
func ListTransactionsHandler(l *ledger.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		txs, err := l.ListTransactions(c.Request.Context())
		if err != nil {
			respondError(c, err, logrus.Fields{"list": "transactions"})
			return
		}
		c.JSON(http.StatusOK, txs)
	}
}

// VerifyChainHandler recomputes the transaction log hash chain
func VerifyChainHandler(l *ledger.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, err := l.VerifyChain(c.Request.Context())
		if err != nil {
			respondError(c, err, logrus.Fields{"list": "transactions/verify"})
			return
		}
		if !report.Valid {
			logrus.WithFields(logrus.Fields{
				"entries":   report.Entries,  // Entries checked
				"broken_at": report.BrokenAt, // First bad entry
			}).Warn("Transaction log chain is broken")
		}
		c.JSON(http.StatusOK, report)
	}
}
