package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"chainvora/internal/apperr"     // Error classes
	"chainvora/internal/middleware" // Session context keys

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// respondError writes the {"code","error"} body for err. Storage failures are
// logged with fields and the cause is never shown to the caller.
func respondError(c *gin.Context, err error, fields logrus.Fields) {
	ae := apperr.From(err)
	if errors.Is(err, apperr.ErrStorage) || ae.Status >= http.StatusInternalServerError {
		entry := logrus.WithFields(fields).WithField("error", err.Error()) // Attach cause for operators
		entry.WithFields(logrus.Fields{
			"path":       c.FullPath(),                         // Route template
			"request_id": c.GetString(middleware.RequestIDKey), // Correlates with the response header
		}).Error("Request failed")
		ae = apperr.ErrStorage.WithMessage("Server error")
	}
	c.JSON(ae.Status, gin.H{"code": ae.Code, "error": ae.Message})
}

// badRequest reports a malformed body
func badRequest(c *gin.Context) {
	respondError(c, apperr.ErrValidation.WithMessage("Invalid request"), nil)
}

// parseID reads the :id path parameter; it writes the error response itself
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, apperr.ErrValidation.WithMessagef("invalid id %q", c.Param("id")), nil)
		return 0, false
	}
	return uint(id), true
}

// actor is the session wallet, used when a body leaves the approver blank
func actor(c *gin.Context, fromBody string) string {
	if fromBody != "" {
		return fromBody
	}
	return c.GetString(middleware.WalletKey)
}
