package middleware

import (
	"chainvora/internal/apperr" // Error classes
	"chainvora/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// RequireRole gates a route on the session role. With enforce off it only logs
// callers whose role is not in the allowed set, so role selection stays advisory.
func RequireRole(enforce bool, roles ...domain.Role) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[string(r)] = true
	}
	return func(c *gin.Context) {
		role := c.GetString(RoleKey) // Role from session token, if any
		if allowed[role] {
			c.Next() // Role permitted
			return
		}
		if !enforce {
			logrus.WithFields(logrus.Fields{
				"path":   c.FullPath(),           // Route being called
				"role":   role,                   // Caller role, empty when anonymous
				"wallet": c.GetString(WalletKey), // Caller wallet
			}).Debug("Role not permitted, continuing (advisory mode)")
			c.Next()
			return
		}
		if role == "" {
			abort(c, apperr.ErrUnauthorized.WithMessage("Session token required"))
			return
		}
		abort(c, apperr.ErrForbidden.WithMessagef("Role %s may not call this endpoint", role))
	}
}
