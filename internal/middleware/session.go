package middleware

import (
	"strings" // String manipulation

	"chainvora/internal/apperr" // Error classes
	"chainvora/internal/utils"  // JWT utility functions

	"github.com/gin-gonic/gin" // Gin web framework
)

// Context keys set by SessionMiddleware
const (
	WalletKey = "walletAddress"
	RoleKey   = "role"
)

// SessionMiddleware reads an optional Bearer session token and stores the wallet
// and role in the context. Requests without a token pass through untouched;
// a token that is present but invalid is rejected.
func SessionMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		if authHeader == "" {
			c.Next() // Anonymous caller
			return
		}
		// Check if the Authorization header is properly formatted
		if !strings.HasPrefix(authHeader, "Bearer ") {
			abort(c, apperr.ErrUnauthorized.WithMessage("Missing or invalid Authorization header"))
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string
		claims, err := utils.ParseJWT(tokenStr, secret)       // Parse the JWT token
		if err != nil {
			// If parsing fails, abort with unauthorized status
			abort(c, apperr.ErrUnauthorized.WithMessage("Invalid or expired token"))
			return
		}
		c.Set(WalletKey, claims.WalletAddress) // Store wallet in context
		c.Set(RoleKey, claims.Role)            // Store role in context
		c.Next()                               // Proceed to the next handler
	}
}

// abort writes the error body used across the API
func abort(c *gin.Context, err *apperr.Error) {
	c.AbortWithStatusJSON(err.Status, gin.H{"code": err.Code, "error": err.Message})
}
