package api

import (
	"net/http" // HTTP status codes

	"chainvora/internal/directory" // Wallet identities
	"chainvora/internal/domain"    // Importing domain models

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// ConnectRequest registers a wallet under a role
type ConnectRequest struct {
	WalletAddress string      `json:"walletAddress"` // Wallet being connected
	Role          domain.Role `json:"role"`          // Admin, Community, Auditor or Public
}

// ConnectHandler registers or re-registers a wallet and returns a session token
func ConnectHandler(dir *directory.Directory) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ConnectRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
		session, err := dir.Connect(c.Request.Context(), req.WalletAddress, req.Role)
		if err != nil {
			respondError(c, err, logrus.Fields{"wallet": req.WalletAddress, "role": req.Role})
			return
		}
		logrus.WithFields(logrus.Fields{
			"wallet": session.WalletAddress, // Connected wallet
			"role":   session.Role,          // Chosen role
		}).Info("Wallet connected")
		c.JSON(http.StatusOK, session)
	}
}

// ListUsersHandler returns every registered identity
func ListUsersHandler(dir *directory.Directory) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := dir.List(c.Request.Context())
		if err != nil {
			respondError(c, err, logrus.Fields{"list": "users"})
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// GetUserHandler looks up one wallet
func GetUserHandler(dir *directory.Directory) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := dir.Lookup(c.Request.Context(), c.Param("wallet"))
		if err != nil {
			respondError(c, err, logrus.Fields{"wallet": c.Param("wallet")})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}
