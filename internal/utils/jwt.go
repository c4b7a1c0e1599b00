package utils

import (
	"errors" // Error values
	"time"   // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// SessionTTL is how long a session token stays valid
const SessionTTL = 24 * time.Hour

// ErrNoSecret is returned when tokens are requested without a signing secret
var ErrNoSecret = errors.New("jwt secret is not configured")

// Claims carries the connected wallet and its role
type Claims struct {
	WalletAddress        string `json:"wallet_address"` // Connected wallet
	Role                 string `json:"role"`           // Role chosen at connect time
	jwt.RegisteredClaims        // Standard JWT claims
}

// GenerateJWT creates a session token for a wallet and role
func GenerateJWT(wallet, role, secret string) (string, error) {
	if secret == "" {
		return "", ErrNoSecret
	}
	// Set token claims
	claims := Claims{
		WalletAddress: wallet, // Custom claim for wallet
		Role:          role,   // Custom claim for role
		// Standard claims
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   wallet,                                         // Token subject
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(SessionTTL)), // Token expiry
			IssuedAt:  jwt.NewNumericDate(time.Now()),                 // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString([]byte(secret))                  // Sign the token with the secret
}

// ParseJWT parses and validates a session token string
func ParseJWT(tokenStr, secret string) (*Claims, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil // Return the secret key for validation
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	// Check for parsing errors
	if err != nil {
		return nil, err // Return error if parsing fails
	}
	// Validate token and extract claims
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil // Return claims if valid
	}
	// Return error if token is invalid
	return nil, jwt.ErrSignatureInvalid
}
