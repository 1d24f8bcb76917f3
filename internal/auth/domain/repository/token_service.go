package repository

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService defines the interface for token operations
type TokenService interface {
	GenerateToken(ctx context.Context, userID, email string) (string, *Claims, error)
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents JWT claims. The registered ID (jti) identifies the
// token for revocation.
type Claims struct {
	UserID string `json:"userID"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Remaining returns how long the token stays valid after now.
func (c *Claims) Remaining(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	if d := c.ExpiresAt.Sub(now); d > 0 {
		return d
	}
	return 0
}
