package alerts

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the fixed-shape payload embedded in access tokens:
// subject identifier, subject handle, and the registered expiry. Keeping the
// shape closed means a missing claim is a zero value, not a runtime surprise.
type SessionClaims struct {
	jwt.RegisteredClaims
	UserID   int64  `json:"user_id"`
	UserName string `json:"user_name"`
}

// Expires returns the expiration time, zero if unset.
func (c *SessionClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time, zero if unset.
func (c *SessionClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
