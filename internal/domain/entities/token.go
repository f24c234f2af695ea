package entities

import (
	"time"

	"github.com/google/uuid"
)

// TokenPurpose tags a single-use token with the flow it was issued for.
// Redemption requires the matching purpose, so an activation token can
// never complete a password reset and vice versa.
type TokenPurpose string

const (
	TokenPurposeActivation    TokenPurpose = "ACTIVATION"
	TokenPurposePasswordReset TokenPurpose = "PASSWORD_RESET"
)

// UserToken is a single-use, time-limited credential bound to one user.
// Consumption is by deletion; there is no separate "used" flag.
type UserToken struct {
	ID        uuid.UUID    `json:"id"`
	UserID    uuid.UUID    `json:"userId"`
	Token     string       `json:"token"`
	Purpose   TokenPurpose `json:"purpose"`
	ExpiresAt time.Time    `json:"expiresAt"`
	CreatedAt time.Time    `json:"createdAt"`
}

// Expired reports whether the token is past its expiry at the given instant.
func (t *UserToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
