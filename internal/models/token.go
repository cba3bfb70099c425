package models

import (
	"time"
)

// TokenKind selects the token namespace. Verification and reset tokens live
// in separate tables, so equal random values never collide across kinds.
type TokenKind string

const (
	TokenKindVerification TokenKind = "verification"
	TokenKindReset        TokenKind = "reset"
)

// ActionToken is a single-use, time-limited opaque credential binding a
// verification or reset action to an email address.
type ActionToken struct {
	ID        string     `json:"id"`
	Value     string     `json:"-"` // never expose the token value
	Email     string     `json:"email"`
	Kind      TokenKind  `json:"kind"`
	CreatedAt time.Time  `json:"created_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
}

// IsExpired checks whether the token has outlived its TTL, measured from
// creation. Expiry is evaluated lazily at consumption time.
func (t *ActionToken) IsExpired(ttl time.Duration) bool {
	return time.Since(t.CreatedAt) > ttl
}

// IsUsed checks if the token has already been consumed.
func (t *ActionToken) IsUsed() bool {
	return t.UsedAt != nil
}
