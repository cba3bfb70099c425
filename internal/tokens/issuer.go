// Package tokens implements the issuer for single-use email verification
// and password reset tokens. Records live in two in-memory tables, one per
// token kind, so equal values in different namespaces never collide.
package tokens

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/greenstrikas/platform/internal/models"
)

const (
	VerificationTokenLen = 32
	ResetTokenLen        = 24

	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// Issuer mints and tracks action tokens. Uniqueness of issued values is
// probabilistic; no collision check is performed against existing records.
type Issuer struct {
	mu     sync.Mutex
	tables map[models.TokenKind]map[string]*models.ActionToken
}

// NewIssuer creates an Issuer with empty verification and reset tables.
func NewIssuer() *Issuer {
	return &Issuer{
		tables: map[models.TokenKind]map[string]*models.ActionToken{
			models.TokenKindVerification: {},
			models.TokenKindReset:        {},
		},
	}
}

// Issue returns a fresh random alphanumeric token value for the given kind.
// Verification tokens are 32 characters, reset tokens 24.
func (i *Issuer) Issue(kind models.TokenKind) (string, error) {
	length := VerificationTokenLen
	if kind == models.TokenKindReset {
		length = ResetTokenLen
	}

	value := make([]byte, length)
	max := big.NewInt(int64(len(alphabet)))
	for j := range value {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate token: %w", err)
		}
		value[j] = alphabet[n.Int64()]
	}

	return string(value), nil
}

// Record stores a token value bound to an email address with the creation
// timestamp set to now.
func (i *Issuer) Record(value, email string, kind models.TokenKind) (*models.ActionToken, error) {
	table, ok := i.tableFor(kind)
	if !ok {
		return nil, fmt.Errorf("unknown token kind %q", kind)
	}

	token := &models.ActionToken{
		ID:        uuid.New().String(),
		Value:     value,
		Email:     email,
		Kind:      kind,
		CreatedAt: time.Now(),
	}

	i.mu.Lock()
	table[value] = token
	i.mu.Unlock()

	return token, nil
}

// Consume looks up a token, checks single-use and TTL, marks it used and
// returns the bound email. The lookup-check-mark sequence runs under one
// lock so two concurrent consumers of the same value cannot both succeed.
// Expired tokens are not purged; expiry is only ever checked here.
func (i *Issuer) Consume(value string, kind models.TokenKind, ttl time.Duration) (string, error) {
	table, ok := i.tableFor(kind)
	if !ok {
		return "", fmt.Errorf("unknown token kind %q", kind)
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	token, ok := table[value]
	if !ok {
		return "", models.ErrTokenNotFound
	}
	if token.IsUsed() {
		return "", models.ErrTokenAlreadyUsed
	}
	if token.IsExpired(ttl) {
		return "", models.ErrTokenExpired
	}

	now := time.Now()
	token.UsedAt = &now

	return token.Email, nil
}

func (i *Issuer) tableFor(kind models.TokenKind) (map[string]*models.ActionToken, bool) {
	table, ok := i.tables[kind]
	return table, ok
}
