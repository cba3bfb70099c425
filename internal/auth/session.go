// Package auth issues and validates the session tokens handed to the UI
// layer after a successful login.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/greenstrikas/platform/internal/models"
)

// SessionClaims are the JWT claims carried by a session token.
type SessionClaims struct {
	Username    string             `json:"username"`
	Email       string             `json:"email"`
	AccountType models.AccountType `json:"account_type"`
	jwt.RegisteredClaims
}

// SessionManager handles session token generation and validation.
type SessionManager struct {
	secret string
	expiry time.Duration
}

// NewSessionManager creates a SessionManager signing with secret.
func NewSessionManager(secret string, expiry time.Duration) *SessionManager {
	return &SessionManager{
		secret: secret,
		expiry: expiry,
	}
}

// Generate creates a signed session token for the account.
func (sm *SessionManager) Generate(account *models.Account) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		Username:    account.Username,
		Email:       account.Email,
		AccountType: account.AccountType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(sm.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(sm.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, nil
}

// Validate verifies a session token and returns its claims.
func (sm *SessionManager) Validate(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(sm.secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid session token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}

	return claims, nil
}
