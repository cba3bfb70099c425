package handlers

import (
	"context"
	"time"

	"github.com/greenstrikas/platform/internal/models"
	"github.com/greenstrikas/platform/internal/services"
)

// MockAccountService implements AccountServiceInterface for testing
type MockAccountService struct {
	RegisterFunc             func(ctx context.Context, params services.RegisterParams) (*models.Account, error)
	VerifyEmailFunc          func(ctx context.Context, tokenValue string) (*models.Account, error)
	AuthenticateFunc         func(ctx context.Context, username, password string) (*models.Account, error)
	RequestPasswordResetFunc func(ctx context.Context, email string) error
	ResetPasswordFunc        func(ctx context.Context, tokenValue, newPassword string) error
}

func (m *MockAccountService) Register(ctx context.Context, params services.RegisterParams) (*models.Account, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, params)
	}
	return nil, models.ErrInternalServer
}

func (m *MockAccountService) VerifyEmail(ctx context.Context, tokenValue string) (*models.Account, error) {
	if m.VerifyEmailFunc != nil {
		return m.VerifyEmailFunc(ctx, tokenValue)
	}
	return nil, models.ErrTokenNotFound
}

func (m *MockAccountService) Authenticate(ctx context.Context, username, password string) (*models.Account, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, username, password)
	}
	return nil, models.ErrAccountNotFound
}

func (m *MockAccountService) RequestPasswordReset(ctx context.Context, email string) error {
	if m.RequestPasswordResetFunc != nil {
		return m.RequestPasswordResetFunc(ctx, email)
	}
	return nil
}

func (m *MockAccountService) ResetPassword(ctx context.Context, tokenValue, newPassword string) error {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, tokenValue, newPassword)
	}
	return nil
}

// NewTestProfile builds an active account for handler tests
func NewTestProfile(username, email string) *models.Account {
	now := time.Now()
	return &models.Account{
		ID:           "test-id",
		Username:     username,
		Email:        email,
		PasswordHash: "$2a$12$fakehashfakehashfakehash",
		AccountType:  models.AccountTypeInvestor,
		FullName:     "Alice A",
		Organization: "Acme",
		Verified:     true,
		CreatedAt:    now,
		LastLoginAt:  &now,
	}
}
