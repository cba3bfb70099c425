package services

import (
	"context"
	"time"

	"github.com/greenstrikas/platform/internal/models"
	pkgauth "github.com/greenstrikas/platform/pkg/auth"
)

// MockAccountRepository implements AccountRepository for testing
type MockAccountRepository struct {
	CreateFunc        func(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByUsernameFunc func(ctx context.Context, username string) (*models.Account, error)
	GetByEmailFunc    func(ctx context.Context, email string) (*models.Account, error)
	MutateFunc        func(ctx context.Context, username string, fn func(account *models.Account) error) (*models.Account, error)
	DeleteFunc        func(ctx context.Context, username string) error
}

func (m *MockAccountRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	return account, nil
}

func (m *MockAccountRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	return nil, models.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, models.ErrAccountNotFound
}

func (m *MockAccountRepository) Mutate(ctx context.Context, username string, fn func(account *models.Account) error) (*models.Account, error) {
	if m.MutateFunc != nil {
		return m.MutateFunc(ctx, username, fn)
	}
	return nil, models.ErrAccountNotFound
}

func (m *MockAccountRepository) Delete(ctx context.Context, username string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, username)
	}
	return nil
}

// MockTokenIssuer implements TokenIssuer for testing
type MockTokenIssuer struct {
	IssueFunc   func(kind models.TokenKind) (string, error)
	RecordFunc  func(value, email string, kind models.TokenKind) (*models.ActionToken, error)
	ConsumeFunc func(value string, kind models.TokenKind, ttl time.Duration) (string, error)
}

func (m *MockTokenIssuer) Issue(kind models.TokenKind) (string, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(kind)
	}
	return "test-token-value", nil
}

func (m *MockTokenIssuer) Record(value, email string, kind models.TokenKind) (*models.ActionToken, error) {
	if m.RecordFunc != nil {
		return m.RecordFunc(value, email, kind)
	}
	return &models.ActionToken{Value: value, Email: email, Kind: kind, CreatedAt: time.Now()}, nil
}

func (m *MockTokenIssuer) Consume(value string, kind models.TokenKind, ttl time.Duration) (string, error) {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(value, kind, ttl)
	}
	return "", models.ErrTokenNotFound
}

// MockNotifier implements Notifier for testing
type MockNotifier struct {
	DeliverFunc func(ctx context.Context, email, token string, purpose models.TokenKind) error
	Delivered   []string
}

func (m *MockNotifier) Deliver(ctx context.Context, email, token string, purpose models.TokenKind) error {
	m.Delivered = append(m.Delivered, token)
	if m.DeliverFunc != nil {
		return m.DeliverFunc(ctx, email, token, purpose)
	}
	return nil
}

// NewTestAccount builds a verified account with a real hash of password
func NewTestAccount(username, email, password string) *models.Account {
	hash, err := pkgauth.HashPassword(password)
	if err != nil {
		panic(err)
	}
	return &models.Account{
		ID:           "test-id-" + username,
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		AccountType:  models.AccountTypeInvestor,
		FullName:     "Test User",
		Organization: "Test Org",
		Verified:     true,
		CreatedAt:    time.Now(),
	}
}
