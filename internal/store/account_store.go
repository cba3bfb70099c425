// Package store holds the in-memory credential store. The platform keeps no
// persistent database; accounts live for the lifetime of the process.
package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/greenstrikas/platform/internal/models"
)

// AccountStore maps usernames to account records with a secondary index by
// email. All methods are safe for concurrent use.
type AccountStore struct {
	mu         sync.RWMutex
	byUsername map[string]*models.Account
	byEmail    map[string]string // email -> username
}

// NewAccountStore creates an empty AccountStore.
func NewAccountStore() *AccountStore {
	return &AccountStore{
		byUsername: make(map[string]*models.Account),
		byEmail:    make(map[string]string),
	}
}

// Create inserts a new account. The duplicate-username and duplicate-email
// checks and the insert run as one critical section, so two concurrent
// registrations with the same key cannot both pass.
func (s *AccountStore) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byUsername[account.Username]; exists {
		return nil, models.ErrDuplicateUsername
	}
	if _, exists := s.byEmail[account.Email]; exists {
		return nil, models.ErrDuplicateEmail
	}

	if account.ID == "" {
		account.ID = uuid.New().String()
	}

	stored := *account
	s.byUsername[stored.Username] = &stored
	s.byEmail[stored.Email] = stored.Username

	return copyAccount(&stored), nil
}

// GetByUsername returns the account registered under username.
func (s *AccountStore) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.byUsername[username]
	if !ok {
		return nil, models.ErrAccountNotFound
	}
	return copyAccount(account), nil
}

// GetByEmail returns the account whose email matches.
func (s *AccountStore) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	username, ok := s.byEmail[email]
	if !ok {
		return nil, models.ErrAccountNotFound
	}
	return copyAccount(s.byUsername[username]), nil
}

// Mutate applies fn to the current stored record under the write lock.
// Because fn always sees the latest state, concurrent read-modify-write
// sequences on the same account are serialized and cannot clobber each
// other with stale copies. ID, username, email and creation time are
// immutable; a mutation touching them is rejected and discarded.
func (s *AccountStore) Mutate(ctx context.Context, username string, fn func(account *models.Account) error) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.byUsername[username]
	if !ok {
		return nil, models.ErrAccountNotFound
	}

	next := copyAccount(existing)
	if err := fn(next); err != nil {
		return nil, err
	}
	if next.Username != existing.Username || next.Email != existing.Email {
		return nil, models.ErrBadRequest
	}
	next.ID = existing.ID
	next.CreatedAt = existing.CreatedAt
	s.byUsername[username] = next

	return copyAccount(next), nil
}

// Delete removes an account. Only used to roll back a registration whose
// verification email could not be delivered.
func (s *AccountStore) Delete(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.byUsername[username]
	if !ok {
		return models.ErrAccountNotFound
	}

	delete(s.byEmail, account.Email)
	delete(s.byUsername, username)
	return nil
}

// Count returns the number of registered accounts.
func (s *AccountStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byUsername)
}

func copyAccount(a *models.Account) *models.Account {
	cp := *a
	if a.LastLoginAt != nil {
		t := *a.LastLoginAt
		cp.LastLoginAt = &t
	}
	return &cp
}
