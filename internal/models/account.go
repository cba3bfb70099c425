package models

import (
	"time"
)

// AccountType is the role label attached to an account. It is informational
// only and carries no authorization semantics.
type AccountType string

const (
	AccountTypeInvestor   AccountType = "Investor"
	AccountTypeDeveloper  AccountType = "Developer"
	AccountTypeGovernment AccountType = "Government"
	AccountTypeAdmin      AccountType = "Admin"
	AccountTypeAnalyst    AccountType = "Analyst"
)

// ValidAccountType reports whether t is one of the known role labels.
func ValidAccountType(t AccountType) bool {
	switch t {
	case AccountTypeInvestor, AccountTypeDeveloper, AccountTypeGovernment,
		AccountTypeAdmin, AccountTypeAnalyst:
		return true
	}
	return false
}

// Account is a registered user identity. Username and Email are each unique
// across all accounts; Username is immutable after creation.
type Account struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // never stored in clear
	AccountType  AccountType
	FullName     string
	Organization string
	Verified     bool
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}

// NewAccount builds an unverified account with CreatedAt set to now.
// Callers are expected to have validated username, email and password
// before constructing the record.
func NewAccount(username, email, passwordHash string, accountType AccountType, fullName, organization string) (*Account, error) {
	if username == "" || email == "" || passwordHash == "" {
		return nil, ErrBadRequest
	}
	if !ValidAccountType(accountType) {
		return nil, ErrBadRequest
	}

	return &Account{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		AccountType:  accountType,
		FullName:     fullName,
		Organization: organization,
		Verified:     false,
		CreatedAt:    time.Now(),
	}, nil
}
