package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/greenstrikas/platform/internal/models"
	pkgauth "github.com/greenstrikas/platform/pkg/auth"
	pkglogger "github.com/greenstrikas/platform/pkg/logger"
	"github.com/greenstrikas/platform/pkg/validate"
)

const (
	// DefaultVerificationTTL is the validity window of email verification
	// tokens, measured from creation.
	DefaultVerificationTTL = 24 * time.Hour
	// DefaultResetTTL is the validity window of password reset tokens.
	DefaultResetTTL = 1 * time.Hour
)

// AccountRepository defines the credential store operations the lifecycle
// manager needs.
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	Mutate(ctx context.Context, username string, fn func(account *models.Account) error) (*models.Account, error)
	Delete(ctx context.Context, username string) error
}

// TokenIssuer defines the token operations the lifecycle manager needs.
type TokenIssuer interface {
	Issue(kind models.TokenKind) (string, error)
	Record(value, email string, kind models.TokenKind) (*models.ActionToken, error)
	Consume(value string, kind models.TokenKind, ttl time.Duration) (string, error)
}

// AccountService orchestrates the account lifecycle: registration, email
// verification, authentication and password reset. State transitions go
// through the credential store and token issuer only; the notifier is the
// sole external side effect.
type AccountService struct {
	repo            AccountRepository
	issuer          TokenIssuer
	notifier        Notifier
	logger          *slog.Logger
	auditLogger     *pkglogger.AuditLogger
	verificationTTL time.Duration
	resetTTL        time.Duration
}

// NewAccountService creates an AccountService with the default token TTLs.
func NewAccountService(repo AccountRepository, issuer TokenIssuer, notifier Notifier, logger *slog.Logger, auditLogger *pkglogger.AuditLogger) *AccountService {
	return &AccountService{
		repo:            repo,
		issuer:          issuer,
		notifier:        notifier,
		logger:          logger,
		auditLogger:     auditLogger,
		verificationTTL: DefaultVerificationTTL,
		resetTTL:        DefaultResetTTL,
	}
}

// SetTokenTTLs overrides the verification and reset token TTLs.
func (s *AccountService) SetTokenTTLs(verification, reset time.Duration) {
	if verification > 0 {
		s.verificationTTL = verification
	}
	if reset > 0 {
		s.resetTTL = reset
	}
}

// RegisterParams carries the registration input fields.
type RegisterParams struct {
	Username     string
	Email        string
	Password     string
	AccountType  models.AccountType
	FullName     string
	Organization string
}

// Register creates an unverified account and sends a verification token to
// its email address. Checks run in a fixed order: duplicate username,
// email syntax, password strength, username syntax, duplicate email. If
// token delivery fails the account is rolled back so no unreachable
// account is left behind.
func (s *AccountService) Register(ctx context.Context, params RegisterParams) (*models.Account, error) {
	username := strings.TrimSpace(params.Username)
	email := strings.ToLower(strings.TrimSpace(params.Email))

	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		s.audit("register_failed", username, false, "duplicate_username")
		return nil, models.ErrDuplicateUsername
	} else if !errors.Is(err, models.ErrAccountNotFound) {
		s.logger.Error("failed to check username", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if err := validate.Email(email); err != nil {
		s.audit("register_failed", username, false, "invalid_email")
		return nil, models.ErrInvalidEmail
	}

	if err := validate.Password(params.Password); err != nil {
		s.audit("register_failed", username, false, "weak_password")
		return nil, &models.WeakPasswordError{Reason: err.Error()}
	}

	if err := validate.Username(username); err != nil {
		s.audit("register_failed", username, false, "invalid_username")
		return nil, fmt.Errorf("%w: %s", models.ErrInvalidUsername, err.Error())
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		s.audit("register_failed", username, false, "duplicate_email")
		return nil, models.ErrDuplicateEmail
	} else if !errors.Is(err, models.ErrAccountNotFound) {
		s.logger.Error("failed to check email", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	passwordHash, err := pkgauth.HashPassword(params.Password)
	if err != nil {
		s.logger.Error("failed to hash password", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	account, err := models.NewAccount(username, email, passwordHash, params.AccountType, params.FullName, params.Organization)
	if err != nil {
		return nil, err
	}

	// The store re-checks both uniqueness constraints atomically; the
	// prechecks above only fix the error ordering.
	created, err := s.repo.Create(ctx, account)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateUsername) || errors.Is(err, models.ErrDuplicateEmail) {
			s.audit("register_failed", username, false, "duplicate")
			return nil, err
		}
		s.logger.Error("failed to create account", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	tokenValue, err := s.issuer.Issue(models.TokenKindVerification)
	if err != nil {
		s.logger.Error("failed to issue verification token", slog.Any("error", err))
		s.rollbackRegistration(ctx, username)
		return nil, models.ErrInternalServer
	}

	if _, err := s.issuer.Record(tokenValue, email, models.TokenKindVerification); err != nil {
		s.logger.Error("failed to record verification token", slog.Any("error", err))
		s.rollbackRegistration(ctx, username)
		return nil, models.ErrInternalServer
	}

	if err := s.notifier.Deliver(ctx, email, tokenValue, models.TokenKindVerification); err != nil {
		s.logger.Warn("verification delivery failed, rolling back registration",
			slog.String("username", username),
			slog.String("email", pkglogger.SanitizedEmail(email)),
			slog.Any("error", err))
		s.rollbackRegistration(ctx, username)
		s.audit("register_failed", username, false, "delivery_failed")
		return nil, models.ErrDeliveryFailed
	}

	s.logger.Info("account registered, pending verification",
		slog.String("username", username),
		slog.String("email", pkglogger.SanitizedEmail(email)))
	s.audit("register_success", username, true, "")

	return created, nil
}

// VerifyEmail consumes a verification token and marks the matching account
// as verified, transitioning it to the active state.
func (s *AccountService) VerifyEmail(ctx context.Context, tokenValue string) (*models.Account, error) {
	email, err := s.issuer.Consume(tokenValue, models.TokenKindVerification, s.verificationTTL)
	if err != nil {
		s.logger.Info("verification token rejected", slog.Any("error", err))
		s.audit("verify_failed", "", false, err.Error())
		return nil, err
	}

	account, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		// Orphaned token: recorded for an email that matches no account,
		// e.g. after a registration rollback. Treated as a hard error.
		if errors.Is(err, models.ErrAccountNotFound) {
			s.logger.Warn("verification token bound to unknown account",
				slog.String("email", pkglogger.SanitizedEmail(email)))
			s.audit("verify_failed", "", false, "account_not_found")
			return nil, models.ErrAccountNotFound
		}
		s.logger.Error("failed to look up account for verification", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	updated, err := s.repo.Mutate(ctx, account.Username, func(a *models.Account) error {
		a.Verified = true
		return nil
	})
	if err != nil {
		s.logger.Error("failed to mark account verified",
			slog.String("username", account.Username),
			slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("email verified", slog.String("username", account.Username))
	s.audit("verify_success", account.Username, true, "")

	return updated, nil
}

// Authenticate checks credentials and, on success, updates the last-login
// timestamp and returns the account profile for session establishment.
// Unverified accounts cannot log in regardless of password correctness.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*models.Account, error) {
	account, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, models.ErrAccountNotFound) {
			s.audit("login_failed", username, false, "account_not_found")
			return nil, models.ErrAccountNotFound
		}
		s.logger.Error("failed to look up account", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if !account.Verified {
		s.audit("login_failed", account.Username, false, "not_verified")
		return nil, models.ErrNotVerified
	}

	if err := pkgauth.ComparePassword(account.PasswordHash, password); err != nil {
		s.audit("login_failed", account.Username, false, "invalid_credentials")
		return nil, models.ErrInvalidCredentials
	}

	// Only the timestamp is written back; the stale copy read above never
	// reaches the store, so a concurrent password reset survives a login
	// that raced with it.
	updated, err := s.repo.Mutate(ctx, account.Username, func(a *models.Account) error {
		now := time.Now()
		a.LastLoginAt = &now
		return nil
	})
	if err != nil {
		s.logger.Error("failed to update last login",
			slog.String("username", account.Username),
			slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("login succeeded", slog.String("username", account.Username))
	s.audit("login_success", account.Username, true, "")

	return updated, nil
}

// RequestPasswordReset issues a reset token for the account registered
// under email and asks the notifier to deliver it. No account state is
// mutated, so a delivery failure is reported but nothing is rolled back.
func (s *AccountService) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	account, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrAccountNotFound) {
			s.audit("reset_request_failed", "", false, "account_not_found")
			return models.ErrAccountNotFound
		}
		s.logger.Error("failed to look up account for reset", slog.Any("error", err))
		return models.ErrInternalServer
	}

	tokenValue, err := s.issuer.Issue(models.TokenKindReset)
	if err != nil {
		s.logger.Error("failed to issue reset token", slog.Any("error", err))
		return models.ErrInternalServer
	}

	if _, err := s.issuer.Record(tokenValue, email, models.TokenKindReset); err != nil {
		s.logger.Error("failed to record reset token", slog.Any("error", err))
		return models.ErrInternalServer
	}

	if err := s.notifier.Deliver(ctx, email, tokenValue, models.TokenKindReset); err != nil {
		s.logger.Warn("reset delivery failed",
			slog.String("email", pkglogger.SanitizedEmail(email)),
			slog.Any("error", err))
		s.audit("reset_request_failed", account.Username, false, "delivery_failed")
		return models.ErrDeliveryFailed
	}

	s.logger.Info("password reset requested", slog.String("username", account.Username))
	s.audit("reset_requested", account.Username, true, "")

	return nil
}

// ResetPassword consumes a reset token, validates the replacement password
// and swaps the account's password hash.
func (s *AccountService) ResetPassword(ctx context.Context, tokenValue, newPassword string) error {
	email, err := s.issuer.Consume(tokenValue, models.TokenKindReset, s.resetTTL)
	if err != nil {
		s.logger.Info("reset token rejected", slog.Any("error", err))
		s.audit("reset_failed", "", false, err.Error())
		return err
	}

	if err := validate.Password(newPassword); err != nil {
		s.audit("reset_failed", "", false, "weak_password")
		return &models.WeakPasswordError{Reason: err.Error()}
	}

	account, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrAccountNotFound) {
			s.audit("reset_failed", "", false, "account_not_found")
			return models.ErrAccountNotFound
		}
		s.logger.Error("failed to look up account for reset", slog.Any("error", err))
		return models.ErrInternalServer
	}

	passwordHash, err := pkgauth.HashPassword(newPassword)
	if err != nil {
		s.logger.Error("failed to hash new password", slog.Any("error", err))
		return models.ErrInternalServer
	}

	if _, err := s.repo.Mutate(ctx, account.Username, func(a *models.Account) error {
		a.PasswordHash = passwordHash
		return nil
	}); err != nil {
		s.logger.Error("failed to store new password hash",
			slog.String("username", account.Username),
			slog.Any("error", err))
		return models.ErrInternalServer
	}

	s.logger.Info("password reset completed", slog.String("username", account.Username))
	s.audit("reset_success", account.Username, true, "")

	return nil
}

func (s *AccountService) rollbackRegistration(ctx context.Context, username string) {
	if err := s.repo.Delete(ctx, username); err != nil {
		s.logger.Error("failed to roll back registration",
			slog.String("username", username),
			slog.Any("error", err))
	}
}

func (s *AccountService) audit(eventType, username string, success bool, reason string) {
	if s.auditLogger == nil {
		return
	}
	s.auditLogger.LogLifecycleEvent(pkglogger.AuditEvent{
		EventType:     eventType,
		Username:      username,
		Success:       success,
		FailureReason: reason,
	})
}
