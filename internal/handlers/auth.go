package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/greenstrikas/platform/internal/auth"
	"github.com/greenstrikas/platform/internal/models"
	"github.com/greenstrikas/platform/internal/services"
	pkghttp "github.com/greenstrikas/platform/pkg/http"
)

// AccountServiceInterface defines the account lifecycle operations the
// handler needs.
type AccountServiceInterface interface {
	Register(ctx context.Context, params services.RegisterParams) (*models.Account, error)
	VerifyEmail(ctx context.Context, tokenValue string) (*models.Account, error)
	Authenticate(ctx context.Context, username, password string) (*models.Account, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, tokenValue, newPassword string) error
}

// AuthHandler maps the account lifecycle onto the HTTP session boundary.
// Every response carries a success flag and a human-readable message.
type AuthHandler struct {
	service  AccountServiceInterface
	sessions *auth.SessionManager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service AccountServiceInterface, sessions *auth.SessionManager) *AuthHandler {
	return &AuthHandler{
		service:  service,
		sessions: sessions,
	}
}

// Request DTOs

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	Username     string `json:"username" validate:"required"`
	Email        string `json:"email" validate:"required"`
	Password     string `json:"password" validate:"required"`
	AccountType  string `json:"account_type" validate:"required,oneof=Investor Developer Government Admin Analyst"`
	FullName     string `json:"full_name" validate:"required"`
	Organization string `json:"organization"`
}

// VerifyEmailRequest represents the request body for email verification
type VerifyEmailRequest struct {
	Token string `json:"token" validate:"required"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RequestResetRequest represents the request body for a password reset request
type RequestResetRequest struct {
	Email string `json:"email" validate:"required"`
}

// ResetPasswordRequest represents the request body for completing a reset
type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}

// AccountResponse is the profile returned for session establishment.
type AccountResponse struct {
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	AccountType  string     `json:"account_type"`
	FullName     string     `json:"full_name"`
	Organization string     `json:"organization"`
	Verified     bool       `json:"verified"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// MessageResponse is the plain (success, message) outcome of an operation.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// LoginResponse carries the session token and profile on success.
type LoginResponse struct {
	Success      bool             `json:"success"`
	Message      string           `json:"message"`
	SessionToken string           `json:"session_token"`
	Account      *AccountResponse `json:"account"`
}

// Register handles account registration
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	account, err := h.service.Register(r.Context(), services.RegisterParams{
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Password:     req.Password,
		AccountType:  models.AccountType(req.AccountType),
		FullName:     strings.TrimSpace(req.FullName),
		Organization: strings.TrimSpace(req.Organization),
	})
	if err != nil {
		writeLifecycleError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, MessageResponse{
		Success: true,
		Message: "Registration successful! Please check " + account.Email + " for a verification link.",
	})
}

// VerifyEmail handles verification token submission
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req VerifyEmailRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	account, err := h.service.VerifyEmail(r.Context(), req.Token)
	if err != nil {
		writeLifecycleError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, MessageResponse{
		Success: true,
		Message: "Email verified. Account " + account.Username + " is now active.",
	})
}

// Login handles authentication and session establishment
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	account, err := h.service.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		writeLifecycleError(w, err)
		return
	}

	sessionToken, err := h.sessions.Generate(account)
	if err != nil {
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, LoginResponse{
		Success:      true,
		Message:      "Welcome back, " + account.FullName + "!",
		SessionToken: sessionToken,
		Account:      accountToResponse(account),
	})
}

// RequestPasswordReset handles reset token issuance
func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req RequestResetRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	if err := h.service.RequestPasswordReset(r.Context(), req.Email); err != nil {
		writeLifecycleError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, MessageResponse{
		Success: true,
		Message: "A password reset link has been sent. It expires in 1 hour.",
	})
}

// ResetPassword handles reset token consumption
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	if err := h.service.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		writeLifecycleError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, MessageResponse{
		Success: true,
		Message: "Password updated. You can now log in with your new password.",
	})
}

// writeLifecycleError maps lifecycle errors onto HTTP status codes while
// keeping the specific reason in the message.
func writeLifecycleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrDuplicateUsername):
		pkghttp.WriteConflict(w, "Username already taken")
	case errors.Is(err, models.ErrDuplicateEmail):
		pkghttp.WriteConflict(w, "Email already registered")
	case errors.Is(err, models.ErrInvalidEmail):
		pkghttp.WriteBadRequest(w, "Invalid email address")
	case errors.Is(err, models.ErrInvalidUsername):
		pkghttp.WriteBadRequest(w, "Invalid username: "+strings.TrimPrefix(err.Error(), models.ErrInvalidUsername.Error()+": "))
	case models.IsWeakPassword(err):
		pkghttp.WriteBadRequest(w, "Password "+weakPasswordReason(err))
	case errors.Is(err, models.ErrAccountNotFound):
		pkghttp.WriteNotFound(w, "Account not found")
	case errors.Is(err, models.ErrTokenNotFound):
		pkghttp.WriteUnauthorized(w, "Unknown token")
	case errors.Is(err, models.ErrTokenAlreadyUsed):
		pkghttp.WriteUnauthorized(w, "Token already used")
	case errors.Is(err, models.ErrTokenExpired):
		pkghttp.WriteUnauthorized(w, "Token expired")
	case errors.Is(err, models.ErrNotVerified):
		pkghttp.WriteUnauthorized(w, "Email address not verified")
	case errors.Is(err, models.ErrInvalidCredentials):
		pkghttp.WriteUnauthorized(w, "Invalid credentials")
	case errors.Is(err, models.ErrDeliveryFailed):
		pkghttp.WriteBadGateway(w, "Could not deliver the email. Please try again.")
	default:
		pkghttp.WriteInternalError(w, "Internal server error")
	}
}

func weakPasswordReason(err error) string {
	var wpe *models.WeakPasswordError
	if errors.As(err, &wpe) {
		return wpe.Reason
	}
	return "does not meet the strength requirements"
}

func accountToResponse(account *models.Account) *AccountResponse {
	return &AccountResponse{
		Username:     account.Username,
		Email:        account.Email,
		AccountType:  string(account.AccountType),
		FullName:     account.FullName,
		Organization: account.Organization,
		Verified:     account.Verified,
		CreatedAt:    account.CreatedAt,
		LastLoginAt:  account.LastLoginAt,
	}
}
