package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/greenstrikas/platform/internal/auth"
	"github.com/greenstrikas/platform/internal/models"
	"github.com/greenstrikas/platform/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(svc AccountServiceInterface) *AuthHandler {
	sessions := auth.NewSessionManager("test-secret-for-sessions-32bytes!", time.Hour)
	return NewAuthHandler(svc, sessions)
}

func doJSON(t *testing.T, handler http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func validRegisterBody() RegisterRequest {
	return RegisterRequest{
		Username:     "alice",
		Email:        "alice@example.com",
		Password:     "Str0ng!Pass",
		AccountType:  "Investor",
		FullName:     "Alice A",
		Organization: "Acme",
	}
}

func TestRegister_Created(t *testing.T) {
	svc := &MockAccountService{
		RegisterFunc: func(ctx context.Context, params services.RegisterParams) (*models.Account, error) {
			return NewTestProfile(params.Username, params.Email), nil
		},
	}
	h := newTestHandler(svc)

	rec := doJSON(t, h.Register, validRegisterBody())

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Contains(t, resp.Message, "alice@example.com")
}

func TestRegister_MissingFields(t *testing.T) {
	h := newTestHandler(&MockAccountService{})

	body := validRegisterBody()
	body.Username = ""
	rec := doJSON(t, h.Register, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_UnknownAccountType(t *testing.T) {
	h := newTestHandler(&MockAccountService{})

	body := validRegisterBody()
	body.AccountType = "Wizard"
	rec := doJSON(t, h.Register, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_DuplicateUsernameConflict(t *testing.T) {
	svc := &MockAccountService{
		RegisterFunc: func(ctx context.Context, params services.RegisterParams) (*models.Account, error) {
			return nil, models.ErrDuplicateUsername
		},
	}
	h := newTestHandler(svc)

	rec := doJSON(t, h.Register, validRegisterBody())

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegister_WeakPasswordReasonSurfaces(t *testing.T) {
	svc := &MockAccountService{
		RegisterFunc: func(ctx context.Context, params services.RegisterParams) (*models.Account, error) {
			return nil, &models.WeakPasswordError{Reason: "must be at least 8 characters"}
		},
	}
	h := newTestHandler(svc)

	rec := doJSON(t, h.Register, validRegisterBody())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "at least 8 characters")
}

func TestRegister_DeliveryFailed(t *testing.T) {
	svc := &MockAccountService{
		RegisterFunc: func(ctx context.Context, params services.RegisterParams) (*models.Account, error) {
			return nil, models.ErrDeliveryFailed
		},
	}
	h := newTestHandler(svc)

	rec := doJSON(t, h.Register, validRegisterBody())

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestVerifyEmail_Success(t *testing.T) {
	svc := &MockAccountService{
		VerifyEmailFunc: func(ctx context.Context, tokenValue string) (*models.Account, error) {
			return NewTestProfile("alice", "alice@example.com"), nil
		},
	}
	h := newTestHandler(svc)

	rec := doJSON(t, h.VerifyEmail, VerifyEmailRequest{Token: "some-token"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alice")
}

func TestVerifyEmail_TokenErrors(t *testing.T) {
	tests := []struct {
		err     error
		message string
	}{
		{models.ErrTokenNotFound, "Unknown token"},
		{models.ErrTokenAlreadyUsed, "already used"},
		{models.ErrTokenExpired, "expired"},
	}

	for _, tc := range tests {
		svc := &MockAccountService{
			VerifyEmailFunc: func(ctx context.Context, tokenValue string) (*models.Account, error) {
				return nil, tc.err
			},
		}
		h := newTestHandler(svc)

		rec := doJSON(t, h.VerifyEmail, VerifyEmailRequest{Token: "some-token"})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), tc.message)
	}
}

func TestLogin_ReturnsSessionAndProfile(t *testing.T) {
	svc := &MockAccountService{
		AuthenticateFunc: func(ctx context.Context, username, password string) (*models.Account, error) {
			return NewTestProfile(username, "alice@example.com"), nil
		},
	}
	h := newTestHandler(svc)

	rec := doJSON(t, h.Login, LoginRequest{Username: "alice", Password: "Str0ng!Pass"})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.SessionToken)
	require.NotNil(t, resp.Account)
	assert.Equal(t, "alice", resp.Account.Username)
	assert.True(t, resp.Account.Verified)
}

func TestLogin_NotVerified(t *testing.T) {
	svc := &MockAccountService{
		AuthenticateFunc: func(ctx context.Context, username, password string) (*models.Account, error) {
			return nil, models.ErrNotVerified
		},
	}
	h := newTestHandler(svc)

	rec := doJSON(t, h.Login, LoginRequest{Username: "alice", Password: "Str0ng!Pass"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "not verified")
}

func TestLogin_UnknownAccount(t *testing.T) {
	h := newTestHandler(&MockAccountService{})

	rec := doJSON(t, h.Login, LoginRequest{Username: "nobody", Password: "Str0ng!Pass"})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRequestPasswordReset_Success(t *testing.T) {
	h := newTestHandler(&MockAccountService{
		RequestPasswordResetFunc: func(ctx context.Context, email string) error {
			return nil
		},
	})

	rec := doJSON(t, h.RequestPasswordReset, RequestResetRequest{Email: "alice@example.com"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "1 hour")
}

func TestResetPassword_Success(t *testing.T) {
	h := newTestHandler(&MockAccountService{})

	rec := doJSON(t, h.ResetPassword, ResetPasswordRequest{Token: "tok", NewPassword: "NewPass2@"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Password updated")
}

func TestResetPassword_ExpiredToken(t *testing.T) {
	h := newTestHandler(&MockAccountService{
		ResetPasswordFunc: func(ctx context.Context, tokenValue, newPassword string) error {
			return models.ErrTokenExpired
		},
	})

	rec := doJSON(t, h.ResetPassword, ResetPasswordRequest{Token: "tok", NewPassword: "NewPass2@"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestInvalidJSONBody(t *testing.T) {
	h := newTestHandler(&MockAccountService{})

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
