package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-todo-list/internal/service"
	"github.com/MKhiriev/go-todo-list/internal/store"
	"github.com/MKhiriev/go-todo-list/internal/validators"
	"github.com/MKhiriev/go-todo-list/models"
)

var johnDoe = models.User{UserID: "user-1", Name: "John", Email: "john@example.com", PasswordHash: "$argon2id$secret"}

func TestSignUp_Success(t *testing.T) {
	env := newTestEnv(t, Options{})
	env.auth.signUpFn = func(_ context.Context, request models.SignUpRequest) (models.User, models.Token, error) {
		assert.Equal(t, "John", request.Name)
		assert.Equal(t, "secret1", request.Password)
		return johnDoe, models.Token{SignedString: "signed.jwt"}, nil
	}

	rec := env.do(t, http.MethodPost, "/api/auth/signup", models.SignUpRequest{Name: "John", Email: "john@example.com", Password: "secret1"})

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "User registered successfully", body["message"])
	assert.Equal(t, "signed.jwt", body["token"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "user-1", user["id"])
	assert.NotContains(t, rec.Body.String(), "argon2id")
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestSignUp_Errors(t *testing.T) {
	tests := []struct {
		name        string
		body        any
		err         error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "duplicate email",
			body:        models.SignUpRequest{Name: "John", Email: "john@example.com", Password: "secret1"},
			err:         fmt.Errorf("%w: %w", service.ErrUserAlreadyExists, store.ErrEmailAlreadyExists),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "User already exists",
		},
		{
			name:        "invalid email",
			body:        models.SignUpRequest{Name: "John", Email: "nope", Password: "secret1"},
			err:         fmt.Errorf("error during sign up validation: %w", validators.ErrInvalidEmail),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Please provide a valid email",
		},
		{
			name:        "malformed json",
			body:        `{"name":`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, Options{})
			env.auth.signUpFn = func(context.Context, models.SignUpRequest) (models.User, models.Token, error) {
				return models.User{}, models.Token{}, tt.err
			}

			rec := env.do(t, http.MethodPost, "/api/auth/signup", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decode[models.MessageResponse](t, rec)
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantMessage, body.Message)
			assert.Empty(t, env.errorLog.all())
		})
	}
}

func TestSignIn(t *testing.T) {
	env := newTestEnv(t, Options{})
	env.auth.signInFn = func(_ context.Context, request models.SignInRequest) (models.User, models.Token, error) {
		switch {
		case request.Email == "" || request.Password == "":
			return models.User{}, models.Token{}, validators.ErrMissingCredentials
		case request.Password != "secret1":
			return models.User{}, models.Token{}, service.ErrInvalidCredentials
		}
		return johnDoe, models.Token{SignedString: "signed.jwt"}, nil
	}

	rec := env.do(t, http.MethodPost, "/api/auth/signin", models.SignInRequest{Email: "john@example.com", Password: "secret1"})
	require.Equal(t, http.StatusOK, rec.Code)
	ok := decode[models.AuthResponse](t, rec)
	assert.Equal(t, "Logged in successfully", ok.Message)
	assert.Equal(t, "signed.jwt", ok.Token)

	rec = env.do(t, http.MethodPost, "/api/auth/signin", models.SignInRequest{Email: "john@example.com", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", decode[models.MessageResponse](t, rec).Message)

	rec = env.do(t, http.MethodPost, "/api/auth/signin", models.SignInRequest{Email: "john@example.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Please provide email and password", decode[models.MessageResponse](t, rec).Message)
}

func TestMe(t *testing.T) {
	env := newTestEnv(t, Options{})

	rec := env.doAuthed(t, http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[models.UserResponse](t, rec)
	assert.True(t, body.Success)
	assert.Equal(t, "user-1", body.User.UserID)

	rec = env.do(t, http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Not authorized, no token", decode[models.MessageResponse](t, rec).Message)
}

func TestForgotPassword(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
		wantLogged  bool
	}{
		{name: "sent", wantStatus: http.StatusOK, wantMessage: "Email sent successfully"},
		{name: "unknown email", err: service.ErrUserNotFound, wantStatus: http.StatusNotFound, wantMessage: "User not found"},
		{
			name:        "delivery failed",
			err:         fmt.Errorf("%w: %w", service.ErrMailDeliveryFailed, errors.New("smtp down")),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Email could not be sent",
			wantLogged:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, Options{})
			env.reset.requestResetFn = func(_ context.Context, request models.ForgotPasswordRequest) error {
				assert.Equal(t, "john@example.com", request.Email)
				return tt.err
			}

			rec := env.do(t, http.MethodPost, "/api/auth/forgot-password", models.ForgotPasswordRequest{Email: "john@example.com"})

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decode[models.MessageResponse](t, rec)
			assert.Equal(t, tt.err == nil, body.Success)
			assert.Equal(t, tt.wantMessage, body.Message)

			logs := env.errorLog.all()
			if tt.wantLogged {
				require.Len(t, logs, 1)
				assert.Equal(t, http.StatusInternalServerError, logs[0].Status)
				assert.Equal(t, http.MethodPost, logs[0].Method)
				assert.Equal(t, "/api/auth/forgot-password", logs[0].URL)
				assert.Empty(t, logs[0].UserID)
			} else {
				assert.Empty(t, logs)
			}
		})
	}
}

func TestResetPassword(t *testing.T) {
	env := newTestEnv(t, Options{})
	env.reset.resetPasswordFn = func(_ context.Context, request models.ResetPasswordRequest) (models.Token, error) {
		if request.Token != "abc123" {
			return models.Token{}, service.ErrInvalidResetToken
		}
		assert.Equal(t, "newsecret", request.Password)
		return models.Token{SignedString: "fresh.jwt"}, nil
	}

	rec := env.do(t, http.MethodPut, "/api/auth/reset-password/abc123", map[string]string{"password": "newsecret", "token": "ignored"})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[models.AuthResponse](t, rec)
	assert.Equal(t, "Password reset successful", body.Message)
	assert.Equal(t, "fresh.jwt", body.Token)
	assert.Nil(t, body.User)

	rec = env.do(t, http.MethodPut, "/api/auth/reset-password/stale", map[string]string{"password": "newsecret"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid or expired token", decode[models.MessageResponse](t, rec).Message)
}
