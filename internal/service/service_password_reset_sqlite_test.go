package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-todo-list/internal/config"
	"github.com/MKhiriev/go-todo-list/internal/logger"
	"github.com/MKhiriev/go-todo-list/internal/store"
	"github.com/MKhiriev/go-todo-list/models"
)

// mailFunc adapts a function to adapter.MailAdapter.
type mailFunc func(ctx context.Context, mail models.Mail) error

func (f mailFunc) Send(ctx context.Context, mail models.Mail) error { return f(ctx, mail) }

func newSQLiteUserRepo(t *testing.T) store.UserRepository {
	t.Helper()

	ctx := context.Background()
	db, err := store.NewConnectSQLite(ctx, config.DB{
		Driver: config.DriverSQLite,
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
	}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate(ctx))

	return store.NewStorages(db, logger.Nop()).UserRepository
}

func secretFromMail(t *testing.T, mail models.Mail) string {
	t.Helper()

	_, rest, ok := strings.Cut(mail.Text, "/reset-password/")
	require.True(t, ok, mail.Text)
	secret, _, _ := strings.Cut(rest, "\n")
	return secret
}

func TestPasswordResetService_FailedDeliveryKeepsConcurrentRedemption(t *testing.T) {
	ctx := context.Background()
	users := newSQLiteUserRepo(t)
	auth := NewAuthService(users, testHasher(), testAppConfig, logger.Nop())

	_, _, err := auth.SignUp(ctx, models.SignUpRequest{Name: "Ada", Email: "ada@x.com", Password: "secret123"})
	require.NoError(t, err)

	var (
		svc        *passwordResetService
		sends      int
		lastSecret string
	)
	mail := mailFunc(func(ctx context.Context, m models.Mail) error {
		sends++
		if sends > 1 {
			lastSecret = secretFromMail(t, m)
			return nil
		}

		// while the first mail is in flight a second reset is requested and redeemed
		require.NoError(t, svc.RequestReset(ctx, models.ForgotPasswordRequest{Email: "ada@x.com"}))
		_, err := svc.ResetPassword(ctx, models.ResetPasswordRequest{Token: lastSecret, Password: "newpass2"})
		require.NoError(t, err)

		return errors.New("smtp: connection refused")
	})
	svc = NewPasswordResetService(users, mail, auth, testHasher(), nil, testAppConfig, logger.Nop()).(*passwordResetService)

	err = svc.RequestReset(ctx, models.ForgotPasswordRequest{Email: "ada@x.com"})
	require.ErrorIs(t, err, ErrMailDeliveryFailed)

	_, _, err = auth.SignIn(ctx, models.SignInRequest{Email: "ada@x.com", Password: "newpass2"})
	assert.NoError(t, err, "redeemed password must survive the failed delivery")

	_, _, err = auth.SignIn(ctx, models.SignInRequest{Email: "ada@x.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.ResetPassword(ctx, models.ResetPasswordRequest{Token: lastSecret, Password: "another1"})
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}

func TestPasswordResetService_FailedDeliveryKeepsNewerToken(t *testing.T) {
	ctx := context.Background()
	users := newSQLiteUserRepo(t)
	auth := NewAuthService(users, testHasher(), testAppConfig, logger.Nop())

	_, _, err := auth.SignUp(ctx, models.SignUpRequest{Name: "Ada", Email: "ada@x.com", Password: "secret123"})
	require.NoError(t, err)

	var (
		svc        *passwordResetService
		sends      int
		lastSecret string
	)
	mail := mailFunc(func(ctx context.Context, m models.Mail) error {
		sends++
		if sends > 1 {
			lastSecret = secretFromMail(t, m)
			return nil
		}
		require.NoError(t, svc.RequestReset(ctx, models.ForgotPasswordRequest{Email: "ada@x.com"}))
		return errors.New("smtp: connection refused")
	})
	svc = NewPasswordResetService(users, mail, auth, testHasher(), nil, testAppConfig, logger.Nop()).(*passwordResetService)

	require.ErrorIs(t, svc.RequestReset(ctx, models.ForgotPasswordRequest{Email: "ada@x.com"}), ErrMailDeliveryFailed)

	token, err := svc.ResetPassword(ctx, models.ResetPasswordRequest{Token: lastSecret, Password: "newpass2"})
	require.NoError(t, err)
	assert.NotEmpty(t, token.SignedString)
}
