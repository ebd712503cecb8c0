package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-todo-list/internal/logger"
	"github.com/MKhiriev/go-todo-list/internal/metrics"
	"github.com/MKhiriev/go-todo-list/internal/mock"
	"github.com/MKhiriev/go-todo-list/internal/store"
	"github.com/MKhiriev/go-todo-list/internal/utils"
	"github.com/MKhiriev/go-todo-list/internal/validators"
	"github.com/MKhiriev/go-todo-list/models"
)

const (
	testSecret     = "0123456789abcdef"
	testSecretHash = "hash-of-secret"
)

type resetFixture struct {
	svc     *passwordResetService
	users   *mock.MockUserRepository
	mail    *mock.MockMailAdapter
	metrics *metrics.Metrics
}

func newTestResetSvc(t *testing.T, ctrl *gomock.Controller) resetFixture {
	t.Helper()

	users := mock.NewMockUserRepository(ctrl)
	mail := mock.NewMockMailAdapter(ctrl)
	m := metrics.NewMetrics(prometheus.NewRegistry())

	auth, _ := newTestAuthSvc(t, ctrl)
	svc := NewPasswordResetService(users, mail, auth, testHasher(), m, testAppConfig, logger.Nop()).(*passwordResetService)
	svc.now = func() time.Time { return testNow }
	svc.newSecret = func() (string, string, error) { return testSecret, testSecretHash, nil }

	return resetFixture{svc: svc, users: users, mail: mail, metrics: m}
}

func (f resetFixture) resetCount(result string) float64 {
	return testutil.ToFloat64(f.metrics.PasswordResetRequestsTotal.WithLabelValues(result))
}

func TestPasswordResetService_RequestReset_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newTestResetSvc(t, ctrl)
	ctx := context.Background()

	user := models.User{UserID: "user-1", Name: "John", Email: "john@example.com", PasswordHash: "h"}
	f.users.EXPECT().FindUserByEmail(ctx, "john@example.com").Return(user, nil)
	f.users.EXPECT().SetResetToken(ctx, "user-1", testSecretHash, testNow.Add(10*time.Minute), testNow).Return(nil)
	f.mail.EXPECT().Send(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, m models.Mail) error {
			assert.Equal(t, "john@example.com", m.To)
			assert.Equal(t, "Password Reset Request", m.Subject)
			assert.Contains(t, m.Text, "http://localhost:5173/reset-password/"+testSecret)
			assert.Contains(t, m.Text, "This link will expire in 10 minutes.")
			assert.NotContains(t, m.Text, testSecretHash)
			return nil
		},
	)

	require.NoError(t, f.svc.RequestReset(ctx, models.ForgotPasswordRequest{Email: " john@example.com "}))
	assert.Equal(t, 1.0, f.resetCount(metrics.ResetResultSent))
}

func TestPasswordResetService_RequestReset_UnknownEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newTestResetSvc(t, ctrl)

	f.users.EXPECT().FindUserByEmail(gomock.Any(), "ghost@example.com").Return(models.User{}, store.ErrUserNotFound)

	err := f.svc.RequestReset(context.Background(), models.ForgotPasswordRequest{Email: "ghost@example.com"})
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Equal(t, 1.0, f.resetCount(metrics.ResetResultUnknownEmail))
}

func TestPasswordResetService_RequestReset_EmptyEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newTestResetSvc(t, ctrl)

	err := f.svc.RequestReset(context.Background(), models.ForgotPasswordRequest{Email: "  "})
	assert.ErrorIs(t, err, validators.ErrEmptyEmail)
}

func TestPasswordResetService_RequestReset_MailFailureClearsToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newTestResetSvc(t, ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	user := models.User{UserID: "user-1", Email: "john@example.com"}
	f.users.EXPECT().FindUserByEmail(gomock.Any(), "john@example.com").Return(user, nil)

	gomock.InOrder(
		f.users.EXPECT().SetResetToken(gomock.Any(), "user-1", testSecretHash, gomock.Any(), gomock.Any()).Return(nil),
		f.mail.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(
			func(context.Context, models.Mail) error {
				cancel()
				return errors.New("smtp: connection refused")
			},
		),
		f.users.EXPECT().ClearResetToken(gomock.Any(), "user-1", testSecretHash, testNow).DoAndReturn(
			func(clearCtx context.Context, _, _ string, _ time.Time) error {
				assert.NoError(t, clearCtx.Err())
				return nil
			},
		),
	)

	err := f.svc.RequestReset(ctx, models.ForgotPasswordRequest{Email: "john@example.com"})
	assert.ErrorIs(t, err, ErrMailDeliveryFailed)
	assert.Equal(t, 1.0, f.resetCount(metrics.ResetResultDeliveryError))
	assert.Equal(t, 0.0, f.resetCount(metrics.ResetResultSent))
}

func TestPasswordResetService_RequestReset_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newTestResetSvc(t, ctrl)

	f.users.EXPECT().FindUserByEmail(gomock.Any(), gomock.Any()).Return(models.User{UserID: "user-1"}, nil)
	f.users.EXPECT().SetResetToken(gomock.Any(), "user-1", gomock.Any(), gomock.Any(), gomock.Any()).Return(store.ErrDatabaseUnavailable)

	err := f.svc.RequestReset(context.Background(), models.ForgotPasswordRequest{Email: "john@example.com"})
	assert.ErrorIs(t, err, store.ErrDatabaseUnavailable)
}

func TestPasswordResetService_ResetPassword_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newTestResetSvc(t, ctrl)
	ctx := context.Background()

	f.users.EXPECT().ResetPassword(ctx, utils.HashResetSecret(testSecret), gomock.Any(), testNow).DoAndReturn(
		func(_ context.Context, _ string, passwordHash string, _ time.Time) (models.User, error) {
			ok, err := testHasher().Verify("newsecret", passwordHash)
			require.NoError(t, err)
			assert.True(t, ok)
			return models.User{UserID: "user-1"}, nil
		},
	)

	token, err := f.svc.ResetPassword(ctx, models.ResetPasswordRequest{Token: testSecret, Password: "newsecret"})
	require.NoError(t, err)
	assert.Equal(t, "user-1", token.UserID)
	assert.NotEmpty(t, token.SignedString)
	assert.Equal(t, 1.0, f.resetCount(metrics.ResetResultRedeemed))
}

func TestPasswordResetService_ResetPassword_InvalidToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newTestResetSvc(t, ctrl)

	f.users.EXPECT().ResetPassword(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrInvalidResetToken)

	_, err := f.svc.ResetPassword(context.Background(), models.ResetPasswordRequest{Token: "stale", Password: "newsecret"})
	assert.ErrorIs(t, err, ErrInvalidResetToken)
	assert.Equal(t, 1.0, f.resetCount(metrics.ResetResultInvalidToken))
}

func TestPasswordResetService_ResetPassword_ShortPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newTestResetSvc(t, ctrl)

	_, err := f.svc.ResetPassword(context.Background(), models.ResetPasswordRequest{Token: testSecret, Password: "123"})
	assert.ErrorIs(t, err, validators.ErrPasswordTooShort)
}

func TestHumanDuration(t *testing.T) {
	assert.Equal(t, "1 minute", humanDuration(time.Minute))
	assert.Equal(t, "10 minutes", humanDuration(10*time.Minute))
	assert.Equal(t, "1m30s", humanDuration(90*time.Second))
}
