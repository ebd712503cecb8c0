package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-todo-list/internal/adapter"
	"github.com/MKhiriev/go-todo-list/internal/config"
	"github.com/MKhiriev/go-todo-list/internal/logger"
	"github.com/MKhiriev/go-todo-list/internal/metrics"
	"github.com/MKhiriev/go-todo-list/internal/store"
	"github.com/MKhiriev/go-todo-list/internal/utils"
	"github.com/MKhiriev/go-todo-list/internal/validators"
	"github.com/MKhiriev/go-todo-list/models"
)

const resetMailSubject = "Password Reset Request"

type passwordResetService struct {
	userRepository store.UserRepository
	mailAdapter    adapter.MailAdapter
	authService    AuthService
	hasher         *utils.PasswordHasher
	metrics        *metrics.Metrics
	validator      validators.Validator

	frontendURL string
	resetTTL    time.Duration

	newSecret func() (secret, secretHash string, err error)
	now       func() time.Time
	logger    *logger.Logger
}

func NewPasswordResetService(
	userRepository store.UserRepository,
	mailAdapter adapter.MailAdapter,
	authService AuthService,
	hasher *utils.PasswordHasher,
	m *metrics.Metrics,
	cfg config.App,
	logger *logger.Logger,
) PasswordResetService {
	return &passwordResetService{
		userRepository: userRepository,
		mailAdapter:    mailAdapter,
		authService:    authService,
		hasher:         hasher,
		metrics:        m,
		validator:      validators.NewUserValidator(),
		frontendURL:    strings.TrimRight(cfg.FrontendURL, "/"),
		resetTTL:       cfg.ResetTokenTTL,
		newSecret:      utils.NewResetSecret,
		now:            time.Now,
		logger:         logger,
	}
}

// RequestReset stores the hash of a fresh reset secret on the user and mails
// the secret inside a reset link. If the mail cannot be delivered that hash
// is cleared again, unless a newer request or a redemption replaced it, and
// ErrMailDeliveryFailed is returned.
func (s *passwordResetService) RequestReset(ctx context.Context, request models.ForgotPasswordRequest) error {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, request); err != nil {
		return fmt.Errorf("error during forgot password validation: %w", err)
	}

	user, err := s.userRepository.FindUserByEmail(ctx, strings.TrimSpace(request.Email))
	if errors.Is(err, store.ErrUserNotFound) {
		s.metrics.PasswordReset(metrics.ResetResultUnknownEmail)
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("user search by email failed: %w", err)
	}

	secret, secretHash, err := s.newSecret()
	if err != nil {
		return fmt.Errorf("reset secret generation failed: %w", err)
	}

	now := s.now()
	if err = s.userRepository.SetResetToken(ctx, user.UserID, secretHash, now.Add(s.resetTTL), now); err != nil {
		log.Err(err).Str("func", "*passwordResetService.RequestReset").Str("user_id", user.UserID).Msg("storing reset token failed")
		return fmt.Errorf("storing reset token failed: %w", err)
	}

	if err = s.mailAdapter.Send(ctx, s.resetMail(user.Email, secret)); err != nil {
		log.Err(err).Str("func", "*passwordResetService.RequestReset").Str("user_id", user.UserID).Msg("reset mail delivery failed")
		s.metrics.PasswordReset(metrics.ResetResultDeliveryError)

		// the request context may already be cancelled
		if clearErr := s.userRepository.ClearResetToken(context.WithoutCancel(ctx), user.UserID, secretHash, s.now()); clearErr != nil {
			log.Err(clearErr).Str("func", "*passwordResetService.RequestReset").Str("user_id", user.UserID).Msg("clearing reset token failed")
		}

		return fmt.Errorf("%w: %w", ErrMailDeliveryFailed, err)
	}

	s.metrics.PasswordReset(metrics.ResetResultSent)
	return nil
}

func (s *passwordResetService) resetMail(to, secret string) models.Mail {
	resetURL := s.frontendURL + "/reset-password/" + secret

	return models.Mail{
		To:      to,
		Subject: resetMailSubject,
		Text: "You are receiving this email because you (or someone else) has requested the reset of a password. " +
			"Please click on the following link to reset your password:\n\n" +
			resetURL + "\n\n" +
			fmt.Sprintf("This link will expire in %s.", humanDuration(s.resetTTL)),
	}
}

// ResetPassword redeems a reset secret and returns a fresh session token.
func (s *passwordResetService) ResetPassword(ctx context.Context, request models.ResetPasswordRequest) (models.Token, error) {
	if err := s.validator.Validate(ctx, request); err != nil {
		return models.Token{}, fmt.Errorf("error during reset password validation: %w", err)
	}

	passwordHash, err := s.hasher.Hash(request.Password)
	if err != nil {
		return models.Token{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user, err := s.userRepository.ResetPassword(ctx, utils.HashResetSecret(request.Token), passwordHash, s.now())
	if errors.Is(err, store.ErrInvalidResetToken) {
		s.metrics.PasswordReset(metrics.ResetResultInvalidToken)
		return models.Token{}, ErrInvalidResetToken
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*passwordResetService.ResetPassword").Msg("password reset failed")
		return models.Token{}, fmt.Errorf("password reset failed: %w", err)
	}

	s.metrics.PasswordReset(metrics.ResetResultRedeemed)
	return s.authService.CreateToken(ctx, user)
}

func humanDuration(d time.Duration) string {
	switch {
	case d == time.Minute:
		return "1 minute"
	case d%time.Minute == 0:
		return fmt.Sprintf("%d minutes", int(d/time.Minute))
	default:
		return d.String()
	}
}
