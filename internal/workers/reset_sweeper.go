package workers

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-todo-list/internal/logger"
	"github.com/MKhiriev/go-todo-list/internal/store"
)

// ResetTokenSweeper clears password reset secrets whose expiry has passed.
// Expired secrets are already unusable; sweeping keeps them out of the
// users table.
type ResetTokenSweeper struct {
	userRepository store.UserRepository
	now            func() time.Time
	logger         *logger.Logger
}

func NewResetTokenSweeper(userRepository store.UserRepository, logger *logger.Logger) *ResetTokenSweeper {
	return &ResetTokenSweeper{
		userRepository: userRepository,
		now:            time.Now,
		logger:         logger,
	}
}

func (s *ResetTokenSweeper) Name() string {
	return "reset-token-sweeper"
}

func (s *ResetTokenSweeper) Run(ctx context.Context) error {
	cleared, err := s.userRepository.ClearExpiredResetTokens(ctx, s.now())
	if err != nil {
		return fmt.Errorf("clearing expired reset tokens failed: %w", err)
	}

	if cleared > 0 {
		s.logger.Info().Int64("cleared", cleared).Msg("expired reset tokens cleared")
	}
	return nil
}
