package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-todo-list/internal/logger"
	"github.com/MKhiriev/go-todo-list/models"
	sq "github.com/Masterminds/squirrel"
)

var userColumns = []string{
	"user_id",
	"name",
	"email",
	"password_hash",
	"reset_token_hash",
	"reset_expires_at",
	"created_at",
	"updated_at",
}

var returningUser = "RETURNING " + strings.Join(userColumns, ", ")

// userRepository is the SQL implementation of [UserRepository] over the
// "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns it as stored.
//
// Error handling:
//   - unique violation on email → [ErrEmailAlreadyExists].
//   - any other driver-level error → wrapped [ErrExecutingQuery].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Insert(user.TableName()).
		Columns(userColumns...).
		Values(user.UserID, user.Name, user.Email, user.PasswordHash, nil, nil, dbTime(user.CreatedAt), dbTime(user.UpdatedAt)).
		Suffix(returningUser).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
		return models.User{}, r.mapError(err)
	}

	return created, nil
}

// FindUserByEmail retrieves the user whose email equals email exactly.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByEmail", sq.Eq{"email": email})
}

// FindUserByID retrieves the user with the given id.
func (r *userRepository) FindUserByID(ctx context.Context, userID string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByID", sq.Eq{"user_id": userID})
}

func (r *userRepository) findOne(ctx context.Context, funcName string, where sq.Eq) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select(userColumns...).
		From(models.User{}.TableName()).
		Where(where).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	found, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Err(err).Str("func", funcName).Msg("error selecting user")
		}
		return models.User{}, r.mapError(err)
	}

	return found, nil
}

// SetResetToken writes only the reset columns and updated_at.
func (r *userRepository) SetResetToken(ctx context.Context, userID, tokenHash string, expiresAt, updatedAt time.Time) error {
	query, args, err := r.db.builder.
		Update(models.User{}.TableName()).
		Set("reset_token_hash", tokenHash).
		Set("reset_expires_at", dbTime(expiresAt)).
		Set("updated_at", dbTime(updatedAt)).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	affected, err := r.exec(ctx, "*userRepository.SetResetToken", query, args)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *userRepository) ClearResetToken(ctx context.Context, userID, tokenHash string, updatedAt time.Time) error {
	query, args, err := r.db.builder.
		Update(models.User{}.TableName()).
		Set("reset_token_hash", nil).
		Set("reset_expires_at", nil).
		Set("updated_at", dbTime(updatedAt)).
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"reset_token_hash": tokenHash}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	_, err = r.exec(ctx, "*userRepository.ClearResetToken", query, args)
	return err
}

// ResetPassword redeems a reset token in one conditional UPDATE, so two
// concurrent redemptions of the same token cannot both succeed.
func (r *userRepository) ResetPassword(ctx context.Context, tokenHash, passwordHash string, now time.Time) (models.User, error) {
	log := logger.FromContext(ctx)

	now = dbTime(now)
	query, args, err := r.db.builder.
		Update(models.User{}.TableName()).
		Set("password_hash", passwordHash).
		Set("reset_token_hash", nil).
		Set("reset_expires_at", nil).
		Set("updated_at", now).
		Where(sq.Eq{"reset_token_hash": tokenHash}).
		Where(sq.Gt{"reset_expires_at": now}).
		Suffix(returningUser).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrInvalidResetToken
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ResetPassword").Msg("error resetting password")
		return models.User{}, r.mapError(err)
	}

	return user, nil
}

// ClearExpiredResetTokens removes reset tokens that can no longer be redeemed.
func (r *userRepository) ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	query, args, err := r.db.builder.
		Update(models.User{}.TableName()).
		Set("reset_token_hash", nil).
		Set("reset_expires_at", nil).
		Where(sq.LtOrEq{"reset_expires_at": dbTime(now)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.exec(ctx, "*userRepository.ClearExpiredResetTokens", query, args)
}

func (r *userRepository) exec(ctx context.Context, funcName, query string, args []any) (int64, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", funcName).Msg("error updating users")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.classify(err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return affected, nil
}

func (r *userRepository) mapError(err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return ErrUserNotFound
	case r.db.errorClassificator != nil && r.db.errorClassificator.Classify(err) == UniqueViolation:
		return ErrEmailAlreadyExists
	default:
		return fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.classify(err))
	}
}

// scanUser reads a single user row. Query errors are returned as-is,
// sql.ErrNoRows included; conversion failures are wrapped in ErrScanningRow.
func scanUser(row *sql.Row) (models.User, error) {
	if err := row.Err(); err != nil {
		return models.User{}, err
	}

	var (
		user           models.User
		resetTokenHash sql.NullString
		resetExpiresAt nullTime
		createdAt      nullTime
		updatedAt      nullTime
	)

	err := row.Scan(
		&user.UserID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&resetTokenHash,
		&resetExpiresAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, err
		}
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	user.ResetTokenHash = nullString(resetTokenHash)
	user.ResetExpiresAt = resetExpiresAt.ptr()
	user.CreatedAt = createdAt.Time
	user.UpdatedAt = updatedAt.Time

	return user, nil
}
