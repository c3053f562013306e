package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avoseb/go-note-keeper/internal/logger"
	"github.com/avoseb/go-note-keeper/models"
	"github.com/google/uuid"
)

// sessionRepository is the PostgreSQL-backed implementation of
// [SessionRepository]. The session token itself is the primary key of the
// "sessions" table; no expiry column exists, rows live until logout.
type sessionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSessionRepository constructs a [SessionRepository] backed by the
// provided database connection and logger.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("creating session repository")
	return &sessionRepository{
		db:     db,
		logger: logger,
	}
}

// CreateSession mints a fresh random token and persists it for the given
// user. The returned session carries the token to be set as a cookie.
func (r *sessionRepository) CreateSession(ctx context.Context, userID int64) (models.Session, error) {
	log := logger.FromContext(ctx)

	var session models.Session
	row := r.db.QueryRowContext(ctx, createSession, uuid.New(), userID)

	if err := row.Scan(&session.SessionID, &session.UserID); err != nil {
		log.Err(err).Str("func", "*sessionRepository.CreateSession").Int64("user_id", userID).Msg("error creating session")
		return models.Session{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return session, nil
}

// FindSession resolves a bearer token to its session row.
// Unknown tokens map to [ErrSessionNotFound].
func (r *sessionRepository) FindSession(ctx context.Context, sessionID uuid.UUID) (models.Session, error) {
	log := logger.FromContext(ctx)

	var session models.Session
	row := r.db.QueryRowContext(ctx, findSession, sessionID)

	if err := row.Scan(&session.SessionID, &session.UserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, ErrSessionNotFound
		}

		log.Err(err).Str("func", "*sessionRepository.FindSession").Msg("error finding session")
		return models.Session{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return session, nil
}

// DeleteSession removes a session row at logout. Deleting a token that no
// longer exists reports [ErrSessionNotFound].
func (r *sessionRepository) DeleteSession(ctx context.Context, sessionID uuid.UUID) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteSession, sessionID)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.DeleteSession").Msg("error deleting session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}
