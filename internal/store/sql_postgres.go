package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avoseb/go-note-keeper/internal/config"
	"github.com/avoseb/go-note-keeper/internal/logger"
	"github.com/avoseb/go-note-keeper/migrations"
	"github.com/jackc/pgx/v5/pgconn"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// DB wraps the shared *sql.DB handle together with the error classifier.
// One DB is constructed at process start and injected into every
// repository; handlers never open connections of their own.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnectPostgres opens the PostgreSQL connection with a bounded retry
// loop: cfg.ConnectAttempts pings, cfg.ConnectBackoff apart. The loop bails
// out early when the failure is classified as non-retryable (for example a
// malformed DSN), since waiting cannot fix those.
func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	conn, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(4)

	classifier := NewPostgresErrorClassifier()

	var pingErr error
	for attempt := 1; attempt <= cfg.ConnectAttempts; attempt++ {
		pingErr = conn.PingContext(ctx)
		if pingErr == nil {
			break
		}

		log.Err(pingErr).
			Str("func", "NewConnectPostgres").
			Int("attempt", attempt).
			Int("max_attempts", cfg.ConnectAttempts).
			Msg("database ping failed")

		if classifier.Classify(pingErr) == NonRetryable && isPostgresError(pingErr) {
			break
		}
		if attempt == cfg.ConnectAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(cfg.ConnectBackoff):
		}
	}
	if pingErr != nil {
		return nil, fmt.Errorf("error connecting database (ping): %w", pingErr)
	}

	log.Info().Str("func", "NewConnectPostgres").Msg("connected to database successfully")

	db := &DB{
		DB:                 conn,
		logger:             log,
		errorClassificator: classifier,
	}

	return db, nil
}

// Migrate applies the embedded goose migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

func postgresError(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

func isPostgresError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr)
}
