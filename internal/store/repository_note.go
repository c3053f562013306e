package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avoseb/go-note-keeper/internal/logger"
	"github.com/avoseb/go-note-keeper/models"
	"github.com/google/uuid"
)

// noteRepository is the PostgreSQL-backed implementation of [NoteRepository].
// It executes all note CRUD operations and the listing query against the
// "notes" table using the embedded [*DB] connection.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced with
// structured fields (user_id, note_id, etc.).
type noteRepository struct {
	*DB
	logger *logger.Logger
}

// NewNoteRepository constructs a [NoteRepository] backed by the provided
// database connection and logger.
func NewNoteRepository(db *DB, logger *logger.Logger) NoteRepository {
	logger.Debug().Msg("creating note repository")
	return &noteRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateNote persists a new note. The identifier must already be set by the
// caller (the service mints UUIDv7 ids so that creation time is embedded).
func (r *noteRepository) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, createNote, note.ID, note.UserID, note.Title, note.Text)

	if err := scanNote(row, &note); err != nil {
		log.Err(err).
			Str("func", "noteRepository.CreateNote").
			Int64("user_id", note.UserID).
			Msg("error creating note")
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return note, nil
}

// GetNote fetches a single note by id. A missing row maps to [ErrNoteNotFound].
func (r *noteRepository) GetNote(ctx context.Context, noteID uuid.UUID) (models.Note, error) {
	log := logger.FromContext(ctx)

	var note models.Note
	row := r.DB.QueryRowContext(ctx, getNote, noteID)

	if err := scanNote(row, &note); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, ErrNoteNotFound
		}

		log.Err(err).
			Str("func", "noteRepository.GetNote").
			Str("note_id", noteID.String()).
			Msg("error getting note")
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return note, nil
}

// UpdateNote overwrites both text fields of a note. This is a full
// replacement, not a merge: the caller decides what the final title and
// text are. A vanished note maps to [ErrNoteNotFound].
func (r *noteRepository) UpdateNote(ctx context.Context, noteID uuid.UUID, title, text string) (models.Note, error) {
	log := logger.FromContext(ctx)

	var note models.Note
	row := r.DB.QueryRowContext(ctx, updateNote, noteID, title, text)

	if err := scanNote(row, &note); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, ErrNoteNotFound
		}

		log.Err(err).
			Str("func", "noteRepository.UpdateNote").
			Str("note_id", noteID.String()).
			Msg("error updating note")
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return note, nil
}

// ArchiveNote stamps the note with the given archive time. Re-archiving an
// already archived note simply refreshes the stamp.
func (r *noteRepository) ArchiveNote(ctx context.Context, noteID uuid.UUID, at time.Time) (models.Note, error) {
	return r.setArchivedAt(ctx, noteID, &at)
}

// UnarchiveNote clears the archive stamp, returning the note to the active
// listing.
func (r *noteRepository) UnarchiveNote(ctx context.Context, noteID uuid.UUID) (models.Note, error) {
	return r.setArchivedAt(ctx, noteID, nil)
}

func (r *noteRepository) setArchivedAt(ctx context.Context, noteID uuid.UUID, at *time.Time) (models.Note, error) {
	log := logger.FromContext(ctx)

	var note models.Note
	row := r.DB.QueryRowContext(ctx, setNoteArchivedAt, noteID, at)

	if err := scanNote(row, &note); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, ErrNoteNotFound
		}

		log.Err(err).
			Str("func", "noteRepository.setArchivedAt").
			Str("note_id", noteID.String()).
			Msg("error setting archive state")
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return note, nil
}

// DeleteNote permanently removes a note and returns the removed row.
// A missing note maps to [ErrNoteNotFound].
func (r *noteRepository) DeleteNote(ctx context.Context, noteID uuid.UUID) (models.Note, error) {
	log := logger.FromContext(ctx)

	var note models.Note
	row := r.DB.QueryRowContext(ctx, deleteNote, noteID)

	if err := scanNote(row, &note); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, ErrNoteNotFound
		}

		log.Err(err).
			Str("func", "noteRepository.DeleteNote").
			Str("note_id", noteID.String()).
			Msg("error deleting note")
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return note, nil
}

// DeleteArchivedNotes removes every archived note owned by the given user
// and returns the number of deleted rows. Zero matches map to
// [ErrNoteNotFound] so the endpoint can report that nothing was there to
// delete.
func (r *noteRepository) DeleteArchivedNotes(ctx context.Context, userID int64) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, deleteArchivedNotes, userID)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.DeleteArchivedNotes").
			Int64("user_id", userID).
			Msg("error bulk deleting archived notes")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	deleted, _ := result.RowsAffected()
	if deleted == 0 {
		return 0, ErrNoteNotFound
	}

	return deleted, nil
}

// ListNotes executes the filtered, paginated listing query and reports
// whether another page exists. The extra over-fetched row used for the
// has-more probe never leaves this method.
func (r *noteRepository) ListNotes(ctx context.Context, query NoteListQuery) ([]models.NoteSummary, bool, error) {
	log := logger.FromContext(ctx)

	sqlQuery, args, err := buildListNotesQuery(query, time.Now())
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.ListNotes").
			Int64("user_id", query.UserID).
			Msg("failed to build listing query")
		return nil, false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.ListNotes").
			Int64("user_id", query.UserID).
			Str("age", query.Age).
			Msg("failed to execute listing query")
		return nil, false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	summaries := make([]models.NoteSummary, 0, notesPageSize+1)

	for rows.Next() {
		var summary models.NoteSummary

		if scanErr := rows.Scan(&summary.ID, &summary.Title, &summary.ArchivedAt); scanErr != nil {
			log.Err(scanErr).
				Str("func", "noteRepository.ListNotes").
				Int64("user_id", query.UserID).
				Msg("failed to scan note summary row")
			return nil, false, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		summaries = append(summaries, summary)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "noteRepository.ListNotes").
			Int64("user_id", query.UserID).
			Msg("error occurred during rows iteration")
		return nil, false, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	hasMore := len(summaries) > notesPageSize
	if hasMore {
		summaries = summaries[:notesPageSize]
	}

	return summaries, hasMore, nil
}

// scanNote reads one notes row into note. The archived_at column is
// nullable and scans into the *time.Time field directly.
func scanNote(row *sql.Row, note *models.Note) error {
	return row.Scan(&note.ID, &note.UserID, &note.Title, &note.Text, &note.ArchivedAt)
}
