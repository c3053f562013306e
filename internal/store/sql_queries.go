package store

import (
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/avoseb/go-note-keeper/models"
)

const (
	createUser = `INSERT INTO users (username, password_hash)
    VALUES ($1, $2)
    RETURNING user_id, username, password_hash, created_at;`

	findUserByUsername = `SELECT user_id, username, password_hash, created_at
    FROM users
    WHERE username = $1;`

	findUserByID = `SELECT user_id, username, password_hash, created_at
    FROM users
    WHERE user_id = $1;`

	createSession = `INSERT INTO sessions (session_id, user_id)
    VALUES ($1, $2)
    RETURNING session_id, user_id;`

	findSession = `SELECT session_id, user_id
    FROM sessions
    WHERE session_id = $1;`

	deleteSession = `DELETE FROM sessions
    WHERE session_id = $1;`

	createNote = `INSERT INTO notes (id, user_id, title, text)
    VALUES ($1, $2, $3, $4)
    RETURNING id, user_id, title, text, archived_at;`

	getNote = `SELECT id, user_id, title, text, archived_at
    FROM notes
    WHERE id = $1;`

	updateNote = `UPDATE notes
    SET title = $2, text = $3
    WHERE id = $1
    RETURNING id, user_id, title, text, archived_at;`

	setNoteArchivedAt = `UPDATE notes
    SET archived_at = $2
    WHERE id = $1
    RETURNING id, user_id, title, text, archived_at;`

	deleteNote = `DELETE FROM notes
    WHERE id = $1
    RETURNING id, user_id, title, text, archived_at;`

	deleteArchivedNotes = `DELETE FROM notes
    WHERE user_id = $1 AND archived_at IS NOT NULL;`
)

// Age bucket selectors accepted by the listing query. Any other value
// (including the empty string) means "active notes, no recency bound".
const (
	AgeArchive     = "archive"
	AgeOneMonth    = "1month"
	AgeThreeMonths = "3months"
)

// notesPageSize is the fixed page size of the listing endpoint.
const notesPageSize = 8

// NoteListQuery carries the caller-controlled inputs of the note listing.
type NoteListQuery struct {
	// UserID scopes the listing to the caller's own notes. Always applied.
	UserID int64

	// Age is one of the Age* selectors above, or anything else for the
	// default active-notes view.
	Age string

	// Page is 1-based. Values below 1 are clamped to the first page.
	Page int

	// Search is an optional free-text term matched case-insensitively as
	// a literal substring of the title. When present it replaces the
	// recency bound derived from Age.
	Search string
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildListNotesQuery translates a NoteListQuery into SQL.
//
// Predicates:
//   - owner always;
//   - Age "archive" selects archived rows, everything else active rows;
//   - a search term becomes an escaped ILIKE over the title;
//   - without a search term, "1month"/"3months" bound the id from below
//     by the smallest UUIDv7 possible at the cutoff instant (creation
//     time lives inside the id, there is no created_at column).
//
// Ordering follows the bucket: archive time for the archive view, id
// (== creation time) for everything else, both descending. The query
// fetches one row beyond the page size so the caller can detect a next
// page without a count query.
func buildListNotesQuery(query NoteListQuery, now time.Time) (string, []any, error) {
	builder := psql.
		Select("id", "title", "archived_at").
		From("notes").
		Where(sq.Eq{"user_id": query.UserID})

	if query.Age == AgeArchive {
		builder = builder.
			Where(sq.NotEq{"archived_at": nil}).
			OrderBy("archived_at DESC")
	} else {
		builder = builder.
			Where(sq.Eq{"archived_at": nil}).
			OrderBy("id DESC")
	}

	if query.Search != "" {
		builder = builder.Where("title ILIKE ?", "%"+escapeLike(query.Search)+"%")
	} else if cutoff, bounded := recencyCutoff(query.Age, now); bounded {
		builder = builder.Where(sq.GtOrEq{"id": models.MinNoteIDAt(cutoff)})
	}

	page := query.Page
	if page < 1 {
		page = 1
	}

	builder = builder.
		Offset(uint64(page-1) * notesPageSize).
		Limit(notesPageSize + 1)

	return builder.ToSql()
}

// recencyCutoff resolves an age bucket into an absolute lower time bound.
// Buckets without a recency meaning report bounded == false.
func recencyCutoff(age string, now time.Time) (time.Time, bool) {
	switch age {
	case AgeOneMonth:
		return now.AddDate(0, -1, 0), true
	case AgeThreeMonths:
		return now.AddDate(0, -3, 0), true
	default:
		return time.Time{}, false
	}
}

// escapeLike escapes the LIKE pattern metacharacters so a search term is
// matched literally. A term containing "%" or "_" must not act as a wildcard.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
