package store

import (
	"strings"
	"testing"
	"time"

	"github.com/avoseb/go-note-keeper/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_buildListNotesQuery_DefaultView(t *testing.T) {
	now := time.Now()

	query, args, err := buildListNotesQuery(NoteListQuery{UserID: 42, Page: 1}, now)
	require.NoError(t, err)

	q := strings.ToLower(query)

	require.Contains(t, q, "select")
	require.Contains(t, q, "from notes")
	require.Contains(t, q, "user_id")
	require.Contains(t, q, "archived_at is null")
	require.Contains(t, q, "order by id desc")
	require.Contains(t, q, "limit 9")
	require.Contains(t, q, "offset 0")

	// placeholder format should be $1 (Postgres)
	require.Contains(t, query, "$1")

	require.Len(t, args, 1)
	assert.Equal(t, int64(42), args[0])
}

func Test_buildListNotesQuery_ArchiveView(t *testing.T) {
	query, _, err := buildListNotesQuery(NoteListQuery{UserID: 1, Age: AgeArchive, Page: 1}, time.Now())
	require.NoError(t, err)

	q := strings.ToLower(query)
	assert.Contains(t, q, "archived_at is not null")
	assert.Contains(t, q, "order by archived_at desc")
	assert.NotContains(t, q, "order by id desc")
}

func Test_buildListNotesQuery_RecencyBound(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		age        string
		wantCutoff time.Time
	}{
		{name: "one month", age: AgeOneMonth, wantCutoff: now.AddDate(0, -1, 0)},
		{name: "three months", age: AgeThreeMonths, wantCutoff: now.AddDate(0, -3, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildListNotesQuery(NoteListQuery{UserID: 7, Age: tt.age, Page: 1}, now)
			require.NoError(t, err)

			assert.Contains(t, strings.ToLower(query), "id >=")

			require.Len(t, args, 2)
			bound, ok := args[1].(uuid.UUID)
			require.True(t, ok, "recency bound should be a uuid, got %T", args[1])
			assert.Equal(t, models.MinNoteIDAt(tt.wantCutoff), bound)
		})
	}
}

func Test_buildListNotesQuery_UnknownAgeHasNoBound(t *testing.T) {
	query, args, err := buildListNotesQuery(NoteListQuery{UserID: 7, Age: "6months", Page: 1}, time.Now())
	require.NoError(t, err)

	assert.NotContains(t, strings.ToLower(query), "id >=")
	assert.Len(t, args, 1)
}

func Test_buildListNotesQuery_SearchReplacesRecency(t *testing.T) {
	query, args, err := buildListNotesQuery(
		NoteListQuery{UserID: 7, Age: AgeOneMonth, Page: 1, Search: "groceries"},
		time.Now(),
	)
	require.NoError(t, err)

	q := strings.ToLower(query)
	assert.Contains(t, q, "title ilike")
	assert.NotContains(t, q, "id >=")

	require.Len(t, args, 2)
	assert.Equal(t, "%groceries%", args[1])
}

func Test_buildListNotesQuery_SearchTermIsEscaped(t *testing.T) {
	_, args, err := buildListNotesQuery(
		NoteListQuery{UserID: 7, Page: 1, Search: `100%_done\`},
		time.Now(),
	)
	require.NoError(t, err)

	require.Len(t, args, 2)
	assert.Equal(t, `%100\%\_done\\%`, args[1])
}

func Test_buildListNotesQuery_Pagination(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		wantOffset string
	}{
		{name: "first page", page: 1, wantOffset: "OFFSET 0"},
		{name: "second page", page: 2, wantOffset: "OFFSET 8"},
		{name: "fifth page", page: 5, wantOffset: "OFFSET 32"},
		{name: "zero page clamps to first", page: 0, wantOffset: "OFFSET 0"},
		{name: "negative page clamps to first", page: -3, wantOffset: "OFFSET 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, _, err := buildListNotesQuery(NoteListQuery{UserID: 1, Page: tt.page}, time.Now())
			require.NoError(t, err)

			assert.Contains(t, query, tt.wantOffset)
			assert.Contains(t, query, "LIMIT 9")
		})
	}
}

func Test_escapeLike(t *testing.T) {
	assert.Equal(t, `plain`, escapeLike(`plain`))
	assert.Equal(t, `\%`, escapeLike(`%`))
	assert.Equal(t, `\_`, escapeLike(`_`))
	assert.Equal(t, `\\`, escapeLike(`\`))
	assert.Equal(t, `a\%b\_c\\d`, escapeLike(`a%b_c\d`))
}
