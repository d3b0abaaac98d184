package sqlite

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"wordofday/internal/config"
	"wordofday/internal/database"
	"wordofday/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	logger := zap.NewNop()

	db, err := database.Connect(context.Background(), config.DriverSQLite, ":memory:", database.DefaultOptions(), logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(db, config.DriverSQLite, logger))
	return db
}

func insertWordAt(t *testing.T, db *sql.DB, title string, published time.Time) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO words (title, description, example, published_date) VALUES (?, ?, ?, ?)`,
		title, title+" description", title+" example", published.UTC().Format("2006-01-02 15:04:05.000"),
	)
	require.NoError(t, err)
}

func TestUserRepo_CreateUser(t *testing.T) {
	repo := NewUserRepo(newTestDB(t))
	ctx := context.Background()

	user, err := repo.CreateUser(ctx, "Alice", "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "alice@x.com", user.Email)
	assert.WithinDuration(t, time.Now(), user.JoinedDate, time.Minute)

	dup, err := repo.CreateUser(ctx, "Alice Again", "alice@x.com")
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
	assert.Nil(t, dup)

	count, err := repo.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestUserRepo_ExistsAndEmails(t *testing.T) {
	repo := NewUserRepo(newTestDB(t))
	ctx := context.Background()

	emails, err := repo.GetAllEmails(ctx)
	require.NoError(t, err)
	assert.Empty(t, emails)

	_, err = repo.CreateUser(ctx, "Alice", "alice@x.com")
	require.NoError(t, err)
	_, err = repo.CreateUser(ctx, "Bob", "bob@x.com")
	require.NoError(t, err)

	exists, err := repo.ExistsByEmail(ctx, "bob@x.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "carol@x.com")
	require.NoError(t, err)
	assert.False(t, exists)

	emails, err = repo.GetAllEmails(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice@x.com", "bob@x.com"}, emails)
}

func TestWordRepo_GetLatestWord(t *testing.T) {
	base := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		seed          func(t *testing.T, db *sql.DB)
		expectedTitle string
		expectedError error
	}{
		{
			name:          "empty table",
			seed:          func(t *testing.T, db *sql.DB) {},
			expectedError: domain.ErrWordNotFound,
		},
		{
			name: "max published date wins",
			seed: func(t *testing.T, db *sql.DB) {
				insertWordAt(t, db, "Newest", base.Add(48*time.Hour))
				insertWordAt(t, db, "Oldest", base)
				insertWordAt(t, db, "Middle", base.Add(24*time.Hour))
			},
			expectedTitle: "Newest",
		},
		{
			name: "tie broken by highest id",
			seed: func(t *testing.T, db *sql.DB) {
				insertWordAt(t, db, "Older", base.Add(-time.Hour))
				insertWordAt(t, db, "FirstOfTie", base)
				insertWordAt(t, db, "SecondOfTie", base)
			},
			expectedTitle: "SecondOfTie",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newTestDB(t)
			tt.seed(t, db)

			word, err := NewWordRepo(db).GetLatestWord(context.Background())

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, word)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedTitle, word.Title)
		})
	}
}

func TestWordRepo_SaveAndList(t *testing.T) {
	repo := NewWordRepo(newTestDB(t))
	ctx := context.Background()

	word, err := repo.SaveWord(ctx, domain.WordInput{
		Title:       "Immutable",
		Description: "Unchanging over time or unable to be changed.",
		Example:     "In many programming languages, strings are immutable.",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), word.ID)
	assert.False(t, word.PublishedDate.IsZero())

	n, err := repo.SaveWords(ctx, []domain.WordInput{
		{Title: "Ephemeral", Description: "Short-lived.", Example: "Fame is ephemeral."},
		{Title: "Laconic", Description: "Brief.", Example: "A laconic reply."},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	count, err := repo.CountWords(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	page, err := repo.ListWords(ctx, 2, 1)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "Ephemeral", page[0].Title)
	assert.Equal(t, "Laconic", page[1].Title)

	latest, err := repo.GetLatestWord(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Laconic", latest.Title)
}

func TestWordRepo_SaveWords_RollsBack(t *testing.T) {
	db := newTestDB(t)
	repo := NewWordRepo(db)
	ctx := context.Background()

	// Cancelled context makes the transaction fail before commit
	cancelled, cancel := context.WithCancel(ctx)
	cancel()

	_, err := repo.SaveWords(cancelled, []domain.WordInput{
		{Title: "Ephemeral", Description: "Short-lived.", Example: "Fame is ephemeral."},
	})
	assert.Error(t, err)

	count, err := repo.CountWords(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestTimestamp_Scan(t *testing.T) {
	tests := []struct {
		name     string
		src      any
		expected time.Time
		hasError bool
	}{
		{name: "time value", src: time.Date(2025, 6, 16, 1, 2, 3, 0, time.UTC), expected: time.Date(2025, 6, 16, 1, 2, 3, 0, time.UTC)},
		{name: "sqlite default text", src: "2025-06-16 01:02:03.456", expected: time.Date(2025, 6, 16, 1, 2, 3, 456000000, time.UTC)},
		{name: "bytes", src: []byte("2025-06-16 01:02:03"), expected: time.Date(2025, 6, 16, 1, 2, 3, 0, time.UTC)},
		{name: "garbage", src: "yesterday", hasError: true},
		{name: "unsupported type", src: 3.14, hasError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got time.Time
			err := timestamp{&got}.Scan(tt.src)
			if tt.hasError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.True(t, tt.expected.Equal(got), "expected %v, got %v", tt.expected, got)
		})
	}
}
