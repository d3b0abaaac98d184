package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"wordofday/internal/domain"
)

// WordRepo implements repository.WordRepository
type WordRepo struct {
	db *sql.DB
}

// NewWordRepo creates a new word repository
func NewWordRepo(db *sql.DB) *WordRepo {
	return &WordRepo{db: db}
}

// SaveWord publishes a single word
func (r *WordRepo) SaveWord(ctx context.Context, input domain.WordInput) (*domain.Word, error) {
	var w domain.Word
	query := `
		INSERT INTO words (title, description, example)
		VALUES (?, ?, ?)
		RETURNING id, title, description, example, published_date
	`
	err := r.db.QueryRowContext(ctx, query, input.Title, input.Description, input.Example).
		Scan(&w.ID, &w.Title, &w.Description, &w.Example, timestamp{&w.PublishedDate})
	if err != nil {
		return nil, fmt.Errorf("failed to insert word: %w", err)
	}
	return &w, nil
}

// SaveWords publishes a batch of words in one transaction
func (r *WordRepo) SaveWords(ctx context.Context, inputs []domain.WordInput) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO words (title, description, example) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, input := range inputs {
		if _, err := stmt.ExecContext(ctx, input.Title, input.Description, input.Example); err != nil {
			return 0, fmt.Errorf("failed to insert word %q: %w", input.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return len(inputs), nil
}

// ListWords returns a page of words in insertion order
func (r *WordRepo) ListWords(ctx context.Context, limit, offset int) ([]domain.Word, error) {
	query := `
		SELECT id, title, description, example, published_date
		FROM words
		ORDER BY id
		LIMIT ? OFFSET ?
	`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query words: %w", err)
	}
	defer rows.Close()

	words := []domain.Word{}
	for rows.Next() {
		var w domain.Word
		if err := rows.Scan(&w.ID, &w.Title, &w.Description, &w.Example, timestamp{&w.PublishedDate}); err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}
		words = append(words, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate words: %w", err)
	}
	return words, nil
}

// CountWords returns the number of published words
func (r *WordRepo) CountWords(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(id) FROM words`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count words: %w", err)
	}
	return count, nil
}

// GetLatestWord returns the word of the day
func (r *WordRepo) GetLatestWord(ctx context.Context) (*domain.Word, error) {
	var w domain.Word
	query := `
		SELECT id, title, description, example, published_date
		FROM words
		ORDER BY published_date DESC, id DESC
		LIMIT 1
	`
	err := r.db.QueryRowContext(ctx, query).Scan(&w.ID, &w.Title, &w.Description, &w.Example, timestamp{&w.PublishedDate})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrWordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest word: %w", err)
	}
	return &w, nil
}
