package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"wordofday/internal/domain"

	"github.com/lib/pq"
)

// uniqueViolation is the SQLSTATE Postgres reports for a unique index conflict
const uniqueViolation = "23505"

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// CreateUser inserts a user and returns the stored record
func (r *UserRepo) CreateUser(ctx context.Context, name, email string) (*domain.User, error) {
	var u domain.User
	query := `
		INSERT INTO users (name, email)
		VALUES ($1, $2)
		RETURNING id, name, email, joined_date
	`
	err := r.db.QueryRowContext(ctx, query, name, email).Scan(&u.ID, &u.Name, &u.Email, &u.JoinedDate)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return &u, nil
}

// ExistsByEmail checks if a user with the email is registered
func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`
	if err := r.db.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

// CountUsers returns the number of registered users
func (r *UserRepo) CountUsers(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(id) FROM users`
	if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// GetAllEmails returns every registered email address
func (r *UserRepo) GetAllEmails(ctx context.Context) ([]string, error) {
	query := `SELECT email FROM users ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query emails: %w", err)
	}
	defer rows.Close()

	emails := []string{}
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("failed to scan email: %w", err)
		}
		emails = append(emails, email)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate emails: %w", err)
	}
	return emails, nil
}
