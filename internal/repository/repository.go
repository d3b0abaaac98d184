package repository

import (
	"context"

	"wordofday/internal/domain"
)

// UserRepository defines user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, name, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CountUsers(ctx context.Context) (int, error)
	GetAllEmails(ctx context.Context) ([]string, error)
}

// WordRepository defines word data operations
type WordRepository interface {
	SaveWord(ctx context.Context, input domain.WordInput) (*domain.Word, error)
	SaveWords(ctx context.Context, inputs []domain.WordInput) (int, error)
	ListWords(ctx context.Context, limit, offset int) ([]domain.Word, error)
	CountWords(ctx context.Context) (int, error)
	GetLatestWord(ctx context.Context) (*domain.Word, error)
}
