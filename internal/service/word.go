package service

import (
	"context"
	"fmt"

	"wordofday/internal/domain"
	"wordofday/internal/repository"

	"go.uber.org/zap"
)

// Paging defaults for ListWords
const (
	DefaultWordLimit = 100
	MaxWordLimit     = 1000
)

// WordService handles vocabulary management
type WordService struct {
	wordRepo repository.WordRepository
	logger   *zap.Logger
}

// NewWordService creates a new word service
func NewWordService(wordRepo repository.WordRepository, logger *zap.Logger) *WordService {
	return &WordService{
		wordRepo: wordRepo,
		logger:   logger,
	}
}

// Create adds a single word
func (s *WordService) Create(ctx context.Context, input domain.WordInput) (*domain.Word, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	return s.wordRepo.SaveWord(ctx, input)
}

// BulkCreate adds every word or none of them
func (s *WordService) BulkCreate(ctx context.Context, inputs []domain.WordInput) (int, error) {
	for i, input := range inputs {
		if err := input.Validate(); err != nil {
			return 0, domain.NewValidationError(fmt.Sprintf("%s (word %d)", domain.ValidationMessage(err), i+1))
		}
	}

	n, err := s.wordRepo.SaveWords(ctx, inputs)
	if err != nil {
		return 0, err
	}

	s.logger.Info("Words added", zap.Int("count", n))
	return n, nil
}

// List returns a page of words in insertion order. A negative skip becomes 0;
// a non-positive limit becomes DefaultWordLimit and is capped at MaxWordLimit.
func (s *WordService) List(ctx context.Context, skip, limit int) ([]domain.Word, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultWordLimit
	}
	if limit > MaxWordLimit {
		limit = MaxWordLimit
	}
	return s.wordRepo.ListWords(ctx, limit, skip)
}

// Today returns the word of the day or domain.ErrWordNotFound
func (s *WordService) Today(ctx context.Context) (*domain.Word, error) {
	return s.wordRepo.GetLatestWord(ctx)
}
