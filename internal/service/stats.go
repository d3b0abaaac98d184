package service

import (
	"context"
	"errors"
	"fmt"

	"wordofday/internal/domain"
	"wordofday/internal/repository"

	"go.uber.org/zap"
)

// Stats is a snapshot of the service contents
type Stats struct {
	Users      int
	Words      int
	LatestWord *domain.Word
}

// StatsService gathers counters for the admin bot
type StatsService struct {
	userRepo repository.UserRepository
	wordRepo repository.WordRepository
	logger   *zap.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(userRepo repository.UserRepository, wordRepo repository.WordRepository, logger *zap.Logger) *StatsService {
	return &StatsService{
		userRepo: userRepo,
		wordRepo: wordRepo,
		logger:   logger,
	}
}

// Summary returns user and word counts and the current word of the day, which
// is nil when no word has been added yet.
func (s *StatsService) Summary(ctx context.Context) (*Stats, error) {
	users, err := s.userRepo.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	words, err := s.wordRepo.CountWords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count words: %w", err)
	}

	latest, err := s.wordRepo.GetLatestWord(ctx)
	if err != nil && !errors.Is(err, domain.ErrWordNotFound) {
		return nil, fmt.Errorf("failed to get word of the day: %w", err)
	}

	s.logger.Debug("Stats collected", zap.Int("users", users), zap.Int("words", words))

	return &Stats{
		Users:      users,
		Words:      words,
		LatestWord: latest,
	}, nil
}
