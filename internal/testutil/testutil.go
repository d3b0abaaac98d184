package testutil

import (
	"time"

	"wordofday/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestUser creates a test user
func NewTestUser(id int64, name, email string) *domain.User {
	return &domain.User{
		ID:         id,
		Name:       name,
		Email:      email,
		JoinedDate: time.Now(),
	}
}

// NewTestWord creates a test word
func NewTestWord(id int64, title, description, example string) *domain.Word {
	return &domain.Word{
		ID:            id,
		Title:         title,
		Description:   description,
		Example:       example,
		PublishedDate: time.Now(),
	}
}
