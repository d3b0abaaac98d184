package service

import (
	"crypto/subtle"
	"sync"
)

// AuthService gates the admin bot behind a shared password. Authorized chats
// are kept in memory and must re-authenticate after a restart.
type AuthService struct {
	botPassword string

	mu         sync.RWMutex
	authorized map[int64]bool
}

// NewAuthService creates a new auth service
func NewAuthService(botPassword string) *AuthService {
	return &AuthService{
		botPassword: botPassword,
		authorized:  make(map[int64]bool),
	}
}

// CheckPassword verifies if provided password matches
func (s *AuthService) CheckPassword(password string) bool {
	if s.botPassword == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.botPassword)) == 1
}

// IsAuthorized checks if chat is authorized
func (s *AuthService) IsAuthorized(chatID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authorized[chatID]
}

// Authorize marks chat as authorized
func (s *AuthService) Authorize(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authorized[chatID] = true
}
