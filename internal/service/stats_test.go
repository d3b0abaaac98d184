package service

import (
	"context"
	"errors"
	"testing"

	"wordofday/internal/domain"
	"wordofday/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStatsService_Summary(t *testing.T) {
	latest := testutil.NewTestWord(9, "Immutable", "Unchanging", "Rocks are immutable")

	tests := []struct {
		name          string
		setupMocks    func(*testutil.MockUserRepository, *testutil.MockWordRepository)
		expectedError bool
		expected      *Stats
	}{
		{
			name: "full summary",
			setupMocks: func(u *testutil.MockUserRepository, w *testutil.MockWordRepository) {
				u.On("CountUsers", mock.Anything).Return(2, nil)
				w.On("CountWords", mock.Anything).Return(9, nil)
				w.On("GetLatestWord", mock.Anything).Return(latest, nil)
			},
			expected: &Stats{Users: 2, Words: 9, LatestWord: latest},
		},
		{
			name: "no words yet",
			setupMocks: func(u *testutil.MockUserRepository, w *testutil.MockWordRepository) {
				u.On("CountUsers", mock.Anything).Return(1, nil)
				w.On("CountWords", mock.Anything).Return(0, nil)
				w.On("GetLatestWord", mock.Anything).Return(nil, domain.ErrWordNotFound)
			},
			expected: &Stats{Users: 1, Words: 0},
		},
		{
			name: "user count fails",
			setupMocks: func(u *testutil.MockUserRepository, w *testutil.MockWordRepository) {
				u.On("CountUsers", mock.Anything).Return(0, errors.New("db down"))
			},
			expectedError: true,
		},
		{
			name: "latest word fails",
			setupMocks: func(u *testutil.MockUserRepository, w *testutil.MockWordRepository) {
				u.On("CountUsers", mock.Anything).Return(1, nil)
				w.On("CountWords", mock.Anything).Return(1, nil)
				w.On("GetLatestWord", mock.Anything).Return(nil, errors.New("db down"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(testutil.MockUserRepository)
			wordRepo := new(testutil.MockWordRepository)
			tt.setupMocks(userRepo, wordRepo)
			service := NewStatsService(userRepo, wordRepo, testutil.NewTestLogger())

			stats, err := service.Summary(context.Background())

			if tt.expectedError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, stats)
			userRepo.AssertExpectations(t)
			wordRepo.AssertExpectations(t)
		})
	}
}
