package service

import (
	"context"
	"errors"
	"testing"

	"wordofday/internal/domain"
	"wordofday/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestUserService_Register(t *testing.T) {
	tests := []struct {
		name          string
		inputName     string
		inputEmail    string
		setupMock     func(*testutil.MockUserRepository)
		expectedErr   error
		expectedMsg   string
		expectedEmail string
	}{
		{
			name:       "successful registration",
			inputName:  "Alice",
			inputEmail: "alice@example.com",
			setupMock: func(m *testutil.MockUserRepository) {
				m.On("ExistsByEmail", mock.Anything, "alice@example.com").Return(false, nil)
				m.On("CreateUser", mock.Anything, "Alice", "alice@example.com").
					Return(testutil.NewTestUser(1, "Alice", "alice@example.com"), nil)
			},
			expectedEmail: "alice@example.com",
		},
		{
			name:       "input is trimmed",
			inputName:  "  Alice ",
			inputEmail: " alice@example.com ",
			setupMock: func(m *testutil.MockUserRepository) {
				m.On("ExistsByEmail", mock.Anything, "alice@example.com").Return(false, nil)
				m.On("CreateUser", mock.Anything, "Alice", "alice@example.com").
					Return(testutil.NewTestUser(1, "Alice", "alice@example.com"), nil)
			},
			expectedEmail: "alice@example.com",
		},
		{
			name:        "missing name",
			inputName:   "",
			inputEmail:  "alice@example.com",
			setupMock:   func(m *testutil.MockUserRepository) {},
			expectedErr: domain.ErrValidation,
			expectedMsg: "Missing name or email",
		},
		{
			name:        "missing email",
			inputName:   "Alice",
			inputEmail:  "  ",
			setupMock:   func(m *testutil.MockUserRepository) {},
			expectedErr: domain.ErrValidation,
			expectedMsg: "Missing name or email",
		},
		{
			name:        "malformed email",
			inputName:   "Alice",
			inputEmail:  "not-an-email",
			setupMock:   func(m *testutil.MockUserRepository) {},
			expectedErr: domain.ErrValidation,
			expectedMsg: "Invalid email address",
		},
		{
			name:       "email already registered",
			inputName:  "Alice",
			inputEmail: "alice@example.com",
			setupMock: func(m *testutil.MockUserRepository) {
				m.On("ExistsByEmail", mock.Anything, "alice@example.com").Return(true, nil)
			},
			expectedErr: domain.ErrDuplicateEmail,
		},
		{
			name:       "concurrent duplicate caught by the store",
			inputName:  "Alice",
			inputEmail: "alice@example.com",
			setupMock: func(m *testutil.MockUserRepository) {
				m.On("ExistsByEmail", mock.Anything, "alice@example.com").Return(false, nil)
				m.On("CreateUser", mock.Anything, "Alice", "alice@example.com").
					Return(nil, domain.ErrDuplicateEmail)
			},
			expectedErr: domain.ErrDuplicateEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockUserRepository)
			tt.setupMock(mockRepo)
			service := NewUserService(mockRepo, testutil.NewTestLogger())

			user, err := service.Register(context.Background(), tt.inputName, tt.inputEmail)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, user)
				if tt.expectedMsg != "" {
					assert.Equal(t, tt.expectedMsg, domain.ValidationMessage(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedEmail, user.Email)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_Register_StoreError(t *testing.T) {
	mockRepo := new(testutil.MockUserRepository)
	mockRepo.On("ExistsByEmail", mock.Anything, "alice@example.com").Return(false, errors.New("db down"))
	service := NewUserService(mockRepo, testutil.NewTestLogger())

	_, err := service.Register(context.Background(), "Alice", "alice@example.com")

	assert.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrValidation))
	mockRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_Count(t *testing.T) {
	mockRepo := new(testutil.MockUserRepository)
	mockRepo.On("CountUsers", mock.Anything).Return(3, nil)
	service := NewUserService(mockRepo, testutil.NewTestLogger())

	count, err := service.Count(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 3, count)
}
