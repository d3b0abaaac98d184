package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"wordofday/internal/config"
	"wordofday/internal/job"
	"wordofday/internal/mail"
	"wordofday/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gopkg.in/gomail.v2"
)

type stubRunner struct {
	calls   int
	outcome job.Outcome
	err     error
	panics  bool
}

func (r *stubRunner) Run(context.Context) (job.Outcome, error) {
	r.calls++
	if r.panics {
		panic("boom")
	}
	return r.outcome, r.err
}

func defaultSchedule() config.ScheduleConfig {
	return config.ScheduleConfig{Hour: 19, Minute: 27, Timezone: "US/Eastern"}
}

func TestScheduler_NextRun(t *testing.T) {
	s, err := New(defaultSchedule(), &stubRunner{}, testutil.NewTestLogger())
	require.NoError(t, err)

	eastern, err := time.LoadLocation("US/Eastern")
	require.NoError(t, err)

	tests := []struct {
		name     string
		after    time.Time
		expected time.Time
	}{
		{
			name:     "later the same day in winter",
			after:    time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
			expected: time.Date(2024, 1, 15, 19, 27, 0, 0, eastern),
		},
		{
			name:     "just missed in summer",
			after:    time.Date(2024, 7, 1, 23, 30, 0, 0, time.UTC),
			expected: time.Date(2024, 7, 2, 19, 27, 0, 0, eastern),
		},
		{
			name:     "daylight saving change day",
			after:    time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
			expected: time.Date(2024, 3, 10, 19, 27, 0, 0, eastern),
		},
		{
			name:     "exactly at fire time moves to the next day",
			after:    time.Date(2024, 1, 15, 19, 27, 0, 0, eastern),
			expected: time.Date(2024, 1, 16, 19, 27, 0, 0, eastern),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := s.NextRun(tt.after)

			assert.True(t, tt.expected.Equal(next), "expected %s, got %s", tt.expected, next)
			assert.Equal(t, 19, next.Hour())
			assert.Equal(t, 27, next.Minute())
		})
	}
}

func TestScheduler_New_InvalidTimezone(t *testing.T) {
	cfg := defaultSchedule()
	cfg.Timezone = "Mars/Olympus"

	_, err := New(cfg, &stubRunner{}, testutil.NewTestLogger())

	assert.Error(t, err)
}

func TestScheduler_Start_NonPrimary(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	s, err := New(defaultSchedule(), &stubRunner{}, zap.New(core))
	require.NoError(t, err)

	require.NoError(t, s.Start(false))

	assert.False(t, s.Running())
	assert.Equal(t, 1, logs.FilterMessage("scheduler disabled on non-primary instance").Len())
	assert.NoError(t, s.Stop(context.Background()))
}

func TestScheduler_StartStop(t *testing.T) {
	s, err := New(defaultSchedule(), &stubRunner{}, testutil.NewTestLogger())
	require.NoError(t, err)

	require.NoError(t, s.Start(true))
	assert.True(t, s.Running())
	require.NoError(t, s.Start(true))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
	assert.False(t, s.Running())
}

func TestScheduler_RunNow(t *testing.T) {
	tests := []struct {
		name        string
		runner      *stubRunner
		expectedLog string
	}{
		{
			name:        "success",
			runner:      &stubRunner{outcome: job.OutcomeSent},
			expectedLog: "Daily word job finished",
		},
		{
			name:        "job error is contained",
			runner:      &stubRunner{outcome: job.OutcomeStoreFailed, err: errors.New("db down")},
			expectedLog: "daily word job failed unexpectedly",
		},
		{
			name:        "panic is contained",
			runner:      &stubRunner{panics: true},
			expectedLog: "daily word job failed unexpectedly",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.InfoLevel)
			s, err := New(defaultSchedule(), tt.runner, zap.New(core))
			require.NoError(t, err)

			assert.NotPanics(t, func() { s.RunNow(context.Background()) })
			assert.NotPanics(t, func() { s.RunNow(context.Background()) })

			assert.Equal(t, 2, tt.runner.calls)
			assert.Equal(t, 2, logs.FilterMessage(tt.expectedLog).Len())
		})
	}
}

type refusingDialer struct{ dials int }

func (d *refusingDialer) Dial() (gomail.SendCloser, error) {
	d.dials++
	return nil, errors.New("connection refused")
}

func TestScheduler_RunNow_SurvivesDeliveryFailure(t *testing.T) {
	words := new(testutil.MockWordRepository)
	words.On("GetLatestWord", mock.Anything).Return(testutil.NewTestWord(1, "Immutable", "Unchanging", "Rocks"), nil)
	users := new(testutil.MockUserRepository)
	users.On("GetAllEmails", mock.Anything).Return([]string{"alice@x.com"}, nil)

	dialer := &refusingDialer{}
	sender := mail.NewSenderWithDialer(config.SMTPConfig{
		Host:          "smtp.example.com",
		Port:          2525,
		Username:      "user",
		Password:      "secret",
		SenderAddress: "words@example.com",
	}, dialer, testutil.NewTestLogger(), nil)

	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)
	daily := job.NewDailyWordJob(words, users, sender, logger, nil)

	s, err := New(defaultSchedule(), daily, logger)
	require.NoError(t, err)

	s.RunNow(context.Background())
	s.RunNow(context.Background())

	assert.Equal(t, 2, dialer.dials)
	assert.Equal(t, 2, logs.FilterMessage("Failed to send daily word").Len())
	assert.Equal(t, 0, logs.FilterMessage("daily word job failed unexpectedly").Len())
	assert.Equal(t, 2, logs.FilterMessage("Daily word job finished").Len())
}
