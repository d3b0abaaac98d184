// Package job implements the daily word notification run.
package job

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wordofday/internal/domain"
	"wordofday/internal/mail"
	"wordofday/internal/metrics"
	"wordofday/internal/notify"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Outcome labels how a run ended
type Outcome string

const (
	OutcomeSent           Outcome = "sent"
	OutcomeNoWord         Outcome = "aborted_no_word"
	OutcomeNoUsers        Outcome = "aborted_no_users"
	OutcomeDeliveryFailed Outcome = "delivery_failed"
	OutcomeStoreFailed    Outcome = "store_failed"
)

// WordSource provides the word of the day
type WordSource interface {
	GetLatestWord(ctx context.Context) (*domain.Word, error)
}

// RecipientSource provides the addresses of every registered user
type RecipientSource interface {
	GetAllEmails(ctx context.Context) ([]string, error)
}

// Deliverer sends rendered content to a list of recipients
type Deliverer interface {
	Deliver(ctx context.Context, content notify.Content, recipients []string) (mail.Result, error)
}

// DailyWordJob emails the word of the day to every registered user
type DailyWordJob struct {
	words      WordSource
	recipients RecipientSource
	sender     Deliverer
	logger     *zap.Logger
	metrics    *metrics.Collector
}

// NewDailyWordJob creates a new DailyWordJob
func NewDailyWordJob(words WordSource, recipients RecipientSource, sender Deliverer, logger *zap.Logger, m *metrics.Collector) *DailyWordJob {
	return &DailyWordJob{
		words:      words,
		recipients: recipients,
		sender:     sender,
		logger:     logger,
		metrics:    m,
	}
}

// Run performs one pass of the pipeline. Missing data and transport failures
// end the run with a nil error; only store failures are returned.
func (j *DailyWordJob) Run(ctx context.Context) (Outcome, error) {
	started := time.Now()
	logger := j.logger.With(zap.String("run_id", uuid.NewString()))

	outcome, err := j.run(ctx, logger)
	j.metrics.RecordJobRun(string(outcome), time.Since(started))

	return outcome, err
}

func (j *DailyWordJob) run(ctx context.Context, logger *zap.Logger) (Outcome, error) {
	word, err := j.words.GetLatestWord(ctx)
	if errors.Is(err, domain.ErrWordNotFound) {
		logger.Info("Job aborted: no word of the day found")
		return OutcomeNoWord, nil
	}
	if err != nil {
		return OutcomeStoreFailed, fmt.Errorf("failed to load word of the day: %w", err)
	}

	emails, err := j.recipients.GetAllEmails(ctx)
	if err != nil {
		return OutcomeStoreFailed, fmt.Errorf("failed to load recipients: %w", err)
	}
	if len(emails) == 0 {
		logger.Info("Job aborted: no users to email")
		return OutcomeNoUsers, nil
	}

	content, err := notify.Compose(*word)
	if err != nil {
		return OutcomeDeliveryFailed, err
	}

	logger = logger.With(zap.Int64("word_id", word.ID), zap.String("title", word.Title))

	result, err := j.sender.Deliver(ctx, content, emails)
	if err != nil {
		logger.Error("Failed to send daily word",
			zap.Int("attempted", result.Attempted),
			zap.Int("sent", result.Sent),
			zap.Int("recipients", len(emails)),
			zap.Error(err))
		return OutcomeDeliveryFailed, nil
	}

	logger.Info("Daily word sent", zap.Int("sent", result.Sent), zap.Int("recipients", len(emails)))
	return OutcomeSent, nil
}
