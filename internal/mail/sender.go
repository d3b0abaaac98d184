// Package mail delivers rendered notifications over SMTP.
package mail

import (
	"context"
	"fmt"

	"wordofday/internal/config"
	"wordofday/internal/metrics"
	"wordofday/internal/notify"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Dialer opens an authenticated SMTP session
type Dialer interface {
	Dial() (gomail.SendCloser, error)
}

// Result summarizes one Deliver call
type Result struct {
	Attempted int
	Sent      int
}

// Sender delivers one message per recipient over a single SMTP session
type Sender struct {
	cfg     config.SMTPConfig
	dialer  Dialer
	logger  *zap.Logger
	metrics *metrics.Collector
}

// NewSender creates a Sender that requires STARTTLS (or implicit TLS on
// port 465) and authenticates with the configured credentials.
func NewSender(cfg config.SMTPConfig, logger *zap.Logger, m *metrics.Collector) *Sender {
	return NewSenderWithDialer(cfg, NewSessionDialer(cfg, nil), logger, m)
}

// NewSenderWithDialer creates a Sender with a custom session dialer
func NewSenderWithDialer(cfg config.SMTPConfig, dialer Dialer, logger *zap.Logger, m *metrics.Collector) *Sender {
	return &Sender{
		cfg:     cfg,
		dialer:  dialer,
		logger:  logger,
		metrics: m,
	}
}

// Deliver sends content to every recipient, each as its own message with a
// single To header.
//
// Incomplete SMTP settings make Deliver a logged no-op. A failure to open the
// session abandons the batch. The first per-recipient failure also abandons the
// rest of the batch; messages already accepted stay sent. Nothing is retried.
func (s *Sender) Deliver(ctx context.Context, content notify.Content, recipients []string) (Result, error) {
	if !s.cfg.Complete() {
		s.logger.Warn("SMTP not configured, skipping email job")
		return Result{}, nil
	}

	s.logger.Info("Starting email job", zap.Int("recipients", len(recipients)))

	session, err := s.dialer.Dial()
	if err != nil {
		s.metrics.RecordEmailFailure()
		return Result{}, fmt.Errorf("failed to open SMTP session with %s:%d: %w", s.cfg.Host, s.cfg.Port, err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			s.logger.Warn("Failed to close SMTP session", zap.Error(err))
		}
	}()

	var result Result
	for _, recipient := range recipients {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("email job interrupted after %d messages: %w", result.Sent, err)
		}

		result.Attempted++
		if err := gomail.Send(session, s.newMessage(content, recipient)); err != nil {
			s.metrics.RecordEmailFailure()
			return result, fmt.Errorf("failed to send email to %s: %w", recipient, err)
		}

		result.Sent++
		s.metrics.RecordEmailSent()
		s.logger.Info("Email sent", zap.String("recipient", recipient))
	}

	s.logger.Info("Email job finished successfully", zap.Int("sent", result.Sent))
	return result, nil
}

func (s *Sender) newMessage(content notify.Content, recipient string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("Subject", content.Subject)
	msg.SetHeader("From", s.cfg.SenderAddress)
	msg.SetHeader("To", recipient)
	msg.SetBody("text/plain", content.Text)
	msg.AddAlternative("text/html", content.HTML)
	return msg
}
