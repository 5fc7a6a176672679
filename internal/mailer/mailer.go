package mailer

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"org-site-backend/internal/config"
)

// Message is a single outbound email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers a single email. Implementations must respect the context
// deadline; the dispatcher bounds each delivery with a per-recipient timeout.
type Sender interface {
	Send(ctx context.Context, msg Message) error
	Close() error
}

// New returns the configured sender: the Gmail API sender when mail is
// enabled, otherwise a log-only sender for development.
func New(cfg *config.MailConfig) (Sender, error) {
	if !cfg.Enabled {
		logrus.Warn("Mail delivery is disabled, using log sender")
		return &LogSender{}, nil
	}
	sender, err := NewGmailSender(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail sender: %w", err)
	}
	return sender, nil
}

// LogSender logs deliveries instead of sending them.
type LogSender struct{}

// Send logs the message and reports success.
func (s *LogSender) Send(_ context.Context, msg Message) error {
	logrus.Infof("[dev mode] would send email to %s: %s", msg.To, msg.Subject)
	return nil
}

// Close is a no-op.
func (s *LogSender) Close() error { return nil }
