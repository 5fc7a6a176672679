package mailer

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"org-site-backend/internal/config"
)

const maxSendAttempts = 3

// GmailSender delivers emails through the Gmail API.
type GmailSender struct {
	service   *gmail.Service
	fromEmail string
}

// NewGmailSender creates a Gmail API sender from OAuth2 credentials.
func NewGmailSender(cfg *config.MailConfig) (*GmailSender, error) {
	ctx := context.Background()

	oauth2Config := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Scopes:       []string{gmail.GmailSendScope},
		Endpoint:     google.Endpoint,
	}
	token := &oauth2.Token{RefreshToken: cfg.RefreshToken}
	tokenSource := oauth2Config.TokenSource(ctx, token)

	service, err := gmail.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}

	return &GmailSender{service: service, fromEmail: cfg.FromEmail}, nil
}

// Send delivers one message, retrying with backoff on rate-limit errors.
func (s *GmailSender) Send(ctx context.Context, msg Message) error {
	raw := s.buildMessage(msg)
	encoded := base64.URLEncoding.EncodeToString([]byte(raw))
	gmsg := &gmail.Message{Raw: encoded}

	var lastErr error
	for attempt := 1; attempt <= maxSendAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		_, err := s.service.Users.Messages.Send(s.fromEmail, gmsg).Context(ctx).Do()
		if err == nil {
			return nil
		}

		lastErr = err
		logrus.Warnf("Failed to send email to %s (attempt %d/%d): %v", msg.To, attempt, maxSendAttempts, err)

		if strings.Contains(err.Error(), "quota") || strings.Contains(err.Error(), "rate") {
			waitTime := time.Duration(attempt*attempt) * time.Second
			select {
			case <-time.After(waitTime):
			case <-ctx.Done():
				return ctx.Err()
			}
		} else {
			break
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxSendAttempts, lastErr)
}

// Close is a no-op; the Gmail service holds no persistent connection.
func (s *GmailSender) Close() error { return nil }

func (s *GmailSender) buildMessage(msg Message) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("From: %s\r\n", s.fromEmail))
	b.WriteString(fmt.Sprintf("To: %s\r\n", msg.To))
	b.WriteString(fmt.Sprintf("Subject: %s\r\n", msg.Subject))
	b.WriteString(fmt.Sprintf("Date: %s\r\n", time.Now().Format(time.RFC1123Z)))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)
	return b.String()
}
