package mailer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"org-site-backend/internal/config"
)

func TestNewsletterHTML(t *testing.T) {
	html, err := NewsletterHTML(
		"Issue <1>",
		"<p>Hello readers</p>",
		"http://localhost:8080/api/newsletter/unsubscribe?token=abc",
	)
	require.NoError(t, err)

	// The title is escaped, the admin-authored body is not.
	assert.Contains(t, html, "Issue &lt;1&gt;")
	assert.Contains(t, html, "<p>Hello readers</p>")
	assert.Contains(t, html, `href="http://localhost:8080/api/newsletter/unsubscribe?token=abc"`)
}

func TestNewReturnsLogSenderWhenDisabled(t *testing.T) {
	sender, err := New(&config.MailConfig{Enabled: false})
	require.NoError(t, err)
	require.IsType(t, &LogSender{}, sender)

	assert.NoError(t, sender.Send(context.Background(), Message{To: "a@example.com", Subject: "s"}))
	assert.NoError(t, sender.Close())
}
