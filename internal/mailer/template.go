package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

var newsletterTmpl = template.Must(template.New("newsletter").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
</head>
<body style="margin:0;padding:0;background-color:#f4f4f5;font-family:Helvetica,Arial,sans-serif;">
  <div style="max-width:600px;margin:0 auto;padding:24px;">
    <div style="background:#ffffff;border-radius:8px;padding:32px;">
      <h1 style="font-size:22px;margin:0 0 16px;color:#18181b;">{{.Title}}</h1>
      <div style="font-size:15px;line-height:1.6;color:#3f3f46;">{{.Content}}</div>
    </div>
    <p style="font-size:12px;color:#a1a1aa;text-align:center;margin-top:16px;">
      You are receiving this because you subscribed to our newsletter.<br>
      <a href="{{.UnsubscribeURL}}" style="color:#a1a1aa;">Unsubscribe</a>
    </p>
  </div>
</body>
</html>`))

// NewsletterHTML renders the newsletter email body. Content is trusted HTML
// authored by an admin; the title and unsubscribe link are escaped.
func NewsletterHTML(title, content, unsubscribeURL string) (string, error) {
	var buf bytes.Buffer
	err := newsletterTmpl.Execute(&buf, struct {
		Title          string
		Content        template.HTML
		UnsubscribeURL string
	}{
		Title:          title,
		Content:        template.HTML(content),
		UnsubscribeURL: unsubscribeURL,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render newsletter template: %w", err)
	}
	return buf.String(), nil
}
