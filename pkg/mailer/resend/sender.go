package resend

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"

	"github.com/ehsanpg/mazzehabi/pkg/mailer"
)

// Config holds the Resend credentials and default sender.
type Config struct {
	APIKey    string
	FromEmail string
	FromName  string
}

// Sender implements mailer.Sender on the Resend API.
type Sender struct {
	client *resend.Client
	from   string
}

// New creates a Resend sender.
func New(cfg Config) *Sender {
	return &Sender{
		client: resend.NewClient(cfg.APIKey),
		from:   mailer.Address(cfg.FromName, cfg.FromEmail),
	}
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	req := buildRequest(s.from, email)
	if _, err := s.client.Emails.SendWithContext(ctx, req); err != nil {
		return fmt.Errorf("resend: send: %w", err)
	}
	return nil
}

func buildRequest(defaultFrom string, email *mailer.Email) *resend.SendEmailRequest {
	from := email.From
	if from == "" {
		from = defaultFrom
	}

	req := &resend.SendEmailRequest{
		From:    from,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
		ReplyTo: email.ReplyTo,
	}
	for name, value := range email.Tags {
		if value == "" {
			value = "true"
		}
		req.Tags = append(req.Tags, resend.Tag{Name: name, Value: value})
	}
	return req
}
