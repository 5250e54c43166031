package mailer

import (
	"bytes"
	"context"
	"errors"
	texttemplate "text/template"
)

// Config is the mailer section of the application config.
type Config struct {
	From            string
	FallbackSubject string
}

// Mailer renders templates and hands the result to a Sender.
type Mailer struct {
	sender   Sender
	renderer *Renderer
	config   Config
}

// New creates a Mailer.
func New(sender Sender, renderer *Renderer, cfg Config) *Mailer {
	return &Mailer{sender: sender, renderer: renderer, config: cfg}
}

// SendParams describes one templated message.
type SendParams struct {
	To       []string
	Template string
	Data     any
	Subject  string
	ReplyTo  string
	Tags     map[string]string
}

// Send renders params.Template and sends it. The subject is taken from
// params, then the template's "subject" frontmatter, then the configured
// fallback, and is itself executed as a text template over Data.
func (m *Mailer) Send(ctx context.Context, params SendParams) error {
	if len(params.To) == 0 {
		return ErrNoRecipient
	}

	result, err := m.renderer.Render(params.Template, params.Data)
	if err != nil {
		return err
	}

	subject := params.Subject
	if subject == "" {
		subject, _ = result.Metadata["subject"].(string)
	}
	if subject == "" {
		subject = m.config.FallbackSubject
	}
	if subject == "" {
		return ErrNoSubject
	}
	subject, err = executeSubject(subject, params.Data)
	if err != nil {
		return errors.Join(ErrRenderFailed, err)
	}

	email := &Email{
		To:      params.To,
		From:    m.config.From,
		ReplyTo: params.ReplyTo,
		Subject: subject,
		HTML:    result.HTML,
		Text:    result.Text,
		Tags:    params.Tags,
	}
	if err := m.sender.Send(ctx, email); err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	return nil
}

func executeSubject(subject string, data any) (string, error) {
	tmpl, err := texttemplate.New("subject").Parse(subject)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
