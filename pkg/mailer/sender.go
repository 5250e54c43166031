package mailer

import (
	"context"
	"log/slog"
)

// Sender delivers a prepared Email.
type Sender interface {
	Send(ctx context.Context, email *Email) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, email *Email) error

// Send implements Sender.
func (f SenderFunc) Send(ctx context.Context, email *Email) error {
	return f(ctx, email)
}

// LogSender writes messages to the log instead of delivering them.
// Used when no mail provider is configured.
func LogSender(logger *slog.Logger) Sender {
	return SenderFunc(func(ctx context.Context, email *Email) error {
		logger.InfoContext(ctx, "email not delivered, no provider configured",
			slog.Any("to", email.To),
			slog.String("subject", email.Subject),
		)
		return nil
	})
}
