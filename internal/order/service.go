package order

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ehsanpg/mazzehabi/pkg/logger"
)

// Result is the outcome of one Submit call.
type Result struct {
	// Ref identifies an accepted submission in logs and notifications.
	Ref        string
	Submission Submission
	Errors     FieldErrors
	// Fallback is set when the endpoint could not take the submission.
	Fallback *Fallback
}

// Service validates submissions, forwards them to the form endpoint and
// notifies the owner.
type Service struct {
	client        *Client
	notifier      *Notifier
	rule          PhoneRule
	fallback      FallbackMode
	notifyTimeout time.Duration
	logger        *slog.Logger
	now           func() time.Time

	wg sync.WaitGroup
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

func WithPhoneRule(rule PhoneRule) ServiceOption {
	return func(s *Service) {
		if rule != nil {
			s.rule = rule
		}
	}
}

func WithFallbackMode(mode FallbackMode) ServiceOption {
	return func(s *Service) {
		if mode != "" {
			s.fallback = mode
		}
	}
}

// WithNotifier enables owner notifications.
func WithNotifier(n *Notifier) ServiceOption {
	return func(s *Service) { s.notifier = n }
}

func WithNotifyTimeout(d time.Duration) ServiceOption {
	return func(s *Service) {
		if d > 0 {
			s.notifyTimeout = d
		}
	}
}

func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates a Service around client.
func NewService(client *Client, opts ...ServiceOption) *Service {
	s := &Service{
		client:        client,
		rule:          PhonePattern,
		fallback:      FallbackBoth,
		notifyTimeout: DefaultNotifyTimeout,
		logger:        logger.Discard(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PhoneRule returns the active phone rule.
func (s *Service) PhoneRule() PhoneRule { return s.rule }

// CheckPhone sanitizes raw the way Submit does and validates it with the
// active rule. It returns the cleaned phone and its error code, which is
// empty when the phone passes.
func (s *Service) CheckPhone(raw string) (phone, code string) {
	sub := Sanitize(Submission{Phone: raw})
	return sub.Phone, Validate(sub, s.rule).Get(FieldPhone)
}

// Submit sanitizes and validates raw, then posts it.
//
// On validation failure the result carries Errors and the error is
// ErrInvalid; nothing is sent. On a transport or endpoint failure the
// result carries a Fallback and the error wraps ErrTransport or
// ErrRejected. On success the result carries a fresh Ref and the owner is
// notified in the background.
func (s *Service) Submit(ctx context.Context, raw Submission) (*Result, error) {
	sub := Sanitize(raw)
	res := &Result{Submission: sub}

	if errs := Validate(sub, s.rule); !errs.OK() {
		res.Errors = errs
		return res, errors.Join(ErrInvalid, errs)
	}

	if err := s.client.Submit(ctx, sub); err != nil {
		res.Fallback = s.client.Fallback(sub, s.fallback)
		s.logger.WarnContext(ctx, "order submission failed",
			slog.String("endpoint", s.client.Endpoint()),
			slog.Any("error", err),
		)
		return res, err
	}

	res.Ref = uuid.NewString()
	s.logger.InfoContext(ctx, "order submitted", slog.String("ref", res.Ref))
	s.notify(ctx, Notification{Ref: res.Ref, Submission: sub, ReceivedAt: s.now()})
	return res, nil
}

// Wait blocks until in-flight notifications finish or ctx is done.
func (s *Service) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) notify(ctx context.Context, note Notification) {
	if s.notifier == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	s.wg.Go(func() {
		ctx, cancel := context.WithTimeout(ctx, s.notifyTimeout)
		defer cancel()

		if err := s.notifier.Notify(ctx, note); err != nil {
			s.logger.ErrorContext(ctx, "order notification failed",
				slog.String("ref", note.Ref),
				slog.Any("error", err),
			)
		}
	})
}
