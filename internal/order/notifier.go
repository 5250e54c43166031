package order

import (
	"context"
	"time"

	"github.com/ehsanpg/mazzehabi/pkg/mailer"
)

const (
	notificationTemplate = "order_received.md"
	DefaultNotifyTimeout = 15 * time.Second
)

// Notification is the data passed to the owner e-mail template.
type Notification struct {
	Ref        string
	Submission Submission
	ReceivedAt time.Time
}

// Notifier e-mails the shop owner about accepted orders.
type Notifier struct {
	mailer *mailer.Mailer
	to     []string
}

// NewNotifier creates a Notifier sending to the given addresses.
func NewNotifier(m *mailer.Mailer, to ...string) *Notifier {
	return &Notifier{mailer: m, to: to}
}

// Notify sends one notification.
func (n *Notifier) Notify(ctx context.Context, note Notification) error {
	return n.mailer.Send(ctx, mailer.SendParams{
		To:       n.to,
		Template: notificationTemplate,
		Data:     note,
		Tags:     map[string]string{"category": "order", "ref": note.Ref},
	})
}
