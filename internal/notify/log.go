package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/bizdoc_app/internal/core/domain"
	portssvc "github.com/SscSPs/bizdoc_app/internal/core/ports/services"
	"github.com/SscSPs/bizdoc_app/internal/middleware"
)

// LogDispatcher only logs notifications. It is used when no webhook is configured.
type LogDispatcher struct{}

var _ portssvc.NotificationDispatcher = LogDispatcher{}

func (LogDispatcher) Dispatch(ctx context.Context, n domain.Notification) error {
	middleware.GetLoggerFromCtx(ctx).Info("Notification",
		slog.String("notification_id", n.ID),
		slog.String("kind", string(n.Kind)),
		slog.String("audience", string(n.Audience)),
		slog.String("document_id", n.DocumentID),
		slog.String("recipient_email", n.Recipient.Email))
	return nil
}

// NewDispatcher returns a webhook dispatcher when url is set and a LogDispatcher otherwise.
func NewDispatcher(url, secret string, timeout time.Duration) portssvc.NotificationDispatcher {
	if url == "" {
		return LogDispatcher{}
	}
	return NewWebhookDispatcher(url, secret, timeout)
}
