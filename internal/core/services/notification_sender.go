package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/bizdoc_app/internal/core/domain"
	portssvc "github.com/SscSPs/bizdoc_app/internal/core/ports/services"
	"github.com/SscSPs/bizdoc_app/internal/middleware"
	"github.com/google/uuid"
)

const defaultNotifyTimeout = 5 * time.Second

// notificationSender hands lifecycle events to the dispatch gateway after commit.
// Dispatch runs on a context detached from the request and its errors are only logged.
type notificationSender struct {
	dispatcher portssvc.NotificationDispatcher
	timeout    time.Duration
}

func newNotificationSender(dispatcher portssvc.NotificationDispatcher, timeout time.Duration) notificationSender {
	if timeout <= 0 {
		timeout = defaultNotifyTimeout
	}
	return notificationSender{dispatcher: dispatcher, timeout: timeout}
}

func (n notificationSender) send(ctx context.Context, kind domain.NotificationKind, audience domain.NotificationAudience, doc domain.Document, publicURL string, data map[string]string) {
	if n.dispatcher == nil {
		return
	}
	notification := domain.Notification{
		ID:           uuid.NewString(),
		Kind:         kind,
		Audience:     audience,
		DocumentType: doc.Type,
		DocumentID:   doc.DocumentID,
		OwnerID:      doc.OwnerID,
		Recipient:    doc.Client,
		PublicURL:    publicURL,
		Title:        doc.Title,
		Total:        doc.Total,
		OccurredAt:   time.Now().UTC(),
		Data:         data,
	}

	dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
	defer cancel()
	if err := n.dispatcher.Dispatch(dctx, notification); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Notification dispatch failed",
			slog.String("error", err.Error()),
			slog.String("kind", string(kind)),
			slog.String("document_id", doc.DocumentID))
	}
}

// sendForStatus dispatches the event announced by doc's current status, if any.
func (n notificationSender) sendForStatus(ctx context.Context, audience domain.NotificationAudience, doc domain.Document, publicURL string, data map[string]string) {
	kind, ok := domain.NotificationKindFor(doc.Type, doc.Status)
	if !ok {
		return
	}
	n.send(ctx, kind, audience, doc, publicURL, data)
}
