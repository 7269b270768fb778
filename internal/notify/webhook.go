// Package notify delivers document lifecycle notifications to external channels.
package notify

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/bizdoc_app/internal/core/domain"
	portssvc "github.com/SscSPs/bizdoc_app/internal/core/ports/services"
	"github.com/SscSPs/bizdoc_app/internal/middleware"
)

const (
	HeaderSignature = "X-Signature"
	HeaderEventType = "X-Event-Type"
	HeaderEventID   = "X-Event-Id"
)

// WebhookDispatcher posts notifications as JSON to a single endpoint.
// When a secret is set each body is signed with hex HMAC-SHA256 in X-Signature.
type WebhookDispatcher struct {
	url    string
	secret []byte
	client *http.Client
}

// NewWebhookDispatcher creates a dispatcher posting to url.
func NewWebhookDispatcher(url, secret string, timeout time.Duration) *WebhookDispatcher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &WebhookDispatcher{
		url:    url,
		secret: []byte(secret),
		client: &http.Client{Timeout: timeout},
	}
}

var _ portssvc.NotificationDispatcher = (*WebhookDispatcher)(nil)

func (d *WebhookDispatcher) Dispatch(ctx context.Context, n domain.Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to encode notification %s: %w", n.ID, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderEventType, string(n.Kind))
	req.Header.Set(HeaderEventID, n.ID)
	if len(d.secret) > 0 {
		req.Header.Set(HeaderSignature, Sign(d.secret, body))
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver notification %s: %w", n.ID, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("notification %s rejected with status %d", n.ID, resp.StatusCode)
	}

	middleware.GetLoggerFromCtx(ctx).Debug("Notification delivered",
		slog.String("notification_id", n.ID),
		slog.String("kind", string(n.Kind)))
	return nil
}

// Sign returns the hex HMAC-SHA256 of body under secret.
func Sign(secret, body []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether signature matches body under secret.
func Verify(secret, body []byte, signature string) bool {
	expected, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return hmac.Equal(mac.Sum(nil), expected)
}
