package services

import (
	"context"
	"log/slog"
	"time"

	portssvc "github.com/SscSPs/bizdoc_app/internal/core/ports/services"
)

// ExpirySweeper periodically expires sent quotes whose validity has ended.
type ExpirySweeper struct {
	BaseService
	documents portssvc.DocumentLifecycleSvc
	interval  time.Duration
}

// NewExpirySweeper creates a sweeper. A non-positive interval disables it.
func NewExpirySweeper(documents portssvc.DocumentLifecycleSvc, interval time.Duration, opts ...ServiceOption) *ExpirySweeper {
	s := &ExpirySweeper{documents: documents, interval: interval}
	applyOptions(&s.BaseService, opts)
	return s
}

// Run sweeps once immediately and then on every tick until ctx is done.
func (s *ExpirySweeper) Run(ctx context.Context) {
	if s.interval <= 0 {
		s.LogInfo(ctx, "Quote expiry sweeper disabled")
		return
	}
	s.LogInfo(ctx, "Quote expiry sweeper started", slog.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		s.sweep(ctx)
		select {
		case <-ctx.Done():
			s.LogInfo(ctx, "Quote expiry sweeper stopped")
			return
		case <-ticker.C:
		}
	}
}

func (s *ExpirySweeper) sweep(ctx context.Context) {
	n, err := s.documents.ExpireDueQuotes(ctx, s.Now())
	if err != nil {
		if ctx.Err() == nil {
			s.LogError(ctx, err, "Quote expiry sweep failed", slog.Int("expired_before_failure", n))
		}
		return
	}
	if n > 0 {
		s.LogDebug(ctx, "Quote expiry sweep finished", slog.Int("expired", n))
	}
}
