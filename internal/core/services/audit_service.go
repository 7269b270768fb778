package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/bizdoc_app/internal/apperrors"
	"github.com/SscSPs/bizdoc_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bizdoc_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bizdoc_app/internal/core/ports/services"
	"github.com/SscSPs/bizdoc_app/internal/middleware"
	"github.com/google/uuid"
)

const defaultAuditWriteTimeout = 5 * time.Second

// AuditConfig controls where audit entries go.
type AuditConfig struct {
	// Persist writes entries to the repository. When false they are only logged.
	Persist bool
	// Async writes entries from background goroutines drained by Close.
	Async        bool
	WriteTimeout time.Duration
}

// auditService implements the AuditSvc interface
type auditService struct {
	BaseService
	repo portsrepo.AuditLogRepository
	cfg  AuditConfig

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewAuditService creates a new audit ledger service.
func NewAuditService(repo portsrepo.AuditLogRepository, cfg AuditConfig, opts ...ServiceOption) portssvc.AuditSvc {
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaultAuditWriteTimeout
	}
	svc := &auditService{repo: repo, cfg: cfg}
	applyOptions(&svc.BaseService, opts)
	return svc
}

var _ portssvc.AuditSvc = (*auditService)(nil)

// Record fills in the entry from ctx and stores it. Failures are logged, never returned.
func (s *auditService) Record(ctx context.Context, entry domain.AuditLogEntry) {
	if entry.AuditLogID == "" {
		entry.AuditLogID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = s.Now()
	}
	if entry.Metadata == (domain.RequestMetadata{}) {
		entry.Metadata = middleware.GetRequestMetadata(ctx)
	}
	if entry.ActorRole == "" {
		entry.ActorRole = domain.RoleOwner
	}
	if entry.UserID == "" && entry.ActorRole == domain.RoleOwner {
		entry.UserID, _ = middleware.GetUserIDFromCtx(ctx)
	}
	if entry.Status == "" {
		entry.Status = domain.AuditSuccess
	}

	s.GetLogger(ctx).Info("Audit",
		slog.String("audit_log_id", entry.AuditLogID),
		slog.String("actor_role", string(entry.ActorRole)),
		slog.String("user_id", entry.UserID),
		slog.String("action", string(entry.Action)),
		slog.String("resource_type", entry.ResourceType),
		slog.String("resource_id", entry.ResourceID),
		slog.String("status", string(entry.Status)),
		slog.String("error_message", entry.ErrorMessage),
	)

	if !s.cfg.Persist || s.repo == nil {
		return
	}

	detached := context.WithoutCancel(ctx)
	if s.cfg.Async {
		s.mu.Lock()
		if !s.closed {
			s.wg.Add(1)
			s.mu.Unlock()
			go func() {
				defer s.wg.Done()
				s.write(detached, entry)
			}()
			return
		}
		s.mu.Unlock()
	}
	s.write(detached, entry)
}

func (s *auditService) write(ctx context.Context, entry domain.AuditLogEntry) {
	wctx, cancel := context.WithTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()
	if err := s.repo.Create(wctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to persist audit log entry",
			slog.String("audit_log_id", entry.AuditLogID),
			slog.String("action", string(entry.Action)),
			slog.String("resource_type", entry.ResourceType),
			slog.String("resource_id", entry.ResourceID))
	}
}

func (s *auditService) List(ctx context.Context, ownerID string, filter domain.AuditFilter) ([]domain.AuditLogEntry, *string, error) {
	if ownerID == "" {
		return nil, nil, fmt.Errorf("%w: owner is required", apperrors.ErrValidation)
	}
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	entries, next, err := s.repo.ListForOwner(ctx, ownerID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list audit log entries", slog.String("owner_id", ownerID))
		return nil, nil, err
	}
	return entries, next, nil
}

// Close stops accepting background writes and waits for pending ones.
func (s *auditService) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("audit writes still pending: %w", ctx.Err())
	}
}

// auditBufferKey marks the buffer collecting entries of an open unit of work.
type auditBufferKey struct{}

type auditBuffer struct {
	mu      sync.Mutex
	closed  bool
	entries []domain.AuditLogEntry
}

func (b *auditBuffer) add(entry domain.AuditLogEntry) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return false
	}
	b.entries = append(b.entries, entry)
	return true
}

func (b *auditBuffer) drain() []domain.AuditLogEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	out := b.entries
	b.entries = nil
	return out
}

// recordAudit records entry, or holds it until the enclosing unit of work ends.
func recordAudit(ctx context.Context, audit portssvc.AuditSvc, entry domain.AuditLogEntry) {
	if audit == nil {
		return
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	if buf, ok := ctx.Value(auditBufferKey{}).(*auditBuffer); ok && buf.add(entry) {
		return
	}
	audit.Record(ctx, entry)
}

// runInAuditedTx runs fn in a transaction and flushes the audit entries recorded
// inside it once the transaction has ended. If it rolled back, entries that
// claimed success are stored as failures carrying the error.
func runInAuditedTx(ctx context.Context, txm portsrepo.TransactionManager, audit portssvc.AuditSvc, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(auditBufferKey{}).(*auditBuffer); ok {
		return txm.RunInTx(ctx, fn)
	}

	buf := &auditBuffer{}
	err := txm.RunInTx(context.WithValue(ctx, auditBufferKey{}, buf), fn)

	if audit == nil {
		return err
	}
	detached := context.WithoutCancel(ctx)
	for _, entry := range buf.drain() {
		if err != nil && entry.Status != domain.AuditFailure {
			entry.Status = domain.AuditFailure
			entry.ErrorMessage = rolledBackMessage(err)
		}
		audit.Record(detached, entry)
	}
	return err
}

func rolledBackMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return "rolled back: " + appErr.Message
	}
	return "rolled back: " + err.Error()
}

// auditEntry builds an entry whose outcome follows err.
func auditEntry(action domain.AuditAction, role domain.ActorRole, actorID, resourceType, resourceID string, changes *domain.AuditChanges, err error) domain.AuditLogEntry {
	entry := domain.AuditLogEntry{
		UserID:       actorID,
		ActorRole:    role,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Changes:      changes,
		Status:       domain.AuditSuccess,
	}
	if err != nil {
		entry.Status = domain.AuditFailure
		entry.ErrorMessage = err.Error()
	}
	return entry
}
