package services

import (
	"context"

	"github.com/SscSPs/bizdoc_app/internal/core/domain"
)

// AuditSvc is the append-only audit ledger
type AuditSvc interface {
	// Record stores an entry. It never fails the caller.
	Record(ctx context.Context, entry domain.AuditLogEntry)

	// List returns entries about the owner's resources.
	List(ctx context.Context, ownerID string, filter domain.AuditFilter) ([]domain.AuditLogEntry, *string, error)

	// Close waits for pending asynchronous writes.
	Close(ctx context.Context) error
}
