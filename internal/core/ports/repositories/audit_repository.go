package repositories

import (
	"context"

	"github.com/SscSPs/bizdoc_app/internal/core/domain"
)

// AuditLogRepository appends to and reads the audit ledger
type AuditLogRepository interface {
	// Create appends an entry. Implementations never join a caller's transaction.
	Create(ctx context.Context, entry domain.AuditLogEntry) error

	// ListForOwner returns entries about resources owned by ownerID, newest first.
	ListForOwner(ctx context.Context, ownerID string, filter domain.AuditFilter) ([]domain.AuditLogEntry, *string, error)
}
