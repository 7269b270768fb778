package pgsql

import (
	"context"
	"fmt"
	"strconv"

	"github.com/SscSPs/bizdoc_app/internal/apperrors"
	"github.com/SscSPs/bizdoc_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bizdoc_app/internal/core/ports/repositories"
	"github.com/SscSPs/bizdoc_app/internal/models"
	"github.com/SscSPs/bizdoc_app/internal/utils/mapping"
	"github.com/SscSPs/bizdoc_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxAuditLogRepository appends to audit_logs. It always writes through the pool
// so an entry survives the rollback of the request it describes.
type PgxAuditLogRepository struct {
	BaseRepository
}

func newPgxAuditLogRepository(db *pgxpool.Pool) *PgxAuditLogRepository {
	return &PgxAuditLogRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.AuditLogRepository = (*PgxAuditLogRepository)(nil)

const (
	selectAuditLogFields = `
		a.audit_log_id, a.user_id, a.actor_role, a.action, a.resource_type, a.resource_id,
		a.changes, a.status, a.error_message, a.metadata, a.timestamp
	`

	insertAuditLogQuery = `
		INSERT INTO audit_logs (
			audit_log_id, user_id, actor_role, action, resource_type, resource_id,
			changes, status, error_message, metadata, timestamp
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	// Signature and token entries are resolved to their document for the owner check.
	listAuditLogsForOwnerBase = `
		SELECT ` + selectAuditLogFields + `
		FROM audit_logs a
		WHERE (
			a.user_id = $1
			OR EXISTS (
				SELECT 1 FROM documents d
				WHERE d.owner_id = $1 AND d.document_id::text = a.resource_id
			)
			OR EXISTS (
				SELECT 1 FROM signatures s JOIN documents d ON d.document_id = s.document_id
				WHERE d.owner_id = $1 AND s.signature_id::text = a.resource_id
			)
			OR EXISTS (
				SELECT 1 FROM access_tokens t JOIN documents d ON d.document_id = t.entity_id
				WHERE d.owner_id = $1 AND t.access_token_id::text = a.resource_id
			)
		)
	`
)

// Create appends an audit entry
func (r *PgxAuditLogRepository) Create(ctx context.Context, entry domain.AuditLogEntry) error {
	m := mapping.ToModelAuditLog(entry)
	_, err := r.Pool.Exec(ctx, insertAuditLogQuery,
		m.AuditLogID,
		m.UserID,
		m.ActorRole,
		m.Action,
		m.ResourceType,
		m.ResourceID,
		m.Changes,
		m.Status,
		m.ErrorMessage,
		m.Metadata,
		m.Timestamp,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert audit log", err)
	}
	return nil
}

// ListForOwner returns audit entries about an owner's resources, newest first
func (r *PgxAuditLogRepository) ListForOwner(ctx context.Context, ownerID string, filter domain.AuditFilter) ([]domain.AuditLogEntry, *string, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	fetchLimit := limit + 1

	query := listAuditLogsForOwnerBase
	args := []any{ownerID}
	if filter.ResourceType != "" {
		args = append(args, filter.ResourceType)
		query += ` AND a.resource_type = $` + strconv.Itoa(len(args))
	}
	if filter.ResourceID != "" {
		args = append(args, filter.ResourceID)
		query += ` AND a.resource_id = $` + strconv.Itoa(len(args))
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		ts, lastID, err := pagination.DecodeCursor(*filter.NextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
		}
		args = append(args, ts, lastID)
		query += ` AND (a.timestamp, a.audit_log_id) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}
	args = append(args, fetchLimit)
	query += ` ORDER BY a.timestamp DESC, a.audit_log_id DESC LIMIT $` + strconv.Itoa(len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query audit logs", err)
	}
	defer rows.Close()

	entries := make([]domain.AuditLogEntry, 0, fetchLimit)
	for rows.Next() {
		var m models.AuditLog
		if err := rows.Scan(
			&m.AuditLogID,
			&m.UserID,
			&m.ActorRole,
			&m.Action,
			&m.ResourceType,
			&m.ResourceID,
			&m.Changes,
			&m.Status,
			&m.ErrorMessage,
			&m.Metadata,
			&m.Timestamp,
		); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan audit log row", err)
		}
		entries = append(entries, mapping.ToDomainAuditLog(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating audit log rows", err)
	}

	var nextToken *string
	if len(entries) > limit {
		last := entries[limit-1]
		token := pagination.EncodeCursor(last.Timestamp, last.AuditLogID)
		nextToken = &token
		entries = entries[:limit]
	}
	return entries, nextToken, nil
}
