package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/SscSPs/bizdoc_app/internal/apperrors"
	"github.com/SscSPs/bizdoc_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bizdoc_app/internal/core/ports/repositories"
	"github.com/SscSPs/bizdoc_app/internal/models"
	"github.com/SscSPs/bizdoc_app/internal/utils/mapping"
	"github.com/SscSPs/bizdoc_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxDocumentRepository stores quotes and contracts in a single table.
type PgxDocumentRepository struct {
	BaseRepository
}

// newPgxDocumentRepository creates a new instance of PgxDocumentRepository
func newPgxDocumentRepository(db *pgxpool.Pool) *PgxDocumentRepository {
	return &PgxDocumentRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.DocumentRepositoryFacade = (*PgxDocumentRepository)(nil)

const (
	documentsTable = "documents"

	selectDocumentFields = `
		document_id, owner_id, document_type, status, title, client, supplier, items,
		tax_rate, discount_amount, discount_rate, subtotal, tax, discount, total,
		expires_at, source_quote_id, notes,
		created_at, created_by, last_updated_at, last_updated_by
	`

	insertDocumentQuery = `
		INSERT INTO ` + documentsTable + ` (
			document_id, owner_id, document_type, status, title, client, supplier, items,
			tax_rate, discount_amount, discount_rate, subtotal, tax, discount, total,
			expires_at, source_quote_id, notes,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
	`

	findDocumentByIDQuery = `
		SELECT ` + selectDocumentFields + `
		FROM ` + documentsTable + `
		WHERE document_id = $1
	`

	findContractBySourceQuoteQuery = `
		SELECT ` + selectDocumentFields + `
		FROM ` + documentsTable + `
		WHERE source_quote_id = $1 AND document_type = 'contract'
	`

	listExpiredSentQuotesQuery = `
		SELECT ` + selectDocumentFields + `
		FROM ` + documentsTable + `
		WHERE document_type = 'quote' AND status = 'sent' AND expires_at IS NOT NULL AND expires_at <= $1
		ORDER BY expires_at
		LIMIT $2
	`

	updateDocumentContentQuery = `
		UPDATE ` + documentsTable + `
		SET title = $3, client = $4, supplier = $5, items = $6,
			tax_rate = $7, discount_amount = $8, discount_rate = $9,
			subtotal = $10, tax = $11, discount = $12, total = $13,
			expires_at = $14, notes = $15,
			last_updated_at = $16, last_updated_by = $17
		WHERE document_id = $1 AND status = $2
	`

	updateDocumentStatusQuery = `
		UPDATE ` + documentsTable + `
		SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE document_id = $1 AND status = $2
	`

	deleteDocumentQuery = `
		DELETE FROM ` + documentsTable + `
		WHERE document_id = $1 AND status = $2
	`

	documentExistsQuery = `SELECT EXISTS (SELECT 1 FROM ` + documentsTable + ` WHERE document_id = $1)`
)

// SaveDocument inserts a new document
func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, doc domain.Document) error {
	m := mapping.ToModelDocument(doc)
	_, err := r.conn(ctx).Exec(ctx, insertDocumentQuery,
		m.DocumentID, m.OwnerID, m.DocumentType, m.Status, m.Title, m.Client, m.Supplier, m.Items,
		m.TaxRate, m.DiscountAmount, m.DiscountRate, m.Subtotal, m.Tax, m.Discount, m.Total,
		m.ExpiresAt, m.SourceQuoteID, m.Notes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: document %s", apperrors.ErrDuplicate, m.DocumentID)
		}
		return apperrors.NewAppError(500, "failed to insert document", err)
	}
	return nil
}

// FindDocumentByID retrieves a document by its ID
func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	m, err := scanDocument(r.conn(ctx).QueryRow(ctx, findDocumentByIDQuery, documentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFoundf("document %s", documentID)
		}
		return nil, apperrors.NewAppError(500, "failed to find document "+documentID, err)
	}
	doc := mapping.ToDomainDocument(*m)
	return &doc, nil
}

// FindContractBySourceQuote retrieves the contract derived from a quote
func (r *PgxDocumentRepository) FindContractBySourceQuote(ctx context.Context, quoteID string) (*domain.Document, error) {
	m, err := scanDocument(r.conn(ctx).QueryRow(ctx, findContractBySourceQuoteQuery, quoteID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFoundf("contract for quote %s", quoteID)
		}
		return nil, apperrors.NewAppError(500, "failed to find contract for quote "+quoteID, err)
	}
	doc := mapping.ToDomainDocument(*m)
	return &doc, nil
}

// ListDocuments retrieves a paginated list of an owner's documents using token-based pagination.
// It returns the list of documents, a token for the next page (if any), and an error.
func (r *PgxDocumentRepository) ListDocuments(ctx context.Context, ownerID string, filter domain.DocumentFilter) ([]domain.Document, *string, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	// One extra row tells us whether there is a next page.
	fetchLimit := limit + 1

	query := `SELECT ` + selectDocumentFields + ` FROM ` + documentsTable + ` WHERE owner_id = $1 AND document_type = $2`
	args := []any{ownerID, string(filter.Type)}

	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += ` AND status = $` + strconv.Itoa(len(args))
	}

	if filter.NextToken != nil && *filter.NextToken != "" {
		lastCreatedAt, lastID, err := pagination.DecodeCursor(*filter.NextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
		}
		args = append(args, lastCreatedAt, lastID)
		query += ` AND (created_at, document_id) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY created_at DESC, document_id DESC LIMIT $` + strconv.Itoa(len(args))

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query documents for owner "+ownerID, err)
	}
	defer rows.Close()

	modelDocs := make([]models.Document, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanDocument(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan document row", scanErr)
		}
		modelDocs = append(modelDocs, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating document rows", err)
	}

	var nextToken *string
	if len(modelDocs) > limit {
		last := modelDocs[limit-1]
		token := pagination.EncodeCursor(last.CreatedAt, last.DocumentID)
		nextToken = &token
		modelDocs = modelDocs[:limit]
	}

	return mapping.ToDomainDocumentSlice(modelDocs), nextToken, nil
}

// ListExpiredSentQuotes returns sent quotes whose validity has ended
func (r *PgxDocumentRepository) ListExpiredSentQuotes(ctx context.Context, now time.Time, limit int) ([]domain.Document, error) {
	rows, err := r.conn(ctx).Query(ctx, listExpiredSentQuotesQuery, now, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query expired quotes", err)
	}
	defer rows.Close()

	var out []domain.Document
	for rows.Next() {
		m, scanErr := scanDocument(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan document row", scanErr)
		}
		out = append(out, mapping.ToDomainDocument(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating document rows", err)
	}
	return out, nil
}

// UpdateDocumentContent rewrites a document's editable fields if its status is unchanged
func (r *PgxDocumentRepository) UpdateDocumentContent(ctx context.Context, doc domain.Document, expectedStatus domain.DocumentStatus) error {
	m := mapping.ToModelDocument(doc)
	tag, err := r.conn(ctx).Exec(ctx, updateDocumentContentQuery,
		m.DocumentID, string(expectedStatus),
		m.Title, m.Client, m.Supplier, m.Items,
		m.TaxRate, m.DiscountAmount, m.DiscountRate,
		m.Subtotal, m.Tax, m.Discount, m.Total,
		m.ExpiresAt, m.Notes,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update document "+m.DocumentID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.classifyMiss(ctx, m.DocumentID)
	}
	return nil
}

// UpdateDocumentStatus moves a document between statuses using optimistic concurrency
func (r *PgxDocumentRepository) UpdateDocumentStatus(ctx context.Context, documentID string, from, to domain.DocumentStatus, updatedBy string, updatedAt time.Time) error {
	tag, err := r.conn(ctx).Exec(ctx, updateDocumentStatusQuery, documentID, string(from), string(to), updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of document "+documentID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.classifyMiss(ctx, documentID)
	}
	return nil
}

// DeleteDocument removes a document if its status is unchanged
func (r *PgxDocumentRepository) DeleteDocument(ctx context.Context, documentID string, expectedStatus domain.DocumentStatus) error {
	tag, err := r.conn(ctx).Exec(ctx, deleteDocumentQuery, documentID, string(expectedStatus))
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete document "+documentID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.classifyMiss(ctx, documentID)
	}
	return nil
}

// classifyMiss explains a conditional write that touched no rows.
func (r *PgxDocumentRepository) classifyMiss(ctx context.Context, documentID string) error {
	var exists bool
	if err := r.conn(ctx).QueryRow(ctx, documentExistsQuery, documentID).Scan(&exists); err != nil {
		return apperrors.NewAppError(500, "failed to check document "+documentID, err)
	}
	if !exists {
		return notFoundf("document %s", documentID)
	}
	return apperrors.ErrConflict
}

// scanDocument scans a document from a row
func scanDocument(row pgx.Row) (*models.Document, error) {
	var m models.Document
	err := row.Scan(
		&m.DocumentID,
		&m.OwnerID,
		&m.DocumentType,
		&m.Status,
		&m.Title,
		&m.Client,
		&m.Supplier,
		&m.Items,
		&m.TaxRate,
		&m.DiscountAmount,
		&m.DiscountRate,
		&m.Subtotal,
		&m.Tax,
		&m.Discount,
		&m.Total,
		&m.ExpiresAt,
		&m.SourceQuoteID,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
