package pgsql

import (
	"context"

	"github.com/SscSPs/bizdoc_app/internal/apperrors"
	"github.com/SscSPs/bizdoc_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bizdoc_app/internal/core/ports/repositories"
	"github.com/SscSPs/bizdoc_app/internal/models"
	"github.com/SscSPs/bizdoc_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxSignatureRepository appends signature evidence.
type PgxSignatureRepository struct {
	BaseRepository
}

func newPgxSignatureRepository(db *pgxpool.Pool) *PgxSignatureRepository {
	return &PgxSignatureRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.SignatureRepository = (*PgxSignatureRepository)(nil)

const (
	insertSignatureQuery = `
		INSERT INTO signatures (
			signature_id, document_id, signer_type, signer_name, signer_email,
			signature_data, content_type, payload_digest, signed_at, ip_address, user_agent
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	listSignaturesByDocumentQuery = `
		SELECT signature_id, document_id, signer_type, signer_name, signer_email,
			signature_data, content_type, payload_digest, signed_at, ip_address, user_agent
		FROM signatures
		WHERE document_id = $1
		ORDER BY signed_at, signature_id
	`
)

// Save inserts a signature
func (r *PgxSignatureRepository) Save(ctx context.Context, sig domain.Signature) error {
	m := mapping.ToModelSignature(sig)
	_, err := r.conn(ctx).Exec(ctx, insertSignatureQuery,
		m.SignatureID,
		m.DocumentID,
		m.SignerType,
		m.SignerName,
		m.SignerEmail,
		m.SignatureData,
		m.ContentType,
		m.PayloadDigest,
		m.SignedAt,
		m.IPAddress,
		m.UserAgent,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert signature", err)
	}
	return nil
}

// ListByDocument returns a document's signatures
func (r *PgxSignatureRepository) ListByDocument(ctx context.Context, documentID string) ([]domain.Signature, error) {
	rows, err := r.conn(ctx).Query(ctx, listSignaturesByDocumentQuery, documentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query signatures for document "+documentID, err)
	}
	defer rows.Close()

	sigs := []domain.Signature{}
	for rows.Next() {
		var m models.Signature
		if err := rows.Scan(
			&m.SignatureID,
			&m.DocumentID,
			&m.SignerType,
			&m.SignerName,
			&m.SignerEmail,
			&m.SignatureData,
			&m.ContentType,
			&m.PayloadDigest,
			&m.SignedAt,
			&m.IPAddress,
			&m.UserAgent,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan signature row", err)
		}
		sigs = append(sigs, mapping.ToDomainSignature(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating signature rows", err)
	}
	return sigs, nil
}
