package repositories

import (
	"context"

	"github.com/SscSPs/bizdoc_app/internal/core/domain"
)

// SignatureRepository stores append-only signature evidence
type SignatureRepository interface {
	// Save inserts a signature. Signatures are never updated.
	Save(ctx context.Context, sig domain.Signature) error

	// ListByDocument returns a document's signatures in capture order.
	ListByDocument(ctx context.Context, documentID string) ([]domain.Signature, error)
}
