package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bizdoc_app/internal/core/domain"
)

// DocumentReader defines read operations for quotes and contracts
type DocumentReader interface {
	// FindDocumentByID retrieves a document by its unique identifier.
	FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)

	// ListDocuments retrieves a page of an owner's documents, newest first.
	// It returns the documents, a token for the next page, and an error.
	ListDocuments(ctx context.Context, ownerID string, filter domain.DocumentFilter) ([]domain.Document, *string, error)

	// FindContractBySourceQuote returns the contract derived from quoteID, if any.
	FindContractBySourceQuote(ctx context.Context, quoteID string) (*domain.Document, error)

	// ListExpiredSentQuotes returns sent quotes whose validity ended at or before now.
	ListExpiredSentQuotes(ctx context.Context, now time.Time, limit int) ([]domain.Document, error)
}

// DocumentWriter defines write operations for quotes and contracts.
// Every update conditions on the status the caller last read.
type DocumentWriter interface {
	// SaveDocument inserts a new document.
	SaveDocument(ctx context.Context, doc domain.Document) error

	// UpdateDocumentContent rewrites the editable fields of doc if its stored status is still expectedStatus.
	UpdateDocumentContent(ctx context.Context, doc domain.Document, expectedStatus domain.DocumentStatus) error

	// UpdateDocumentStatus moves a document from one status to another.
	// Returns apperrors.ErrConflict if the stored status is no longer from.
	UpdateDocumentStatus(ctx context.Context, documentID string, from, to domain.DocumentStatus, updatedBy string, updatedAt time.Time) error

	// DeleteDocument removes a document if its stored status is still expectedStatus.
	DeleteDocument(ctx context.Context, documentID string, expectedStatus domain.DocumentStatus) error
}

// DocumentRepositoryFacade combines all document-related repository interfaces
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
}
