package services

import (
	"context"
	"time"

	"github.com/SscSPs/bizdoc_app/internal/core/domain"
	"github.com/SscSPs/bizdoc_app/internal/dto"
)

// DocumentReaderSvc defines owner read operations on quotes and contracts
type DocumentReaderSvc interface {
	// GetDocument retrieves a document the user owns.
	GetDocument(ctx context.Context, docType domain.DocumentType, documentID string, userID string) (*domain.Document, error)

	// ListDocuments retrieves a page of the user's documents of one type.
	ListDocuments(ctx context.Context, docType domain.DocumentType, userID string, params dto.ListDocumentsParams) ([]domain.Document, *string, error)

	// ListSignatures returns the signatures captured on a document the user owns.
	ListSignatures(ctx context.Context, docType domain.DocumentType, documentID string, userID string) ([]domain.Signature, error)
}

// DocumentWriterSvc defines owner edits, all restricted to drafts
type DocumentWriterSvc interface {
	// CreateDocument persists a new draft with totals computed server-side.
	CreateDocument(ctx context.Context, docType domain.DocumentType, req dto.CreateDocumentRequest, userID string) (*domain.Document, error)

	// UpdateDocument changes a draft's fields and recomputes its totals.
	UpdateDocument(ctx context.Context, docType domain.DocumentType, documentID string, req dto.UpdateDocumentRequest, userID string) (*domain.Document, error)

	// DeleteDocument removes a draft.
	DeleteDocument(ctx context.Context, docType domain.DocumentType, documentID string, userID string) error
}

// DocumentLifecycleSvc defines owner and system driven transitions
type DocumentLifecycleSvc interface {
	// SendDocument moves a draft to sent and mints the recipient link.
	SendDocument(ctx context.Context, docType domain.DocumentType, documentID string, userID string) (*SentDocument, error)

	// CompleteContract moves a signed contract to completed.
	CompleteContract(ctx context.Context, contractID string, userID string) (*domain.Document, error)

	// RequestPayment notifies the client that payment for a signed contract is due.
	RequestPayment(ctx context.Context, contractID string, userID string) error

	// ConvertQuoteToContract creates the single draft contract derived from an approved quote.
	ConvertQuoteToContract(ctx context.Context, quoteID string, userID string) (*domain.Document, error)

	// ExpireDueQuotes moves sent quotes past their validity to expired and returns how many moved.
	ExpireDueQuotes(ctx context.Context, now time.Time) (int, error)
}

// DocumentSvcFacade combines all owner-side document operations
type DocumentSvcFacade interface {
	DocumentReaderSvc
	DocumentWriterSvc
	DocumentLifecycleSvc
}

// SentDocument is the result of a send. PublicURL is only available here.
type SentDocument struct {
	Document       *domain.Document
	PublicURL      string
	TokenExpiresAt time.Time
}
