package services

import (
	"context"

	"github.com/SscSPs/bizdoc_app/internal/core/domain"
)

// RecipientDecision is what an anonymous recipient submits with a token.
type RecipientDecision struct {
	SignatureData string
	SignerName    string
	SignerEmail   string
	Reason        string
}

// PublicDocumentSvc serves recipients holding an access token
type PublicDocumentSvc interface {
	// ViewDocument returns the document a token points at. It never consumes the token.
	ViewDocument(ctx context.Context, docType domain.DocumentType, rawToken string) (*domain.Document, error)

	// Approve accepts a quote or signs a contract and spends the token.
	Approve(ctx context.Context, docType domain.DocumentType, rawToken string, decision RecipientDecision) (*domain.Document, error)

	// Reject declines a quote or cancels a contract and spends the token.
	Reject(ctx context.Context, docType domain.DocumentType, rawToken string, decision RecipientDecision) (*domain.Document, error)
}

// NotificationDispatcher delivers lifecycle notifications to an external channel
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, n domain.Notification) error
}
