package services

import (
	"context"

	"github.com/SscSPs/bizdoc_app/internal/core/domain"
)

// CaptureSignatureInput carries everything needed to record a signature.
type CaptureSignatureInput struct {
	DocumentID  string
	SignerType  domain.SignerType
	SignerName  string
	SignerEmail string
	// Payload is a data URI or bare base64 image.
	Payload  string
	Metadata domain.RequestMetadata
}

// SignatureSvc records and lists signature evidence
type SignatureSvc interface {
	// Normalize validates a raw payload and returns it as a data URI with its content type and digest.
	Normalize(payload string) (dataURI string, contentType string, digest string, err error)

	// Capture validates and persists a signature.
	Capture(ctx context.Context, in CaptureSignatureInput) (*domain.Signature, error)

	// ListByDocument returns a document's signatures.
	ListByDocument(ctx context.Context, documentID string) ([]domain.Signature, error)
}
