package dto

import (
	"time"

	"github.com/SscSPs/bizdoc_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PublicApproveRequest is posted by a recipient accepting a quote or signing a contract.
type PublicApproveRequest struct {
	SignatureData string `json:"signature_data"`
	SignerName    string `json:"signer_name" binding:"max=200"`
	SignerEmail   string `json:"signer_email" binding:"omitempty,email"`
}

// PublicRejectRequest is posted by a recipient declining a document.
type PublicRejectRequest struct {
	Reason string `json:"reason" binding:"max=1000"`
}

// PublicDocumentResponse is what an anonymous recipient sees. Owner identifiers are omitted.
type PublicDocumentResponse struct {
	Type           domain.DocumentType   `json:"type"`
	Status         domain.DocumentStatus `json:"status"`
	Title          string                `json:"title"`
	Client         domain.Party          `json:"client"`
	Supplier       domain.Party          `json:"supplier"`
	Items          []domain.LineItem     `json:"items"`
	Subtotal       decimal.Decimal       `json:"subtotal"`
	Tax            decimal.Decimal       `json:"tax"`
	Discount       decimal.Decimal       `json:"discount"`
	Total          decimal.Decimal       `json:"total"`
	ExpiresAt      *time.Time            `json:"expiresAt,omitempty"`
	Notes          string                `json:"notes,omitempty"`
	AllowedActions []domain.Action       `json:"allowedActions"`
}

// PublicActionResponse acknowledges a recipient decision.
type PublicActionResponse struct {
	Status domain.DocumentStatus `json:"status"`
}

// PublicUnavailableMessage is the single message shown for every unusable link.
const PublicUnavailableMessage = "this document is no longer available"

// ToPublicDocumentResponse converts a document for recipient display.
func ToPublicDocumentResponse(doc *domain.Document) PublicDocumentResponse {
	actions := domain.AllowedActions(*doc, domain.RoleRecipient)
	if actions == nil {
		actions = []domain.Action{}
	}
	return PublicDocumentResponse{
		Type:           doc.Type,
		Status:         doc.Status,
		Title:          doc.Title,
		Client:         doc.Client,
		Supplier:       doc.Supplier,
		Items:          doc.Items,
		Subtotal:       doc.Subtotal,
		Tax:            doc.Tax,
		Discount:       doc.Discount,
		Total:          doc.Total,
		ExpiresAt:      doc.ExpiresAt,
		Notes:          doc.Notes,
		AllowedActions: actions,
	}
}
