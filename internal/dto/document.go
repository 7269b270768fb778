package dto

import (
	"time"

	"github.com/SscSPs/bizdoc_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PartyRequest describes the client or supplier of a document.
type PartyRequest struct {
	Name           string `json:"name" binding:"required,max=200"`
	Company        string `json:"company" binding:"max=200"`
	Email          string `json:"email" binding:"omitempty,email"`
	Phone          string `json:"phone" binding:"max=50"`
	Address        string `json:"address" binding:"max=500"`
	BusinessNumber string `json:"businessNumber" binding:"max=50"`
}

// LineItemRequest is one priced row. Amount is accepted as a hint and recomputed.
type LineItemRequest struct {
	Name        string           `json:"name" binding:"required,max=200"`
	Description string           `json:"description" binding:"max=1000"`
	Quantity    decimal.Decimal  `json:"quantity" binding:"decimal_gt0"`
	UnitPrice   decimal.Decimal  `json:"unitPrice" binding:"decimal_gte0"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
}

// TotalsHint carries totals computed by the client. They are only compared, never stored.
type TotalsHint struct {
	Subtotal *decimal.Decimal `json:"subtotal,omitempty"`
	Tax      *decimal.Decimal `json:"tax,omitempty"`
	Total    *decimal.Decimal `json:"total,omitempty"`
}

// CreateDocumentRequest defines the data needed to create a quote or contract.
type CreateDocumentRequest struct {
	Title          string            `json:"title" binding:"required,max=200"`
	Client         PartyRequest      `json:"client" binding:"required"`
	Supplier       PartyRequest      `json:"supplier"`
	Items          []LineItemRequest `json:"items" binding:"required,min=1,dive"`
	TaxRate        *decimal.Decimal  `json:"taxRate,omitempty" binding:"omitempty,decimal_gte0"`
	DiscountAmount *decimal.Decimal  `json:"discountAmount,omitempty" binding:"omitempty,decimal_gte0"`
	DiscountRate   *decimal.Decimal  `json:"discountRate,omitempty" binding:"omitempty,decimal_gte0"`
	ExpiresAt      *time.Time        `json:"expiresAt,omitempty"`
	Notes          string            `json:"notes" binding:"max=2000"`
	TotalsHint
}

// UpdateDocumentRequest defines the fields that may change while a document is a draft.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateDocumentRequest struct {
	Title          *string            `json:"title,omitempty" binding:"omitempty,max=200"`
	Client         *PartyRequest      `json:"client,omitempty"`
	Supplier       *PartyRequest      `json:"supplier,omitempty"`
	Items          *[]LineItemRequest `json:"items,omitempty" binding:"omitempty,min=1,dive"`
	TaxRate        *decimal.Decimal   `json:"taxRate,omitempty" binding:"omitempty,decimal_gte0"`
	DiscountAmount *decimal.Decimal   `json:"discountAmount,omitempty" binding:"omitempty,decimal_gte0"`
	DiscountRate   *decimal.Decimal   `json:"discountRate,omitempty" binding:"omitempty,decimal_gte0"`
	ClearDiscount  bool               `json:"clearDiscount,omitempty"`
	ExpiresAt      *time.Time         `json:"expiresAt,omitempty"`
	Notes          *string            `json:"notes,omitempty" binding:"omitempty,max=2000"`
	TotalsHint
}

// ListDocumentsParams defines query parameters for listing documents.
type ListDocumentsParams struct {
	Status    string  `form:"status" binding:"omitempty,oneof=draft sent approved rejected expired signed cancelled completed"`
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// DocumentResponse is the owner's view of a document.
type DocumentResponse struct {
	DocumentID     string                `json:"documentID"`
	Type           domain.DocumentType   `json:"type"`
	Status         domain.DocumentStatus `json:"status"`
	Title          string                `json:"title"`
	Client         domain.Party          `json:"client"`
	Supplier       domain.Party          `json:"supplier"`
	Items          []domain.LineItem     `json:"items"`
	TaxRate        decimal.Decimal       `json:"taxRate"`
	DiscountAmount *decimal.Decimal      `json:"discountAmount,omitempty"`
	DiscountRate   *decimal.Decimal      `json:"discountRate,omitempty"`
	Subtotal       decimal.Decimal       `json:"subtotal"`
	Tax            decimal.Decimal       `json:"tax"`
	Discount       decimal.Decimal       `json:"discount"`
	Total          decimal.Decimal       `json:"total"`
	ExpiresAt      *time.Time            `json:"expiresAt,omitempty"`
	SourceQuoteID  *string               `json:"sourceQuoteID,omitempty"`
	Notes          string                `json:"notes,omitempty"`
	AllowedActions []domain.Action       `json:"allowedActions"`
	CreatedAt      time.Time             `json:"createdAt"`
	CreatedBy      string                `json:"createdBy"`
	LastUpdatedAt  time.Time             `json:"lastUpdatedAt"`
	LastUpdatedBy  string                `json:"lastUpdatedBy"`
}

// ListDocumentsResponse is a page of documents.
type ListDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// SendDocumentResponse is returned once when a document is sent.
// PublicURL embeds the raw access token and cannot be retrieved again.
type SendDocumentResponse struct {
	Document       DocumentResponse `json:"document"`
	PublicURL      string           `json:"publicURL"`
	TokenExpiresAt time.Time        `json:"tokenExpiresAt"`
}

// ToDomainParty converts a PartyRequest.
func (p PartyRequest) ToDomainParty() domain.Party {
	return domain.Party{
		Name:           p.Name,
		Company:        p.Company,
		Email:          p.Email,
		Phone:          p.Phone,
		Address:        p.Address,
		BusinessNumber: p.BusinessNumber,
	}
}

// ToDomainLineItems converts request items, discarding client-supplied amounts.
func ToDomainLineItems(items []LineItemRequest) []domain.LineItem {
	out := make([]domain.LineItem, len(items))
	for i, item := range items {
		out[i] = domain.NewLineItem(item.Name, item.Description, item.Quantity, item.UnitPrice)
	}
	return out
}

// ToDocumentResponse converts a domain.Document to DocumentResponse DTO
func ToDocumentResponse(doc *domain.Document) DocumentResponse {
	actions := domain.AllowedActions(*doc, domain.RoleOwner)
	if actions == nil {
		actions = []domain.Action{}
	}
	items := doc.Items
	if items == nil {
		items = []domain.LineItem{}
	}
	return DocumentResponse{
		DocumentID:     doc.DocumentID,
		Type:           doc.Type,
		Status:         doc.Status,
		Title:          doc.Title,
		Client:         doc.Client,
		Supplier:       doc.Supplier,
		Items:          items,
		TaxRate:        doc.Pricing.TaxRate,
		DiscountAmount: doc.Pricing.DiscountAmount,
		DiscountRate:   doc.Pricing.DiscountRate,
		Subtotal:       doc.Subtotal,
		Tax:            doc.Tax,
		Discount:       doc.Discount,
		Total:          doc.Total,
		ExpiresAt:      doc.ExpiresAt,
		SourceQuoteID:  doc.SourceQuoteID,
		Notes:          doc.Notes,
		AllowedActions: actions,
		CreatedAt:      doc.CreatedAt,
		CreatedBy:      doc.CreatedBy,
		LastUpdatedAt:  doc.LastUpdatedAt,
		LastUpdatedBy:  doc.LastUpdatedBy,
	}
}

// ToListDocumentsResponse converts a page of documents
func ToListDocumentsResponse(docs []domain.Document, nextToken *string) ListDocumentsResponse {
	res := make([]DocumentResponse, len(docs))
	for i := range docs {
		res[i] = ToDocumentResponse(&docs[i])
	}
	return ListDocumentsResponse{Documents: res, NextToken: nextToken}
}
