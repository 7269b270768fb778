package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType distinguishes the two document kinds governed by the state machine.
type DocumentType string

const (
	DocumentTypeQuote    DocumentType = "quote"
	DocumentTypeContract DocumentType = "contract"
)

// Valid reports whether t is a known document type.
func (t DocumentType) Valid() bool {
	return t == DocumentTypeQuote || t == DocumentTypeContract
}

// DocumentStatus is the lifecycle state of a document.
type DocumentStatus string

const (
	StatusDraft     DocumentStatus = "draft"
	StatusSent      DocumentStatus = "sent"
	StatusApproved  DocumentStatus = "approved"  // quote only
	StatusRejected  DocumentStatus = "rejected"  // quote only
	StatusExpired   DocumentStatus = "expired"   // quote only
	StatusSigned    DocumentStatus = "signed"    // contract only
	StatusCancelled DocumentStatus = "cancelled" // contract only
	StatusCompleted DocumentStatus = "completed" // contract only
)

// IsTerminal reports whether no further action is legal from s.
func (s DocumentStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusRejected, StatusCancelled, StatusExpired:
		return true
	}
	return false
}

// Party is one side of a document (the client receiving it or the supplier issuing it).
type Party struct {
	Name           string `json:"name"`
	Company        string `json:"company,omitempty"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Address        string `json:"address,omitempty"`
	BusinessNumber string `json:"businessNumber,omitempty"`
}

// LineItem is a single priced row of a document. Amount is always derived.
type LineItem struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Amount      decimal.Decimal `json:"amount"`
}

// Document is a Quote or a Contract.
type Document struct {
	DocumentID    string          `json:"documentID"`
	OwnerID       string          `json:"ownerID"`
	Type          DocumentType    `json:"type"`
	Status        DocumentStatus  `json:"status"`
	Title         string          `json:"title"`
	Client        Party           `json:"client"`
	Supplier      Party           `json:"supplier"`
	Items         []LineItem      `json:"items"`
	Pricing       Pricing         `json:"pricing"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Discount      decimal.Decimal `json:"discount"`
	Total         decimal.Decimal `json:"total"`
	ExpiresAt     *time.Time      `json:"expiresAt,omitempty"` // quote validity
	SourceQuoteID *string         `json:"sourceQuoteID,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	AuditFields
}

// IsOwnedBy reports whether userID owns the document.
func (d *Document) IsOwnedBy(userID string) bool {
	return userID != "" && d.OwnerID == userID
}

// IsEditable reports whether content fields may still be changed.
func (d *Document) IsEditable() bool {
	return d.Status == StatusDraft
}

// Clone returns a deep copy so snapshots taken for audit never alias live data.
func (d Document) Clone() Document {
	c := d
	if d.Items != nil {
		c.Items = make([]LineItem, len(d.Items))
		copy(c.Items, d.Items)
	}
	c.Pricing = d.Pricing.clone()
	if d.ExpiresAt != nil {
		t := *d.ExpiresAt
		c.ExpiresAt = &t
	}
	if d.SourceQuoteID != nil {
		id := *d.SourceQuoteID
		c.SourceQuoteID = &id
	}
	return c
}

// SetItems replaces the line items and recomputes every derived amount and total.
func (d *Document) SetItems(items []LineItem) error {
	normalized := make([]LineItem, len(items))
	for i, item := range items {
		normalized[i] = item.Normalized()
	}
	totals, err := CalculateTotals(normalized, d.Pricing)
	if err != nil {
		return err
	}
	d.Items = normalized
	d.applyTotals(totals)
	return nil
}

// SetPricing replaces the pricing rules and recomputes totals.
func (d *Document) SetPricing(p Pricing) error {
	totals, err := CalculateTotals(d.Items, p)
	if err != nil {
		return err
	}
	d.Pricing = p
	d.applyTotals(totals)
	return nil
}

// Recalculate recomputes derived amounts from the current items and pricing.
func (d *Document) Recalculate() error {
	return d.SetItems(d.Items)
}

func (d *Document) applyTotals(t Totals) {
	d.Subtotal = t.Subtotal
	d.Tax = t.Tax
	d.Discount = t.Discount
	d.Total = t.Total
}

// DocumentFilter narrows an owner's document listing.
type DocumentFilter struct {
	Type      DocumentType
	Status    DocumentStatus
	Limit     int
	NextToken *string
}
