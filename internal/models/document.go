package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Party is stored as JSONB in the client and supplier columns.
type Party struct {
	Name           string `json:"name"`
	Company        string `json:"company,omitempty"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Address        string `json:"address,omitempty"`
	BusinessNumber string `json:"business_number,omitempty"`
}

// LineItem is stored as an element of the items JSONB array.
type LineItem struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// Document represents a row of the documents table.
type Document struct {
	DocumentID     string           `db:"document_id"`
	OwnerID        string           `db:"owner_id"`
	DocumentType   string           `db:"document_type"`
	Status         string           `db:"status"`
	Title          string           `db:"title"`
	Client         Party            `db:"client"`
	Supplier       Party            `db:"supplier"`
	Items          []LineItem       `db:"items"`
	TaxRate        decimal.Decimal  `db:"tax_rate"`
	DiscountAmount *decimal.Decimal `db:"discount_amount"`
	DiscountRate   *decimal.Decimal `db:"discount_rate"`
	Subtotal       decimal.Decimal  `db:"subtotal"`
	Tax            decimal.Decimal  `db:"tax"`
	Discount       decimal.Decimal  `db:"discount"`
	Total          decimal.Decimal  `db:"total"`
	ExpiresAt      *time.Time       `db:"expires_at"`
	SourceQuoteID  *string          `db:"source_quote_id"`
	Notes          string           `db:"notes"`
	AuditFields
}
