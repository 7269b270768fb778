package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/bizdoc_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Decimal places kept for each kind of value. They match the documents table:
// money columns are NUMERIC(20,2) and rate columns NUMERIC(6,4).
const (
	// moneyPlaces is the number of decimal places monetary results are rounded to (KRW has none).
	moneyPlaces     = 0
	unitPricePlaces = 2
	quantityPlaces  = 4
	ratePlaces      = 4
)

// DefaultTaxRate is the VAT rate applied when a document does not carry its own rate.
var DefaultTaxRate = decimal.RequireFromString("0.10")

// Pricing holds the rules used to derive tax and discount from the subtotal.
// At most one of DiscountAmount and DiscountRate is set.
type Pricing struct {
	TaxRate        decimal.Decimal  `json:"taxRate"`
	DiscountAmount *decimal.Decimal `json:"discountAmount,omitempty"`
	DiscountRate   *decimal.Decimal `json:"discountRate,omitempty"`
}

func (p Pricing) clone() Pricing {
	c := p
	if p.DiscountAmount != nil {
		v := *p.DiscountAmount
		c.DiscountAmount = &v
	}
	if p.DiscountRate != nil {
		v := *p.DiscountRate
		c.DiscountRate = &v
	}
	return c
}

// Totals are the derived monetary values of a document.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

// NewLineItem builds a line item with its amount derived from quantity and unit price.
func NewLineItem(name, description string, quantity, unitPrice decimal.Decimal) LineItem {
	return LineItem{
		Name:        name,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
	}.Normalized()
}

// Normalized returns the item with Amount recomputed as Quantity * UnitPrice,
// rounded to whole currency units.
func (li LineItem) Normalized() LineItem {
	li.Name = strings.TrimSpace(li.Name)
	li.Amount = li.Quantity.Mul(li.UnitPrice).Round(moneyPlaces)
	return li
}

// fitsPlaces reports whether d needs no more than places decimal places.
func fitsPlaces(d decimal.Decimal, places int32) bool {
	return d.Equal(d.Round(places))
}

// Validate checks a single line item.
func (li LineItem) Validate() error {
	if li.Name == "" {
		return fmt.Errorf("%w: item name is required", apperrors.ErrValidation)
	}
	if !li.Quantity.IsPositive() {
		return fmt.Errorf("%w: quantity of item %q must be positive", apperrors.ErrValidation, li.Name)
	}
	if li.UnitPrice.IsNegative() {
		return fmt.Errorf("%w: unit price of item %q must not be negative", apperrors.ErrValidation, li.Name)
	}
	if !fitsPlaces(li.Quantity, quantityPlaces) {
		return fmt.Errorf("%w: quantity of item %q allows at most %d decimal places", apperrors.ErrValidation, li.Name, quantityPlaces)
	}
	if !fitsPlaces(li.UnitPrice, unitPricePlaces) {
		return fmt.Errorf("%w: unit price of item %q allows at most %d decimal places", apperrors.ErrValidation, li.Name, unitPricePlaces)
	}
	return nil
}

// Validate checks the pricing rules in isolation.
func (p Pricing) Validate() error {
	one := decimal.NewFromInt(1)
	if p.TaxRate.IsNegative() || p.TaxRate.GreaterThan(one) {
		return fmt.Errorf("%w: tax rate must be between 0 and 1", apperrors.ErrValidation)
	}
	if !fitsPlaces(p.TaxRate, ratePlaces) {
		return fmt.Errorf("%w: tax rate allows at most %d decimal places", apperrors.ErrValidation, ratePlaces)
	}
	if p.DiscountAmount != nil && p.DiscountRate != nil {
		return fmt.Errorf("%w: set either a discount amount or a discount rate, not both", apperrors.ErrValidation)
	}
	if p.DiscountAmount != nil && p.DiscountAmount.IsNegative() {
		return fmt.Errorf("%w: discount amount must not be negative", apperrors.ErrValidation)
	}
	if p.DiscountAmount != nil && !fitsPlaces(*p.DiscountAmount, moneyPlaces) {
		return fmt.Errorf("%w: discount amount must be in whole currency units", apperrors.ErrValidation)
	}
	if p.DiscountRate != nil && (p.DiscountRate.IsNegative() || p.DiscountRate.GreaterThan(one)) {
		return fmt.Errorf("%w: discount rate must be between 0 and 1", apperrors.ErrValidation)
	}
	if p.DiscountRate != nil && !fitsPlaces(*p.DiscountRate, ratePlaces) {
		return fmt.Errorf("%w: discount rate allows at most %d decimal places", apperrors.ErrValidation, ratePlaces)
	}
	return nil
}

// CalculateTotals derives subtotal, tax, discount and total from the items.
//
// Each line amount is rounded to whole currency units and the subtotal is their
// sum. Tax is computed on the full subtotal and the discount is subtracted from
// the tax-inclusive amount: total = subtotal + tax - discount.
func CalculateTotals(items []LineItem, p Pricing) (Totals, error) {
	if err := p.Validate(); err != nil {
		return Totals{}, err
	}
	subtotal := decimal.Zero
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return Totals{}, err
		}
		subtotal = subtotal.Add(item.Quantity.Mul(item.UnitPrice).Round(moneyPlaces))
	}

	tax := subtotal.Mul(p.TaxRate).Round(moneyPlaces)

	discount := decimal.Zero
	switch {
	case p.DiscountAmount != nil:
		discount = *p.DiscountAmount
	case p.DiscountRate != nil:
		discount = subtotal.Mul(*p.DiscountRate).Round(moneyPlaces)
	}

	gross := subtotal.Add(tax)
	if discount.GreaterThan(gross) {
		return Totals{}, fmt.Errorf("%w: discount %s exceeds total %s", apperrors.ErrValidation, discount, gross)
	}

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Discount: discount,
		Total:    gross.Sub(discount),
	}, nil
}
