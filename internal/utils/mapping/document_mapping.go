package mapping

import (
	"github.com/SscSPs/bizdoc_app/internal/core/domain"
	"github.com/SscSPs/bizdoc_app/internal/models"
)

func toModelParty(p domain.Party) models.Party {
	return models.Party{
		Name:           p.Name,
		Company:        p.Company,
		Email:          p.Email,
		Phone:          p.Phone,
		Address:        p.Address,
		BusinessNumber: p.BusinessNumber,
	}
}

func toDomainParty(p models.Party) domain.Party {
	return domain.Party{
		Name:           p.Name,
		Company:        p.Company,
		Email:          p.Email,
		Phone:          p.Phone,
		Address:        p.Address,
		BusinessNumber: p.BusinessNumber,
	}
}

// ToModelDocument converts a domain Document to a model Document
func ToModelDocument(d domain.Document) models.Document {
	items := make([]models.LineItem, len(d.Items))
	for i, item := range d.Items {
		items[i] = models.LineItem{
			Name:        item.Name,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		}
	}
	return models.Document{
		DocumentID:     d.DocumentID,
		OwnerID:        d.OwnerID,
		DocumentType:   string(d.Type),
		Status:         string(d.Status),
		Title:          d.Title,
		Client:         toModelParty(d.Client),
		Supplier:       toModelParty(d.Supplier),
		Items:          items,
		TaxRate:        d.Pricing.TaxRate,
		DiscountAmount: d.Pricing.DiscountAmount,
		DiscountRate:   d.Pricing.DiscountRate,
		Subtotal:       d.Subtotal,
		Tax:            d.Tax,
		Discount:       d.Discount,
		Total:          d.Total,
		ExpiresAt:      d.ExpiresAt,
		SourceQuoteID:  d.SourceQuoteID,
		Notes:          d.Notes,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDocument converts a model Document to a domain Document
func ToDomainDocument(m models.Document) domain.Document {
	items := make([]domain.LineItem, len(m.Items))
	for i, item := range m.Items {
		items[i] = domain.LineItem{
			Name:        item.Name,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		}
	}
	return domain.Document{
		DocumentID: m.DocumentID,
		OwnerID:    m.OwnerID,
		Type:       domain.DocumentType(m.DocumentType),
		Status:     domain.DocumentStatus(m.Status),
		Title:      m.Title,
		Client:     toDomainParty(m.Client),
		Supplier:   toDomainParty(m.Supplier),
		Items:      items,
		Pricing: domain.Pricing{
			TaxRate:        m.TaxRate,
			DiscountAmount: m.DiscountAmount,
			DiscountRate:   m.DiscountRate,
		},
		Subtotal:      m.Subtotal,
		Tax:           m.Tax,
		Discount:      m.Discount,
		Total:         m.Total,
		ExpiresAt:     m.ExpiresAt,
		SourceQuoteID: m.SourceQuoteID,
		Notes:         m.Notes,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainDocumentSlice converts a slice of model Documents to a slice of domain Documents
func ToDomainDocumentSlice(ms []models.Document) []domain.Document {
	ds := make([]domain.Document, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDocument(m)
	}
	return ds
}
