package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// NotificationKind names the lifecycle event a notification announces.
type NotificationKind string

const (
	NotificationQuoteSent        NotificationKind = "quote.sent"
	NotificationQuoteApproved    NotificationKind = "quote.approved"
	NotificationQuoteRejected    NotificationKind = "quote.rejected"
	NotificationContractSent     NotificationKind = "contract.sent"
	NotificationContractSigned   NotificationKind = "contract.signed"
	NotificationContractRejected NotificationKind = "contract.rejected"
	NotificationPaymentRequested NotificationKind = "payment.requested"
	NotificationPaymentConfirmed NotificationKind = "payment.confirmed"
)

// NotificationAudience says who the message is meant for.
type NotificationAudience string

const (
	AudienceRecipient NotificationAudience = "recipient"
	AudienceOwner     NotificationAudience = "owner"
)

// Notification is handed to the dispatch gateway after a transition commits.
type Notification struct {
	ID           string               `json:"id"`
	Kind         NotificationKind     `json:"kind"`
	Audience     NotificationAudience `json:"audience"`
	DocumentType DocumentType         `json:"documentType"`
	DocumentID   string               `json:"documentID"`
	OwnerID      string               `json:"ownerID"`
	Recipient    Party                `json:"recipient"`
	PublicURL    string               `json:"publicURL,omitempty"`
	Title        string               `json:"title"`
	Total        decimal.Decimal      `json:"total"`
	OccurredAt   time.Time            `json:"occurredAt"`
	Data         map[string]string    `json:"data,omitempty"`
}

// NotificationKindFor returns the event announced when a document of
// type t reaches status s.
func NotificationKindFor(t DocumentType, s DocumentStatus) (NotificationKind, bool) {
	switch {
	case t == DocumentTypeQuote && s == StatusSent:
		return NotificationQuoteSent, true
	case t == DocumentTypeQuote && s == StatusApproved:
		return NotificationQuoteApproved, true
	case t == DocumentTypeQuote && s == StatusRejected:
		return NotificationQuoteRejected, true
	case t == DocumentTypeContract && s == StatusSent:
		return NotificationContractSent, true
	case t == DocumentTypeContract && s == StatusSigned:
		return NotificationContractSigned, true
	case t == DocumentTypeContract && s == StatusCancelled:
		return NotificationContractRejected, true
	case t == DocumentTypeContract && s == StatusCompleted:
		return NotificationPaymentConfirmed, true
	}
	return "", false
}
