package mapping

import (
	"github.com/SscSPs/bizdoc_app/internal/core/domain"
	"github.com/SscSPs/bizdoc_app/internal/models"
)

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ToModelAuditLog converts a domain AuditLogEntry to a model AuditLog
func ToModelAuditLog(e domain.AuditLogEntry) models.AuditLog {
	var changes *models.AuditChanges
	if e.Changes != nil {
		changes = &models.AuditChanges{Before: e.Changes.Before, After: e.Changes.After}
	}
	return models.AuditLog{
		AuditLogID:   e.AuditLogID,
		UserID:       nullableString(e.UserID),
		ActorRole:    string(e.ActorRole),
		Action:       string(e.Action),
		ResourceType: e.ResourceType,
		ResourceID:   e.ResourceID,
		Changes:      changes,
		Status:       string(e.Status),
		ErrorMessage: nullableString(e.ErrorMessage),
		Metadata: models.AuditMetadata{
			IPAddress: e.Metadata.IPAddress,
			UserAgent: e.Metadata.UserAgent,
			RequestID: e.Metadata.RequestID,
		},
		Timestamp: e.Timestamp,
	}
}

// ToDomainAuditLog converts a model AuditLog to a domain AuditLogEntry
func ToDomainAuditLog(m models.AuditLog) domain.AuditLogEntry {
	var changes *domain.AuditChanges
	if m.Changes != nil {
		changes = &domain.AuditChanges{Before: m.Changes.Before, After: m.Changes.After}
	}
	return domain.AuditLogEntry{
		AuditLogID:   m.AuditLogID,
		UserID:       derefString(m.UserID),
		ActorRole:    domain.ActorRole(m.ActorRole),
		Action:       domain.AuditAction(m.Action),
		ResourceType: m.ResourceType,
		ResourceID:   m.ResourceID,
		Changes:      changes,
		Status:       domain.AuditStatus(m.Status),
		ErrorMessage: derefString(m.ErrorMessage),
		Metadata: domain.RequestMetadata{
			IPAddress: m.Metadata.IPAddress,
			UserAgent: m.Metadata.UserAgent,
			RequestID: m.Metadata.RequestID,
		},
		Timestamp: m.Timestamp,
	}
}
