package mapping

import (
	"github.com/SscSPs/bizdoc_app/internal/core/domain"
	"github.com/SscSPs/bizdoc_app/internal/models"
)

// ToModelAccessToken converts a domain AccessToken to a model AccessToken
func ToModelAccessToken(t domain.AccessToken) models.AccessToken {
	return models.AccessToken{
		AccessTokenID: t.AccessTokenID,
		TokenHash:     t.TokenHash,
		EntityType:    string(t.EntityType),
		EntityID:      t.EntityID,
		ExpiresAt:     t.ExpiresAt,
		UsedAt:        t.UsedAt,
		CreatedAt:     t.CreatedAt,
		CreatedBy:     t.CreatedBy,
	}
}

// ToDomainAccessToken converts a model AccessToken to a domain AccessToken
func ToDomainAccessToken(m models.AccessToken) domain.AccessToken {
	return domain.AccessToken{
		AccessTokenID: m.AccessTokenID,
		TokenHash:     m.TokenHash,
		EntityType:    domain.DocumentType(m.EntityType),
		EntityID:      m.EntityID,
		ExpiresAt:     m.ExpiresAt,
		UsedAt:        m.UsedAt,
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
	}
}
