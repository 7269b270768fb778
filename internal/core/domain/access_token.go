package domain

import (
	"time"

	"github.com/SscSPs/bizdoc_app/internal/apperrors"
)

// AccessToken is a single-use, time-bounded capability over exactly one document.
// Only the hash of the raw token is ever stored.
type AccessToken struct {
	AccessTokenID string       `json:"accessTokenID"`
	TokenHash     string       `json:"-"`
	EntityType    DocumentType `json:"entityType"`
	EntityID      string       `json:"entityID"`
	ExpiresAt     time.Time    `json:"expiresAt"`
	UsedAt        *time.Time   `json:"usedAt,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	CreatedBy     string       `json:"createdBy"`
}

// IsExpired reports whether the token deadline has passed at now.
func (t *AccessToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// IsUsed reports whether the token has been consumed.
func (t *AccessToken) IsUsed() bool {
	return t.UsedAt != nil
}

// CheckUsable returns nil iff the token is unused and unexpired at now.
// Usage is checked first so a spent link keeps reporting AlreadyUsed after it expires.
func (t *AccessToken) CheckUsable(now time.Time) error {
	if t.IsUsed() {
		return apperrors.ErrTokenAlreadyUsed
	}
	if t.IsExpired(now) {
		return apperrors.ErrTokenExpired
	}
	return nil
}

// Authorizes reports whether the token is bound to the given entity.
func (t *AccessToken) Authorizes(entityType DocumentType, entityID string) bool {
	return t.EntityType == entityType && (entityID == "" || t.EntityID == entityID)
}
