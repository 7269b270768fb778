package services

import (
	"context"
	"time"

	"github.com/SscSPs/bizdoc_app/internal/core/domain"
)

// AccessTokenSvc mints and checks the single-use links handed to recipients
type AccessTokenSvc interface {
	// Issue generates a token bound to one document.
	// Returns the raw token (only shown once) and the stored record.
	Issue(ctx context.Context, entityType domain.DocumentType, entityID string, ttl time.Duration, issuedBy string) (string, *domain.AccessToken, error)

	// Validate checks a raw token against the entity it claims to authorize without side effects.
	Validate(ctx context.Context, rawToken string, entityType domain.DocumentType, entityID string) error

	// Resolve validates a raw token for any entity of entityType and returns its record.
	Resolve(ctx context.Context, rawToken string, entityType domain.DocumentType) (*domain.AccessToken, error)

	// Consume spends the token. Under concurrent calls exactly one succeeds.
	Consume(ctx context.Context, rawToken string) error
}
