package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bizdoc_app/internal/core/domain"
)

// AccessTokenRepository defines the interface for access token data access operations
type AccessTokenRepository interface {
	// Create persists a new access token
	Create(ctx context.Context, token *domain.AccessToken) error

	// FindByHash finds a token by the digest of its raw value
	FindByHash(ctx context.Context, tokenHash string) (*domain.AccessToken, error)

	// Consume marks the token used if it is still unused and unexpired at now.
	// It reports whether this call was the one that consumed it.
	Consume(ctx context.Context, tokenHash string, now time.Time) (bool, error)
}
