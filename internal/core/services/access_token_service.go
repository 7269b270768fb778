package services

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/bizdoc_app/internal/apperrors"
	"github.com/SscSPs/bizdoc_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bizdoc_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bizdoc_app/internal/core/ports/services"
	"github.com/SscSPs/bizdoc_app/internal/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

const (
	accessTokenPrefix = "bdt_"
	accessTokenBytes  = 32 // 256 bits
)

// accessTokenService implements the AccessTokenSvc interface
type accessTokenService struct {
	BaseService
	tokenRepo portsrepo.AccessTokenRepository
	audit     portssvc.AuditSvc
}

// NewAccessTokenService creates a new instance of accessTokenService
func NewAccessTokenService(tokenRepo portsrepo.AccessTokenRepository, audit portssvc.AuditSvc, opts ...ServiceOption) portssvc.AccessTokenSvc {
	svc := &accessTokenService{
		tokenRepo: tokenRepo,
		audit:     audit,
	}
	applyOptions(&svc.BaseService, opts)
	return svc
}

var _ portssvc.AccessTokenSvc = (*accessTokenService)(nil)

// Issue generates a new access token for one document. Every attempt, refused
// or not, leaves one audit entry.
func (s *accessTokenService) Issue(ctx context.Context, entityType domain.DocumentType, entityID string, ttl time.Duration, issuedBy string) (string, *domain.AccessToken, error) {
	raw, token, err := s.issue(ctx, entityType, entityID, ttl, issuedBy)

	resourceID := ""
	changes := &domain.AuditChanges{After: map[string]any{"entityType": entityType, "entityID": entityID}}
	if token != nil {
		resourceID = token.AccessTokenID
		changes = &domain.AuditChanges{After: *token}
	}
	recordAudit(ctx, s.audit, auditEntry(domain.AuditActionCreate, domain.RoleOwner, issuedBy,
		domain.ResourceAccessToken, resourceID, changes, err))

	if err != nil {
		return "", nil, err
	}
	// Return the plaintext token (only time it's available) and the token details
	return raw, token, nil
}

// issue returns the token it tried to store even when saving fails, so the
// audit entry can name it.
func (s *accessTokenService) issue(ctx context.Context, entityType domain.DocumentType, entityID string, ttl time.Duration, issuedBy string) (string, *domain.AccessToken, error) {
	if !entityType.Valid() {
		return "", nil, fmt.Errorf("%w: unknown entity type %q", apperrors.ErrValidation, entityType)
	}
	if entityID == "" {
		return "", nil, fmt.Errorf("%w: entity ID is required", apperrors.ErrValidation)
	}
	if ttl <= 0 {
		return "", nil, fmt.Errorf("%w: token lifetime must be positive", apperrors.ErrValidation)
	}

	// Generate a random token
	raw, err := utils.GenerateSecureToken(accessTokenPrefix, accessTokenBytes)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	now := s.Now()
	token := &domain.AccessToken{
		AccessTokenID: uuid.NewString(),
		TokenHash:     hashAccessToken(raw),
		EntityType:    entityType,
		EntityID:      entityID,
		ExpiresAt:     now.Add(ttl),
		CreatedAt:     now,
		CreatedBy:     issuedBy,
	}

	if err := s.tokenRepo.Create(ctx, token); err != nil {
		s.LogError(ctx, err, "Failed to save access token",
			slog.String("entity_type", string(entityType)),
			slog.String("entity_id", entityID))
		return "", token, fmt.Errorf("failed to save token: %w", err)
	}
	return raw, token, nil
}

// Validate checks a raw token against the document it claims to authorize.
func (s *accessTokenService) Validate(ctx context.Context, rawToken string, entityType domain.DocumentType, entityID string) error {
	token, err := s.lookup(ctx, rawToken)
	if err != nil {
		return err
	}
	if !token.Authorizes(entityType, entityID) {
		return apperrors.ErrTokenEntityMismatch
	}
	return token.CheckUsable(s.Now())
}

func (s *accessTokenService) Resolve(ctx context.Context, rawToken string, entityType domain.DocumentType) (*domain.AccessToken, error) {
	token, err := s.lookup(ctx, rawToken)
	if err != nil {
		return nil, err
	}
	if !token.Authorizes(entityType, "") {
		return nil, apperrors.ErrTokenEntityMismatch
	}
	if err := token.CheckUsable(s.Now()); err != nil {
		return nil, err
	}
	return token, nil
}

// Consume spends the token. The conditional update in the repository decides
// the winner; a loser re-reads the token to report why it lost. Unknown tokens
// are audited too, with an empty resource ID.
func (s *accessTokenService) Consume(ctx context.Context, rawToken string) (err error) {
	now := s.Now()
	var token *domain.AccessToken
	defer func() {
		resourceID := ""
		var changes *domain.AuditChanges
		if token != nil {
			resourceID = token.AccessTokenID
			changes = &domain.AuditChanges{Before: map[string]any{"usedAt": token.UsedAt}, After: map[string]any{"usedAt": now}}
		}
		recordAudit(ctx, s.audit, auditEntry(domain.AuditActionUpdate, domain.RoleRecipient, "",
			domain.ResourceAccessToken, resourceID, changes, err))
	}()

	token, err = s.lookup(ctx, rawToken)
	if err != nil {
		return err
	}
	if err = token.CheckUsable(now); err != nil {
		return err
	}
	return s.consume(ctx, token, now)
}

func (s *accessTokenService) consume(ctx context.Context, token *domain.AccessToken, now time.Time) error {
	won, err := s.tokenRepo.Consume(ctx, token.TokenHash, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to consume access token", slog.String("access_token_id", token.AccessTokenID))
		return fmt.Errorf("failed to consume token: %w", err)
	}
	if won {
		return nil
	}

	current, err := s.tokenRepo.FindByHash(ctx, token.TokenHash)
	if err != nil {
		return err
	}
	if err := current.CheckUsable(now); err != nil {
		return err
	}
	// Unused and unexpired yet not updated: another caller won between our reads.
	return apperrors.ErrTokenAlreadyUsed
}

func (s *accessTokenService) lookup(ctx context.Context, rawToken string) (*domain.AccessToken, error) {
	if !strings.HasPrefix(rawToken, accessTokenPrefix) || len(rawToken) <= len(accessTokenPrefix) {
		return nil, apperrors.ErrTokenNotFound
	}
	token, err := s.tokenRepo.FindByHash(ctx, hashAccessToken(rawToken))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrTokenNotFound) {
			return nil, apperrors.ErrTokenNotFound
		}
		s.LogError(ctx, err, "Failed to look up access token")
		return nil, err
	}
	return token, nil
}

// hashAccessToken returns the hex BLAKE2b-256 digest stored in place of the raw token.
func hashAccessToken(raw string) string {
	sum := blake2b.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
