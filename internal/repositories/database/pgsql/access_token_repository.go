package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/bizdoc_app/internal/apperrors"
	"github.com/SscSPs/bizdoc_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bizdoc_app/internal/core/ports/repositories"
	"github.com/SscSPs/bizdoc_app/internal/models"
	"github.com/SscSPs/bizdoc_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxAccessTokenRepository persists recipient access tokens by hash.
type PgxAccessTokenRepository struct {
	BaseRepository
}

// newPgxAccessTokenRepository creates a new instance of PgxAccessTokenRepository
func newPgxAccessTokenRepository(db *pgxpool.Pool) *PgxAccessTokenRepository {
	return &PgxAccessTokenRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.AccessTokenRepository = (*PgxAccessTokenRepository)(nil)

const (
	accessTokensTable = "access_tokens"

	selectAccessTokenFields = `
		access_token_id, token_hash, entity_type, entity_id,
		expires_at, used_at, created_at, created_by
	`

	insertAccessTokenQuery = `
		INSERT INTO ` + accessTokensTable + ` (
			access_token_id, token_hash, entity_type, entity_id, expires_at, created_at, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	findAccessTokenByHashQuery = `
		SELECT ` + selectAccessTokenFields + `
		FROM ` + accessTokensTable + `
		WHERE token_hash = $1
	`

	// Only the first caller sees a row affected.
	consumeAccessTokenQuery = `
		UPDATE ` + accessTokensTable + `
		SET used_at = $2
		WHERE token_hash = $1 AND used_at IS NULL AND expires_at > $2
	`
)

// Create persists a new access token
func (r *PgxAccessTokenRepository) Create(ctx context.Context, token *domain.AccessToken) error {
	if token == nil {
		return errors.New("token cannot be nil")
	}

	m := mapping.ToModelAccessToken(*token)
	_, err := r.conn(ctx).Exec(ctx, insertAccessTokenQuery,
		m.AccessTokenID,
		m.TokenHash,
		m.EntityType,
		m.EntityID,
		m.ExpiresAt,
		m.CreatedAt,
		m.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert access token", err)
	}
	return nil
}

// FindByHash finds a token by its hash
func (r *PgxAccessTokenRepository) FindByHash(ctx context.Context, tokenHash string) (*domain.AccessToken, error) {
	if tokenHash == "" {
		return nil, apperrors.ErrTokenNotFound
	}

	m, err := scanAccessToken(r.conn(ctx).QueryRow(ctx, findAccessTokenByHashQuery, tokenHash))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTokenNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find access token", err)
	}

	token := mapping.ToDomainAccessToken(*m)
	return &token, nil
}

// Consume marks a token used if it is still usable at now
func (r *PgxAccessTokenRepository) Consume(ctx context.Context, tokenHash string, now time.Time) (bool, error) {
	tag, err := r.conn(ctx).Exec(ctx, consumeAccessTokenQuery, tokenHash, now)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to consume access token", err)
	}
	return tag.RowsAffected() == 1, nil
}

// scanAccessToken scans an access token from a row
func scanAccessToken(row pgx.Row) (*models.AccessToken, error) {
	var token models.AccessToken
	err := row.Scan(
		&token.AccessTokenID,
		&token.TokenHash,
		&token.EntityType,
		&token.EntityID,
		&token.ExpiresAt,
		&token.UsedAt,
		&token.CreatedAt,
		&token.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &token, nil
}
