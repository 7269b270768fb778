package pgsql

import (
	portsrepo "github.com/SscSPs/bizdoc_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:     &BaseRepository{Pool: dbPool},
		DocumentRepo:  newPgxDocumentRepository(dbPool),
		TokenRepo:     newPgxAccessTokenRepository(dbPool),
		SignatureRepo: newPgxSignatureRepository(dbPool),
		AuditRepo:     newPgxAuditLogRepository(dbPool),
	}
}
