package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TxManager     TransactionManager
	DocumentRepo  DocumentRepositoryFacade
	TokenRepo     AccessTokenRepository
	SignatureRepo SignatureRepository
	AuditRepo     AuditLogRepository
}
