package services

import (
	portsrepo "github.com/SscSPs/bizdoc_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bizdoc_app/internal/core/ports/services"
	"github.com/SscSPs/bizdoc_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, dispatcher portssvc.NotificationDispatcher, opts ...ServiceOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The audit ledger first since every other service records into it
	container.Audit = NewAuditService(repos.AuditRepo, AuditConfig{
		Persist: cfg.AuditPersist,
		Async:   cfg.AuditAsync,
	}, opts...)

	container.AccessToken = NewAccessTokenService(repos.TokenRepo, container.Audit, opts...)
	container.Signature = NewSignatureService(repos.SignatureRepo, container.Audit, cfg.SignatureMaxSize, opts...)

	container.Document = NewDocumentService(repos, container.AccessToken, container.Audit, dispatcher, DocumentServiceConfig{
		PublicBaseURL:  cfg.PublicBaseURL,
		AccessTokenTTL: cfg.AccessTokenTTL,
		NotifyTimeout:  cfg.NotifyTimeout,
	}, opts...)

	container.PublicDocument = NewPublicDocumentService(repos, container.AccessToken, container.Signature,
		container.Audit, dispatcher, cfg.NotifyTimeout, opts...)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.DocumentSvcFacade = (*documentService)(nil)
	_ portssvc.PublicDocumentSvc = (*publicDocumentService)(nil)
	_ portssvc.AccessTokenSvc    = (*accessTokenService)(nil)
	_ portssvc.SignatureSvc      = (*signatureService)(nil)
	_ portssvc.AuditSvc          = (*auditService)(nil)
)
