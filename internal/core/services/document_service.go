package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/bizdoc_app/internal/apperrors"
	"github.com/SscSPs/bizdoc_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bizdoc_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bizdoc_app/internal/core/ports/services"
	"github.com/SscSPs/bizdoc_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultAccessTokenTTL = 7 * 24 * time.Hour
	expirySweepBatch      = 100
	systemActorID         = "system"
)

// DocumentServiceConfig holds the settings the document service reads from configuration.
type DocumentServiceConfig struct {
	// PublicBaseURL prefixes the recipient links, e.g. https://app.example.com.
	PublicBaseURL  string
	AccessTokenTTL time.Duration
	NotifyTimeout  time.Duration
}

// documentService implements the DocumentSvcFacade interface
type documentService struct {
	BaseService
	txm     portsrepo.TransactionManager
	docRepo portsrepo.DocumentRepositoryFacade
	sigRepo portsrepo.SignatureRepository
	tokens  portssvc.AccessTokenSvc
	audit   portssvc.AuditSvc
	notify  notificationSender
	cfg     DocumentServiceConfig
}

// NewDocumentService creates the owner-side document service.
func NewDocumentService(
	repos portsrepo.RepositoryProvider,
	tokens portssvc.AccessTokenSvc,
	audit portssvc.AuditSvc,
	dispatcher portssvc.NotificationDispatcher,
	cfg DocumentServiceConfig,
	opts ...ServiceOption,
) portssvc.DocumentSvcFacade {
	if cfg.AccessTokenTTL <= 0 {
		cfg.AccessTokenTTL = defaultAccessTokenTTL
	}
	cfg.PublicBaseURL = strings.TrimRight(cfg.PublicBaseURL, "/")
	svc := &documentService{
		txm:     repos.TxManager,
		docRepo: repos.DocumentRepo,
		sigRepo: repos.SignatureRepo,
		tokens:  tokens,
		audit:   audit,
		notify:  newNotificationSender(dispatcher, cfg.NotifyTimeout),
		cfg:     cfg,
	}
	applyOptions(&svc.BaseService, opts)
	return svc
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

// --- Reads ---

func (s *documentService) GetDocument(ctx context.Context, docType domain.DocumentType, documentID string, userID string) (*domain.Document, error) {
	return s.loadOwned(ctx, docType, documentID, userID)
}

func (s *documentService) ListDocuments(ctx context.Context, docType domain.DocumentType, userID string, params dto.ListDocumentsParams) ([]domain.Document, *string, error) {
	if !docType.Valid() {
		return nil, nil, fmt.Errorf("%w: unknown document type %q", apperrors.ErrValidation, docType)
	}
	filter := domain.DocumentFilter{
		Type:      docType,
		Status:    domain.DocumentStatus(params.Status),
		Limit:     params.Limit,
		NextToken: params.NextToken,
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}

	docs, next, err := s.docRepo.ListDocuments(ctx, userID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list documents",
			slog.String("user_id", userID),
			slog.String("type", string(docType)))
		return nil, nil, err
	}
	return docs, next, nil
}

func (s *documentService) ListSignatures(ctx context.Context, docType domain.DocumentType, documentID string, userID string) ([]domain.Signature, error) {
	if _, err := s.loadOwned(ctx, docType, documentID, userID); err != nil {
		return nil, err
	}
	return s.sigRepo.ListByDocument(ctx, documentID)
}

// --- Draft edits ---

func (s *documentService) CreateDocument(ctx context.Context, docType domain.DocumentType, req dto.CreateDocumentRequest, userID string) (_ *domain.Document, err error) {
	documentID := uuid.NewString()
	var changes *domain.AuditChanges
	defer func() {
		recordAudit(ctx, s.audit, auditEntry(domain.AuditActionCreate, domain.RoleOwner, userID,
			string(docType), documentID, changes, err))
	}()

	if !docType.Valid() {
		return nil, fmt.Errorf("%w: unknown document type %q", apperrors.ErrValidation, docType)
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", apperrors.ErrValidation)
	}

	now := s.Now()
	pricing := domain.Pricing{
		TaxRate:        domain.DefaultTaxRate,
		DiscountAmount: req.DiscountAmount,
		DiscountRate:   req.DiscountRate,
	}
	if req.TaxRate != nil {
		pricing.TaxRate = *req.TaxRate
	}

	doc := domain.Document{
		DocumentID: documentID,
		OwnerID:    userID,
		Type:       docType,
		Status:     domain.StatusDraft,
		Title:      title,
		Client:     req.Client.ToDomainParty(),
		Supplier:   req.Supplier.ToDomainParty(),
		Pricing:    pricing,
		Notes:      req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if docType == domain.DocumentTypeQuote && req.ExpiresAt != nil {
		if !req.ExpiresAt.After(now) {
			return nil, fmt.Errorf("%w: quote validity must end in the future", apperrors.ErrValidation)
		}
		expiresAt := req.ExpiresAt.UTC()
		doc.ExpiresAt = &expiresAt
	}
	if err := doc.SetItems(dto.ToDomainLineItems(req.Items)); err != nil {
		return nil, err
	}
	s.warnOnTotalsMismatch(ctx, doc, req.TotalsHint)

	changes = &domain.AuditChanges{After: doc}
	if err = s.docRepo.SaveDocument(ctx, doc); err != nil {
		s.LogError(ctx, err, "Failed to save document", slog.String("document_id", doc.DocumentID))
		return nil, fmt.Errorf("failed to save %s: %w", docType, err)
	}

	s.LogInfo(ctx, "Document created",
		slog.String("document_id", doc.DocumentID),
		slog.String("type", string(docType)),
		slog.String("total", doc.Total.String()))
	return &doc, nil
}

func (s *documentService) UpdateDocument(ctx context.Context, docType domain.DocumentType, documentID string, req dto.UpdateDocumentRequest, userID string) (_ *domain.Document, err error) {
	var changes *domain.AuditChanges
	defer func() {
		recordAudit(ctx, s.audit, auditEntry(domain.AuditActionUpdate, domain.RoleOwner, userID,
			string(docType), documentID, changes, err))
	}()

	current, err := s.loadOwned(ctx, docType, documentID, userID)
	if err != nil {
		return nil, err
	}
	if !current.IsEditable() {
		return nil, fmt.Errorf("%w: %s is %s", apperrors.ErrDocumentLocked, docType, current.Status)
	}

	updated := current.Clone()
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title is required", apperrors.ErrValidation)
		}
		updated.Title = title
	}
	if req.Client != nil {
		updated.Client = req.Client.ToDomainParty()
	}
	if req.Supplier != nil {
		updated.Supplier = req.Supplier.ToDomainParty()
	}
	if req.Notes != nil {
		updated.Notes = *req.Notes
	}
	if req.ExpiresAt != nil && docType == domain.DocumentTypeQuote {
		if !req.ExpiresAt.After(s.Now()) {
			return nil, fmt.Errorf("%w: quote validity must end in the future", apperrors.ErrValidation)
		}
		expiresAt := req.ExpiresAt.UTC()
		updated.ExpiresAt = &expiresAt
	}

	pricing := updated.Pricing
	if req.TaxRate != nil {
		pricing.TaxRate = *req.TaxRate
	}
	if req.ClearDiscount {
		pricing.DiscountAmount, pricing.DiscountRate = nil, nil
	}
	switch {
	case req.DiscountAmount != nil && req.DiscountRate != nil:
		pricing.DiscountAmount, pricing.DiscountRate = req.DiscountAmount, req.DiscountRate
	case req.DiscountAmount != nil:
		pricing.DiscountAmount, pricing.DiscountRate = req.DiscountAmount, nil
	case req.DiscountRate != nil:
		pricing.DiscountAmount, pricing.DiscountRate = nil, req.DiscountRate
	}
	if err := pricing.Validate(); err != nil {
		return nil, err
	}
	updated.Pricing = pricing

	items := updated.Items
	if req.Items != nil {
		items = dto.ToDomainLineItems(*req.Items)
	}
	if err := updated.SetItems(items); err != nil {
		return nil, err
	}
	s.warnOnTotalsMismatch(ctx, updated, req.TotalsHint)

	updated.LastUpdatedAt = s.Now()
	updated.LastUpdatedBy = userID

	changes = &domain.AuditChanges{Before: *current, After: updated}
	if err = s.docRepo.UpdateDocumentContent(ctx, updated, domain.StatusDraft); err != nil {
		s.LogError(ctx, err, "Failed to update document", slog.String("document_id", documentID))
		return nil, err
	}
	return &updated, nil
}

func (s *documentService) DeleteDocument(ctx context.Context, docType domain.DocumentType, documentID string, userID string) (err error) {
	var changes *domain.AuditChanges
	defer func() {
		recordAudit(ctx, s.audit, auditEntry(domain.AuditActionDelete, domain.RoleOwner, userID,
			string(docType), documentID, changes, err))
	}()

	current, err := s.loadOwned(ctx, docType, documentID, userID)
	if err != nil {
		return err
	}
	changes = &domain.AuditChanges{Before: *current}
	if !current.IsEditable() {
		return fmt.Errorf("%w: %s is %s", apperrors.ErrDocumentLocked, docType, current.Status)
	}
	if err = s.docRepo.DeleteDocument(ctx, documentID, domain.StatusDraft); err != nil {
		return err
	}
	s.LogInfo(ctx, "Document deleted", slog.String("document_id", documentID))
	return nil
}

// --- Lifecycle ---

// SendDocument moves a draft to sent and issues the recipient's access token
// in the same transaction, then notifies the recipient.
func (s *documentService) SendDocument(ctx context.Context, docType domain.DocumentType, documentID string, userID string) (*portssvc.SentDocument, error) {
	current, err := s.loadOwnedForChange(ctx, domain.AuditActionSend, string(docType), docType, documentID, userID)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	next, err := domain.Transition(*current, domain.ActionSend, domain.RoleOwner, userID, now)
	if err == nil && current.ExpiresAt != nil && !current.ExpiresAt.After(now) {
		err = fmt.Errorf("%w: quote validity has already ended", apperrors.ErrValidation)
	}
	if err != nil {
		recordAudit(ctx, s.audit, auditEntry(domain.AuditActionSend, domain.RoleOwner, userID,
			string(docType), documentID, nil, err))
		return nil, err
	}

	ttl := s.cfg.AccessTokenTTL
	if current.ExpiresAt != nil {
		if untilExpiry := current.ExpiresAt.Sub(now); untilExpiry < ttl {
			ttl = untilExpiry
		}
	}

	var (
		rawToken string
		token    *domain.AccessToken
	)
	err = runInAuditedTx(ctx, s.txm, s.audit, func(txCtx context.Context) (err error) {
		defer func() {
			recordAudit(txCtx, s.audit, auditEntry(domain.AuditActionSend, domain.RoleOwner, userID,
				string(docType), documentID, statusChange(current.Status, next.Status), err))
		}()
		if err = s.docRepo.UpdateDocumentStatus(txCtx, documentID, current.Status, next.Status, userID, now); err != nil {
			return err
		}
		rawToken, token, err = s.tokens.Issue(txCtx, docType, documentID, ttl, userID)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to send document", slog.String("document_id", documentID))
		return nil, err
	}

	publicURL := s.publicURL(docType, rawToken)
	s.notify.sendForStatus(ctx, domain.AudienceRecipient, next, publicURL, nil)

	s.LogInfo(ctx, "Document sent",
		slog.String("document_id", documentID),
		slog.String("access_token_id", token.AccessTokenID),
		slog.Time("token_expires_at", token.ExpiresAt))
	return &portssvc.SentDocument{
		Document:       &next,
		PublicURL:      publicURL,
		TokenExpiresAt: token.ExpiresAt,
	}, nil
}

func (s *documentService) CompleteContract(ctx context.Context, contractID string, userID string) (*domain.Document, error) {
	current, err := s.loadOwnedForChange(ctx, domain.AuditActionUpdate, string(domain.DocumentTypeContract),
		domain.DocumentTypeContract, contractID, userID)
	if err != nil {
		return nil, err
	}
	next, err := s.applyStatusChange(ctx, *current, domain.ActionComplete, domain.RoleOwner, userID)
	if err != nil {
		return nil, err
	}
	s.notify.sendForStatus(ctx, domain.AudienceRecipient, next, "", nil)
	return &next, nil
}

// RequestPayment tells the client of a signed contract that payment is due.
// Nothing is stored besides the audit entry.
func (s *documentService) RequestPayment(ctx context.Context, contractID string, userID string) (err error) {
	var changes *domain.AuditChanges
	defer func() {
		recordAudit(ctx, s.audit, auditEntry(domain.AuditActionSend, domain.RoleOwner, userID,
			domain.ResourcePaymentRequest, contractID, changes, err))
	}()

	current, err := s.loadOwned(ctx, domain.DocumentTypeContract, contractID, userID)
	if err != nil {
		return err
	}
	changes = &domain.AuditChanges{After: map[string]any{"amount": current.Total}}
	if current.Status != domain.StatusSigned {
		return fmt.Errorf("%w: payment can only be requested for a signed contract, this one is %s",
			apperrors.ErrInvalidTransition, current.Status)
	}

	s.notify.send(ctx, domain.NotificationPaymentRequested, domain.AudienceRecipient, *current, "",
		map[string]string{"amount": current.Total.String()})
	return nil
}

// ConvertQuoteToContract audits refusals as a failed contract creation that
// names the source quote.
func (s *documentService) ConvertQuoteToContract(ctx context.Context, quoteID string, userID string) (_ *domain.Document, err error) {
	contractID := uuid.NewString()
	changes := &domain.AuditChanges{After: map[string]any{"sourceQuoteID": quoteID}}
	defer func() {
		recordAudit(ctx, s.audit, auditEntry(domain.AuditActionCreate, domain.RoleOwner, userID,
			string(domain.DocumentTypeContract), contractID, changes, err))
	}()

	quote, err := s.loadOwned(ctx, domain.DocumentTypeQuote, quoteID, userID)
	if err != nil {
		return nil, err
	}
	if quote.Status != domain.StatusApproved {
		return nil, fmt.Errorf("%w: only approved quotes can become contracts, this one is %s",
			apperrors.ErrInvalidTransition, quote.Status)
	}

	existing, err := s.docRepo.FindContractBySourceQuote(ctx, quoteID)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: quote %s already has contract %s", apperrors.ErrDuplicate, quoteID, existing.DocumentID)
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, err
	}

	now := s.Now()
	source := quote.Clone()
	contract := domain.Document{
		DocumentID:    contractID,
		OwnerID:       quote.OwnerID,
		Type:          domain.DocumentTypeContract,
		Status:        domain.StatusDraft,
		Title:         source.Title,
		Client:        source.Client,
		Supplier:      source.Supplier,
		Items:         source.Items,
		Pricing:       source.Pricing,
		SourceQuoteID: &source.DocumentID,
		Notes:         source.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err = contract.Recalculate(); err != nil {
		return nil, err
	}

	changes = &domain.AuditChanges{After: contract}
	err = s.docRepo.SaveDocument(ctx, contract)
	if errors.Is(err, apperrors.ErrDuplicate) {
		return nil, fmt.Errorf("%w: quote %s already has a contract", apperrors.ErrDuplicate, quoteID)
	}
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Quote converted to contract",
		slog.String("quote_id", quoteID),
		slog.String("contract_id", contract.DocumentID))
	return &contract, nil
}

// ExpireDueQuotes moves every sent quote whose validity has ended to expired.
// Quotes that change status concurrently are skipped with a failed audit entry,
// so running it twice is harmless.
func (s *documentService) ExpireDueQuotes(ctx context.Context, now time.Time) (int, error) {
	expired := 0
	for {
		batch, err := s.docRepo.ListExpiredSentQuotes(ctx, now, expirySweepBatch)
		if err != nil {
			return expired, err
		}

		moved := 0
		for _, quote := range batch {
			next, err := domain.Transition(quote, domain.ActionExpire, domain.RoleSystem, systemActorID, now)
			if err == nil {
				err = s.docRepo.UpdateDocumentStatus(ctx, quote.DocumentID, quote.Status, next.Status, systemActorID, now)
			}
			recordAudit(ctx, s.audit, auditEntry(domain.AuditActionUpdate, domain.RoleSystem, "",
				string(domain.DocumentTypeQuote), quote.DocumentID, statusChange(quote.Status, domain.StatusExpired), err))
			switch {
			case err == nil:
				moved++
			case errors.Is(err, apperrors.ErrInvalidTransition), errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrNotFound):
				// The quote changed after it was listed; the failure entry records the lost race.
				continue
			default:
				return expired, err
			}
		}
		expired += moved

		if len(batch) < expirySweepBatch || moved == 0 {
			break
		}
	}

	if expired > 0 {
		s.LogInfo(ctx, "Expired quotes", slog.Int("count", expired))
	}
	return expired, nil
}

// --- helpers ---

// loadOwned fetches a document of the given type and checks the caller owns it.
func (s *documentService) loadOwned(ctx context.Context, docType domain.DocumentType, documentID string, userID string) (*domain.Document, error) {
	if !docType.Valid() {
		return nil, fmt.Errorf("%w: unknown document type %q", apperrors.ErrValidation, docType)
	}
	if _, err := uuid.Parse(documentID); err != nil {
		return nil, fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, docType, documentID)
	}
	doc, err := s.docRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.Type != docType {
		return nil, fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, docType, documentID)
	}
	if !doc.IsOwnedBy(userID) {
		s.LogWarn(ctx, "Document accessed by non-owner",
			slog.String("document_id", documentID),
			slog.String("user_id", userID))
		return nil, fmt.Errorf("%w: %s %s belongs to another user", apperrors.ErrForbidden, docType, documentID)
	}
	return doc, nil
}

// loadOwnedForChange is loadOwned for operations whose later steps audit
// themselves: a refused load is recorded here under the attempted action.
func (s *documentService) loadOwnedForChange(ctx context.Context, action domain.AuditAction, resourceType string, docType domain.DocumentType, documentID string, userID string) (*domain.Document, error) {
	doc, err := s.loadOwned(ctx, docType, documentID, userID)
	if err != nil {
		recordAudit(ctx, s.audit, auditEntry(action, domain.RoleOwner, userID, resourceType, documentID, nil, err))
		return nil, err
	}
	return doc, nil
}

// applyStatusChange runs a state machine move that has no other side effects.
func (s *documentService) applyStatusChange(ctx context.Context, current domain.Document, action domain.Action, role domain.ActorRole, actorID string) (domain.Document, error) {
	now := s.Now()
	next, err := domain.Transition(current, action, role, actorID, now)
	if err == nil {
		err = s.docRepo.UpdateDocumentStatus(ctx, current.DocumentID, current.Status, next.Status, actorID, now)
	}
	recordAudit(ctx, s.audit, auditEntry(domain.AuditActionUpdate, role, actorID,
		string(current.Type), current.DocumentID, statusChange(current.Status, next.Status), err))
	if err != nil {
		return current, err
	}
	return next, nil
}

func (s *documentService) publicURL(docType domain.DocumentType, rawToken string) string {
	return fmt.Sprintf("%s/public/%s/%s", s.cfg.PublicBaseURL, docType, rawToken)
}

// warnOnTotalsMismatch logs when client-computed totals disagree with ours.
// The client values are never stored.
func (s *documentService) warnOnTotalsMismatch(ctx context.Context, doc domain.Document, hint dto.TotalsHint) {
	mismatch := func(name string, client *decimal.Decimal, server decimal.Decimal) {
		if client != nil && !client.Equal(server) {
			s.LogWarn(ctx, "Client totals differ from server totals",
				slog.String("document_id", doc.DocumentID),
				slog.String("field", name),
				slog.String("client", client.String()),
				slog.String("server", server.String()))
		}
	}
	mismatch("subtotal", hint.Subtotal, doc.Subtotal)
	mismatch("tax", hint.Tax, doc.Tax)
	mismatch("total", hint.Total, doc.Total)
}

func statusChange(from, to domain.DocumentStatus) *domain.AuditChanges {
	return &domain.AuditChanges{
		Before: map[string]any{"status": from},
		After:  map[string]any{"status": to},
	}
}
