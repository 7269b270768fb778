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
	"github.com/SscSPs/bizdoc_app/internal/middleware"
)

// publicDocumentService implements the PublicDocumentSvc interface.
// Callers are anonymous; the access token is their only credential.
type publicDocumentService struct {
	BaseService
	txm        portsrepo.TransactionManager
	docRepo    portsrepo.DocumentReader
	docWriter  portsrepo.DocumentWriter
	tokens     portssvc.AccessTokenSvc
	signatures portssvc.SignatureSvc
	audit      portssvc.AuditSvc
	notify     notificationSender
}

// NewPublicDocumentService creates the recipient-facing document service.
func NewPublicDocumentService(
	repos portsrepo.RepositoryProvider,
	tokens portssvc.AccessTokenSvc,
	signatures portssvc.SignatureSvc,
	audit portssvc.AuditSvc,
	dispatcher portssvc.NotificationDispatcher,
	notifyTimeout time.Duration,
	opts ...ServiceOption,
) portssvc.PublicDocumentSvc {
	svc := &publicDocumentService{
		txm:        repos.TxManager,
		docRepo:    repos.DocumentRepo,
		docWriter:  repos.DocumentRepo,
		tokens:     tokens,
		signatures: signatures,
		audit:      audit,
		notify:     newNotificationSender(dispatcher, notifyTimeout),
	}
	applyOptions(&svc.BaseService, opts)
	return svc
}

var _ portssvc.PublicDocumentSvc = (*publicDocumentService)(nil)

// ViewDocument returns the document behind a token that still awaits a decision.
func (s *publicDocumentService) ViewDocument(ctx context.Context, docType domain.DocumentType, rawToken string) (*domain.Document, error) {
	token, doc, err := s.resolve(ctx, docType, rawToken)
	if err == nil && !domain.RecipientCanAct(*doc) {
		err = fmt.Errorf("%w: %s is %s", apperrors.ErrTokenNotFound, docType, doc.Status)
	}

	recordAudit(ctx, s.audit, auditEntry(domain.AuditActionRead, domain.RoleRecipient, "",
		string(docType), resolvedID(token), nil, err))
	if err != nil {
		s.LogDebug(ctx, "Public view refused", slog.String("error", err.Error()))
		return nil, err
	}
	return doc, nil
}

// Approve accepts a quote or signs a contract.
func (s *publicDocumentService) Approve(ctx context.Context, docType domain.DocumentType, rawToken string, decision portssvc.RecipientDecision) (*domain.Document, error) {
	action := domain.ActionApprove
	if docType == domain.DocumentTypeContract {
		action = domain.ActionSign
	}
	return s.decide(ctx, docType, rawToken, action, decision)
}

// Reject declines a quote or cancels a contract.
func (s *publicDocumentService) Reject(ctx context.Context, docType domain.DocumentType, rawToken string, decision portssvc.RecipientDecision) (*domain.Document, error) {
	return s.decide(ctx, docType, rawToken, domain.ActionReject, decision)
}

// decide validates everything that can fail without writing, then updates the
// status, stores the signature and spends the token in one transaction. A
// decision refused before the transaction leaves the token usable.
func (s *publicDocumentService) decide(ctx context.Context, docType domain.DocumentType, rawToken string, action domain.Action, decision portssvc.RecipientDecision) (*domain.Document, error) {
	auditAction := domain.AuditActionUpdate
	if action == domain.ActionSign {
		auditAction = domain.AuditActionSign
	}

	token, current, err := s.resolve(ctx, docType, rawToken)
	if err != nil {
		recordAudit(ctx, s.audit, auditEntry(auditAction, domain.RoleRecipient, "",
			string(docType), resolvedID(token), nil, err))
		return nil, err
	}

	now := s.Now()
	actorID := "recipient:" + token.AccessTokenID
	next, err := domain.Transition(*current, action, domain.RoleRecipient, actorID, now)
	if err == nil {
		err = s.checkSignature(action, decision)
	}
	if err != nil {
		recordAudit(ctx, s.audit, auditEntry(auditAction, domain.RoleRecipient, "",
			string(docType), current.DocumentID, nil, err))
		return nil, err
	}

	changes := statusChange(current.Status, next.Status)
	if reason := strings.TrimSpace(decision.Reason); reason != "" {
		changes.After = map[string]any{"status": next.Status, "reason": reason}
	}

	err = runInAuditedTx(ctx, s.txm, s.audit, func(txCtx context.Context) (err error) {
		defer func() {
			recordAudit(txCtx, s.audit, auditEntry(auditAction, domain.RoleRecipient, "",
				string(docType), current.DocumentID, changes, err))
		}()
		if err = s.tokens.Consume(txCtx, rawToken); err != nil {
			return err
		}
		if err = s.docWriter.UpdateDocumentStatus(txCtx, current.DocumentID, current.Status, next.Status, actorID, now); err != nil {
			return err
		}
		if strings.TrimSpace(decision.SignatureData) == "" || action == domain.ActionReject {
			return nil
		}
		_, err = s.signatures.Capture(txCtx, portssvc.CaptureSignatureInput{
			DocumentID:  current.DocumentID,
			SignerType:  domain.SignerClient,
			SignerName:  signerName(decision, *current),
			SignerEmail: decision.SignerEmail,
			Payload:     decision.SignatureData,
			Metadata:    middleware.GetRequestMetadata(ctx),
		})
		return err
	})
	if err != nil {
		if !apperrors.IsTokenError(err) && !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Recipient decision failed",
				slog.String("document_id", current.DocumentID),
				slog.String("action", string(action)))
		}
		return nil, err
	}

	var data map[string]string
	if reason := strings.TrimSpace(decision.Reason); reason != "" && action == domain.ActionReject {
		data = map[string]string{"reason": reason}
	}
	s.notify.sendForStatus(ctx, domain.AudienceOwner, next, "", data)

	s.LogInfo(ctx, "Recipient decision recorded",
		slog.String("document_id", next.DocumentID),
		slog.String("status", string(next.Status)))
	return &next, nil
}

// resolve maps a raw token to its document. Every failure is reported as a token
// error so callers cannot tell a missing document from a bad link.
func (s *publicDocumentService) resolve(ctx context.Context, docType domain.DocumentType, rawToken string) (*domain.AccessToken, *domain.Document, error) {
	token, err := s.tokens.Resolve(ctx, rawToken, docType)
	if err != nil {
		return nil, nil, err
	}
	doc, err := s.docRepo.FindDocumentByID(ctx, token.EntityID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return token, nil, apperrors.ErrTokenNotFound
		}
		return token, nil, err
	}
	if doc.Type != docType {
		return token, nil, apperrors.ErrTokenEntityMismatch
	}
	return token, doc, nil
}

// checkSignature validates the payload up front so a bad image never burns the token.
func (s *publicDocumentService) checkSignature(action domain.Action, decision portssvc.RecipientDecision) error {
	if action == domain.ActionReject {
		return nil
	}
	if strings.TrimSpace(decision.SignatureData) == "" {
		if action == domain.ActionSign {
			return fmt.Errorf("%w: a signature is required to sign a contract", apperrors.ErrValidation)
		}
		return nil
	}
	_, _, _, err := s.signatures.Normalize(decision.SignatureData)
	return err
}

func signerName(decision portssvc.RecipientDecision, doc domain.Document) string {
	if name := strings.TrimSpace(decision.SignerName); name != "" {
		return name
	}
	return doc.Client.Name
}

func resolvedID(token *domain.AccessToken) string {
	if token == nil {
		return ""
	}
	return token.EntityID
}
