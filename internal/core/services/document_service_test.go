package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/bizdoc_app/internal/apperrors"
	"github.com/SscSPs/bizdoc_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bizdoc_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bizdoc_app/internal/core/ports/services"
	"github.com/SscSPs/bizdoc_app/internal/core/services"
	"github.com/SscSPs/bizdoc_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockAccessTokenSvc is a mock type for the AccessTokenSvc interface
type MockAccessTokenSvc struct {
	mock.Mock
}

func (m *MockAccessTokenSvc) Issue(ctx context.Context, entityType domain.DocumentType, entityID string, ttl time.Duration, issuedBy string) (string, *domain.AccessToken, error) {
	args := m.Called(ctx, entityType, entityID, ttl, issuedBy)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*domain.AccessToken), args.Error(2)
}

func (m *MockAccessTokenSvc) Validate(ctx context.Context, raw string, entityType domain.DocumentType, entityID string) error {
	return m.Called(ctx, raw, entityType, entityID).Error(0)
}

func (m *MockAccessTokenSvc) Resolve(ctx context.Context, raw string, entityType domain.DocumentType) (*domain.AccessToken, error) {
	args := m.Called(ctx, raw, entityType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccessToken), args.Error(1)
}

func (m *MockAccessTokenSvc) Consume(ctx context.Context, raw string) error {
	return m.Called(ctx, raw).Error(0)
}

const testPublicBaseURL = "https://app.test"

type DocumentServiceTestSuite struct {
	suite.Suite
	ctx        context.Context
	store      *memStore
	audit      *recordingAudit
	dispatcher *MockDispatcher
	clock      *testClock
	tokens     portssvc.AccessTokenSvc
	service    portssvc.DocumentSvcFacade
	ownerID    string
}

func (suite *DocumentServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = newMemStore()
	suite.audit = &recordingAudit{}
	suite.dispatcher = new(MockDispatcher)
	suite.dispatcher.On("Dispatch", mock.Anything, mock.Anything).Return(nil)
	suite.clock = newTestClock()
	suite.ownerID = uuid.NewString()

	repos := suite.store.provider()
	suite.tokens = services.NewAccessTokenService(repos.TokenRepo, suite.audit, services.WithClock(suite.clock.Now))
	suite.service = services.NewDocumentService(repos, suite.tokens, suite.audit, suite.dispatcher,
		services.DocumentServiceConfig{PublicBaseURL: testPublicBaseURL + "/", AccessTokenTTL: 72 * time.Hour},
		services.WithClock(suite.clock.Now))
}

func TestDocumentServiceSuite(t *testing.T) {
	suite.Run(t, new(DocumentServiceTestSuite))
}

func (suite *DocumentServiceTestSuite) createRequest(unitPrice int64) dto.CreateDocumentRequest {
	clientAmount := decimal.NewFromInt(1)
	return dto.CreateDocumentRequest{
		Title:    "Website redesign",
		Client:   dto.PartyRequest{Name: "Kim Minji", Email: "minji@example.com"},
		Supplier: dto.PartyRequest{Name: "Studio Lee"},
		Items: []dto.LineItemRequest{{
			Name:      "Design",
			Quantity:  decimal.NewFromInt(1),
			UnitPrice: decimal.NewFromInt(unitPrice),
			Amount:    &clientAmount,
		}},
	}
}

func (suite *DocumentServiceTestSuite) createDraft(docType domain.DocumentType) *domain.Document {
	doc, err := suite.service.CreateDocument(suite.ctx, docType, suite.createRequest(3_000_000), suite.ownerID)
	suite.Require().NoError(err)
	return doc
}

func (suite *DocumentServiceTestSuite) sendDraft(docType domain.DocumentType) (*domain.Document, *portssvc.SentDocument) {
	doc := suite.createDraft(docType)
	sent, err := suite.service.SendDocument(suite.ctx, docType, doc.DocumentID, suite.ownerID)
	suite.Require().NoError(err)
	return doc, sent
}

// --- Create / read ---

func (suite *DocumentServiceTestSuite) TestCreateDocument_ComputesTotalsServerSide() {
	req := suite.createRequest(3_000_000)
	bogus := decimal.NewFromInt(42)
	req.TotalsHint = dto.TotalsHint{Subtotal: &bogus, Tax: &bogus, Total: &bogus}

	doc, err := suite.service.CreateDocument(suite.ctx, domain.DocumentTypeQuote, req, suite.ownerID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusDraft, doc.Status)
	suite.Equal(suite.ownerID, doc.OwnerID)
	suite.True(decimal.NewFromInt(3_000_000).Equal(doc.Items[0].Amount), "client amount is ignored")
	suite.True(decimal.NewFromInt(3_000_000).Equal(doc.Subtotal))
	suite.True(decimal.NewFromInt(300_000).Equal(doc.Tax))
	suite.True(decimal.NewFromInt(3_300_000).Equal(doc.Total))

	stored := suite.store.doc(doc.DocumentID)
	suite.True(doc.Total.Equal(stored.Total))

	created := suite.audit.find(domain.AuditActionCreate, string(domain.DocumentTypeQuote))
	suite.Require().Len(created, 1)
	suite.Equal(domain.AuditSuccess, created[0].Status)
	suite.Equal(suite.ownerID, created[0].UserID)
}

func (suite *DocumentServiceTestSuite) TestCreateDocument_ValidationErrors() {
	req := suite.createRequest(1000)
	amount, rate := decimal.NewFromInt(10), decimal.RequireFromString("0.1")
	req.DiscountAmount, req.DiscountRate = &amount, &rate
	_, err := suite.service.CreateDocument(suite.ctx, domain.DocumentTypeQuote, req, suite.ownerID)
	suite.ErrorIs(err, apperrors.ErrValidation)

	req = suite.createRequest(1000)
	past := suite.clock.Now().Add(-time.Minute)
	req.ExpiresAt = &past
	_, err = suite.service.CreateDocument(suite.ctx, domain.DocumentTypeQuote, req, suite.ownerID)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.CreateDocument(suite.ctx, "invoice", suite.createRequest(1000), suite.ownerID)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *DocumentServiceTestSuite) TestGetDocument_Ownership() {
	doc := suite.createDraft(domain.DocumentTypeQuote)

	got, err := suite.service.GetDocument(suite.ctx, domain.DocumentTypeQuote, doc.DocumentID, suite.ownerID)
	suite.Require().NoError(err)
	suite.Equal(doc.DocumentID, got.DocumentID)

	_, err = suite.service.GetDocument(suite.ctx, domain.DocumentTypeQuote, doc.DocumentID, uuid.NewString())
	suite.ErrorIs(err, apperrors.ErrForbidden)

	_, err = suite.service.GetDocument(suite.ctx, domain.DocumentTypeContract, doc.DocumentID, suite.ownerID)
	suite.ErrorIs(err, apperrors.ErrNotFound, "a quote is not reachable as a contract")

	_, err = suite.service.GetDocument(suite.ctx, domain.DocumentTypeQuote, "not-a-uuid", suite.ownerID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *DocumentServiceTestSuite) TestListDocuments_FiltersByTypeAndStatus() {
	suite.createDraft(domain.DocumentTypeQuote)
	suite.createDraft(domain.DocumentTypeContract)
	suite.sendDraft(domain.DocumentTypeQuote)

	quotes, _, err := suite.service.ListDocuments(suite.ctx, domain.DocumentTypeQuote, suite.ownerID, dto.ListDocumentsParams{Limit: 20})
	suite.Require().NoError(err)
	suite.Len(quotes, 2)

	sent, _, err := suite.service.ListDocuments(suite.ctx, domain.DocumentTypeQuote, suite.ownerID, dto.ListDocumentsParams{Status: "sent", Limit: 20})
	suite.Require().NoError(err)
	suite.Len(sent, 1)

	others, _, err := suite.service.ListDocuments(suite.ctx, domain.DocumentTypeQuote, uuid.NewString(), dto.ListDocumentsParams{Limit: 20})
	suite.Require().NoError(err)
	suite.Empty(others)
}

// --- Draft edits ---

func (suite *DocumentServiceTestSuite) TestUpdateDocument_RecomputesTotals() {
	doc := suite.createDraft(domain.DocumentTypeQuote)
	items := []dto.LineItemRequest{
		{Name: "Design", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(500_000)},
		{Name: "Hosting", Quantity: decimal.NewFromInt(12), UnitPrice: decimal.NewFromInt(10_000)},
	}
	discount := decimal.NewFromInt(20_000)
	title := "Website redesign v2"

	updated, err := suite.service.UpdateDocument(suite.ctx, domain.DocumentTypeQuote, doc.DocumentID,
		dto.UpdateDocumentRequest{Title: &title, Items: &items, DiscountAmount: &discount}, suite.ownerID)

	suite.Require().NoError(err)
	suite.Equal(title, updated.Title)
	suite.True(decimal.NewFromInt(1_120_000).Equal(updated.Subtotal))
	suite.True(decimal.NewFromInt(112_000).Equal(updated.Tax))
	suite.True(decimal.NewFromInt(20_000).Equal(updated.Discount))
	suite.True(decimal.NewFromInt(1_212_000).Equal(updated.Total))
	suite.True(updated.Total.Equal(suite.store.doc(doc.DocumentID).Total))

	cleared, err := suite.service.UpdateDocument(suite.ctx, domain.DocumentTypeQuote, doc.DocumentID,
		dto.UpdateDocumentRequest{ClearDiscount: true}, suite.ownerID)
	suite.Require().NoError(err)
	suite.True(cleared.Discount.IsZero())
	suite.True(decimal.NewFromInt(1_232_000).Equal(cleared.Total))
}

func (suite *DocumentServiceTestSuite) TestUpdateAndDelete_OnlyDrafts() {
	doc, _ := suite.sendDraft(domain.DocumentTypeQuote)
	title := "changed"

	_, err := suite.service.UpdateDocument(suite.ctx, domain.DocumentTypeQuote, doc.DocumentID,
		dto.UpdateDocumentRequest{Title: &title}, suite.ownerID)
	suite.ErrorIs(err, apperrors.ErrDocumentLocked)

	err = suite.service.DeleteDocument(suite.ctx, domain.DocumentTypeQuote, doc.DocumentID, suite.ownerID)
	suite.ErrorIs(err, apperrors.ErrDocumentLocked)
	suite.Equal(domain.StatusSent, suite.store.doc(doc.DocumentID).Status)

	draft := suite.createDraft(domain.DocumentTypeQuote)
	suite.Require().NoError(suite.service.DeleteDocument(suite.ctx, domain.DocumentTypeQuote, draft.DocumentID, suite.ownerID))
	_, err = suite.service.GetDocument(suite.ctx, domain.DocumentTypeQuote, draft.DocumentID, suite.ownerID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Send ---

func (suite *DocumentServiceTestSuite) TestSendDocument_IssuesLinkAndNotifies() {
	doc, sent := suite.sendDraft(domain.DocumentTypeContract)

	suite.Equal(domain.StatusSent, sent.Document.Status)
	suite.Equal(domain.StatusSent, suite.store.doc(doc.DocumentID).Status)
	suite.True(strings.HasPrefix(sent.PublicURL, testPublicBaseURL+"/public/contract/bdt_"), sent.PublicURL)
	suite.Equal(suite.clock.Now().Add(72*time.Hour), sent.TokenExpiresAt)

	raw := sent.PublicURL[strings.LastIndex(sent.PublicURL, "/")+1:]
	suite.NoError(suite.tokens.Validate(suite.ctx, raw, domain.DocumentTypeContract, doc.DocumentID))

	suite.Equal([]domain.NotificationKind{domain.NotificationContractSent}, suite.dispatcher.kinds())
	note := suite.dispatcher.last()
	suite.Equal(domain.AudienceRecipient, note.Audience)
	suite.Equal(sent.PublicURL, note.PublicURL)
	suite.Equal("minji@example.com", note.Recipient.Email)

	sends := suite.audit.find(domain.AuditActionSend, string(domain.DocumentTypeContract))
	suite.Require().Len(sends, 1)
	suite.Equal(domain.AuditSuccess, sends[0].Status)
	suite.Len(suite.audit.find(domain.AuditActionCreate, domain.ResourceAccessToken), 1)
}

func (suite *DocumentServiceTestSuite) TestSendDocument_TwiceIsInvalid() {
	doc, _ := suite.sendDraft(domain.DocumentTypeQuote)

	_, err := suite.service.SendDocument(suite.ctx, domain.DocumentTypeQuote, doc.DocumentID, suite.ownerID)

	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	sends := suite.audit.find(domain.AuditActionSend, string(domain.DocumentTypeQuote))
	suite.Require().Len(sends, 2)
	suite.Equal(domain.AuditFailure, sends[1].Status)
}

func (suite *DocumentServiceTestSuite) TestSendDocument_TokenLifetimeEndsWithQuote() {
	req := suite.createRequest(1000)
	validUntil := suite.clock.Now().Add(24 * time.Hour)
	req.ExpiresAt = &validUntil
	doc, err := suite.service.CreateDocument(suite.ctx, domain.DocumentTypeQuote, req, suite.ownerID)
	suite.Require().NoError(err)

	sent, err := suite.service.SendDocument(suite.ctx, domain.DocumentTypeQuote, doc.DocumentID, suite.ownerID)

	suite.Require().NoError(err)
	suite.Equal(validUntil, sent.TokenExpiresAt)
}

func (suite *DocumentServiceTestSuite) TestSendDocument_RollsBackWhenTokenFails() {
	tokens := new(MockAccessTokenSvc)
	tokens.On("Issue", mock.Anything, domain.DocumentTypeQuote, mock.AnythingOfType("string"), 72*time.Hour, suite.ownerID).
		Return("", nil, errors.New("token store unavailable")).Once()
	svc := services.NewDocumentService(suite.store.provider(), tokens, suite.audit, suite.dispatcher,
		services.DocumentServiceConfig{PublicBaseURL: testPublicBaseURL, AccessTokenTTL: 72 * time.Hour},
		services.WithClock(suite.clock.Now))
	doc := suite.createDraft(domain.DocumentTypeQuote)

	_, err := svc.SendDocument(suite.ctx, domain.DocumentTypeQuote, doc.DocumentID, suite.ownerID)

	suite.Require().Error(err)
	suite.Equal(domain.StatusDraft, suite.store.doc(doc.DocumentID).Status, "status update rolled back")
	suite.Empty(suite.dispatcher.kinds())
	sends := suite.audit.find(domain.AuditActionSend, string(domain.DocumentTypeQuote))
	suite.Require().Len(sends, 1)
	suite.Equal(domain.AuditFailure, sends[0].Status)
	tokens.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestNotificationFailureDoesNotFailSend() {
	dispatcher := new(MockDispatcher)
	dispatcher.On("Dispatch", mock.Anything, mock.Anything).Return(errors.New("webhook down"))
	svc := services.NewDocumentService(suite.store.provider(), suite.tokens, suite.audit, dispatcher,
		services.DocumentServiceConfig{PublicBaseURL: testPublicBaseURL}, services.WithClock(suite.clock.Now))
	doc := suite.createDraft(domain.DocumentTypeQuote)

	sent, err := svc.SendDocument(suite.ctx, domain.DocumentTypeQuote, doc.DocumentID, suite.ownerID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusSent, sent.Document.Status)
	dispatcher.AssertNumberOfCalls(suite.T(), "Dispatch", 1)
}

// --- Contract lifecycle ---

func (suite *DocumentServiceTestSuite) markStatus(doc *domain.Document, status domain.DocumentStatus) {
	stored := suite.store.doc(doc.DocumentID)
	stored.Status = status
	suite.store.put(stored)
}

func (suite *DocumentServiceTestSuite) TestCompleteContract() {
	contract := suite.createDraft(domain.DocumentTypeContract)

	_, err := suite.service.CompleteContract(suite.ctx, contract.DocumentID, suite.ownerID)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition, "draft contracts cannot complete")

	suite.markStatus(contract, domain.StatusSigned)
	done, err := suite.service.CompleteContract(suite.ctx, contract.DocumentID, suite.ownerID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusCompleted, done.Status)
	suite.Equal(domain.StatusCompleted, suite.store.doc(contract.DocumentID).Status)
	suite.Contains(suite.dispatcher.kinds(), domain.NotificationPaymentConfirmed)
}

func (suite *DocumentServiceTestSuite) TestRequestPayment() {
	contract := suite.createDraft(domain.DocumentTypeContract)

	err := suite.service.RequestPayment(suite.ctx, contract.DocumentID, suite.ownerID)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)

	suite.markStatus(contract, domain.StatusSigned)
	suite.Require().NoError(suite.service.RequestPayment(suite.ctx, contract.DocumentID, suite.ownerID))

	note := suite.dispatcher.last()
	suite.Equal(domain.NotificationPaymentRequested, note.Kind)
	suite.Equal("3300000", note.Data["amount"])
	requests := suite.audit.find(domain.AuditActionSend, domain.ResourcePaymentRequest)
	suite.Require().Len(requests, 2)
	suite.Equal(domain.AuditFailure, requests[0].Status)
	suite.Equal(domain.AuditSuccess, requests[1].Status)
	suite.Equal(domain.StatusSigned, suite.store.doc(contract.DocumentID).Status, "payment request leaves status alone")
}

func (suite *DocumentServiceTestSuite) TestConvertQuoteToContract_AtMostOnce() {
	quote := suite.createDraft(domain.DocumentTypeQuote)

	_, err := suite.service.ConvertQuoteToContract(suite.ctx, quote.DocumentID, suite.ownerID)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)

	suite.markStatus(quote, domain.StatusApproved)
	contract, err := suite.service.ConvertQuoteToContract(suite.ctx, quote.DocumentID, suite.ownerID)
	suite.Require().NoError(err)

	suite.Equal(domain.DocumentTypeContract, contract.Type)
	suite.Equal(domain.StatusDraft, contract.Status)
	suite.Require().NotNil(contract.SourceQuoteID)
	suite.Equal(quote.DocumentID, *contract.SourceQuoteID)
	suite.True(quote.Total.Equal(contract.Total))
	suite.Equal(quote.Client, contract.Client)
	suite.Equal(domain.StatusApproved, suite.store.doc(quote.DocumentID).Status, "quote is untouched")

	_, err = suite.service.ConvertQuoteToContract(suite.ctx, quote.DocumentID, suite.ownerID)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

// --- Expiry ---

func (suite *DocumentServiceTestSuite) TestExpireDueQuotes() {
	req := suite.createRequest(1000)
	validUntil := suite.clock.Now().Add(time.Hour)
	req.ExpiresAt = &validUntil
	due, err := suite.service.CreateDocument(suite.ctx, domain.DocumentTypeQuote, req, suite.ownerID)
	suite.Require().NoError(err)
	_, err = suite.service.SendDocument(suite.ctx, domain.DocumentTypeQuote, due.DocumentID, suite.ownerID)
	suite.Require().NoError(err)
	open, _ := suite.sendDraft(domain.DocumentTypeQuote)

	n, err := suite.service.ExpireDueQuotes(suite.ctx, suite.clock.Now())
	suite.Require().NoError(err)
	suite.Zero(n)

	suite.clock.Advance(2 * time.Hour)
	n, err = suite.service.ExpireDueQuotes(suite.ctx, suite.clock.Now())
	suite.Require().NoError(err)
	suite.Equal(1, n)
	suite.Equal(domain.StatusExpired, suite.store.doc(due.DocumentID).Status)
	suite.Equal(domain.StatusSent, suite.store.doc(open.DocumentID).Status)

	n, err = suite.service.ExpireDueQuotes(suite.ctx, suite.clock.Now())
	suite.Require().NoError(err)
	suite.Zero(n, "sweeping twice is harmless")

	expiries := suite.audit.find(domain.AuditActionUpdate, string(domain.DocumentTypeQuote))
	suite.Require().Len(expiries, 1)
	suite.Equal(domain.RoleSystem, expiries[0].ActorRole)
}

// conflictingDocRepo loses every status update, as if another writer moved
// the document first.
type conflictingDocRepo struct {
	portsrepo.DocumentRepositoryFacade
}

func (r conflictingDocRepo) UpdateDocumentStatus(context.Context, string, domain.DocumentStatus, domain.DocumentStatus, string, time.Time) error {
	return apperrors.ErrConflict
}

func (suite *DocumentServiceTestSuite) TestExpireDueQuotes_LostRaceIsAudited() {
	req := suite.createRequest(1000)
	validUntil := suite.clock.Now().Add(time.Hour)
	req.ExpiresAt = &validUntil
	due, err := suite.service.CreateDocument(suite.ctx, domain.DocumentTypeQuote, req, suite.ownerID)
	suite.Require().NoError(err)
	_, err = suite.service.SendDocument(suite.ctx, domain.DocumentTypeQuote, due.DocumentID, suite.ownerID)
	suite.Require().NoError(err)

	repos := suite.store.provider()
	repos.DocumentRepo = conflictingDocRepo{repos.DocumentRepo}
	svc := services.NewDocumentService(repos, suite.tokens, suite.audit, suite.dispatcher,
		services.DocumentServiceConfig{PublicBaseURL: testPublicBaseURL}, services.WithClock(suite.clock.Now))
	suite.clock.Advance(2 * time.Hour)

	n, err := svc.ExpireDueQuotes(suite.ctx, suite.clock.Now())

	suite.Require().NoError(err)
	suite.Zero(n)
	suite.Equal(domain.StatusSent, suite.store.doc(due.DocumentID).Status)
	expiries := suite.audit.find(domain.AuditActionUpdate, string(domain.DocumentTypeQuote))
	suite.Require().Len(expiries, 1)
	suite.Equal(domain.AuditFailure, expiries[0].Status)
	suite.Equal(domain.RoleSystem, expiries[0].ActorRole)
	suite.Equal(due.DocumentID, expiries[0].ResourceID)
}

// --- Refusals ---

// refusedOnce runs a call that must fail with target and checks it left
// exactly one failed audit entry of the given action and resource type.
func (suite *DocumentServiceTestSuite) refusedOnce(action domain.AuditAction, resourceType string, target error, call func() error) {
	before := len(suite.audit.all())

	err := call()

	suite.Require().ErrorIs(err, target)
	entries := suite.audit.all()[before:]
	suite.Require().Len(entries, 1, "%s %s", action, resourceType)
	suite.Equal(action, entries[0].Action)
	suite.Equal(resourceType, entries[0].ResourceType)
	suite.Equal(domain.AuditFailure, entries[0].Status)
	suite.NotEmpty(entries[0].ErrorMessage)
}

func (suite *DocumentServiceTestSuite) TestRefusedCreateAndUpdateAreAudited() {
	quote := string(domain.DocumentTypeQuote)

	suite.refusedOnce(domain.AuditActionCreate, quote, apperrors.ErrValidation, func() error {
		req := suite.createRequest(1000)
		req.Items[0].Quantity = decimal.Zero
		_, err := suite.service.CreateDocument(suite.ctx, domain.DocumentTypeQuote, req, suite.ownerID)
		return err
	})
	suite.refusedOnce(domain.AuditActionCreate, quote, apperrors.ErrValidation, func() error {
		req := suite.createRequest(1000)
		req.Items[0].Name = "  "
		_, err := suite.service.CreateDocument(suite.ctx, domain.DocumentTypeQuote, req, suite.ownerID)
		return err
	})
	suite.refusedOnce(domain.AuditActionCreate, quote, apperrors.ErrValidation, func() error {
		req := suite.createRequest(1000)
		past := suite.clock.Now().Add(-time.Minute)
		req.ExpiresAt = &past
		_, err := suite.service.CreateDocument(suite.ctx, domain.DocumentTypeQuote, req, suite.ownerID)
		return err
	})

	draft := suite.createDraft(domain.DocumentTypeQuote)
	suite.refusedOnce(domain.AuditActionUpdate, quote, apperrors.ErrValidation, func() error {
		past := suite.clock.Now().Add(-time.Hour)
		_, err := suite.service.UpdateDocument(suite.ctx, domain.DocumentTypeQuote, draft.DocumentID,
			dto.UpdateDocumentRequest{ExpiresAt: &past}, suite.ownerID)
		return err
	})
	suite.refusedOnce(domain.AuditActionUpdate, quote, apperrors.ErrValidation, func() error {
		rate := decimal.RequireFromString("0.12345")
		_, err := suite.service.UpdateDocument(suite.ctx, domain.DocumentTypeQuote, draft.DocumentID,
			dto.UpdateDocumentRequest{TaxRate: &rate}, suite.ownerID)
		return err
	})
	suite.True(draft.Total.Equal(suite.store.doc(draft.DocumentID).Total), "refused updates leave the draft alone")
}

func (suite *DocumentServiceTestSuite) TestRefusedConversionIsAudited() {
	contract := string(domain.DocumentTypeContract)
	quote, _ := suite.sendDraft(domain.DocumentTypeQuote)

	suite.refusedOnce(domain.AuditActionCreate, contract, apperrors.ErrInvalidTransition, func() error {
		_, err := suite.service.ConvertQuoteToContract(suite.ctx, quote.DocumentID, suite.ownerID)
		return err
	})

	suite.markStatus(quote, domain.StatusApproved)
	_, err := suite.service.ConvertQuoteToContract(suite.ctx, quote.DocumentID, suite.ownerID)
	suite.Require().NoError(err)

	suite.refusedOnce(domain.AuditActionCreate, contract, apperrors.ErrDuplicate, func() error {
		_, err := suite.service.ConvertQuoteToContract(suite.ctx, quote.DocumentID, suite.ownerID)
		return err
	})
	suite.refusedOnce(domain.AuditActionCreate, contract, apperrors.ErrForbidden, func() error {
		_, err := suite.service.ConvertQuoteToContract(suite.ctx, quote.DocumentID, uuid.NewString())
		return err
	})
}

func (suite *DocumentServiceTestSuite) TestNonOwnerChangesAreAudited() {
	quote := suite.createDraft(domain.DocumentTypeQuote)
	contract := suite.createDraft(domain.DocumentTypeContract)
	suite.markStatus(contract, domain.StatusSigned)
	stranger := uuid.NewString()
	title := "taken over"

	suite.refusedOnce(domain.AuditActionSend, string(domain.DocumentTypeQuote), apperrors.ErrForbidden, func() error {
		_, err := suite.service.SendDocument(suite.ctx, domain.DocumentTypeQuote, quote.DocumentID, stranger)
		return err
	})
	suite.refusedOnce(domain.AuditActionUpdate, string(domain.DocumentTypeQuote), apperrors.ErrForbidden, func() error {
		_, err := suite.service.UpdateDocument(suite.ctx, domain.DocumentTypeQuote, quote.DocumentID,
			dto.UpdateDocumentRequest{Title: &title}, stranger)
		return err
	})
	suite.refusedOnce(domain.AuditActionDelete, string(domain.DocumentTypeQuote), apperrors.ErrForbidden, func() error {
		return suite.service.DeleteDocument(suite.ctx, domain.DocumentTypeQuote, quote.DocumentID, stranger)
	})
	suite.refusedOnce(domain.AuditActionUpdate, string(domain.DocumentTypeContract), apperrors.ErrForbidden, func() error {
		_, err := suite.service.CompleteContract(suite.ctx, contract.DocumentID, stranger)
		return err
	})
	suite.refusedOnce(domain.AuditActionSend, domain.ResourcePaymentRequest, apperrors.ErrForbidden, func() error {
		return suite.service.RequestPayment(suite.ctx, contract.DocumentID, stranger)
	})

	suite.Equal(domain.StatusDraft, suite.store.doc(quote.DocumentID).Status)
	suite.Equal(domain.StatusSigned, suite.store.doc(contract.DocumentID).Status)
	suite.Empty(suite.dispatcher.kinds())
}

func (suite *DocumentServiceTestSuite) TestMissingDocumentChangesAreAudited() {
	missing := uuid.NewString()

	suite.refusedOnce(domain.AuditActionSend, string(domain.DocumentTypeQuote), apperrors.ErrNotFound, func() error {
		_, err := suite.service.SendDocument(suite.ctx, domain.DocumentTypeQuote, missing, suite.ownerID)
		return err
	})
	suite.refusedOnce(domain.AuditActionDelete, string(domain.DocumentTypeContract), apperrors.ErrNotFound, func() error {
		return suite.service.DeleteDocument(suite.ctx, domain.DocumentTypeContract, "not-a-uuid", suite.ownerID)
	})
	suite.refusedOnce(domain.AuditActionUpdate, string(domain.DocumentTypeContract), apperrors.ErrNotFound, func() error {
		_, err := suite.service.CompleteContract(suite.ctx, missing, suite.ownerID)
		return err
	})
}
