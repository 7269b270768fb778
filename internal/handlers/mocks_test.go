package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/bizdoc_app/internal/core/domain"
	portssvc "github.com/SscSPs/bizdoc_app/internal/core/ports/services"
	"github.com/SscSPs/bizdoc_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock DocumentService ---
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) GetDocument(ctx context.Context, docType domain.DocumentType, documentID string, userID string) (*domain.Document, error) {
	args := m.Called(ctx, docType, documentID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) ListDocuments(ctx context.Context, docType domain.DocumentType, userID string, params dto.ListDocumentsParams) ([]domain.Document, *string, error) {
	args := m.Called(ctx, docType, userID, params)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	next, _ := args.Get(1).(*string)
	return args.Get(0).([]domain.Document), next, args.Error(2)
}

func (m *MockDocumentService) ListSignatures(ctx context.Context, docType domain.DocumentType, documentID string, userID string) ([]domain.Signature, error) {
	args := m.Called(ctx, docType, documentID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Signature), args.Error(1)
}

func (m *MockDocumentService) CreateDocument(ctx context.Context, docType domain.DocumentType, req dto.CreateDocumentRequest, userID string) (*domain.Document, error) {
	args := m.Called(ctx, docType, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) UpdateDocument(ctx context.Context, docType domain.DocumentType, documentID string, req dto.UpdateDocumentRequest, userID string) (*domain.Document, error) {
	args := m.Called(ctx, docType, documentID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) DeleteDocument(ctx context.Context, docType domain.DocumentType, documentID string, userID string) error {
	return m.Called(ctx, docType, documentID, userID).Error(0)
}

func (m *MockDocumentService) SendDocument(ctx context.Context, docType domain.DocumentType, documentID string, userID string) (*portssvc.SentDocument, error) {
	args := m.Called(ctx, docType, documentID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.SentDocument), args.Error(1)
}

func (m *MockDocumentService) CompleteContract(ctx context.Context, contractID string, userID string) (*domain.Document, error) {
	args := m.Called(ctx, contractID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) RequestPayment(ctx context.Context, contractID string, userID string) error {
	return m.Called(ctx, contractID, userID).Error(0)
}

func (m *MockDocumentService) ConvertQuoteToContract(ctx context.Context, quoteID string, userID string) (*domain.Document, error) {
	args := m.Called(ctx, quoteID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) ExpireDueQuotes(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}

var _ portssvc.DocumentSvcFacade = (*MockDocumentService)(nil)

// --- Mock PublicDocumentService ---
type MockPublicDocumentService struct {
	mock.Mock
}

func (m *MockPublicDocumentService) ViewDocument(ctx context.Context, docType domain.DocumentType, rawToken string) (*domain.Document, error) {
	args := m.Called(ctx, docType, rawToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockPublicDocumentService) Approve(ctx context.Context, docType domain.DocumentType, rawToken string, decision portssvc.RecipientDecision) (*domain.Document, error) {
	args := m.Called(ctx, docType, rawToken, decision)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockPublicDocumentService) Reject(ctx context.Context, docType domain.DocumentType, rawToken string, decision portssvc.RecipientDecision) (*domain.Document, error) {
	args := m.Called(ctx, docType, rawToken, decision)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

var _ portssvc.PublicDocumentSvc = (*MockPublicDocumentService)(nil)

// --- Mock AuditService ---
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Record(ctx context.Context, entry domain.AuditLogEntry) {
	m.Called(ctx, entry)
}

func (m *MockAuditService) List(ctx context.Context, ownerID string, filter domain.AuditFilter) ([]domain.AuditLogEntry, *string, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	next, _ := args.Get(1).(*string)
	return args.Get(0).([]domain.AuditLogEntry), next, args.Error(2)
}

func (m *MockAuditService) Close(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

var _ portssvc.AuditSvc = (*MockAuditService)(nil)
