package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/SscSPs/bizdoc_app/internal/apperrors"
	"github.com/SscSPs/bizdoc_app/internal/core/domain"
	portssvc "github.com/SscSPs/bizdoc_app/internal/core/ports/services"
	"github.com/SscSPs/bizdoc_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) TestPublicView() {
	doc := sampleDocument(domain.DocumentTypeQuote, domain.StatusSent, suite.ownerID)
	suite.mockPublic.On("ViewDocument", mock.Anything, domain.DocumentTypeQuote, "bdt_good").Return(doc, nil).Once()

	w := suite.do(http.MethodGet, "/public/quote/bdt_good", nil, "")

	suite.Equal(http.StatusOK, w.Code)
	suite.NotContains(w.Body.String(), suite.ownerID, "owner identifiers are not shown to recipients")
	var resp dto.PublicDocumentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.StatusSent, resp.Status)
	suite.ElementsMatch([]domain.Action{domain.ActionApprove, domain.ActionReject}, resp.AllowedActions)
}

func (suite *HandlerTestSuite) TestPublicTokenErrorsLookTheSame() {
	for _, err := range []error{
		apperrors.ErrTokenNotFound,
		apperrors.ErrTokenExpired,
		apperrors.ErrTokenAlreadyUsed,
		apperrors.ErrTokenEntityMismatch,
		fmt.Errorf("%w: document gone", apperrors.ErrNotFound),
	} {
		suite.Run(err.Error(), func() {
			suite.mockPublic.On("ViewDocument", mock.Anything, domain.DocumentTypeContract, "bdt_x").Return(nil, err).Once()

			w := suite.do(http.MethodGet, "/public/contract/bdt_x", nil, "")

			suite.Equal(http.StatusNotFound, w.Code)
			suite.Equal(dto.PublicUnavailableMessage, suite.decodeError(w))
		})
	}
}

func (suite *HandlerTestSuite) TestPublicApproveContract() {
	signed := sampleDocument(domain.DocumentTypeContract, domain.StatusSigned, suite.ownerID)
	decision := portssvc.RecipientDecision{
		SignatureData: "data:image/png;base64,AAAA",
		SignerName:    "Kim Minji",
		SignerEmail:   "minji@example.com",
	}
	suite.mockPublic.On("Approve", mock.Anything, domain.DocumentTypeContract, "bdt_sign", decision).Return(signed, nil).Once()

	w := suite.do(http.MethodPost, "/public/contract/bdt_sign/approve", map[string]string{
		"signature_data": decision.SignatureData,
		"signer_name":    decision.SignerName,
		"signer_email":   decision.SignerEmail,
	}, "")

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"status":"signed"}`, w.Body.String())
	suite.mockPublic.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestPublicApproveQuoteWithoutBody() {
	approved := sampleDocument(domain.DocumentTypeQuote, domain.StatusApproved, suite.ownerID)
	suite.mockPublic.On("Approve", mock.Anything, domain.DocumentTypeQuote, "bdt_q", portssvc.RecipientDecision{}).Return(approved, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/public/quote/bdt_q/approve", bytes.NewReader(nil))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"status":"approved"}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestPublicApproveRefusals() {
	tests := []struct {
		err     error
		code    int
		message string
	}{
		{fmt.Errorf("%w: sign from draft", apperrors.ErrInvalidTransition), http.StatusConflict, ""},
		{fmt.Errorf("%w: document changed", apperrors.ErrConflict), http.StatusConflict, ""},
		{fmt.Errorf("%w: signature image is blank", apperrors.ErrValidation), http.StatusBadRequest, ""},
		{apperrors.ErrTokenAlreadyUsed, http.StatusNotFound, dto.PublicUnavailableMessage},
	}
	for _, tt := range tests {
		suite.Run(tt.err.Error(), func() {
			suite.mockPublic.On("Approve", mock.Anything, domain.DocumentTypeContract, "bdt_r", mock.Anything).Return(nil, tt.err).Once()

			w := suite.do(http.MethodPost, "/public/contract/bdt_r/approve", map[string]string{"signer_name": "Kim"}, "")

			suite.Equal(tt.code, w.Code)
			if tt.message != "" {
				suite.Equal(tt.message, suite.decodeError(w))
			}
		})
	}
}

func (suite *HandlerTestSuite) TestPublicRejectWithReason() {
	cancelled := sampleDocument(domain.DocumentTypeContract, domain.StatusCancelled, suite.ownerID)
	suite.mockPublic.On("Reject", mock.Anything, domain.DocumentTypeContract, "bdt_no",
		portssvc.RecipientDecision{Reason: "scope changed"}).Return(cancelled, nil).Once()

	w := suite.do(http.MethodPost, "/public/contract/bdt_no/reject", map[string]string{"reason": "scope changed"}, "")

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"status":"cancelled"}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestPublicRejectsMalformedBody() {
	req := httptest.NewRequest(http.MethodPost, "/public/quote/bdt_q/reject", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPublic.AssertNotCalled(suite.T(), "Reject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestPublicRoutesIgnoreOwnerAuth() {
	doc := sampleDocument(domain.DocumentTypeQuote, domain.StatusSent, suite.ownerID)
	suite.mockPublic.On("ViewDocument", mock.Anything, domain.DocumentTypeQuote, "bdt_any").Return(doc, nil).Once()

	w := suite.do(http.MethodGet, "/public/quote/bdt_any", nil, "Bearer garbage")
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestAuditLogs() {
	entries := []domain.AuditLogEntry{{AuditLogID: "a-1", Action: domain.AuditActionSign, ResourceType: "contract", ResourceID: "c-1"}}
	suite.mockAudit.On("List", mock.Anything, suite.ownerID, domain.AuditFilter{ResourceType: "contract", Limit: 10}).
		Return(entries, nil, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/audit-logs?resource_type=contract&limit=10", nil, suite.ownerBearer)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListAuditLogsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Entries, 1)
	suite.Equal("a-1", resp.Entries[0].AuditLogID)
	suite.Nil(resp.NextToken)

	w = suite.do(http.MethodGet, "/api/v1/audit-logs?resource_type=invoice", nil, suite.ownerBearer)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/audit-logs", nil, "")
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestAuditLogsEmptyPage() {
	suite.mockAudit.On("List", mock.Anything, suite.ownerID, domain.AuditFilter{Limit: 50}).Return([]domain.AuditLogEntry(nil), nil, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/audit-logs", nil, suite.ownerBearer)

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"entries":[]}`, w.Body.String())
}
