package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/bizdoc_app/internal/core/domain"
	portssvc "github.com/SscSPs/bizdoc_app/internal/core/ports/services"
	"github.com/SscSPs/bizdoc_app/internal/dto"
	"github.com/SscSPs/bizdoc_app/internal/middleware"
	"github.com/SscSPs/bizdoc_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// documentHandler serves the owner API of one document type.
type documentHandler struct {
	docType         domain.DocumentType
	documentService portssvc.DocumentSvcFacade
	posthogClient   *utils.PosthogClientWrapper
}

func newDocumentHandler(docType domain.DocumentType, ds portssvc.DocumentSvcFacade, ph *utils.PosthogClientWrapper) *documentHandler {
	return &documentHandler{
		docType:         docType,
		documentService: ds,
		posthogClient:   ph,
	}
}

// registerDocumentRoutes registers the quote and contract collections and their type specific actions.
func registerDocumentRoutes(rg *gin.RouterGroup, ds portssvc.DocumentSvcFacade, ph *utils.PosthogClientWrapper) {
	quotes := newDocumentHandler(domain.DocumentTypeQuote, ds, ph)
	quoteRoutes := rg.Group("/quotes")
	quotes.registerCommon(quoteRoutes)
	quoteRoutes.POST("/:id/convert", quotes.convertQuote)

	contracts := newDocumentHandler(domain.DocumentTypeContract, ds, ph)
	contractRoutes := rg.Group("/contracts")
	contracts.registerCommon(contractRoutes)
	contractRoutes.POST("/:id/complete", contracts.completeContract)
	contractRoutes.POST("/:id/payment-request", contracts.requestPayment)
}

func (h *documentHandler) registerCommon(g *gin.RouterGroup) {
	g.POST("", h.createDocument)
	g.GET("", h.listDocuments)
	g.GET("/:id", h.getDocument)
	g.PUT("/:id", h.updateDocument)
	g.DELETE("/:id", h.deleteDocument)
	g.POST("/:id/send", h.sendDocument)
	g.GET("/:id/signatures", h.listSignatures)
}

// requestLogger returns the request logger enriched with the owner and document type.
// It writes a 401 and returns false when no owner identity is present.
func (h *documentHandler) requestLogger(c *gin.Context) (*slog.Logger, string, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("document_type", string(h.docType)))
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return logger, "", false
	}
	return logger.With(slog.String("user_id", userID)), userID, true
}

// createDocument godoc
// @Summary Create a quote or contract
// @Description Creates a draft. Line amounts and totals are always computed by the server.
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   document body dto.CreateDocumentRequest true "Document details"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create document"
// @Security BearerAuth
// @Router /api/v1/quotes [post]
// @Router /api/v1/contracts [post]
func (h *documentHandler) createDocument(c *gin.Context) {
	logger, userID, ok := h.requestLogger(c)
	if !ok {
		return
	}
	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to create document", slog.Int("items", len(req.Items)))
	doc, err := h.documentService.CreateDocument(c.Request.Context(), h.docType, req, userID)
	if err != nil {
		respondOwnerError(c, logger, err, "Failed to create document")
		return
	}

	logger.Info("Document created successfully", slog.String("document_id", doc.DocumentID))
	c.JSON(http.StatusCreated, dto.ToDocumentResponse(doc))
}

// listDocuments godoc
// @Summary List quotes or contracts
// @Description Lists the caller's documents, newest first.
// @Tags documents
// @Produce  json
// @Param   status query string false "Filter by status"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListDocumentsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list documents"
// @Security BearerAuth
// @Router /api/v1/quotes [get]
// @Router /api/v1/contracts [get]
func (h *documentHandler) listDocuments(c *gin.Context) {
	logger, userID, ok := h.requestLogger(c)
	if !ok {
		return
	}
	var params dto.ListDocumentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListDocuments", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	docs, nextToken, err := h.documentService.ListDocuments(c.Request.Context(), h.docType, userID, params)
	if err != nil {
		respondOwnerError(c, logger, err, "Failed to list documents")
		return
	}

	logger.Info("Documents listed successfully", slog.Int("count", len(docs)))
	c.JSON(http.StatusOK, dto.ToListDocumentsResponse(docs, nextToken))
}

// getDocument godoc
// @Summary Get a quote or contract
// @Tags documents
// @Produce  json
// @Param   id path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Document not found"
// @Failure 500 {object} map[string]string "Failed to retrieve document"
// @Security BearerAuth
// @Router /api/v1/quotes/{id} [get]
// @Router /api/v1/contracts/{id} [get]
func (h *documentHandler) getDocument(c *gin.Context) {
	logger, userID, ok := h.requestLogger(c)
	if !ok {
		return
	}
	documentID := c.Param("id")
	logger = logger.With(slog.String("document_id", documentID))

	doc, err := h.documentService.GetDocument(c.Request.Context(), h.docType, documentID, userID)
	if err != nil {
		respondOwnerError(c, logger, err, "Failed to retrieve document")
		return
	}
	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}

// updateDocument godoc
// @Summary Update a draft
// @Description Changes the fields of a draft and recomputes its totals. Sent documents are locked.
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   id path string true "Document ID"
// @Param   document body dto.UpdateDocumentRequest true "Fields to update"
// @Success 200 {object} dto.DocumentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Document not found"
// @Failure 409 {object} map[string]string "Document is no longer a draft"
// @Failure 500 {object} map[string]string "Failed to update document"
// @Security BearerAuth
// @Router /api/v1/quotes/{id} [put]
// @Router /api/v1/contracts/{id} [put]
func (h *documentHandler) updateDocument(c *gin.Context) {
	logger, userID, ok := h.requestLogger(c)
	if !ok {
		return
	}
	documentID := c.Param("id")
	logger = logger.With(slog.String("document_id", documentID))

	var req dto.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	doc, err := h.documentService.UpdateDocument(c.Request.Context(), h.docType, documentID, req, userID)
	if err != nil {
		respondOwnerError(c, logger, err, "Failed to update document")
		return
	}

	logger.Info("Document updated successfully")
	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}

// deleteDocument godoc
// @Summary Delete a draft
// @Tags documents
// @Param   id path string true "Document ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Document not found"
// @Failure 409 {object} map[string]string "Document is no longer a draft"
// @Failure 500 {object} map[string]string "Failed to delete document"
// @Security BearerAuth
// @Router /api/v1/quotes/{id} [delete]
// @Router /api/v1/contracts/{id} [delete]
func (h *documentHandler) deleteDocument(c *gin.Context) {
	logger, userID, ok := h.requestLogger(c)
	if !ok {
		return
	}
	documentID := c.Param("id")
	logger = logger.With(slog.String("document_id", documentID))

	if err := h.documentService.DeleteDocument(c.Request.Context(), h.docType, documentID, userID); err != nil {
		respondOwnerError(c, logger, err, "Failed to delete document")
		return
	}

	logger.Info("Document deleted successfully")
	c.Status(http.StatusNoContent)
}

// sendDocument godoc
// @Summary Send a draft to its client
// @Description Moves the draft to sent and returns the recipient link. The link is shown only once.
// @Tags documents
// @Produce  json
// @Param   id path string true "Document ID"
// @Success 200 {object} dto.SendDocumentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Document not found"
// @Failure 409 {object} map[string]string "Document cannot be sent in its current status"
// @Failure 500 {object} map[string]string "Failed to send document"
// @Security BearerAuth
// @Router /api/v1/quotes/{id}/send [post]
// @Router /api/v1/contracts/{id}/send [post]
func (h *documentHandler) sendDocument(c *gin.Context) {
	logger, userID, ok := h.requestLogger(c)
	if !ok {
		return
	}
	documentID := c.Param("id")
	logger = logger.With(slog.String("document_id", documentID))

	sent, err := h.documentService.SendDocument(c.Request.Context(), h.docType, documentID, userID)
	if err != nil {
		respondOwnerError(c, logger, err, "Failed to send document")
		return
	}

	middleware.PosthogEvent(c, h.posthogClient, "document_sent", map[string]any{
		"document_type": string(h.docType),
		"document_id":   documentID,
	})
	logger.Info("Document sent successfully", slog.Time("token_expires_at", sent.TokenExpiresAt))
	c.JSON(http.StatusOK, dto.SendDocumentResponse{
		Document:       dto.ToDocumentResponse(sent.Document),
		PublicURL:      sent.PublicURL,
		TokenExpiresAt: sent.TokenExpiresAt,
	})
}

// listSignatures godoc
// @Summary List captured signatures
// @Tags documents
// @Produce  json
// @Param   id path string true "Document ID"
// @Success 200 {array} dto.SignatureResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Document not found"
// @Failure 500 {object} map[string]string "Failed to list signatures"
// @Security BearerAuth
// @Router /api/v1/quotes/{id}/signatures [get]
// @Router /api/v1/contracts/{id}/signatures [get]
func (h *documentHandler) listSignatures(c *gin.Context) {
	logger, userID, ok := h.requestLogger(c)
	if !ok {
		return
	}
	documentID := c.Param("id")
	logger = logger.With(slog.String("document_id", documentID))

	sigs, err := h.documentService.ListSignatures(c.Request.Context(), h.docType, documentID, userID)
	if err != nil {
		respondOwnerError(c, logger, err, "Failed to list signatures")
		return
	}
	c.JSON(http.StatusOK, dto.ToSignatureResponses(sigs))
}

// convertQuote godoc
// @Summary Convert an approved quote into a contract
// @Description Creates the single draft contract derived from an approved quote.
// @Tags quotes
// @Produce  json
// @Param   id path string true "Quote ID"
// @Success 201 {object} dto.DocumentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Quote not found"
// @Failure 409 {object} map[string]string "Quote is not approved or was already converted"
// @Failure 500 {object} map[string]string "Failed to convert quote"
// @Security BearerAuth
// @Router /api/v1/quotes/{id}/convert [post]
func (h *documentHandler) convertQuote(c *gin.Context) {
	logger, userID, ok := h.requestLogger(c)
	if !ok {
		return
	}
	quoteID := c.Param("id")
	logger = logger.With(slog.String("document_id", quoteID))

	contract, err := h.documentService.ConvertQuoteToContract(c.Request.Context(), quoteID, userID)
	if err != nil {
		respondOwnerError(c, logger, err, "Failed to convert quote")
		return
	}

	middleware.PosthogEvent(c, h.posthogClient, "quote_converted", map[string]any{
		"quote_id":    quoteID,
		"contract_id": contract.DocumentID,
	})
	logger.Info("Quote converted to contract", slog.String("contract_id", contract.DocumentID))
	c.JSON(http.StatusCreated, dto.ToDocumentResponse(contract))
}

// completeContract godoc
// @Summary Mark a signed contract as completed
// @Tags contracts
// @Produce  json
// @Param   id path string true "Contract ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Contract not found"
// @Failure 409 {object} map[string]string "Contract is not signed"
// @Failure 500 {object} map[string]string "Failed to complete contract"
// @Security BearerAuth
// @Router /api/v1/contracts/{id}/complete [post]
func (h *documentHandler) completeContract(c *gin.Context) {
	logger, userID, ok := h.requestLogger(c)
	if !ok {
		return
	}
	contractID := c.Param("id")
	logger = logger.With(slog.String("document_id", contractID))

	doc, err := h.documentService.CompleteContract(c.Request.Context(), contractID, userID)
	if err != nil {
		respondOwnerError(c, logger, err, "Failed to complete contract")
		return
	}

	logger.Info("Contract completed")
	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}

// requestPayment godoc
// @Summary Ask the client to pay a signed contract
// @Tags contracts
// @Produce  json
// @Param   id path string true "Contract ID"
// @Success 202 {object} map[string]string
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Contract not found"
// @Failure 409 {object} map[string]string "Contract is not signed"
// @Failure 500 {object} map[string]string "Failed to request payment"
// @Security BearerAuth
// @Router /api/v1/contracts/{id}/payment-request [post]
func (h *documentHandler) requestPayment(c *gin.Context) {
	logger, userID, ok := h.requestLogger(c)
	if !ok {
		return
	}
	contractID := c.Param("id")
	logger = logger.With(slog.String("document_id", contractID))

	if err := h.documentService.RequestPayment(c.Request.Context(), contractID, userID); err != nil {
		respondOwnerError(c, logger, err, "Failed to request payment")
		return
	}

	logger.Info("Payment requested")
	c.JSON(http.StatusAccepted, gin.H{"message": "Payment request sent"})
}
