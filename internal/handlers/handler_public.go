package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/SscSPs/bizdoc_app/internal/core/domain"
	portssvc "github.com/SscSPs/bizdoc_app/internal/core/ports/services"
	"github.com/SscSPs/bizdoc_app/internal/dto"
	"github.com/SscSPs/bizdoc_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// publicHandler serves recipients who hold an access token. No account is involved.
type publicHandler struct {
	docType       domain.DocumentType
	publicService portssvc.PublicDocumentSvc
}

// registerPublicRoutes registers the token routes of both document types under rg.
func registerPublicRoutes(rg *gin.RouterGroup, ps portssvc.PublicDocumentSvc) {
	for _, docType := range []domain.DocumentType{domain.DocumentTypeQuote, domain.DocumentTypeContract} {
		h := &publicHandler{docType: docType, publicService: ps}
		g := rg.Group("/" + string(docType) + "/:token")
		g.GET("", h.viewDocument)
		g.POST("/approve", h.approve)
		g.POST("/reject", h.reject)
	}
}

func (h *publicHandler) requestLogger(c *gin.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("document_type", string(h.docType)))
}

// bindOptionalJSON binds a JSON body if one was sent. An empty body is not an error.
func bindOptionalJSON(c *gin.Context, obj any) error {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// viewDocument godoc
// @Summary View a document through its recipient link
// @Tags public
// @Produce  json
// @Param   token path string true "Access token"
// @Success 200 {object} dto.PublicDocumentResponse
// @Failure 404 {object} map[string]string "Link unavailable"
// @Failure 429 {object} map[string]string "Too many requests"
// @Router /public/quote/{token} [get]
// @Router /public/contract/{token} [get]
func (h *publicHandler) viewDocument(c *gin.Context) {
	logger := h.requestLogger(c)

	doc, err := h.publicService.ViewDocument(c.Request.Context(), h.docType, c.Param("token"))
	if err != nil {
		respondPublicError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPublicDocumentResponse(doc))
}

// approve godoc
// @Summary Approve a quote or sign a contract
// @Description Signing a contract requires a signature image. For quotes it is optional.
// @Tags public
// @Accept  json
// @Produce  json
// @Param   token path string true "Access token"
// @Param   decision body dto.PublicApproveRequest false "Signature"
// @Success 200 {object} dto.PublicActionResponse
// @Failure 400 {object} map[string]string "Invalid signature"
// @Failure 404 {object} map[string]string "Link unavailable"
// @Failure 409 {object} map[string]string "Action no longer possible"
// @Failure 429 {object} map[string]string "Too many requests"
// @Router /public/quote/{token}/approve [post]
// @Router /public/contract/{token}/approve [post]
func (h *publicHandler) approve(c *gin.Context) {
	logger := h.requestLogger(c)
	var req dto.PublicApproveRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		logger.Warn("Failed to bind JSON for public approve", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	doc, err := h.publicService.Approve(c.Request.Context(), h.docType, c.Param("token"), portssvc.RecipientDecision{
		SignatureData: req.SignatureData,
		SignerName:    req.SignerName,
		SignerEmail:   req.SignerEmail,
	})
	if err != nil {
		respondPublicError(c, logger, err)
		return
	}

	logger.Info("Recipient approved document", slog.String("document_id", doc.DocumentID), slog.String("status", string(doc.Status)))
	c.JSON(http.StatusOK, dto.PublicActionResponse{Status: doc.Status})
}

// reject godoc
// @Summary Reject a quote or decline a contract
// @Tags public
// @Accept  json
// @Produce  json
// @Param   token path string true "Access token"
// @Param   decision body dto.PublicRejectRequest false "Reason"
// @Success 200 {object} dto.PublicActionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Link unavailable"
// @Failure 409 {object} map[string]string "Action no longer possible"
// @Failure 429 {object} map[string]string "Too many requests"
// @Router /public/quote/{token}/reject [post]
// @Router /public/contract/{token}/reject [post]
func (h *publicHandler) reject(c *gin.Context) {
	logger := h.requestLogger(c)
	var req dto.PublicRejectRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		logger.Warn("Failed to bind JSON for public reject", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	doc, err := h.publicService.Reject(c.Request.Context(), h.docType, c.Param("token"), portssvc.RecipientDecision{Reason: req.Reason})
	if err != nil {
		respondPublicError(c, logger, err)
		return
	}

	logger.Info("Recipient rejected document", slog.String("document_id", doc.DocumentID), slog.String("status", string(doc.Status)))
	c.JSON(http.StatusOK, dto.PublicActionResponse{Status: doc.Status})
}
