package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/bizdoc_app/internal/core/domain"
	portssvc "github.com/SscSPs/bizdoc_app/internal/core/ports/services"
	"github.com/SscSPs/bizdoc_app/internal/dto"
	"github.com/SscSPs/bizdoc_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type auditHandler struct {
	auditService portssvc.AuditSvc
}

func registerAuditRoutes(rg *gin.RouterGroup, as portssvc.AuditSvc) {
	h := &auditHandler{auditService: as}
	rg.GET("/audit-logs", h.listAuditLogs)
}

// listAuditLogs godoc
// @Summary List audit entries about the caller's documents
// @Description Includes recipient actions on the caller's documents, newest first.
// @Tags audit
// @Produce  json
// @Param   resource_type query string false "Resource type" Enums(quote, contract, access_token, signature, payment_request)
// @Param   resource_id query string false "Resource ID"
// @Param   limit query int false "Page size" default(50)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListAuditLogsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list audit logs"
// @Security BearerAuth
// @Router /api/v1/audit-logs [get]
func (h *auditHandler) listAuditLogs(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListAuditLogsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListAuditLogs", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	entries, nextToken, err := h.auditService.List(c.Request.Context(), userID, params.ToAuditFilter())
	if err != nil {
		respondOwnerError(c, logger, err, "Failed to list audit logs")
		return
	}
	if entries == nil {
		entries = []domain.AuditLogEntry{}
	}
	c.JSON(http.StatusOK, dto.ListAuditLogsResponse{Entries: entries, NextToken: nextToken})
}
