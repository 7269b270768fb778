package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/bizdoc_app/internal/apperrors"
	"github.com/SscSPs/bizdoc_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// publicConflictMessage is shown to recipients for any action the document no longer accepts.
const publicConflictMessage = "this action is no longer possible for this document"

// ownerErrorStatus maps a service error to the status code of the owner API.
func ownerErrorStatus(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrInvalidTransition),
		errors.Is(err, apperrors.ErrDocumentLocked):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondOwnerError writes err as JSON. Server errors only expose fallback.
func respondOwnerError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	status := ownerErrorStatus(err)
	if status == http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": fallback})
		return
	}
	logger.Warn("Request refused", slog.Int("status", status), slog.String("error", err.Error()))
	c.JSON(status, gin.H{"error": err.Error()})
}

// respondPublicError writes err for an anonymous recipient. Token problems and missing
// documents all look the same so a link cannot be probed.
func respondPublicError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case apperrors.IsTokenError(err), errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Public link unavailable", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": dto.PublicUnavailableMessage})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Invalid recipient submission", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidTransition),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrDocumentLocked):
		logger.Warn("Recipient action refused", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": publicConflictMessage})
	default:
		logger.Error("Public request failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong, please try again later"})
	}
}
