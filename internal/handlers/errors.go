package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/p2p_ledger/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// errorStatuses is checked in order; the first sentinel that matches decides the status.
var errorStatuses = []struct {
	err    error
	status int
}{
	{apperrors.ErrValidation, http.StatusBadRequest},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized},
	{apperrors.ErrRecipientNotFound, http.StatusNotFound},
	{apperrors.ErrNotFound, http.StatusNotFound},
	{apperrors.ErrAccountNotProvisioned, http.StatusConflict},
	{apperrors.ErrDuplicate, http.StatusConflict},
	{apperrors.ErrSelfTransferNotAllowed, http.StatusUnprocessableEntity},
	{apperrors.ErrInsufficientFunds, http.StatusUnprocessableEntity},
	{apperrors.ErrConversionFailed, http.StatusUnprocessableEntity},
}

// statusForError maps a service error to an HTTP status code.
func statusForError(err error) int {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code >= http.StatusBadRequest && appErr.Code < http.StatusInternalServerError {
		return appErr.Code
	}
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// respondError writes the mapped status. Client errors carry the error text; server
// errors are logged and replaced by fallback.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, ErrorResponse{Error: fallback})
		return
	}
	logger.Warn("Request rejected", slog.Int("status", status), slog.String("error", err.Error()))
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

// bindError answers a request whose body or query failed binding.
func bindError(c *gin.Context, logger *slog.Logger, err error) {
	logger.Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
}
