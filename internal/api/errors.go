package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"airline-ops-backend/internal/domain"
	"airline-ops-backend/internal/mw"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		RequestID: mw.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses. Storage details
// go to the request log through c.Error, never to the client.
func RespondDomainError(c *gin.Context, err error) {
	var (
		write     domain.WriteError
		transient domain.TransientError
		notFound  domain.NotFoundError
	)
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	case errors.As(err, &notFound):
		msg := "not found"
		if notFound.Resource != "" {
			msg = notFound.Resource + " not found"
		}
		respondError(c, http.StatusNotFound, "not_found", msg)
	case errors.As(err, &transient):
		_ = c.Error(err)
		respondError(c, http.StatusServiceUnavailable, "unavailable", transient.Op+": temporarily unavailable, try again")
	case errors.As(err, &write):
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "write_failed", write.Op+" could not be recorded")
	default:
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

func badRequest(c *gin.Context, err error) {
	respondError(c, http.StatusBadRequest, "invalid_request", err.Error())
}
