package handlers

import (
	"net/http"

	"backend/internal/domain"
	"backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, code, message string) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, gin.H{
		"error":      message,
		"code":       code,
		"request_id": middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses.
// Gateway failures surface as 502 so the client knows a retry can help;
// an unsuccessful payment is final for its reference and gets a 400.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error())
	case domain.IsGateway(err):
		respondError(c, http.StatusBadGateway, "gateway_error", err.Error())
	case domain.IsPaymentNotSuccessful(err):
		respondError(c, http.StatusBadRequest, "payment_not_successful", err.Error())
	case domain.IsCorruptReference(err):
		respondError(c, http.StatusInternalServerError, "corrupt_reference", err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "terjadi kesalahan")
	}
}
