package handlers

import (
	"net/http"
	"strconv"

	"angkot/internal/domain"
	"angkot/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// respondError sends the standard error payload with request_id included.
func respondError(c *gin.Context, status int, code, message string, err error) {
	payload := gin.H{
		"error":      message,
		"code":       code,
		"request_id": middleware.GetRequestID(c),
	}
	if err != nil && !domain.IsInternal(err) {
		payload["details"] = err.Error()
	}
	c.JSON(status, payload)
}

// RespondDomainError maps domain errors to HTTP responses. Internal errors
// never leak their cause to the client.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "terjadi kesalahan", nil)
	}
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		respondError(c, http.StatusBadRequest, "empty_body", "body kosong", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_payload", "payload tidak valid", err)
		return false
	}
	return true
}

// chatIDQuery reads the mandatory chat_id query param. Every ledger row is
// scoped to a chat, so admin reads need it too.
func chatIDQuery(c *gin.Context) (int64, bool) {
	raw := c.Query("chat_id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id == 0 {
		respondError(c, http.StatusBadRequest, "invalid_chat_id", "chat_id tidak valid", err)
		return 0, false
	}
	return id, true
}
