package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ncordova/vinoteca/internal/domain"
)

// ============================================================================
// MIDDLEWARE ERROR RESPONSE HELPERS
// ============================================================================
//
// These helpers write the storefront failure envelope directly. They mirror
// handler.RespondError but are self-contained to avoid circular imports
// (handler imports middleware for GetLogger, etc.)

// respondWithError writes an error response to the client.
// For JSON requests, returns the failure envelope.
// For other requests, returns plain text error.
func respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.ErrorCode(err)
	message := domain.ErrorMessage(err)
	status := errorCodeToHTTPStatus(code)

	logger := GetLogger(r.Context())
	if logger == nil {
		logger = slog.Default()
	}

	attrs := []any{
		"error", err.Error(),
		"code", code,
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
	}

	if reqID := GetRequestID(r.Context()); reqID != "" {
		attrs = append(attrs, "request_id", reqID)
	}

	if status >= 500 {
		logger.Error("middleware error", attrs...)
	} else {
		logger.Info("middleware error", attrs...)
	}

	if acceptsJSON(r) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"message": message,
		})
		return
	}

	http.Error(w, message, status)
}

// respondUnauthorized is a convenience wrapper for 401 errors.
func respondUnauthorized(w http.ResponseWriter, r *http.Request) {
	err := domain.Errorf(domain.EUNAUTHORIZED, "", "Debes iniciar sesión")
	respondWithError(w, r, err)
}

// respondForbidden is a convenience wrapper for 403 errors.
func respondForbidden(w http.ResponseWriter, r *http.Request) {
	err := domain.Errorf(domain.EFORBIDDEN, "", "No tienes permiso para acceder a este recurso")
	respondWithError(w, r, err)
}

// respondTooManyRequests is a convenience wrapper for 429 errors.
func respondTooManyRequests(w http.ResponseWriter, r *http.Request) {
	err := domain.Errorf(domain.ERATELIMIT, "", "Demasiadas solicitudes")
	respondWithError(w, r, err)
}

// respondTooLarge writes a 413 directly; there is no matching domain code.
func respondTooLarge(w http.ResponseWriter, r *http.Request, message string) {
	if acceptsJSON(r) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"message": message,
		})
		return
	}
	http.Error(w, message, http.StatusRequestEntityTooLarge)
}

// errorCodeToHTTPStatus maps domain error codes to HTTP status codes.
func errorCodeToHTTPStatus(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest // 400
	case domain.EUNAUTHORIZED:
		return http.StatusUnauthorized // 401
	case domain.EPAYMENT:
		return http.StatusPaymentRequired // 402
	case domain.EFORBIDDEN:
		return http.StatusForbidden // 403
	case domain.ENOTFOUND:
		return http.StatusNotFound // 404
	case domain.ECONFLICT:
		return http.StatusConflict // 409
	case domain.EGONE:
		return http.StatusGone // 410
	case domain.ERATELIMIT:
		return http.StatusTooManyRequests // 429
	case domain.EINTERNAL:
		return http.StatusInternalServerError // 500
	case domain.ENOTIMPL:
		return http.StatusNotImplemented // 501
	default:
		return http.StatusInternalServerError // 500
	}
}

// acceptsJSON checks if the client prefers JSON responses.
func acceptsJSON(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	contentType := r.Header.Get("Content-Type")

	if strings.Contains(accept, "application/json") {
		return true
	}
	if strings.Contains(contentType, "application/json") {
		return true
	}
	if strings.HasSuffix(r.URL.Path, ".json") {
		return true
	}
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}

	return false
}
