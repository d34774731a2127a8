package handler

import (
	"log/slog"
	"net/http"

	"github.com/ncordova/vinoteca/internal/domain"
)

// Storefront endpoints use a flat envelope: {"success": true, ...} on
// success and {"success": false, "message": "..."} on failure.

// errorCoder is implemented by provider errors (shipping, payment) that
// mirror domain codes without importing the domain package.
type errorCoder interface {
	ErrorCode() string
}

// errorMessenger is implemented by provider errors carrying a user-facing
// message that is safe to show even for internal failures.
type errorMessenger interface {
	ErrorMessage() string
}

// RespondSuccess writes the success envelope with the given payload fields.
func RespondSuccess(w http.ResponseWriter, status int, payload map[string]interface{}) {
	body := make(map[string]interface{}, len(payload)+1)
	body["success"] = true
	for k, v := range payload {
		body[k] = v
	}
	writeJSON(w, status, body)
}

// RespondError writes the failure envelope. The status comes from the error
// code; internal details are logged, never sent.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	status := errorStatus(err)
	message := errorMessage(err)

	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed",
			slog.String("op", domain.ErrorOp(err)),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
	}

	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

// RespondValidationError writes validation field errors in the failure
// envelope with a fields map.
func RespondValidationError(w http.ResponseWriter, r *http.Request, err error) {
	fields := domain.GetValidationFields(err)
	if fields == nil {
		RespondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusBadRequest, map[string]interface{}{
		"success": false,
		"message": "Datos inválidos",
		"fields":  fields,
	})
}

func errorStatus(err error) int {
	if coder, ok := err.(errorCoder); ok {
		return ErrorCodeToHTTPStatus(coder.ErrorCode())
	}
	return ErrorCodeToHTTPStatus(domain.ErrorCode(err))
}

func errorMessage(err error) string {
	if messenger, ok := err.(errorMessenger); ok {
		return messenger.ErrorMessage()
	}
	return domain.ErrorMessage(err)
}
