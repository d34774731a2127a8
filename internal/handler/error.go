package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ncordova/vinoteca/internal/domain"
)

// ErrorCodeToHTTPStatus maps domain error codes to HTTP status codes.
func ErrorCodeToHTTPStatus(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case domain.EPAYMENT:
		return http.StatusPaymentRequired
	case domain.EFORBIDDEN:
		return http.StatusForbidden
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.ECONFLICT:
		return http.StatusConflict
	case domain.EGONE:
		return http.StatusGone
	case domain.ERATELIMIT:
		return http.StatusTooManyRequests
	case domain.ENOTIMPL:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// errorBody is the JSON envelope for error responses.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// ErrorResponse writes an error to the client. JSON clients get the error
// envelope; everything else gets plain text. Internal error details are
// logged, never sent.
func ErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.ErrorCode(err)
	message := domain.ErrorMessage(err)
	status := ErrorCodeToHTTPStatus(code)

	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "internal error",
			slog.String("op", domain.ErrorOp(err)),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
	}

	if acceptsJSON(r) {
		writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: message}})
		return
	}

	http.Error(w, message, status)
}

// ValidationErrorResponse writes field-level validation errors. Falls back
// to ErrorResponse for non-validation errors.
func ValidationErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	fields := domain.GetValidationFields(err)
	if fields == nil {
		ErrorResponse(w, r, err)
		return
	}

	if acceptsJSON(r) {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: errorDetail{
			Code:    domain.EINVALID,
			Message: "Validation failed",
			Fields:  fields,
		}})
		return
	}

	http.Error(w, err.Error(), http.StatusBadRequest)
}

// NotFoundResponse writes a 404.
func NotFoundResponse(w http.ResponseWriter, r *http.Request) {
	ErrorResponse(w, r, domain.Errorf(domain.ENOTFOUND, "", "Resource not found"))
}

// UnauthorizedResponse writes a 401.
func UnauthorizedResponse(w http.ResponseWriter, r *http.Request) {
	ErrorResponse(w, r, domain.Errorf(domain.EUNAUTHORIZED, "", "Authentication required"))
}

// ForbiddenResponse writes a 403.
func ForbiddenResponse(w http.ResponseWriter, r *http.Request) {
	ErrorResponse(w, r, domain.Errorf(domain.EFORBIDDEN, "", "Access denied"))
}

// InternalErrorResponse writes a 500, logging the underlying error.
func InternalErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	ErrorResponse(w, r, domain.Internal(err, "", "An unexpected error occurred"))
}

// acceptsJSON reports whether the client wants a JSON response.
func acceptsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return true
	}
	return strings.HasSuffix(r.URL.Path, ".json")
}

// writeJSON marshals v to the response with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", slog.String("error", err.Error()))
	}
}
