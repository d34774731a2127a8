package shipping

// ============================================================================
// SHIPPING ERROR CODES
// ============================================================================
// These constants mirror domain error codes to avoid circular imports.
// The handler layer maps these to HTTP status codes.

const (
	codeInternal = "internal"
	codeInvalid  = "invalid"
)

// ============================================================================
// SHIPPING ERROR TYPE
// ============================================================================

// ShippingError represents a shipping-specific error with a code and message.
// It follows the domain.Error pattern for consistent HTTP status mapping.
type ShippingError struct {
	Code    string
	Message string
}

func (e *ShippingError) Error() string {
	return e.Message
}

// ErrorCode returns the error code for HTTP status mapping.
func (e *ShippingError) ErrorCode() string {
	return e.Code
}

// ErrorMessage returns the user-facing message.
func (e *ShippingError) ErrorMessage() string {
	return e.Message
}

// newShippingError creates a new shipping error.
func newShippingError(code, message string) *ShippingError {
	return &ShippingError{Code: code, Message: message}
}

// ============================================================================
// SHIPPING DOMAIN ERRORS
// ============================================================================

var (
	// ErrEstimatorUnavailable is returned when the prediction service is
	// unreachable, answers with a non-success status, or returns a body
	// without a usable cost figure.
	ErrEstimatorUnavailable = newShippingError(codeInternal, "No se pudo calcular el costo de envío")

	// ErrMissingBaseURL is returned when the predictor base URL is not configured.
	ErrMissingBaseURL = newShippingError(codeInternal, "Shipping predictor base URL is required")

	// ErrInvalidFeatures is returned when the feature vector is unusable.
	ErrInvalidFeatures = newShippingError(codeInvalid, "Shipping features must be positive")
)
