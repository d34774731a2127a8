package payment

// ============================================================================
// PAYMENT ERROR CODES
// ============================================================================
// These constants mirror domain error codes to avoid circular imports.
// The handler layer maps these to HTTP status codes.

const (
	codeInternal = "internal"
	codeInvalid  = "invalid"
	codePayment  = "payment_required"
)

// PaymentError represents a gateway-specific error with a code and message.
// It follows the domain.Error pattern for consistent HTTP status mapping.
type PaymentError struct {
	Code    string
	Message string
	Err     error
}

func (e *PaymentError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *PaymentError) Unwrap() error {
	return e.Err
}

// ErrorCode returns the error code for HTTP status mapping.
func (e *PaymentError) ErrorCode() string {
	return e.Code
}

// newPaymentError creates a new payment error.
func newPaymentError(code, message string) *PaymentError {
	return &PaymentError{Code: code, Message: message}
}

var (
	// ErrMissingCredentials is returned when gateway credentials are not configured.
	ErrMissingCredentials = newPaymentError(codeInternal, "Payment gateway credentials are required")

	// ErrNoItems is returned when an order is created with no line items.
	ErrNoItems = newPaymentError(codeInvalid, "At least one line item is required")

	// ErrGatewayFailure is returned when the gateway rejects or fails a call.
	ErrGatewayFailure = newPaymentError(codePayment, "No se pudo procesar el pago")
)

// GatewayFailure wraps a gateway error preserving the underlying cause.
func GatewayFailure(err error) error {
	return &PaymentError{Code: codePayment, Message: ErrGatewayFailure.Message, Err: err}
}
