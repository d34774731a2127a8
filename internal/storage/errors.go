package storage

import "fmt"

// ============================================================================
// STORAGE ERROR CODES
// ============================================================================
// These constants mirror domain error codes to avoid circular imports.
// The handler layer maps these to HTTP status codes.

const (
	codeInternal = "internal"
	codeInvalid  = "invalid"
	codeNotFound = "not_found"
)

// StorageError represents a storage-specific error with a code and message.
// It implements the same code/message accessors as domain errors so the
// handler layer maps it to an HTTP status without importing this package.
type StorageError struct {
	Code    string
	Message string
}

func (e *StorageError) Error() string {
	return e.Message
}

// ErrorCode returns the error code for HTTP status mapping.
func (e *StorageError) ErrorCode() string {
	return e.Code
}

// ErrorMessage returns the user-facing message.
func (e *StorageError) ErrorMessage() string {
	return e.Message
}

// ErrInvalidKey is returned for keys that escape the storage root.
var ErrInvalidKey = &StorageError{Code: codeInvalid, Message: "invalid storage key"}

// ErrFileNotFound creates an error for when a file is not found.
func ErrFileNotFound(key string) error {
	return &StorageError{
		Code:    codeNotFound,
		Message: fmt.Sprintf("file not found: %s", key),
	}
}
