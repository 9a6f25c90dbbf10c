package errors

import "fmt"

type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Message string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{
		Message: message,
		Details: details,
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	if ve, ok := err.(*ValidationError); ok {
		return ve, true
	}
	return nil, false
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	if nfe, ok := err.(*NotFoundError); ok {
		return nfe, true
	}
	return nil, false
}

// InvalidTransitionError signals a lifecycle guard violation. Reason is a
// short machine-readable cause: "closed", "not arrived" or "already closed".
type InvalidTransitionError struct {
	Message string
	Reason  string
}

func (e *InvalidTransitionError) Error() string {
	return e.Message
}

func NewInvalidTransitionError(message, reason string) *InvalidTransitionError {
	return &InvalidTransitionError{Message: message, Reason: reason}
}

func IsInvalidTransitionError(err error) (*InvalidTransitionError, bool) {
	if ite, ok := err.(*InvalidTransitionError); ok {
		return ite, true
	}
	return nil, false
}

type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

func IsConflictError(err error) (*ConflictError, bool) {
	if ce, ok := err.(*ConflictError); ok {
		return ce, true
	}
	return nil, false
}

type UnsupportedMediaTypeError struct {
	Message   string
	Extension string
}

func (e *UnsupportedMediaTypeError) Error() string {
	return e.Message
}

func NewUnsupportedMediaTypeError(message, extension string) *UnsupportedMediaTypeError {
	return &UnsupportedMediaTypeError{Message: message, Extension: extension}
}

func IsUnsupportedMediaTypeError(err error) (*UnsupportedMediaTypeError, bool) {
	if ume, ok := err.(*UnsupportedMediaTypeError); ok {
		return ume, true
	}
	return nil, false
}

type PayloadTooLargeError struct {
	Message string
	Size    int64
	Limit   int64
}

func (e *PayloadTooLargeError) Error() string {
	return e.Message
}

func NewPayloadTooLargeError(size, limit int64) *PayloadTooLargeError {
	return &PayloadTooLargeError{
		Message: fmt.Sprintf("payload of %d bytes exceeds limit of %d bytes", size, limit),
		Size:    size,
		Limit:   limit,
	}
}

func IsPayloadTooLargeError(err error) (*PayloadTooLargeError, bool) {
	if ple, ok := err.(*PayloadTooLargeError); ok {
		return ple, true
	}
	return nil, false
}

type MalformedEncodingError struct {
	Message string
}

func (e *MalformedEncodingError) Error() string {
	return e.Message
}

func NewMalformedEncodingError(message string) *MalformedEncodingError {
	return &MalformedEncodingError{Message: message}
}

func IsMalformedEncodingError(err error) (*MalformedEncodingError, bool) {
	if mee, ok := err.(*MalformedEncodingError); ok {
		return mee, true
	}
	return nil, false
}

// StorageError wraps a repository or blob-store failure. The Message is safe
// to show callers; the Cause carries the internal detail for logging only.
type StorageError struct {
	Message string
	Cause   error
}

func (e *StorageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

func NewStorageError(message string, cause error) *StorageError {
	return &StorageError{
		Message: message,
		Cause:   cause,
	}
}

func IsStorageError(err error) (*StorageError, bool) {
	if se, ok := err.(*StorageError); ok {
		return se, true
	}
	return nil, false
}
