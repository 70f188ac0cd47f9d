package vxeddsa

import (
	"errors"
	"fmt"
)

// ErrorCategory represents the category of a VXEdDSA error
type ErrorCategory string

const (
	ErrorCategoryValidation    ErrorCategory = "validation"
	ErrorCategoryConfiguration ErrorCategory = "configuration"
	ErrorCategoryKeyGeneration ErrorCategory = "key_generation"
	ErrorCategorySigning       ErrorCategory = "signing"
	ErrorCategoryVerification  ErrorCategory = "verification"
	ErrorCategoryCryptographic ErrorCategory = "cryptographic"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

const (
	ErrorSeverityLow      ErrorSeverity = "low"      // Expected negative outcome
	ErrorSeverityMedium   ErrorSeverity = "medium"   // Bad input, caller can fix it
	ErrorSeverityHigh     ErrorSeverity = "high"     // Operation cannot proceed
	ErrorSeverityCritical ErrorSeverity = "critical" // Environment fault
)

// Error is the structured error returned by every operation in this package.
type Error struct {
	Category    ErrorCategory          `json:"category"`
	Severity    ErrorSeverity          `json:"severity"`
	Code        string                 `json:"code"`
	Message     string                 `json:"message"`
	Details     string                 `json:"details,omitempty"`
	Cause       error                  `json:"-"`
	Context     map[string]interface{} `json:"context,omitempty"`
	Recoverable bool                   `json:"recoverable"`
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s:%s] %s", e.Category, e.Code, e.Message)
	if e.Details != "" {
		msg += ": " + e.Details
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same code, so that copies
// made by WithCause and WithContext still match their sentinel.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

func (e *Error) clone() *Error {
	newError := &Error{
		Category:    e.Category,
		Severity:    e.Severity,
		Code:        e.Code,
		Message:     e.Message,
		Details:     e.Details,
		Cause:       e.Cause,
		Recoverable: e.Recoverable,
		Context:     make(map[string]interface{}, len(e.Context)+1),
	}
	for k, v := range e.Context {
		newError.Context[k] = v
	}
	return newError
}

// WithContext returns a copy of the error with an extra context entry.
func (e *Error) WithContext(key string, value interface{}) *Error {
	newError := e.clone()
	newError.Context[key] = value
	return newError
}

// WithCause returns a copy of the error wrapping cause.
func (e *Error) WithCause(cause error) *Error {
	newError := e.clone()
	newError.Cause = cause
	return newError
}

// WithDetails returns a copy of the error with a detail string.
func (e *Error) WithDetails(format string, args ...interface{}) *Error {
	newError := e.clone()
	newError.Details = fmt.Sprintf(format, args...)
	return newError
}

// IsRecoverable returns whether the error is recoverable
func (e *Error) IsRecoverable() bool {
	return e.Recoverable
}

// NewError creates a new error. Critical errors are never recoverable.
func NewError(category ErrorCategory, severity ErrorSeverity, code, message string) *Error {
	return &Error{
		Category:    category,
		Severity:    severity,
		Code:        code,
		Message:     message,
		Context:     make(map[string]interface{}),
		Recoverable: severity != ErrorSeverityCritical,
	}
}

// Input validation errors
var (
	ErrInvalidKeyLength = NewError(
		ErrorCategoryValidation, ErrorSeverityMedium, "INVALID_KEY_LENGTH",
		"key must be 32 bytes")

	ErrInvalidNonceLength = NewError(
		ErrorCategoryValidation, ErrorSeverityMedium, "INVALID_NONCE_LENGTH",
		"signing nonce must be 32 bytes")

	ErrInvalidSignatureLength = NewError(
		ErrorCategoryValidation, ErrorSeverityMedium, "INVALID_SIGNATURE_LENGTH",
		"signature must be 96 bytes")

	ErrInvalidPublicKeyEncoding = NewError(
		ErrorCategoryValidation, ErrorSeverityMedium, "INVALID_PUBLIC_KEY_ENCODING",
		"encoded public key has wrong length or type byte")
)

// Configuration errors
var (
	ErrInvalidConfiguration = NewError(
		ErrorCategoryConfiguration, ErrorSeverityHigh, "INVALID_CONFIGURATION",
		"configuration is invalid")

	ErrUnsupportedHashAlgorithm = NewError(
		ErrorCategoryConfiguration, ErrorSeverityHigh, "UNSUPPORTED_HASH_ALGORITHM",
		"seed hash algorithm is not supported")
)

// Environment faults. These abort the operation; callers decide whether to
// retry with fresh entropy or terminate.
var (
	ErrRandomSourceUnavailable = NewError(
		ErrorCategoryCryptographic, ErrorSeverityCritical, "RANDOM_SOURCE_UNAVAILABLE",
		"secure random source is unavailable")

	ErrDegenerateNonce = NewError(
		ErrorCategorySigning, ErrorSeverityCritical, "DEGENERATE_NONCE",
		"signing nonce reduced to zero")

	ErrDegenerateBasePoint = NewError(
		ErrorCategorySigning, ErrorSeverityCritical, "DEGENERATE_BASE_POINT",
		"VRF base point is the identity")
)

// Verification outcomes. All of them mean "do not trust this signature";
// they stay distinct for diagnostics only.
var (
	ErrInvalidPublicKey = NewError(
		ErrorCategoryVerification, ErrorSeverityLow, "INVALID_PUBLIC_KEY",
		"public key does not encode a usable curve point")

	ErrInvalidEncodedPoint = NewError(
		ErrorCategoryVerification, ErrorSeverityLow, "INVALID_ENCODED_POINT",
		"signature point failed decompression or subgroup validation")

	ErrMalformedSignature = NewError(
		ErrorCategoryVerification, ErrorSeverityLow, "MALFORMED_SIGNATURE",
		"signature scalar is not canonical")

	ErrSignatureMismatch = NewError(
		ErrorCategoryVerification, ErrorSeverityLow, "SIGNATURE_MISMATCH",
		"recomputed challenge does not match")
)

// Key agreement errors
var (
	ErrLowOrderPoint = NewError(
		ErrorCategoryCryptographic, ErrorSeverityMedium, "LOW_ORDER_POINT",
		"peer public key is a low-order point")
)

// IsErrorCategory checks if an error belongs to a specific category
func IsErrorCategory(err error, category ErrorCategory) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Category == category
	}
	return false
}

// IsErrorSeverity checks if an error has a specific severity
func IsErrorSeverity(err error, severity ErrorSeverity) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Severity == severity
	}
	return false
}

// IsRecoverableError checks if an error is recoverable. Errors from outside
// this package are assumed recoverable.
func IsRecoverableError(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.IsRecoverable()
	}
	return true
}

// GetErrorContext extracts context from an error
func GetErrorContext(err error) map[string]interface{} {
	var e *Error
	if errors.As(err, &e) {
		return e.Context
	}
	return nil
}
