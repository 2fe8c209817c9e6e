// Package errors provides structured error handling for fractis.
// It defines sentinel errors, exit codes, and helpers for adding
// context, details, and suggestions to errors.
//
//nolint:revive // Package name intentionally shadows stdlib for domain-specific error handling
package errors

import (
	"errors"
	"fmt"
	"sort"
)

// Exit codes.
const (
	ExitSuccess  = 0 // Successful execution
	ExitGeneral  = 1 // General/unknown error
	ExitInput    = 2 // Invalid input
	ExitAuth     = 3 // Passphrase or decryption failure
	ExitNotFound = 4 // Resource not found
	ExitDefect   = 5 // Internal invariant violation
)

// FractisError is the structured error type for fractis.
type FractisError struct {
	Code       string            // Machine-readable error code
	Message    string            // Human-readable message
	Details    map[string]string // Additional context
	Suggestion string            // Actionable suggestion for user
	Cause      error             // Underlying error
	ExitCode   int               // Exit code for CLI
}

func (e *FractisError) Error() string {
	msg := e.Message

	// Include details in error message (sorted for deterministic output)
	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			msg = fmt.Sprintf("%s (%s: %s)", msg, k, e.Details[k])
		}
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *FractisError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for FractisError.
func (e *FractisError) Is(target error) bool {
	var t *FractisError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Sentinel errors.
var (
	ErrGeneral = &FractisError{
		Code:     "GENERAL_ERROR",
		Message:  "an error occurred",
		ExitCode: ExitGeneral,
	}

	ErrInvalidInput = &FractisError{
		Code:     "INVALID_INPUT",
		Message:  "invalid input",
		ExitCode: ExitInput,
	}

	// Sharing parameter errors.
	ErrInvalidParameters = &FractisError{
		Code:     "INVALID_PARAMETERS",
		Message:  "invalid sharing parameters",
		ExitCode: ExitInput,
	}

	ErrEmptySecret = &FractisError{
		Code:     "EMPTY_SECRET",
		Message:  "secret is empty - nothing to share",
		ExitCode: ExitInput,
	}

	// Reconstruction input errors - always recoverable by supplying
	// correct shares.
	ErrInsufficientShares = &FractisError{
		Code:     "INSUFFICIENT_SHARES",
		Message:  "not enough shares to reconstruct the secret",
		ExitCode: ExitInput,
	}

	ErrShareLengthMismatch = &FractisError{
		Code:     "SHARE_LENGTH_MISMATCH",
		Message:  "shares have conflicting lengths",
		ExitCode: ExitInput,
	}

	ErrDuplicateShare = &FractisError{
		Code:     "DUPLICATE_SHARE",
		Message:  "two shares carry the same x-coordinate",
		ExitCode: ExitInput,
	}

	ErrInvalidShare = &FractisError{
		Code:     "INVALID_SHARE",
		Message:  "share is malformed",
		ExitCode: ExitInput,
	}

	ErrUnknownScheme = &FractisError{
		Code:     "UNKNOWN_SCHEME",
		Message:  "unknown sharing scheme",
		ExitCode: ExitInput,
	}

	// DivisionByZero surfacing means upstream validation failed; it is a
	// defect, not a user error.
	ErrDivisionByZero = &FractisError{
		Code:     "DIVISION_BY_ZERO",
		Message:  "internal field arithmetic guard tripped - please report this",
		ExitCode: ExitDefect,
	}

	// Protection errors.
	ErrProtectionFailed = &FractisError{
		Code:     "PROTECTION_FAILED",
		Message:  "failed to protect share file",
		ExitCode: ExitGeneral,
	}

	ErrUnprotectFailed = &FractisError{
		Code:     "UNPROTECT_FAILED",
		Message:  "decryption failed - wrong passphrase or corrupted file",
		ExitCode: ExitAuth,
	}

	ErrNotFound = &FractisError{
		Code:     "NOT_FOUND",
		Message:  "file not found",
		ExitCode: ExitNotFound,
	}

	// Bundle errors.
	ErrBundleNotFound = &FractisError{
		Code:     "BUNDLE_NOT_FOUND",
		Message:  "share bundle not found",
		ExitCode: ExitNotFound,
	}

	ErrBundleCorrupted = &FractisError{
		Code:     "BUNDLE_CORRUPTED",
		Message:  "share bundle is corrupted - checksum mismatch",
		ExitCode: ExitInput,
	}

	ErrShareFileNotFound = &FractisError{
		Code:     "SHARE_FILE_NOT_FOUND",
		Message:  "share file not found",
		ExitCode: ExitNotFound,
	}

	// Config errors.
	ErrConfigNotFound = &FractisError{
		Code:     "CONFIG_NOT_FOUND",
		Message:  "configuration file not found",
		ExitCode: ExitNotFound,
	}

	ErrConfigInvalid = &FractisError{
		Code:     "CONFIG_INVALID",
		Message:  "configuration file is invalid",
		ExitCode: ExitInput,
	}

	ErrUnknownConfigKey = &FractisError{
		Code:     "UNKNOWN_CONFIG_KEY",
		Message:  "unknown config key",
		ExitCode: ExitInput,
	}

	ErrInvalidFormat = &FractisError{
		Code:     "INVALID_FORMAT",
		Message:  "invalid value",
		ExitCode: ExitInput,
	}
)

// New creates a new FractisError with the given code and message.
func New(code, message string) *FractisError {
	return &FractisError{
		Code:     code,
		Message:  message,
		ExitCode: ExitGeneral,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, args...)

	var fe *FractisError
	if errors.As(err, &fe) {
		return &FractisError{
			Code:       fe.Code,
			Message:    fmt.Sprintf("%s: %s", msg, fe.Message),
			Details:    fe.Details,
			Suggestion: fe.Suggestion,
			Cause:      err,
			ExitCode:   fe.ExitCode,
		}
	}

	return &FractisError{
		Code:     "GENERAL_ERROR",
		Message:  msg,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithDetails adds details to an error.
func WithDetails(err error, details map[string]string) error {
	if err == nil {
		return nil
	}

	var fe *FractisError
	if errors.As(err, &fe) {
		return &FractisError{
			Code:       fe.Code,
			Message:    fe.Message,
			Details:    details,
			Suggestion: fe.Suggestion,
			Cause:      fe.Cause,
			ExitCode:   fe.ExitCode,
		}
	}

	return &FractisError{
		Code:     "GENERAL_ERROR",
		Message:  err.Error(),
		Details:  details,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithSuggestion adds a suggestion to an error.
func WithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}

	var fe *FractisError
	if errors.As(err, &fe) {
		return &FractisError{
			Code:       fe.Code,
			Message:    fe.Message,
			Details:    fe.Details,
			Suggestion: suggestion,
			Cause:      fe.Cause,
			ExitCode:   fe.ExitCode,
		}
	}

	return &FractisError{
		Code:       "GENERAL_ERROR",
		Message:    err.Error(),
		Suggestion: suggestion,
		Cause:      err,
		ExitCode:   ExitGeneral,
	}
}

// ExitCode returns the appropriate exit code for an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var fe *FractisError
	if errors.As(err, &fe) {
		return fe.ExitCode
	}

	return ExitGeneral
}

// Code returns the error code for an error.
func Code(err error) string {
	var fe *FractisError
	if errors.As(err, &fe) {
		return fe.Code
	}
	return "GENERAL_ERROR"
}

// Is wraps errors.Is for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience.
func As(err error, target any) bool {
	return errors.As(err, target)
}
