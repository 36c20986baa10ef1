// Package errors provides structured error handling for the recovery tool.
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

// Exit codes for the CLI. Exit 0 covers both a successful match and an
// exhausted search — non-zero is reserved for invariant violations and
// invalid CLI input.
const (
	ExitSuccess    = 0 // Match found, or search exhausted without error
	ExitGeneral    = 1 // General/unknown error
	ExitInput      = 2 // Invalid input (CLI flags, share format, mnemonic)
	ExitInvariant  = 3 // Core invariant violated (indices, lengths, probability range)
	ExitNotFound   = 4 // Resource not found (file path, config)
	ExitPermission = 5 // Permission denied (file write, decrypt)
)

// RecoveryError is the structured error type used throughout the tool.
type RecoveryError struct {
	Code       string            // Machine-readable error code
	Message    string            // Human-readable message
	Details    map[string]string // Additional context
	Suggestion string            // Actionable suggestion for the operator
	Cause      error             // Underlying error
	ExitCode   int               // Exit code for CLI
}

func (e *RecoveryError) Error() string {
	msg := e.Message

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

// Unwrap allows errors.Is/errors.As to see through to the cause.
func (e *RecoveryError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for RecoveryError by comparing error codes.
func (e *RecoveryError) Is(target error) bool {
	var t *RecoveryError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Sentinel errors covering every invariant named in the core contract.
var (
	ErrGeneral = &RecoveryError{
		Code:     "GENERAL_ERROR",
		Message:  "an error occurred",
		ExitCode: ExitGeneral,
	}

	ErrInvalidInput = &RecoveryError{
		Code:     "INVALID_INPUT",
		Message:  "invalid input",
		ExitCode: ExitInput,
	}

	// Share invariants (component B / G).
	ErrShareLengthMismatch = &RecoveryError{
		Code:     "SHARE_LENGTH_MISMATCH",
		Message:  "shares have mismatched lengths",
		ExitCode: ExitInvariant,
	}

	ErrShareTooShort = &RecoveryError{
		Code:       "SHARE_TOO_SHORT",
		Message:    "share payload is empty",
		ExitCode:   ExitInvariant,
		Suggestion: "a share must contain a 1-byte index plus at least a 1-byte payload",
	}

	ErrShareIndexZero = &RecoveryError{
		Code:     "SHARE_INDEX_ZERO",
		Message:  "share index must not be zero",
		ExitCode: ExitInvariant,
	}

	ErrShareIndexOutOfRange = &RecoveryError{
		Code:       "SHARE_INDEX_OUT_OF_RANGE",
		Message:    "share index out of range",
		ExitCode:   ExitInvariant,
		Suggestion: "share-encoded mnemonics carry an index in 1..=15",
	}

	ErrDuplicateShareIndex = &RecoveryError{
		Code:     "DUPLICATE_SHARE_INDEX",
		Message:  "shares must have distinct indices",
		ExitCode: ExitInvariant,
	}

	ErrInvalidProbability = &RecoveryError{
		Code:     "INVALID_PROBABILITY",
		Message:  "index collision probability must be within [0, 1]",
		ExitCode: ExitInvariant,
	}

	// Mnemonic / wordlist errors (component C).
	ErrInvalidMnemonic = &RecoveryError{
		Code:     "INVALID_MNEMONIC",
		Message:  "invalid mnemonic phrase",
		ExitCode: ExitInput,
	}

	ErrWordCountMismatch = &RecoveryError{
		Code:     "WORD_COUNT_MISMATCH",
		Message:  "mnemonic must contain exactly 12 words",
		ExitCode: ExitInput,
	}

	ErrUnknownWord = &RecoveryError{
		Code:       "UNKNOWN_WORD",
		Message:    "word is not present in the BIP39 English wordlist",
		ExitCode:   ExitInput,
		Suggestion: "check for typos; the tool can suggest the closest valid word",
	}

	ErrChecksumUncorrectable = &RecoveryError{
		Code:     "CHECKSUM_UNCORRECTABLE",
		Message:  "mnemonic checksum is invalid and no single-word substitution corrects it",
		ExitCode: ExitInput,
	}

	// File and config errors.
	ErrShareFileNotFound = &RecoveryError{
		Code:     "SHARE_FILE_NOT_FOUND",
		Message:  "share file not found",
		ExitCode: ExitNotFound,
	}

	ErrConfigNotFound = &RecoveryError{
		Code:     "CONFIG_NOT_FOUND",
		Message:  "configuration file not found",
		ExitCode: ExitNotFound,
	}

	ErrConfigInvalid = &RecoveryError{
		Code:     "CONFIG_INVALID",
		Message:  "configuration file is invalid",
		ExitCode: ExitInput,
	}

	ErrLogEncryptionFailed = &RecoveryError{
		Code:     "LOG_ENCRYPTION_FAILED",
		Message:  "failed to encrypt attempt log",
		ExitCode: ExitPermission,
	}
)

// New creates a new RecoveryError with the given code and message.
func New(code, message string) *RecoveryError {
	return &RecoveryError{
		Code:     code,
		Message:  message,
		ExitCode: ExitGeneral,
	}
}

// Wrap wraps an error with additional context, preserving the code and
// exit code of the underlying RecoveryError when present.
func Wrap(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, args...)

	var re *RecoveryError
	if errors.As(err, &re) {
		return &RecoveryError{
			Code:       re.Code,
			Message:    fmt.Sprintf("%s: %s", msg, re.Message),
			Details:    re.Details,
			Suggestion: re.Suggestion,
			Cause:      err,
			ExitCode:   re.ExitCode,
		}
	}

	return &RecoveryError{
		Code:     "GENERAL_ERROR",
		Message:  msg,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithDetails attaches details to an error.
func WithDetails(err error, details map[string]string) error {
	if err == nil {
		return nil
	}

	var re *RecoveryError
	if errors.As(err, &re) {
		return &RecoveryError{
			Code:       re.Code,
			Message:    re.Message,
			Details:    details,
			Suggestion: re.Suggestion,
			Cause:      re.Cause,
			ExitCode:   re.ExitCode,
		}
	}

	return &RecoveryError{
		Code:     "GENERAL_ERROR",
		Message:  err.Error(),
		Details:  details,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithSuggestion attaches an actionable suggestion to an error.
func WithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}

	var re *RecoveryError
	if errors.As(err, &re) {
		return &RecoveryError{
			Code:       re.Code,
			Message:    re.Message,
			Details:    re.Details,
			Suggestion: suggestion,
			Cause:      re.Cause,
			ExitCode:   re.ExitCode,
		}
	}

	return &RecoveryError{
		Code:       "GENERAL_ERROR",
		Message:    err.Error(),
		Suggestion: suggestion,
		Cause:      err,
		ExitCode:   ExitGeneral,
	}
}

// ExitCode returns the appropriate process exit code for an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var re *RecoveryError
	if errors.As(err, &re) {
		return re.ExitCode
	}

	return ExitGeneral
}

// Code returns the machine-readable error code for an error.
func Code(err error) string {
	var re *RecoveryError
	if errors.As(err, &re) {
		return re.Code
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
