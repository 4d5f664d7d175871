// Package errors provides error types with actionable suggestions for paddock.
// Errors carry a kind for errors.Is matching plus optional details that the
// CLI prints when a command fails.
package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Common sentinel errors for use with errors.Is().
var (
	// ErrNetwork indicates the standings API could not be reached.
	ErrNetwork = errors.New("network error")
	// ErrAPI indicates the standings API answered with a non-success status.
	ErrAPI = errors.New("api error")
	// ErrDecode indicates a response or file could not be decoded.
	ErrDecode = errors.New("decode error")
	// ErrCache indicates the local cache could not be read or written.
	ErrCache = errors.New("cache error")
	// ErrConfig indicates a configuration error.
	ErrConfig = errors.New("configuration error")
	// ErrNotFound indicates a resource was not found.
	ErrNotFound = errors.New("not found")
)

// PaddockError is the base error type for paddock errors.
// It wraps an underlying error and provides additional context.
type PaddockError struct {
	// Kind is the category of error (e.g., ErrNetwork, ErrCache).
	Kind error
	// Message is the human-readable error message.
	Message string
	// Suggestion provides actionable advice for resolving the error.
	Suggestion string
	// Cause is the underlying error that caused this error.
	Cause error
	// Details provides additional context (e.g., URL, file path).
	Details map[string]string
}

// Error implements the error interface.
func (e *PaddockError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *PaddockError) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return e.Kind
}

// Is reports whether the error's kind matches the target.
func (e *PaddockError) Is(target error) bool {
	return errors.Is(e.Kind, target)
}

// Format returns a formatted error message with details and suggestion.
func (e *PaddockError) Format() string {
	var sb strings.Builder

	sb.WriteString("Error: ")
	sb.WriteString(e.Error())
	sb.WriteString("\n")

	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		sb.WriteString("\nDetails:\n")
		for _, k := range keys {
			sb.WriteString(fmt.Sprintf("  %s: %s\n", k, e.Details[k]))
		}
	}

	if e.Suggestion != "" {
		sb.WriteString("\n💡 Suggestion: ")
		sb.WriteString(e.Suggestion)
		sb.WriteString("\n")
	}

	return sb.String()
}

// WithDetails adds details to the error.
func (e *PaddockError) WithDetails(key, value string) *PaddockError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying cause of the error.
func (e *PaddockError) WithCause(cause error) *PaddockError {
	e.Cause = cause
	return e
}

// New creates a new PaddockError with the given kind and message.
func New(kind error, message string) *PaddockError {
	return &PaddockError{
		Kind:    kind,
		Message: message,
	}
}

// Wrap wraps an existing error with additional context.
func Wrap(err error, kind error, message string) *PaddockError {
	return &PaddockError{
		Kind:    kind,
		Message: message,
		Cause:   err,
	}
}

// WithSuggestion creates a new error with a suggestion.
func WithSuggestion(kind error, message, suggestion string) *PaddockError {
	return &PaddockError{
		Kind:       kind,
		Message:    message,
		Suggestion: suggestion,
	}
}

// Formatted returns the long form of err when it is a PaddockError and the
// plain message otherwise.
func Formatted(err error) string {
	var pe *PaddockError
	if errors.As(err, &pe) {
		return pe.Format()
	}
	return "Error: " + err.Error() + "\n"
}

// IsUserError returns true if the error is due to user misconfiguration.
func IsUserError(err error) bool {
	var pe *PaddockError
	if errors.As(err, &pe) {
		return pe.Kind == ErrConfig
	}
	return false
}
