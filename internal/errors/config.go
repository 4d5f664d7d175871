// Package errors provides error types for paddock.
// This file contains configuration-related errors.
package errors

import "fmt"

// ConfigInvalid creates an error for a configuration file that could not be
// read, parsed or validated.
func ConfigInvalid(path string, cause error) *PaddockError {
	return &PaddockError{
		Kind:    ErrConfig,
		Message: fmt.Sprintf("invalid configuration: %s", path),
		Cause:   cause,
		Details: map[string]string{
			"path": path,
		},
		Suggestion: `Fix the file or regenerate the defaults:
  paddock config init --force`,
	}
}
