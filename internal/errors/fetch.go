// Package errors provides error types for paddock.
// This file contains errors raised while fetching and caching standings.
package errors

import (
	"fmt"
	"net/http"
	"strconv"
)

// NetworkUnavailable creates an error for network connectivity issues.
func NetworkUnavailable(host string, cause error) *PaddockError {
	err := &PaddockError{
		Kind:    ErrNetwork,
		Message: "standings API unreachable",
		Cause:   cause,
		Suggestion: `Check your network connection. The last cached standings
are shown when available.`,
	}
	if host != "" {
		err.Details = map[string]string{"host": host}
	}
	return err
}

// APIStatus creates an error for a non-success HTTP status from the API.
func APIStatus(url string, code int) *PaddockError {
	return &PaddockError{
		Kind:    ErrAPI,
		Message: fmt.Sprintf("standings API returned %d %s", code, http.StatusText(code)),
		Details: map[string]string{
			"url":    url,
			"status": strconv.Itoa(code),
		},
	}
}

// DecodeFailed creates an error for a payload that could not be decoded.
func DecodeFailed(what string, cause error) *PaddockError {
	return &PaddockError{
		Kind:    ErrDecode,
		Message: fmt.Sprintf("failed to decode %s", what),
		Cause:   cause,
	}
}

// CacheUnavailable creates an error for an unreadable or unwritable cache file.
func CacheUnavailable(path string, cause error) *PaddockError {
	return &PaddockError{
		Kind:    ErrCache,
		Message: "standings cache unavailable",
		Cause:   cause,
		Details: map[string]string{
			"path": path,
		},
		Suggestion: "Delete the cache file; it is rebuilt on the next successful fetch.",
	}
}
