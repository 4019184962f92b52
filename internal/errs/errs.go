// Package errs defines the error kinds shared across the ingestion and
// query paths. Callers classify failures with errors.Is against the
// sentinel values below.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig marks missing or unusable configuration. Fatal at startup.
	ErrConfig = errors.New("config error")
	// ErrValidation marks malformed client input. Surfaced as a 4xx.
	ErrValidation = errors.New("validation error")
	// ErrEmbedding marks a failed or timed-out embedding service call.
	ErrEmbedding = errors.New("embedding service error")
	// ErrStoreRead marks a vector store read/query failure.
	ErrStoreRead = errors.New("store read error")
	// ErrStoreWrite marks a vector store write failure.
	ErrStoreWrite = errors.New("store write error")
	// ErrProcessing is the catch-all for the query path. Surfaced as a 5xx.
	ErrProcessing = errors.New("processing error")
)

// New creates an error of the given kind with a message.
func New(kind error, msg string) error {
	return fmt.Errorf("%w: %s", kind, msg)
}

// Wrap annotates err with a kind and a message, keeping both matchable
// through errors.Is.
func Wrap(kind error, err error, msg string) error {
	if err == nil {
		return New(kind, msg)
	}
	return fmt.Errorf("%w: %s: %w", kind, msg, err)
}
