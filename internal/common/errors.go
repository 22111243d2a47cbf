// Package common defines shared sentinel errors and the provider error type
// used across the service layers. Callers should use errors.Is / errors.As
// to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Validation errors. Wrap with field detail, e.g.
	// fmt.Errorf("%w: query is required", common.ErrorValidation).
	ErrorValidation = errors.New("validation error")

	// ErrorNothingToEmbed is returned when a journal has no embeddable text
	// (empty or whitespace-only title and content combined).
	ErrorNothingToEmbed = errors.New("nothing to embed")
)

// ProviderError reports a failed or malformed response from the remote
// inference endpoint. StatusCode and Body are zero/empty for responses that
// arrived successfully but had an unexpected shape.
type ProviderError struct {
	Model      string
	StatusCode int
	Body       string
	Message    string
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("inference provider %s: status %d: %s", e.Model, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("inference provider %s: %s", e.Model, e.Message)
}
