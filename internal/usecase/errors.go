package usecase

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrNotConfigured         = errors.New("not configured")
)

// ProviderError is a non-2xx answer from an upstream data provider. Message is the
// provider-supplied text when one was present.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: status=%d: %s", e.Provider, e.StatusCode, e.Message)
}

// NewProviderError falls back to "<provider> request failed" when the upstream body carried
// no message.
func NewProviderError(provider string, statusCode int, message string) *ProviderError {
	message = strings.TrimSpace(message)
	if message == "" {
		message = provider + " request failed"
	}
	return &ProviderError{Provider: provider, StatusCode: statusCode, Message: message}
}
