package cutout

import (
	"fmt"
	"strings"

	"forwardicons/internal/domain"
)

// ErrNoProviders is returned when no background-removal provider has credentials.
var ErrNoProviders = fmt.Errorf("no cutout providers configured: %w", domain.ErrConfiguration)

// ProviderError is a single provider's failure.
type ProviderError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (status %d): %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Is reports every provider failure as an upstream failure.
func (e *ProviderError) Is(target error) bool {
	return target == domain.ErrUpstream
}

// FailoverError lists every candidate's failure in the order they were tried.
type FailoverError struct {
	Attempts []*ProviderError
}

func (e *FailoverError) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, a.Error())
	}
	return "all cutout providers failed: " + strings.Join(parts, "; ")
}

func (e *FailoverError) Is(target error) bool {
	return target == domain.ErrUpstream
}

// Providers returns the names of the providers that were tried.
func (e *FailoverError) Providers() []string {
	names := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		names = append(names, a.Provider)
	}
	return names
}
