package domain

import (
	"errors"
	"fmt"
)

var (
	// Common domain errors
	ErrNotFound           = errors.New("entity not found")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrEmptyMessage       = errors.New("empty message")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrStorageUnavailable = errors.New("storage unavailable")

	// Completion provider errors. Each call reports exactly one of these;
	// none of them carries a partial reply.
	ErrMissingCredential = errors.New("provider credential not configured")
	ErrProviderTimeout   = errors.New("provider timed out")
	ErrProviderTransport = errors.New("provider transport failure")
	ErrNoCandidates      = errors.New("provider returned no candidates")
)

// IsProviderError reports whether err belongs to the completion provider
// failure family.
func IsProviderError(err error) bool {
	return errors.Is(err, ErrMissingCredential) ||
		errors.Is(err, ErrProviderTimeout) ||
		errors.Is(err, ErrProviderTransport) ||
		errors.Is(err, ErrNoCandidates)
}

// TransportError wraps the underlying cause so callers can log it while still
// matching on ErrProviderTransport.
func TransportError(cause error) error {
	return fmt.Errorf("%w: %v", ErrProviderTransport, cause)
}
