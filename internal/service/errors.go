package service

import (
	"errors"
	"fmt"

	"oneshot/internal/window"
)

var (
	// ErrUnauthorized is returned when a request does not prove ownership of a site
	ErrUnauthorized = errors.New("unauthorized")
	// ErrMissingCredential is returned when no bearer token was presented
	ErrMissingCredential = fmt.Errorf("%w: missing bearer token", ErrUnauthorized)
	// ErrUnknownSite is returned for an unknown (site, key) pair; a wrong key
	// and an unknown site look the same
	ErrUnknownSite = fmt.Errorf("%w: unknown site or key", ErrUnauthorized)
	// ErrNotFound is returned when a site does not exist
	ErrNotFound = errors.New("site not found")
	// ErrTenantNotConfigured is returned when a site has no usable store credentials
	ErrTenantNotConfigured = errors.New("site store not configured")
	// ErrValidation is returned for malformed events and requests
	ErrValidation = errors.New("validation failed")
	// ErrInvalidStoreURL is returned when a store URL cannot be normalized
	ErrInvalidStoreURL = fmt.Errorf("%w: invalid store url", ErrValidation)
	// ErrInvalidPeriod is returned for unknown period tokens and bad custom ranges
	ErrInvalidPeriod = window.ErrInvalidPeriod
)
