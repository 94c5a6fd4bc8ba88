package storage

import "github.com/ruteri/inventor-registry/interfaces"

// Re-exported so callers of this package need not import interfaces for errors.Is checks.
var (
	ErrContentNotFound    = interfaces.ErrContentNotFound
	ErrBackendUnavailable = interfaces.ErrBackendUnavailable
	ErrInvalidLocationURI = interfaces.ErrInvalidLocationURI
)
