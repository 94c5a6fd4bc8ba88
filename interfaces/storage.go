package interfaces

import (
	"context"
	"errors"
)

// SnapshotBackend stores opaque blobs under string keys. It is used to persist
// registry snapshots; the registry itself has no persistence.
type SnapshotBackend interface {
	// Get returns the blob stored under key, or ErrContentNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores data under key, replacing any previous value.
	Put(ctx context.Context, key string, data []byte) error

	// Available checks if the backend is currently accessible.
	Available(ctx context.Context) bool

	// Name returns a unique identifier for this backend instance.
	Name() string

	// LocationURI returns the URI the backend was created from.
	LocationURI() string
}

// StorageBackendLocation is a URI of the form scheme://[auth@]host[:port][/path][?params].
type StorageBackendLocation string

var (
	// ErrContentNotFound is returned when requested content cannot be found in the storage backend.
	ErrContentNotFound = errors.New("content not found")

	// ErrBackendUnavailable is returned when a storage backend is not accessible.
	ErrBackendUnavailable = errors.New("storage backend unavailable")

	// ErrInvalidLocationURI is returned when a storage location URI is malformed or unsupported.
	ErrInvalidLocationURI = errors.New("invalid storage location URI")
)
