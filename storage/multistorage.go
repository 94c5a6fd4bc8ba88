package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ruteri/inventor-registry/interfaces"
)

// MultiBackend implements interfaces.SnapshotBackend on top of several backends.
// Put writes to every available backend and succeeds if at least one write does,
// so replicas can fall behind. Get returns the value from the first backend that
// has it; readers of mutable keys use GetAll and pick the newest copy themselves.
type MultiBackend struct {
	backends []interfaces.SnapshotBackend
	log      *slog.Logger
}

// NewMultiBackend creates a new multi-storage backend with fallback.
func NewMultiBackend(backends []interfaces.SnapshotBackend, logger *slog.Logger) *MultiBackend {
	if logger == nil {
		logger = slog.Default()
	}

	return &MultiBackend{
		backends: backends,
		log:      logger,
	}
}

// Get returns the value from the first available backend that holds key.
// Returns ErrContentNotFound only if every queried backend reported it missing.
func (m *MultiBackend) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	var errs []error
	queried := 0

	for _, backend := range m.backends {
		if !backend.Available(ctx) {
			m.log.Debug("Backend unavailable",
				slog.String("backend_name", backend.Name()),
				slog.String("key", key))
			errs = append(errs, fmt.Errorf("%s: %w", backend.Name(), ErrBackendUnavailable))
			continue
		}

		queried++
		data, err := backend.Get(ctx, key)
		if err == nil {
			m.log.Debug("Fetched content",
				slog.String("backend_name", backend.Name()),
				slog.String("key", key),
				slog.Duration("duration", time.Since(start)))
			return data, nil
		}

		errs = append(errs, fmt.Errorf("%s: %w", backend.Name(), err))
		m.log.Debug("Failed to fetch from backend",
			slog.String("backend_name", backend.Name()),
			slog.String("key", key),
			"err", err)
	}

	if queried > 0 && allNotFound(errs) {
		return nil, ErrContentNotFound
	}

	return nil, fmt.Errorf("all backends failed to fetch %s: %w", key, errors.Join(errs...))
}

// GetAll returns the value stored under key by every available backend that
// holds it, in backend order. Returns ErrContentNotFound only if every queried
// backend reported it missing. Backends that fail are skipped as long as at
// least one copy was found.
func (m *MultiBackend) GetAll(ctx context.Context, key string) ([][]byte, error) {
	var copies [][]byte
	var errs []error
	queried := 0

	for _, backend := range m.backends {
		if !backend.Available(ctx) {
			m.log.Warn("Backend unavailable, its copy is not considered",
				slog.String("backend_name", backend.Name()),
				slog.String("key", key))
			errs = append(errs, fmt.Errorf("%s: %w", backend.Name(), ErrBackendUnavailable))
			continue
		}

		queried++
		data, err := backend.Get(ctx, key)
		if err != nil {
			if !errors.Is(err, ErrContentNotFound) {
				m.log.Warn("Failed to fetch from backend",
					slog.String("backend_name", backend.Name()),
					slog.String("key", key),
					"err", err)
			}
			errs = append(errs, fmt.Errorf("%s: %w", backend.Name(), err))
			continue
		}
		copies = append(copies, data)
	}

	if len(copies) > 0 {
		return copies, nil
	}
	if queried > 0 && allNotFound(errs) {
		return nil, ErrContentNotFound
	}
	return nil, fmt.Errorf("all backends failed to fetch %s: %w", key, errors.Join(errs...))
}

// allNotFound reports whether every error that came from a queried backend is
// ErrContentNotFound. Unavailable backends are ignored.
func allNotFound(errs []error) bool {
	for _, err := range errs {
		if errors.Is(err, ErrBackendUnavailable) {
			continue
		}
		if !errors.Is(err, ErrContentNotFound) {
			return false
		}
	}
	return true
}

// Put stores data to all available backends.
func (m *MultiBackend) Put(ctx context.Context, key string, data []byte) error {
	start := time.Now()
	var errs []error
	stored := 0

	for _, backend := range m.backends {
		if !backend.Available(ctx) {
			m.log.Debug("Backend unavailable", slog.String("backend_name", backend.Name()))
			errs = append(errs, fmt.Errorf("%s: %w", backend.Name(), ErrBackendUnavailable))
			continue
		}

		if err := backend.Put(ctx, key, data); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", backend.Name(), err))
			m.log.Warn("Failed to store to backend",
				slog.String("backend_name", backend.Name()),
				slog.String("key", key),
				"err", err)
			continue
		}
		stored++
	}

	if stored == 0 {
		m.log.Error("All backends failed to store data",
			slog.Int("failed_backends", len(errs)),
			slog.Duration("duration", time.Since(start)))
		return fmt.Errorf("all backends failed to store %s: %w", key, errors.Join(errs...))
	}

	m.log.Debug("Stored content",
		slog.String("key", key),
		slog.Int("backends", stored),
		slog.Duration("duration", time.Since(start)))

	return nil
}

// Available checks if any backend is available.
func (m *MultiBackend) Available(ctx context.Context) bool {
	for _, backend := range m.backends {
		if backend.Available(ctx) {
			return true
		}
	}
	return false
}

// Name returns the name of this backend.
func (m *MultiBackend) Name() string {
	return "multi-storage"
}

// LocationURI returns a combined location URI of all backends.
func (m *MultiBackend) LocationURI() string {
	var locations []string
	for _, backend := range m.backends {
		locations = append(locations, backend.LocationURI())
	}

	return "multi:[" + strings.Join(locations, ",") + "]"
}
