package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ruteri/inventor-registry/interfaces"
	"github.com/ruteri/inventor-registry/registry"
)

// DefaultSnapshotKey is the key registry snapshots are stored under.
const DefaultSnapshotKey = "registry-snapshot.json"

// replicaReader is implemented by backends holding several copies of a key,
// such as MultiBackend.
type replicaReader interface {
	GetAll(ctx context.Context, key string) ([][]byte, error)
}

// SnapshotStore saves and loads registry snapshots through a backend.
type SnapshotStore struct {
	backend interfaces.SnapshotBackend
	key     string
	log     *slog.Logger
}

// NewSnapshotStore creates a store writing under key (DefaultSnapshotKey if empty).
func NewSnapshotStore(backend interfaces.SnapshotBackend, key string, log *slog.Logger) (*SnapshotStore, error) {
	if key == "" {
		key = DefaultSnapshotKey
	}
	if err := validateKey(key); err != nil {
		return nil, err
	}

	return &SnapshotStore{
		backend: backend,
		key:     key,
		log:     log,
	}, nil
}

// Save persists the current state of r.
func (s *SnapshotStore) Save(ctx context.Context, r *registry.Registry) error {
	data, err := registry.MarshalSnapshot(r)
	if err != nil {
		return fmt.Errorf("could not encode snapshot: %w", err)
	}

	if err := s.backend.Put(ctx, s.key, data); err != nil {
		return fmt.Errorf("could not store snapshot: %w", err)
	}

	s.log.Debug("Saved registry snapshot",
		slog.String("backend", s.backend.Name()),
		slog.Int("inventors", r.Len()),
		slog.Uint64("revision", r.Revision()))
	return nil
}

// Load restores the last saved registry. Returns ErrContentNotFound if nothing
// was saved yet. When the backend holds several replicas, the one with the
// highest revision wins and any replica failing to decode fails the load.
func (s *SnapshotStore) Load(ctx context.Context, heights interfaces.HeightSource) (*registry.Registry, error) {
	copies, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	snapshots := make([]registry.Snapshot, 0, len(copies))
	newest := 0
	for i, data := range copies {
		snapshot, err := registry.DecodeSnapshot(data)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
		if snapshot.Revision > snapshots[newest].Revision {
			newest = i
		}
	}

	for _, snapshot := range snapshots {
		if snapshot.Revision < snapshots[newest].Revision {
			s.log.Warn("Stale registry snapshot replica",
				slog.Uint64("revision", snapshot.Revision),
				slog.Uint64("newest", snapshots[newest].Revision))
		}
	}

	r, err := registry.Restore(snapshots[newest], heights)
	if err != nil {
		return nil, err
	}

	s.log.Info("Loaded registry snapshot",
		slog.String("backend", s.backend.Name()),
		slog.String("admin", r.Admin().String()),
		slog.Int("inventors", r.Len()),
		slog.Uint64("revision", r.Revision()),
		slog.Int("replicas", len(copies)))
	return r, nil
}

func (s *SnapshotStore) fetch(ctx context.Context) ([][]byte, error) {
	if replicas, ok := s.backend.(replicaReader); ok {
		return replicas.GetAll(ctx, s.key)
	}

	data, err := s.backend.Get(ctx, s.key)
	if err != nil {
		return nil, err
	}
	return [][]byte{data}, nil
}

// LocationURI returns the location of the underlying backend.
func (s *SnapshotStore) LocationURI() string {
	return s.backend.LocationURI()
}
