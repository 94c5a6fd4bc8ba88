package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/ruteri/inventor-registry/interfaces"
)

// ErrInvalidSnapshot is returned when a snapshot cannot be restored.
var ErrInvalidSnapshot = errors.New("invalid registry snapshot")

// Snapshot is the serializable form of the whole registry state.
type Snapshot struct {
	// Revision is the registry revision the snapshot was taken at. Of two
	// snapshots of the same registry, the one with the higher revision is newer.
	Revision  uint64              `json:"revision"`
	Admin     interfaces.Identity `json:"admin"`
	Inventors []SnapshotEntry     `json:"inventors"`
}

// SnapshotEntry is a single inventor record together with its key.
type SnapshotEntry struct {
	Identity interfaces.Identity `json:"identity"`
	interfaces.InventorRecord
}

// Snapshot captures the current state. Entries are sorted by identity so equal
// states encode to equal bytes.
func (r *Registry) Snapshot() Snapshot {
	entries := make([]SnapshotEntry, 0, len(r.inventors))
	for identity, record := range r.inventors {
		entries = append(entries, SnapshotEntry{Identity: identity, InventorRecord: record})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Identity < entries[j].Identity
	})

	return Snapshot{
		Revision:  r.revision,
		Admin:     r.admin,
		Inventors: entries,
	}
}

// Restore rebuilds a registry from a snapshot. New registrations take their
// height from heights.
//
// Every identity must already be in the form ParseIdentity produces, otherwise
// the record could never be addressed by a caller.
func Restore(s Snapshot, heights interfaces.HeightSource) (*Registry, error) {
	if err := checkCanonical(s.Admin); err != nil {
		return nil, fmt.Errorf("%w: admin: %v", ErrInvalidSnapshot, err)
	}

	r := New(s.Admin, heights)
	for _, entry := range s.Inventors {
		if err := checkCanonical(entry.Identity); err != nil {
			return nil, fmt.Errorf("%w: inventor: %v", ErrInvalidSnapshot, err)
		}
		if _, exists := r.inventors[entry.Identity]; exists {
			return nil, fmt.Errorf("%w: duplicate inventor %s", ErrInvalidSnapshot, entry.Identity)
		}
		r.inventors[entry.Identity] = entry.InventorRecord
	}
	r.revision = s.Revision
	return r, nil
}

func checkCanonical(id interfaces.Identity) error {
	parsed, err := interfaces.ParseIdentity(id.String())
	if err != nil {
		return err
	}
	if parsed != id {
		return fmt.Errorf("identity %q is not normalized, expected %q", id, parsed)
	}
	return nil
}

// MarshalSnapshot encodes the registry state as JSON.
func MarshalSnapshot(r *Registry) ([]byte, error) {
	return json.Marshal(r.Snapshot())
}

// DecodeSnapshot decodes JSON produced by MarshalSnapshot without restoring it.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	return s, nil
}

// UnmarshalSnapshot decodes JSON produced by MarshalSnapshot and restores it.
func UnmarshalSnapshot(data []byte, heights interfaces.HeightSource) (*Registry, error) {
	s, err := DecodeSnapshot(data)
	if err != nil {
		return nil, err
	}
	return Restore(s, heights)
}
