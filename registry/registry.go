package registry

import (
	"fmt"

	"github.com/ruteri/inventor-registry/interfaces"
)

// Registry is the in-memory inventor registry. It implements interfaces.InventorRegistry.
//
// The zero value is not usable; construct with New. Registry is not safe for
// concurrent use.
type Registry struct {
	admin     interfaces.Identity
	inventors map[interfaces.Identity]interfaces.InventorRecord
	heights   interfaces.HeightSource

	// revision counts successful mutations. It orders snapshots of one registry.
	revision uint64
}

var _ interfaces.InventorRegistry = (*Registry)(nil)

// New creates an empty registry administered by admin. Registration heights are
// taken from heights.
func New(admin interfaces.Identity, heights interfaces.HeightSource) *Registry {
	return &Registry{
		admin:     admin,
		inventors: make(map[interfaces.Identity]interfaces.InventorRecord),
		heights:   heights,
	}
}

// RegisterInventor creates an unverified record for caller.
// Returns ErrDuplicateRegistration if caller already has a record; the existing
// record is left untouched.
func (r *Registry) RegisterInventor(caller interfaces.Identity, name, credentials string) error {
	if _, exists := r.inventors[caller]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateRegistration, caller)
	}

	r.inventors[caller] = interfaces.InventorRecord{
		Name:               name,
		Credentials:        credentials,
		VerificationHeight: r.heights.Height(),
		IsVerified:         false,
	}
	r.revision++
	return nil
}

// VerifyInventor marks target as verified.
// Returns ErrUnauthorized unless caller is the admin (checked first), and
// ErrNotFound if target has no record. Verifying a verified inventor succeeds.
func (r *Registry) VerifyInventor(caller, target interfaces.Identity) error {
	if caller != r.admin {
		return fmt.Errorf("%w: %s", ErrUnauthorized, caller)
	}

	record, exists := r.inventors[target]
	if !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, target)
	}

	record.IsVerified = true
	r.inventors[target] = record
	r.revision++
	return nil
}

// IsInventor reports whether identity has a record, verified or not.
func (r *Registry) IsInventor(identity interfaces.Identity) bool {
	_, exists := r.inventors[identity]
	return exists
}

// IsVerifiedInventor reports whether identity has a verified record.
func (r *Registry) IsVerifiedInventor(identity interfaces.Identity) bool {
	return r.inventors[identity].IsVerified
}

// TransferAdmin replaces the admin with newAdmin.
// Returns ErrUnauthorized unless caller is the current admin. newAdmin is not
// validated: it may equal the current admin and need not be registered.
func (r *Registry) TransferAdmin(caller, newAdmin interfaces.Identity) error {
	if caller != r.admin {
		return fmt.Errorf("%w: %s", ErrUnauthorized, caller)
	}

	r.admin = newAdmin
	r.revision++
	return nil
}

// Admin returns the current admin identity.
func (r *Registry) Admin() interfaces.Identity {
	return r.admin
}

// Inventor returns a copy of the record stored for identity.
func (r *Registry) Inventor(identity interfaces.Identity) (interfaces.InventorRecord, bool) {
	record, exists := r.inventors[identity]
	return record, exists
}

// Len returns the number of registered inventors.
func (r *Registry) Len() int {
	return len(r.inventors)
}

// Revision returns the number of successful mutations applied to the registry,
// including those carried over from a restored snapshot.
func (r *Registry) Revision() uint64 {
	return r.revision
}
