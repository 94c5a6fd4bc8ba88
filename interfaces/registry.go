package interfaces

// HeightSource provides the opaque monotonic marker (typically a block height)
// captured when an inventor registers. Height must not block.
type HeightSource interface {
	Height() uint64
}

// InventorRegistry is the guarded state machine over inventor records.
//
// Implementations are not required to be safe for concurrent use. Hosts serving
// concurrent callers must serialize access themselves.
type InventorRegistry interface {
	// RegisterInventor creates a record for caller. Fails if caller already has one.
	RegisterInventor(caller Identity, name, credentials string) error

	// VerifyInventor marks target as verified. Only the admin may call it.
	VerifyInventor(caller, target Identity) error

	// IsInventor reports whether identity has a record, verified or not.
	IsInventor(identity Identity) bool

	// IsVerifiedInventor reports whether identity has a verified record.
	IsVerifiedInventor(identity Identity) bool

	// TransferAdmin hands the admin role to newAdmin. Only the admin may call it.
	TransferAdmin(caller, newAdmin Identity) error

	// Admin returns the current admin identity.
	Admin() Identity

	// Inventor returns a copy of the record for identity, if any.
	Inventor(identity Identity) (InventorRecord, bool)

	// Len returns the number of registered inventors.
	Len() int
}
