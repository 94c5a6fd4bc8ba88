// Package interfaces defines the shared types and interfaces of the inventor
// registry, separating definitions from implementations.
//
// # Registry
//
// InventorRegistry is the guarded state machine: callers register themselves,
// the admin verifies them, and the admin role can be handed over. Identity is an
// opaque comparable key, InventorRecord the per-inventor entry.
//
// HeightSource supplies the monotonic marker captured at registration time.
//
// # Storage
//
// SnapshotBackend is a keyed blob store used by hosts to persist registry
// snapshots across file, S3, Vault and IPFS backends.
package interfaces
