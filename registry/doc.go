// Package registry implements the inventor registry state machine: callers
// register themselves as inventors, a single admin verifies them, and the admin
// role can be transferred.
//
// # State
//
// A Registry owns one admin Identity and a map from Identity to InventorRecord.
// Records are created once per identity by RegisterInventor, are never removed,
// and are mutated in place only to flip IsVerified from false to true.
//
// # Operations
//
//	RegisterInventor(caller, name, credentials)  ErrDuplicateRegistration (1)
//	VerifyInventor(caller, target)                ErrUnauthorized (403), ErrNotFound (404)
//	IsInventor(identity)                          pure lookup
//	IsVerifiedInventor(identity)                  pure lookup
//	TransferAdmin(caller, newAdmin)               ErrUnauthorized (403)
//
// Authorization is checked before existence, so a non-admin verifying an unknown
// target gets ErrUnauthorized. Verifying an already verified inventor succeeds.
//
// # Results
//
// Outcomes are exchanged with external callers as a Result, a tagged ok/err value
// whose JSON encoding is {"type":"ok","value":true} or {"type":"err","value":<code>}.
// ResultOf converts an operation's error into a Result.
//
// # Concurrency
//
// Registry performs no internal synchronization. Every operation runs to completion
// without blocking, and hosts that serve concurrent callers (such as the HTTP
// server in this module) must serialize access.
//
// # Persistence
//
// The registry has no persistence of its own. Snapshot and Restore convert the
// state to and from a JSON document, and Genesis builds a registry from a YAML
// description by replaying the regular operations.
package registry
