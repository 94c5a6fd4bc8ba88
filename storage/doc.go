// Package storage persists registry snapshots in one or more keyed blob stores.
//
// The registry itself keeps its state in memory only. A host that wants the
// state to survive restarts wraps a backend in a SnapshotStore and saves after
// every successful mutation.
//
// # Backends
//
//	file:///var/lib/inventor-registry
//	s3://[ACCESS_KEY:SECRET_KEY@]bucket/prefix?region=us-east-1&endpoint=minio:9000
//	vault://vault.internal:8200/secret/inventor-registry?token=s.xxx&tls=true
//	ipfs://127.0.0.1:5001/inventor-registry
//
// Factory creates backends from these URIs. MultiBackend combines several of them:
// writes go to every available backend, reads come from the first backend that
// holds the key.
//
// # Errors
//
// Backends report a missing key as interfaces.ErrContentNotFound and an
// unreachable service as interfaces.ErrBackendUnavailable.
package storage
