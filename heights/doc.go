// Package heights provides interfaces.HeightSource implementations: the opaque
// monotonic marker captured when an inventor registers.
//
//   - Static returns a constant marker.
//   - Counter returns an increasing sequence, one value per registration.
//   - ChainTracker follows the block height of an Ethereum JSON-RPC node.
package heights
