package heights

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.uber.org/atomic"
)

// BlockNumberReader is the subset of an Ethereum client used by ChainTracker.
// *ethclient.Client satisfies it.
type BlockNumberReader interface {
	BlockNumber(ctx context.Context) (uint64, error)
}

// ChainTracker is a HeightSource backed by an Ethereum node. The latest block
// number is polled in the background, so Height never blocks on the network.
// The reported height never decreases, even across reorgs.
type ChainTracker struct {
	client   BlockNumberReader
	interval time.Duration
	latest   atomic.Uint64
	log      *slog.Logger
}

// NewChainTracker creates a tracker polling client every interval.
// Call Refresh once before serving to avoid reporting height 0.
func NewChainTracker(client BlockNumberReader, interval time.Duration, log *slog.Logger) *ChainTracker {
	return &ChainTracker{
		client:   client,
		interval: interval,
		log:      log,
	}
}

// Height returns the most recently observed block number.
func (t *ChainTracker) Height() uint64 {
	return t.latest.Load()
}

// Refresh fetches the current block number from the node.
func (t *ChainTracker) Refresh(ctx context.Context) error {
	number, err := t.client.BlockNumber(ctx)
	if err != nil {
		return fmt.Errorf("could not fetch block number: %w", err)
	}

	for {
		current := t.latest.Load()
		if number <= current {
			if number < current {
				t.log.Debug("Ignoring lower block number", "current", current, "observed", number)
			}
			return nil
		}
		if t.latest.CompareAndSwap(current, number) {
			return nil
		}
	}
}

// Run polls the node until ctx is cancelled. Poll failures are logged and retried
// on the next tick.
func (t *ChainTracker) Run(ctx context.Context) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := t.Refresh(ctx); err != nil && ctx.Err() == nil {
				t.log.Warn("Block height refresh failed", "err", err)
			}
		}
	}
}
