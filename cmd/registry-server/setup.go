package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ruteri/inventor-registry/heights"
	"github.com/ruteri/inventor-registry/interfaces"
	"github.com/ruteri/inventor-registry/registry"
	"github.com/ruteri/inventor-registry/storage"
)

const (
	heightSourceStatic  = "static"
	heightSourceCounter = "counter"
	heightSourceChain   = "chain"
)

var errNoInitialState = errors.New("no snapshot, genesis file or admin to start from")

// newHeightSource builds the height source named by kind. For the chain source
// the returned run function keeps the cached height fresh until ctx is cancelled.
func newHeightSource(ctx context.Context, kind string, start uint64, rpcAddr string, pollInterval time.Duration, log *slog.Logger) (interfaces.HeightSource, func(context.Context), error) {
	switch kind {
	case heightSourceStatic:
		return heights.Static(start), nil, nil
	case heightSourceCounter:
		return heights.NewCounter(start), nil, nil
	case heightSourceChain:
		log.Info("Connecting to Ethereum RPC", "address", rpcAddr)
		client, err := ethclient.DialContext(ctx, rpcAddr)
		if err != nil {
			return nil, nil, fmt.Errorf("could not dial RPC: %w", err)
		}

		tracker := heights.NewChainTracker(client, pollInterval, log)
		if err := tracker.Refresh(ctx); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("could not fetch initial block height: %w", err)
		}
		return tracker, tracker.Run, nil
	default:
		return nil, nil, fmt.Errorf("invalid height source %q", kind)
	}
}

// newSnapshotStore returns nil when no storage locations are configured.
func newSnapshotStore(uris []string, key string, log *slog.Logger) (*storage.SnapshotStore, error) {
	if len(uris) == 0 {
		return nil, nil
	}

	locations := make([]interfaces.StorageBackendLocation, 0, len(uris))
	for _, uri := range uris {
		locations = append(locations, interfaces.StorageBackendLocation(uri))
	}

	backend, err := storage.NewFactory(log).MultiBackendFor(locations)
	if err != nil {
		return nil, err
	}
	return storage.NewSnapshotStore(backend, key, log)
}

// loadRegistry picks the initial registry state: the stored snapshot if there is
// one, then the genesis file, then an empty registry owned by admin.
func loadRegistry(ctx context.Context, store *storage.SnapshotStore, genesisFile, admin string, hs interfaces.HeightSource, log *slog.Logger) (*registry.Registry, error) {
	if store != nil {
		reg, err := store.Load(ctx, hs)
		switch {
		case err == nil:
			return reg, nil
		case errors.Is(err, storage.ErrContentNotFound):
			log.Info("No registry snapshot found", "location", store.LocationURI())
		default:
			return nil, fmt.Errorf("could not load registry snapshot: %w", err)
		}
	}

	if genesisFile != "" {
		f, err := os.Open(genesisFile)
		if err != nil {
			return nil, fmt.Errorf("could not open genesis file: %w", err)
		}
		defer f.Close()

		genesis, err := registry.LoadGenesis(f)
		if err != nil {
			return nil, err
		}
		reg, err := genesis.Apply(hs)
		if err != nil {
			return nil, err
		}
		log.Info("Registry initialized from genesis", "file", genesisFile, "admin", reg.Admin().String(), "inventors", reg.Len())
		return reg, nil
	}

	if admin == "" {
		return nil, errNoInitialState
	}
	adminID, err := interfaces.ParseIdentity(admin)
	if err != nil {
		return nil, fmt.Errorf("invalid admin: %w", err)
	}
	log.Info("Registry initialized empty", "admin", adminID.String())
	return registry.New(adminID, hs), nil
}
