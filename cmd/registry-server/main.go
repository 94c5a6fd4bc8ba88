package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ruteri/inventor-registry/cmd/flags"
	"github.com/ruteri/inventor-registry/httpserver"
	"github.com/ruteri/inventor-registry/storage"
	"github.com/urfave/cli/v2"
)

var (
	flagAdmin = &cli.StringFlag{
		Name:    "admin",
		Usage:   "initial admin identity, used when there is neither a snapshot nor a genesis file",
		EnvVars: []string{flags.EnvPrefix + "ADMIN"},
	}
	flagGenesisFile = &cli.StringFlag{
		Name:    "genesis-file",
		Usage:   "YAML file describing the initial admin and inventors, used when there is no snapshot",
		EnvVars: []string{flags.EnvPrefix + "GENESIS_FILE"},
	}
	flagStorage = &cli.StringSliceFlag{
		Name:    "storage",
		Usage:   "snapshot location URI (file://, s3://, vault://, ipfs://), may be repeated",
		EnvVars: []string{flags.EnvPrefix + "STORAGE"},
	}
	flagSnapshotKey = &cli.StringFlag{
		Name:    "snapshot-key",
		Value:   storage.DefaultSnapshotKey,
		Usage:   "key the registry snapshot is stored under",
		EnvVars: []string{flags.EnvPrefix + "SNAPSHOT_KEY"},
	}
	flagSnapshotTimeout = &cli.DurationFlag{
		Name:    "snapshot-timeout",
		Value:   10 * time.Second,
		Usage:   "timeout for each snapshot write",
		EnvVars: []string{flags.EnvPrefix + "SNAPSHOT_TIMEOUT"},
	}
	flagHeightSource = &cli.StringFlag{
		Name:    "height-source",
		Value:   heightSourceStatic,
		Usage:   "where registration heights come from: 'static', 'counter' or 'chain'",
		EnvVars: []string{flags.EnvPrefix + "HEIGHT_SOURCE"},
	}
	flagStartHeight = &cli.Uint64Flag{
		Name:    "start-height",
		Value:   0,
		Usage:   "height used by the static source, first value of the counter source",
		EnvVars: []string{flags.EnvPrefix + "START_HEIGHT"},
	}
	flagPollInterval = &cli.DurationFlag{
		Name:    "poll-interval",
		Value:   12 * time.Second,
		Usage:   "block height polling interval of the chain source",
		EnvVars: []string{flags.EnvPrefix + "POLL_INTERVAL"},
	}
)

func main() {
	app := &cli.App{
		Name:  "registry-server",
		Usage: "Serve the inventor registry API",
		Flags: append([]cli.Flag{
			flagAdmin,
			flagGenesisFile,
			flagStorage,
			flagSnapshotKey,
			flagSnapshotTimeout,
			flagHeightSource,
			flagStartHeight,
			flagPollInterval,
			flags.RpcAddrFlag,
		}, flags.CommonFlags...),
		Action: func(cCtx *cli.Context) error {
			logger := flags.SetupLogger(cCtx)

			ctx, cancel := context.WithCancel(cCtx.Context)
			defer cancel()

			hs, runHeights, err := newHeightSource(ctx,
				cCtx.String(flagHeightSource.Name),
				cCtx.Uint64(flagStartHeight.Name),
				cCtx.String(flags.RpcAddrFlag.Name),
				cCtx.Duration(flagPollInterval.Name),
				logger)
			if err != nil {
				logger.Error("Failed to set up height source", "err", err)
				return err
			}
			if runHeights != nil {
				go runHeights(ctx)
			}

			store, err := newSnapshotStore(cCtx.StringSlice(flagStorage.Name), cCtx.String(flagSnapshotKey.Name), logger)
			if err != nil {
				logger.Error("Failed to set up snapshot storage", "err", err)
				return err
			}

			reg, err := loadRegistry(ctx, store, cCtx.String(flagGenesisFile.Name), cCtx.String(flagAdmin.Name), hs, logger)
			if err != nil {
				logger.Error("Failed to initialize registry", "err", err)
				return err
			}

			var persist httpserver.PersistFunc
			if store != nil {
				snapshotTimeout := cCtx.Duration(flagSnapshotTimeout.Name)
				persist = func(ctx context.Context) error {
					ctx, cancel := context.WithTimeout(ctx, snapshotTimeout)
					defer cancel()
					return store.Save(ctx, reg)
				}

				// Make sure a genesis or fresh state is durable before serving
				if err := persist(ctx); err != nil {
					logger.Error("Failed to store initial snapshot", "err", err)
					return err
				}
				logger.Info("Persisting registry snapshots", "location", store.LocationURI())
			}

			cfg := flags.ConfigureServer(cCtx, logger)
			server, err := httpserver.New(cfg, httpserver.NewHandler(reg, persist, logger))
			if err != nil {
				logger.Error("Failed to create server", "err", err)
				return err
			}
			server.RunInBackground()

			exit := make(chan os.Signal, 1)
			signal.Notify(exit, os.Interrupt, syscall.SIGTERM)

			logger.Info("Server is running, press Ctrl+C to stop")
			<-exit
			logger.Info("Shutdown signal received")

			server.Shutdown()
			logger.Info("Server shutdown complete")
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
