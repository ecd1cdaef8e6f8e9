package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/job-hunter/internal/fetch"
	"github.com/jonathan/job-hunter/internal/logging"
	"github.com/jonathan/job-hunter/internal/notify"
	"github.com/jonathan/job-hunter/internal/rpc"
	"github.com/jonathan/job-hunter/internal/server"
	"github.com/jonathan/job-hunter/internal/settings"
	"github.com/jonathan/job-hunter/internal/store"
	"github.com/jonathan/job-hunter/internal/tools"
)

var (
	servePort    int
	serveDataDir string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the host: tool server, record store, and UI API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 4870, "Port for the UI HTTP API")
	serveCmd.Flags().StringVar(&serveDataDir, "data-dir", defaultDataDir(), "Directory for settings and the match database")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	log := logging.FromEnv()

	if err := os.MkdirAll(serveDataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	settingsStore := settings.NewFileStore(filepath.Join(serveDataDir, settings.StoreFilename))
	if _, err := settingsStore.EnsureDefaults(); err != nil {
		return err
	}

	db := store.NewDB(filepath.Join(serveDataDir, store.Filename))
	if err := db.Open(); err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	bus := notify.NewBus()
	registry, err := tools.NewRegistryWithDefaults(tools.Deps{
		Fetcher:  fetch.NewClient(),
		Settings: settingsStore,
		Matches:  db,
		Notifier: bus,
		Log:      log,
	})
	if err != nil {
		return err
	}

	rpcServer := rpc.NewServer(registry, log)
	if err := rpcServer.Listen(); err != nil {
		return err
	}
	log.Info("rpc server listening", "port", rpcServer.Port())

	httpServer := server.New(server.Config{
		Port:     servePort,
		RPCPort:  rpcServer.Port(),
		Settings: settingsStore,
		Matches:  db,
		Bus:      bus,
		Log:      log,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error { return rpcServer.Serve(gCtx) })
	g.Go(func() error { return httpServer.Start(gCtx) })

	err = g.Wait()
	log.Info("host stopped")
	return err
}
