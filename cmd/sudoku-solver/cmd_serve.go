package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpadapter "github.com/fatema-maitham/sudoko-solver/internal/adapters/http"
	"github.com/fatema-maitham/sudoko-solver/internal/config"
	"github.com/fatema-maitham/sudoko-solver/internal/hint"
	"github.com/fatema-maitham/sudoko-solver/internal/infrastructure/storage"
	"github.com/fatema-maitham/sudoko-solver/internal/ports"
	"github.com/fatema-maitham/sudoko-solver/internal/solver"
	"github.com/fatema-maitham/sudoko-solver/internal/usecase"
)

var (
	serveConfigPath string
	serveListen     string
	serveLogLevel   string
	serveDataDir    string
	serveBackend    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serves the JSON API under /api/v1: validate, solve, solve with steps,
hints, saved puzzles, recorded traces and the websocket step stream.
Flags override the config file.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "YAML config file")
	serveCmd.Flags().StringVar(&serveListen, "listen", "", `listen address (e.g. ":8080")`)
	serveCmd.Flags().StringVar(&serveLogLevel, "log-level", "", "debug|info|warn|error")
	serveCmd.Flags().StringVar(&serveDataDir, "data-dir", "", "data directory for fs and badger storage")
	serveCmd.Flags().StringVar(&serveBackend, "storage", "", "storage backend: fs|badger|memory")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(serveConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("listen") {
		cfg.Listen = serveListen
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = serveLogLevel
	}
	if cmd.Flags().Changed("data-dir") {
		cfg.Storage.Dir = serveDataDir
	}
	if cmd.Flags().Changed("storage") {
		cfg.Storage.Backend = serveBackend
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	store, err := openStorage(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("closing storage", "err", err)
		}
	}()

	uc := usecase.NewService(solver.NewEngine(), hint.NewSingles(), store)
	router := httpadapter.NewRouter(uc, httpadapter.RouterOptions{
		Logger:       logger,
		Metrics:      cfg.Metrics.Enabled,
		MaxStepDelay: time.Duration(cfg.WS.MaxIntervalMs) * time.Millisecond,
	})

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Listen, "storage", cfg.Storage.Backend, "dir", cfg.Storage.Dir)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}
	return nil
}

func openStorage(cfg config.Config, logger *slog.Logger) (ports.Storage, error) {
	switch cfg.Storage.Backend {
	case config.BackendBadger:
		return storage.NewBadger(cfg.Storage.Dir, logger.With("component", "badger"))
	case config.BackendMemory:
		return storage.NewBadgerInMemory(logger.With("component", "badger"))
	default:
		return storage.NewFS(cfg.Storage.Dir), nil
	}
}
