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

	app "github.com/crewflow/console"
	"github.com/crewflow/console/internal/catalog"
	"github.com/crewflow/console/internal/config"
	"github.com/crewflow/console/internal/events"
	"github.com/crewflow/console/internal/export"
	"github.com/crewflow/console/internal/server"
	"github.com/crewflow/console/internal/store"
	"github.com/crewflow/console/pkg/log"
)

type console struct {
	cfg        *config.Config
	provider   catalog.Provider
	index      *catalog.Index
	flowStore  store.Store
	exporter   *export.Exporter
	hub        *events.Hub
	apiServer  *server.Server
	httpServer *http.Server
	quit       chan os.Signal
}

var (
	ErrCreateProvider = errors.New("failed to create catalog provider")
	ErrCreateStore    = errors.New("failed to create flow store")
	ErrCreateExporter = errors.New("failed to create exporter")
	ErrLoadCatalog    = errors.New("failed to load catalog")
)

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

func main() {
	cfg := config.NewDefaultConfig()
	if err := cfg.LoadFromEnv(); err != nil {
		slog.Error("Invalid configuration", log.Error(err))
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", log.Error(err))
		os.Exit(1)
	}

	s := &console{
		cfg:  cfg,
		quit: make(chan os.Signal, 1),
	}
	s.setupLogging()

	if err := s.run(); err != nil {
		slog.Error("Failed to start application", log.Error(err))
		os.Exit(1)
	}
}

func (s *console) run() error {
	if err := s.initializeCatalog(); err != nil {
		return err
	}
	if err := s.initializeStore(); err != nil {
		return err
	}
	if err := s.initializeExporter(); err != nil {
		return err
	}
	s.startServer()

	signal.Notify(s.quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(s.quit)
	<-s.quit

	s.shutdown()
	return nil
}

func (s *console) setupLogging() {
	level, ok := logLevels[s.cfg.LogLevel]
	if !ok {
		level = slog.LevelInfo
	}

	env := os.Getenv("ENV")
	logger := log.NewWithLevel(app.Name, env, app.Version, level)
	slog.SetDefault(logger)
	slog.SetLogLoggerLevel(level)

	slog.Info("Flow console starting",
		slog.String("log_level", s.cfg.LogLevel))

	slog.Info("Configuration loaded",
		slog.String("catalog_base_url", s.cfg.CatalogBaseURL),
		slog.String("store_backend", s.cfg.Store.Backend),
		slog.String("export_bucket_url", s.cfg.ExportBucketURL),
		slog.String("api_host", s.cfg.APIHost),
		slog.Int("api_port", s.cfg.APIPort))
}

func (s *console) initializeCatalog() error {
	provider, err := catalog.NewHTTPProvider(
		s.cfg.CatalogBaseURL, s.cfg.CatalogTimeout,
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCreateProvider, err)
	}
	s.provider = provider

	idx, err := catalog.Load(context.Background(), s.provider)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoadCatalog, err)
	}
	s.index = idx

	slog.Info("Catalog loaded",
		slog.Int("task_count", idx.TaskCount()))
	return nil
}

func (s *console) initializeStore() error {
	var (
		flowStore store.Store
		err       error
	)
	switch s.cfg.Store.Backend {
	case config.BackendSQLite:
		flowStore, err = store.NewSQLiteStore(s.cfg.Store.SQLitePath)
	case config.BackendRedis:
		flowStore = store.NewRedisStore(
			s.cfg.Store.RedisAddr,
			s.cfg.Store.RedisPassword,
			s.cfg.Store.RedisDB,
			s.cfg.Store.RedisPrefix,
		)
	case config.BackendHTTP:
		flowStore, err = store.NewHTTPStore(
			s.cfg.Store.RemoteBaseURL, s.cfg.Store.RemoteTimeout,
		)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCreateStore, err)
	}
	s.flowStore = flowStore
	return nil
}

func (s *console) initializeExporter() error {
	exporter, err := export.NewExporter(
		context.Background(), s.cfg.ExportBucketURL,
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCreateExporter, err)
	}
	s.exporter = exporter
	return nil
}

func (s *console) startServer() {
	s.hub = events.NewHub()
	s.apiServer = server.NewServer(server.Dependencies{
		Store:    s.flowStore,
		Index:    s.index,
		Provider: s.provider,
		Exporter: s.exporter,
		Hub:      s.hub,
	})
	mux := s.apiServer.SetupRoutes()

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.cfg.APIHost, s.cfg.APIPort),
		Handler: mux,
	}

	go func() {
		slog.Info("HTTP server starting",
			slog.String("addr", s.httpServer.Addr))
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", log.Error(err))
		}
	}()
}

func (s *console) shutdown() {
	slog.Info("Shutting down")

	ctx, cancel := context.WithTimeout(
		context.Background(), s.cfg.ShutdownTimeout,
	)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		slog.Error("Shutdown failed", log.Error(err))
	}

	s.apiServer.CloseWebSockets()
	s.hub.Close()

	if err := s.flowStore.Close(); err != nil {
		slog.Error("Store shutdown failed", log.Error(err))
	}
	if err := s.exporter.Close(); err != nil {
		slog.Error("Exporter shutdown failed", log.Error(err))
	}

	slog.Info("Server exited")
}
