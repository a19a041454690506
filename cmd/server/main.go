package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"gradplus/internal/adapters/gemini"
	httpadapter "gradplus/internal/adapters/http"
	"gradplus/internal/adapters/memory"
	pg "gradplus/internal/adapters/postgres"
	"gradplus/internal/adapters/relay"
	"gradplus/internal/adapters/sqlite"
	"gradplus/internal/config"
	"gradplus/internal/extract"
	"gradplus/internal/logging"
	"gradplus/internal/ports"
	compsvc "gradplus/internal/services/companies"
	lookupsvc "gradplus/internal/services/lookups"
	"gradplus/internal/workers/lookuprunner"
)

// store is what every storage adapter provides.
type store interface {
	ports.CompanyStore
	ports.LookupJobRepository
}

func main() {
	cfg, cfgErr := config.Load()

	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	if cfgErr != nil {
		logger.Warn("config", zap.Error(cfgErr))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logger.Fatal("open store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer closeStore()
	logger.Info("store ready", zap.String("driver", cfg.StoreDriver))

	site, err := extract.NewSite(cfg.SourceBaseURL, cfg.SearchURLTemplate, cfg.DetailPathPattern)
	if err != nil {
		logger.Fatal("source site", zap.Error(err))
	}
	chain := relay.New(cfg.Relays, cfg.HTTPTimeout, logger.Named("relay"))

	opts := []compsvc.Option{compsvc.WithLogger(logger.Named("companies"))}
	if cfg.GeminiAPIKey != "" {
		completer, err := gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Warn("description enrichment disabled", zap.Error(err))
		} else {
			opts = append(opts, compsvc.WithCompleter(completer))
		}
	}
	companies := compsvc.New(chain, db, site, opts...)
	lookups := lookupsvc.New(db)

	// One limiter shared by workers and inline lookups keeps the public relays
	// under LOOKUP_RATE_PER_SEC.
	var limiter *rate.Limiter
	if cfg.LookupRatePerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.LookupRatePerSec), 1)
	}
	processor := lookuprunner.SearchProcessor{Companies: companies}
	if cfg.LookupWorkers > 0 {
		lookuprunner.Run(ctx, db, processor, lookuprunner.Options{
			Concurrency:  cfg.LookupWorkers,
			PollInterval: 500 * time.Millisecond,
			Limiter:      limiter,
			Logger:       logger.Named("lookuprunner"),
		})
		logger.Info("lookup workers started", zap.Int("workers", cfg.LookupWorkers))
	}

	srv := httpadapter.New(companies, lookups, db, processor, limiter, logger.Named("http"))
	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpServer.ListenAndServe() }()
	logger.Info("listening", zap.String("addr", cfg.ListenAddr), zap.Strings("relays", chain.Relays()))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-errCh:
		if !eris.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
		}
	}
	cancel()
	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	companies.Wait()
}

func openStore(ctx context.Context, cfg config.Config) (store, func(), error) {
	switch cfg.StoreDriver {
	case "postgres":
		db, err := pg.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return db, db.Close, nil
	case "sqlite":
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { _ = db.Close() }, nil
	case "memory":
		return memory.New(), func() {}, nil
	}
	return nil, nil, eris.Errorf("unknown store driver %q", cfg.StoreDriver)
}
