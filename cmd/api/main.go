package main

import (
	"os"

	"github.com/ledgerkit/reconcile-backend/internal/api"
	"github.com/ledgerkit/reconcile-backend/internal/application/service"
	"github.com/ledgerkit/reconcile-backend/internal/domain/bankmatch"
	"github.com/ledgerkit/reconcile-backend/internal/domain/categorizer"
	"github.com/ledgerkit/reconcile-backend/internal/domain/dedup"
	"github.com/ledgerkit/reconcile-backend/internal/domain/processor"
	"github.com/ledgerkit/reconcile-backend/internal/infrastructure/config"
	"github.com/ledgerkit/reconcile-backend/internal/infrastructure/logging"
	"github.com/ledgerkit/reconcile-backend/internal/infrastructure/storage"
)

func main() {
	cfg := config.LoadOrEnv()
	logger := logging.NewLoggerWithSystem(cfg.Logging, "api")

	repo, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer repo.Close()

	opts := cfg.Engine.DedupOptions()
	banks := bankmatch.New(cfg.Engine.Banks)
	proc := processor.New(categorizer.New(cfg.Engine.Categories), banks, nil)
	detector := dedup.NewDetector(opts)
	importer := service.NewImportService(repo, detector, proc, banks, logger)

	server := api.NewServer(api.Config{
		Port:           cfg.Server.Port,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, repo, importer, opts, proc, banks, logger)

	if err := server.Run(); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}
