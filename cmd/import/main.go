package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ledgerkit/reconcile-backend/internal/application/service"
	"github.com/ledgerkit/reconcile-backend/internal/cli"
	"github.com/ledgerkit/reconcile-backend/internal/domain/bankmatch"
	"github.com/ledgerkit/reconcile-backend/internal/domain/categorizer"
	"github.com/ledgerkit/reconcile-backend/internal/domain/dedup"
	"github.com/ledgerkit/reconcile-backend/internal/domain/ledger"
	"github.com/ledgerkit/reconcile-backend/internal/domain/processor"
	"github.com/ledgerkit/reconcile-backend/internal/infrastructure/config"
	"github.com/ledgerkit/reconcile-backend/internal/infrastructure/logging"
	"github.com/ledgerkit/reconcile-backend/internal/infrastructure/storage"
)

func main() {
	flags := cli.ParseImportFlags()
	if flags.File == "" {
		fmt.Fprintln(os.Stderr, "usage: import -file transactions.json [-user id] [-dry-run] [-verbose]")
		os.Exit(2)
	}

	cfg := config.LoadOrEnv()
	if flags.Verbose {
		cfg.Logging.Level = "debug"
	}
	logger := logging.NewLoggerWithSystem(cfg.Logging, "import")

	raw, err := readTransactions(flags.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read %s: %v\n", flags.File, err)
		os.Exit(1)
	}

	repo, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer repo.Close()

	banks := bankmatch.New(cfg.Engine.Banks)
	proc := processor.New(categorizer.New(cfg.Engine.Categories), banks, nil)
	detector := dedup.NewDetector(cfg.Engine.DedupOptions())
	importer := service.NewImportService(repo, detector, proc, banks, logger)

	cli.PrintHeader(flags.File, flags.DryRun)

	result, err := importer.Import(context.Background(), service.ImportRequest{
		UserID:       flags.UserID,
		DryRun:       flags.DryRun,
		Transactions: raw,
	})
	if err != nil {
		logger.Error("import failed", "error", err)
		os.Exit(1)
	}

	cli.PrintImportSummary(result, repo, flags.UserID, flags.Verbose)
}

// readTransactions loads a JSON file holding either a bare array of
// raw transactions or an object with a "transactions" field.
func readTransactions(path string) ([]ledger.RawTransaction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var txns []ledger.RawTransaction
	if err := json.Unmarshal(data, &txns); err == nil {
		return txns, nil
	}

	var wrapped struct {
		Transactions []ledger.RawTransaction `json:"transactions"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("not a transaction array or object: %w", err)
	}
	return wrapped.Transactions, nil
}
