// Package service wires the reconciliation engine to storage: one
// import call loads what is already known, runs duplicate detection and
// processing on the incoming batch, and persists what survives.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerkit/reconcile-backend/internal/domain/bankmatch"
	"github.com/ledgerkit/reconcile-backend/internal/domain/dedup"
	"github.com/ledgerkit/reconcile-backend/internal/domain/ledger"
	"github.com/ledgerkit/reconcile-backend/internal/domain/processor"
	"github.com/ledgerkit/reconcile-backend/internal/infrastructure/storage"
)

// ImportRequest holds parameters for one import batch.
type ImportRequest struct {
	UserID       string                  `json:"user_id,omitempty"`
	DryRun       bool                    `json:"dry_run,omitempty"`
	Transactions []ledger.RawTransaction `json:"transactions"`
}

// ImportResult is the combined outcome of an import batch.
type ImportResult struct {
	RunID       string                 `json:"run_id"`
	DryRun      bool                   `json:"dry_run"`
	Accepted    []ledger.Transaction   `json:"accepted"`
	Duplicates  []dedup.Duplicate      `json:"duplicates"`
	Suggestions []bankmatch.Suggestion `json:"suggestions"`
	Unmatched   []ledger.Transaction   `json:"unmatched"`
	Summary     ImportSummary          `json:"summary"`
}

// ImportSummary reports how the batch partitioned end to end.
type ImportSummary struct {
	Total      int `json:"total"`
	Accepted   int `json:"accepted"`
	Duplicates int `json:"duplicates"`
	Suggested  int `json:"suggested"`
	Unmatched  int `json:"unmatched"`
	Skipped    int `json:"skipped"`
}

// ImportService runs the import workflow: validate and process raw
// transactions, drop duplicates of stored ones, persist the rest.
type ImportService struct {
	repo      storage.Repository
	detector  *dedup.Detector
	processor *processor.Processor
	banks     *bankmatch.Matcher
	logger    *slog.Logger
	now       func() time.Time
}

// NewImportService creates an import service. A nil logger falls back
// to slog.Default; a nil clock to time.Now.
func NewImportService(
	repo storage.Repository,
	detector *dedup.Detector,
	proc *processor.Processor,
	banks *bankmatch.Matcher,
	logger *slog.Logger,
) *ImportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImportService{
		repo:      repo,
		detector:  detector,
		processor: proc,
		banks:     banks,
		logger:    logger,
		now:       time.Now,
	}
}

// Import runs one batch through the full workflow.
//
// Raw records are validated and routed by the processor against the
// user's known accounts; everything that survives validation is then
// checked against stored transactions for duplicates. Non-duplicates
// are persisted unless the request is a dry run. An import run record
// is written either way so batches stay auditable.
func (s *ImportService) Import(ctx context.Context, req ImportRequest) (*ImportResult, error) {
	startedAt := s.now()
	runID := uuid.New().String()

	logger := s.logger.With("run_id", runID, "user_id", req.UserID)
	logger.Info("starting import", "transactions", len(req.Transactions), "dry_run", req.DryRun)

	existing, err := s.repo.ListTransactions(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing transactions: %w", err)
	}

	accounts, err := s.repo.ListAccounts(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	processed := s.processor.Process(req.Transactions, accounts)

	// Everything that survived validation gets duplicate-checked,
	// regardless of which partition it landed in.
	candidates := make([]ledger.Transaction, 0,
		len(processed.Processed)+len(processed.Unmatched)+len(processed.Suggestions))
	candidates = append(candidates, processed.Processed...)
	for _, sug := range processed.Suggestions {
		candidates = append(candidates, sug.Transaction)
	}
	candidates = append(candidates, processed.Unmatched...)

	batch := s.detector.FindDuplicates(candidates, existing)

	// Suggest accounts from every unmatched sighting: this batch plus
	// what was already stored without an account. Loaded before the
	// batch is persisted so new rows are not counted twice.
	suggestionInput := make([]ledger.Transaction, 0, len(processed.Suggestions))
	for _, sug := range processed.Suggestions {
		suggestionInput = append(suggestionInput, sug.Transaction)
	}
	storedUnmatched, err := s.repo.ListUnmatchedTransactions(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load unmatched transactions: %w", err)
	}
	suggestionInput = append(suggestionInput, storedUnmatched...)
	suggestions := s.banks.SuggestAccounts(suggestionInput)

	accepted := make([]ledger.Transaction, 0, len(batch.NonDuplicates))
	for _, txn := range batch.NonDuplicates {
		txn.ID = uuid.New().String()
		txn.UserID = req.UserID
		accepted = append(accepted, txn)
	}

	if !req.DryRun {
		if err := s.repo.SaveTransactions(accepted); err != nil {
			return nil, fmt.Errorf("failed to persist accepted transactions: %w", err)
		}
	}

	result := &ImportResult{
		RunID:       runID,
		DryRun:      req.DryRun,
		Accepted:    accepted,
		Duplicates:  batch.Duplicates,
		Suggestions: suggestions,
		Unmatched:   processed.Unmatched,
		Summary: ImportSummary{
			Total:      len(req.Transactions),
			Accepted:   len(accepted),
			Duplicates: len(batch.Duplicates),
			Suggested:  len(processed.Suggestions),
			Unmatched:  len(processed.Unmatched),
			Skipped:    processed.Summary.Skipped,
		},
	}

	run := &storage.ImportRun{
		ID:          runID,
		UserID:      req.UserID,
		StartedAt:   startedAt,
		CompletedAt: s.now(),
		DryRun:      req.DryRun,
		Total:       result.Summary.Total,
		Accepted:    result.Summary.Accepted,
		Duplicates:  result.Summary.Duplicates,
		Suggested:   result.Summary.Suggested,
		Unmatched:   result.Summary.Unmatched,
		Skipped:     result.Summary.Skipped,
	}
	if err := s.repo.SaveImportRun(run); err != nil {
		// The import itself succeeded; a failed audit write is logged,
		// not surfaced.
		logger.Warn("failed to record import run", "error", err)
	}

	logger.Info("import complete",
		"accepted", result.Summary.Accepted,
		"duplicates", result.Summary.Duplicates,
		"unmatched", result.Summary.Unmatched,
		"skipped", result.Summary.Skipped,
	)

	return result, nil
}

// ScanDuplicates checks a batch against stored transactions without
// persisting anything.
func (s *ImportService) ScanDuplicates(ctx context.Context, userID string, txns []ledger.Transaction) (*dedup.BatchResult, error) {
	existing, err := s.repo.ListTransactions(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing transactions: %w", err)
	}
	result := s.detector.FindDuplicates(txns, existing)
	return &result, nil
}

// SuggestAccounts proposes accounts from stored unmatched transactions.
func (s *ImportService) SuggestAccounts(ctx context.Context, userID string) ([]bankmatch.Suggestion, error) {
	unmatched, err := s.repo.ListUnmatchedTransactions(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load unmatched transactions: %w", err)
	}
	return s.banks.SuggestAccounts(unmatched), nil
}
