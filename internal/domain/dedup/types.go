package dedup

import "github.com/ledgerkit/reconcile-backend/internal/domain/ledger"

// Options holds duplicate detection tolerances.
type Options struct {
	DateToleranceDays    int     // Days tolerance (default: 1)
	AmountTolerance      float64 // Default: 0.01 (1 cent)
	RequireExactCategory bool    // Default: false (categories are provisional)
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		DateToleranceDays:    1,
		AmountTolerance:      0.01,
		RequireExactCategory: false,
	}
}

// FieldMatches records which of the four compared fields matched.
type FieldMatches struct {
	Date        bool `json:"date"`
	Amount      bool `json:"amount"`
	Description bool `json:"description"`
	Category    bool `json:"category"`
}

// MatchResult is the outcome of comparing one new transaction against
// one existing transaction.
//
// Confidence is the fraction of the four field checks that passed, so
// it is always in [0, 1] in steps of 0.25. IsDuplicate additionally
// requires both date and amount to match: description and category
// alone never establish a duplicate.
type MatchResult struct {
	IsDuplicate bool         `json:"is_duplicate"`
	Confidence  float64      `json:"confidence"`
	Matches     FieldMatches `json:"matches"`
}

// Duplicate pairs a new transaction with the strongest evidence found
// for it among the existing transactions.
type Duplicate struct {
	Transaction ledger.Transaction `json:"transaction"`
	ExistingID  string             `json:"existing_id"`
	Match       MatchResult        `json:"match"`
}

// Summary reports batch-level counts.
type Summary struct {
	Total               int     `json:"total"`
	Duplicates          int     `json:"duplicates"`
	NonDuplicates       int     `json:"non_duplicates"`
	DuplicatePercentage float64 `json:"duplicate_percentage"`
}

// BatchResult partitions a batch of new transactions.
type BatchResult struct {
	Duplicates    []Duplicate          `json:"duplicates"`
	NonDuplicates []ledger.Transaction `json:"non_duplicates"`
	Summary       Summary              `json:"summary"`
}

// ConfidenceGroups buckets duplicates by match confidence. Boundaries
// are inclusive on the lower edge: exactly 0.9 is high, exactly 0.7 is
// medium.
type ConfidenceGroups struct {
	High   []Duplicate `json:"high"`   // confidence >= 0.9
	Medium []Duplicate `json:"medium"` // 0.7 <= confidence < 0.9
	Low    []Duplicate `json:"low"`    // confidence < 0.7
	All    []Duplicate `json:"all"`
}
