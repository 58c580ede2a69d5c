// Package dedup detects whether incoming transactions duplicate ones
// already stored.
//
// Each candidate pair is compared on four fields (date, amount,
// description, category) with per-field tolerances. Date and amount are
// load-bearing: a pair is only a duplicate when both match and at least
// one of description or category agrees.
//
// Example usage:
//
//	d := dedup.NewDetector(dedup.DefaultOptions())
//	result := d.FindDuplicates(incoming, existing)
//	for _, dup := range result.Duplicates {
//		fmt.Println(dedup.ExplainMatch(dup.Match))
//	}
package dedup

import (
	"fmt"
	"strings"

	"github.com/ledgerkit/reconcile-backend/internal/domain/ledger"
	"github.com/ledgerkit/reconcile-backend/internal/domain/similarity"
)

// Detector compares transactions using a fixed set of tolerances.
type Detector struct {
	opts Options
}

// NewDetector creates a detector with the given options.
func NewDetector(opts Options) *Detector {
	return &Detector{opts: opts}
}

// CheckDuplicate compares a new transaction against one existing
// transaction. It never fails: absent or malformed fields degrade to
// non-matching.
func (d *Detector) CheckDuplicate(newTxn, existing ledger.Transaction) MatchResult {
	matches := FieldMatches{
		Date:        similarity.DatesMatch(newTxn.Date, existing.Date, d.opts.DateToleranceDays),
		Amount:      similarity.AmountsMatch(newTxn.Amount, existing.Amount, d.opts.AmountTolerance),
		Description: similarity.DescriptionsMatch(newTxn.Description, existing.Description),
		Category:    similarity.CategoriesMatch(newTxn.Category, existing.Category, d.opts.RequireExactCategory),
	}

	matched := 0
	for _, ok := range []bool{matches.Date, matches.Amount, matches.Description, matches.Category} {
		if ok {
			matched++
		}
	}

	return MatchResult{
		IsDuplicate: matches.Date && matches.Amount && (matches.Description || matches.Category),
		Confidence:  float64(matched) / 4,
		Matches:     matches,
	}
}

// FindDuplicates partitions a batch of new transactions into duplicates
// and non-duplicates by comparing each against every existing
// transaction. A new transaction is a duplicate when any existing one
// yields a duplicate verdict; the comparison with the highest
// confidence is kept as the attached evidence.
//
// The scan is O(n*m). Callers importing against tens of thousands of
// stored transactions should narrow the existing set by date range
// before calling.
func (d *Detector) FindDuplicates(newTxns, existing []ledger.Transaction) BatchResult {
	result := BatchResult{
		Duplicates:    make([]Duplicate, 0),
		NonDuplicates: make([]ledger.Transaction, 0, len(newTxns)),
	}

	for _, txn := range newTxns {
		var best *Duplicate
		for _, ex := range existing {
			match := d.CheckDuplicate(txn, ex)
			if !match.IsDuplicate {
				continue
			}
			if best == nil || match.Confidence > best.Match.Confidence {
				best = &Duplicate{
					Transaction: txn,
					ExistingID:  ex.ID,
					Match:       match,
				}
			}
		}
		if best != nil {
			result.Duplicates = append(result.Duplicates, *best)
		} else {
			result.NonDuplicates = append(result.NonDuplicates, txn)
		}
	}

	total := len(newTxns)
	result.Summary = Summary{
		Total:         total,
		Duplicates:    len(result.Duplicates),
		NonDuplicates: len(result.NonDuplicates),
	}
	if total > 0 {
		result.Summary.DuplicatePercentage = float64(len(result.Duplicates)) / float64(total) * 100
	}

	return result
}

// GroupByConfidence buckets duplicates into high (>= 0.9), medium
// (>= 0.7) and low bands for review workflows.
func GroupByConfidence(duplicates []Duplicate) ConfidenceGroups {
	groups := ConfidenceGroups{
		High:   make([]Duplicate, 0),
		Medium: make([]Duplicate, 0),
		Low:    make([]Duplicate, 0),
		All:    duplicates,
	}

	for _, dup := range duplicates {
		switch {
		case dup.Match.Confidence >= 0.9:
			groups.High = append(groups.High, dup)
		case dup.Match.Confidence >= 0.7:
			groups.Medium = append(groups.Medium, dup)
		default:
			groups.Low = append(groups.Low, dup)
		}
	}

	return groups
}

// ExplainMatch renders a match result as a human-readable reason, one
// clause per matched field plus a confidence qualifier.
func ExplainMatch(match MatchResult) string {
	var reasons []string
	if match.Matches.Date {
		reasons = append(reasons, "same date")
	}
	if match.Matches.Amount {
		reasons = append(reasons, "same amount")
	}
	if match.Matches.Description {
		reasons = append(reasons, "similar description")
	}
	if match.Matches.Category {
		reasons = append(reasons, "same category")
	}

	if len(reasons) == 0 {
		return "Unknown reason"
	}

	var qualifier string
	switch {
	case match.Confidence >= 0.9:
		qualifier = "very high confidence"
	case match.Confidence >= 0.7:
		qualifier = "high confidence"
	case match.Confidence >= 0.5:
		qualifier = "medium confidence"
	default:
		qualifier = "low confidence"
	}

	return fmt.Sprintf("%s (%s)", strings.Join(reasons, ", "), qualifier)
}
