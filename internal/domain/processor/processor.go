// Package processor turns raw imported records into normalized
// transactions and partitions them by account resolution.
//
// Each raw record is validated (amount parsed, date parsed, category
// and description defaulted), then matched against the caller's known
// accounts: matched records come back with the account attached,
// records naming a recognized bank with no matching account become
// new-account suggestions, and the rest land in unmatched. Zero-amount
// records whose description reads like statement noise ("monthly fee",
// "interest adjustment") are dropped entirely.
package processor

import (
	"strconv"
	"strings"
	"time"

	"github.com/ledgerkit/reconcile-backend/internal/domain/bankmatch"
	"github.com/ledgerkit/reconcile-backend/internal/domain/categorizer"
	"github.com/ledgerkit/reconcile-backend/internal/domain/ledger"
)

// PlaceholderDescription is substituted for records that arrive with no
// description at all.
const PlaceholderDescription = "No description"

// skipKeywords mark zero-amount records as statement noise rather than
// transactions.
var skipKeywords = []string{"interest", "fee", "charge", "adjustment", "credit"}

// dateLayouts are tried in order when parsing raw dates.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"01/02/2006",
	"2006/01/02",
}

// Suggested pairs an unmatched transaction with the account the caller
// should offer to create for it.
type Suggested struct {
	Transaction   ledger.Transaction `json:"transaction"`
	BankInfo      bankmatch.BankInfo `json:"bank_info"`
	SuggestedName string             `json:"suggested_name"`
}

// Summary reports how a batch partitioned.
type Summary struct {
	Total       int `json:"total"`
	Processed   int `json:"processed"`
	Suggestions int `json:"suggestions"`
	Unmatched   int `json:"unmatched"`
	Skipped     int `json:"skipped"`
}

// Result is the partitioned output of a processing run.
type Result struct {
	Processed   []ledger.Transaction `json:"processed"`
	Suggestions []Suggested          `json:"suggestions"`
	Unmatched   []ledger.Transaction `json:"unmatched"`
	Summary     Summary              `json:"summary"`
}

// Processor validates and routes raw transactions.
type Processor struct {
	categorizer *categorizer.Categorizer
	banks       *bankmatch.Matcher
	now         func() time.Time
}

// New creates a processor from its collaborators. A nil clock defaults
// to time.Now; tests inject a fixed one.
func New(cat *categorizer.Categorizer, banks *bankmatch.Matcher, now func() time.Time) *Processor {
	if now == nil {
		now = time.Now
	}
	return &Processor{
		categorizer: cat,
		banks:       banks,
		now:         now,
	}
}

// Validate normalizes a raw record, or returns nil when the record
// should be silently dropped: a zero amount combined with a noise
// keyword in the description means a statement artifact, not a
// transaction.
//
// Defaults applied: amount 0 on parse failure, description placeholder
// when empty, date "now" when absent or unparseable, category from the
// categorizer when not supplied. Type follows the sign of the amount.
func (p *Processor) Validate(raw ledger.RawTransaction) *ledger.Transaction {
	amount := parseAmount(raw.Amount)

	if amount == 0 && containsSkipKeyword(raw.Description) {
		return nil
	}

	txn := ledger.Transaction{
		Description: strings.TrimSpace(raw.Description),
		Amount:      amount,
		Category:    strings.TrimSpace(raw.Category),
		AccountID:   raw.AccountID,
		UserID:      raw.UserID,
	}

	if txn.Description == "" {
		txn.Description = PlaceholderDescription
	}
	if txn.Category == "" {
		txn.Category = p.categorizer.Categorize(txn.Description)
	}

	txn.Date = parseDate(raw.Date)
	if txn.Date.IsZero() {
		txn.Date = p.now()
	}

	if amount >= 0 {
		txn.Type = ledger.TypeIncome
	} else {
		txn.Type = ledger.TypeExpense
	}

	return &txn
}

// Process validates a batch and partitions it by account resolution.
func (p *Processor) Process(raw []ledger.RawTransaction, accounts []ledger.Account) Result {
	result := Result{
		Processed:   make([]ledger.Transaction, 0, len(raw)),
		Suggestions: make([]Suggested, 0),
		Unmatched:   make([]ledger.Transaction, 0),
	}

	for _, r := range raw {
		txn := p.Validate(r)
		if txn == nil {
			continue
		}

		if acct := p.banks.FindMatchingAccount(txn.Description, accounts); acct != nil {
			txn.AccountID = acct.ID
			txn.AccountName = acct.Name
			result.Processed = append(result.Processed, *txn)
			continue
		}

		if info := p.banks.ExtractBankInfo(txn.Description); info != nil {
			result.Suggestions = append(result.Suggestions, Suggested{
				Transaction:   *txn,
				BankInfo:      *info,
				SuggestedName: bankmatch.SuggestName(info.BankName, info.Last4Digits),
			})
			continue
		}

		result.Unmatched = append(result.Unmatched, *txn)
	}

	result.Summary = Summary{
		Total:       len(raw),
		Processed:   len(result.Processed),
		Suggestions: len(result.Suggestions),
		Unmatched:   len(result.Unmatched),
	}
	result.Summary.Skipped = result.Summary.Total - result.Summary.Processed -
		result.Summary.Suggestions - result.Summary.Unmatched

	return result
}

// parseAmount parses a raw amount, tolerating currency symbols, commas
// and surrounding whitespace. Unparseable input degrades to 0.
func parseAmount(raw string) float64 {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	s = strings.TrimPrefix(s, "$")
	if negative {
		s = "-" + s
	}
	amount, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return amount
}

// parseDate tries the known layouts and returns the zero time when none
// fits.
func parseDate(raw string) time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func containsSkipKeyword(description string) bool {
	desc := strings.ToLower(description)
	for _, kw := range skipKeywords {
		if strings.Contains(desc, kw) {
			return true
		}
	}
	return false
}
