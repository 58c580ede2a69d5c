// Package bankmatch extracts a bank identity from a transaction
// description and resolves it against known accounts.
//
// Recognition is a substring scan over an ordered pattern table, plus a
// "*NNNN" capture for trailing account digits. When a description names
// a bank but matches no known account, repeated sightings of the same
// bank/digit signature become a suggestion to create the account.
package bankmatch

import (
	"regexp"
	"sort"
	"strings"

	"github.com/ledgerkit/reconcile-backend/internal/domain/ledger"
)

// last4Pattern captures an asterisk followed by exactly four digits,
// the convention bank statements use for masked account numbers.
var last4Pattern = regexp.MustCompile(`\*(\d{4})`)

// Rule maps a bank key to its description patterns and the account
// types an account at that bank plausibly is. Patterns are lowercase
// substrings.
type Rule struct {
	Name         string               `json:"name" yaml:"name"`
	Patterns     []string             `json:"patterns" yaml:"patterns"`
	AccountTypes []ledger.AccountType `json:"account_types" yaml:"account_types"`
}

// Table is an ordered list of bank rules; the first rule with a
// matching pattern wins.
type Table []Rule

// BankInfo is a recognized bank identity extracted from a description.
type BankInfo struct {
	BankName     string               `json:"bank_name"`
	Last4Digits  string               `json:"last4_digits,omitempty"`
	AccountTypes []ledger.AccountType `json:"account_types"`
}

// Suggestion proposes creating an account for an unmatched bank/digit
// signature seen on multiple transactions.
type Suggestion struct {
	BankName         string `json:"bank_name"`
	Last4Digits      string `json:"last4_digits,omitempty"`
	TransactionCount int    `json:"transaction_count"`
	SuggestedName    string `json:"suggested_name"`
}

// Matcher resolves descriptions against a fixed bank table.
type Matcher struct {
	table Table
}

// New creates a matcher with the given table. A nil or empty table
// falls back to DefaultTable.
func New(table Table) *Matcher {
	if len(table) == 0 {
		table = DefaultTable()
	}
	return &Matcher{table: table}
}

// ExtractBankInfo finds the first configured bank named in a
// description, along with any masked account digits. Returns nil when
// no bank pattern matches.
func (m *Matcher) ExtractBankInfo(description string) *BankInfo {
	desc := strings.ToLower(description)
	if desc == "" {
		return nil
	}

	for _, rule := range m.table {
		if !containsAny(desc, rule.Patterns) {
			continue
		}
		info := &BankInfo{
			BankName:     rule.Name,
			AccountTypes: rule.AccountTypes,
		}
		if matches := last4Pattern.FindStringSubmatch(description); matches != nil {
			info.Last4Digits = matches[1]
		}
		return info
	}

	return nil
}

// FindMatchingAccount resolves a description to one of the known
// accounts, or nil when the bank is unrecognized or no account fits.
//
// An account matches when its display name contains the bank name.
// When both the description and the candidate carry last-4 digits the
// digits must agree, so two accounts at the same bank are never
// collapsed. When either side lacks digits the first name match is
// accepted; with multiple untracked accounts at one bank this can pick
// the wrong one, a known precision tradeoff.
func (m *Matcher) FindMatchingAccount(description string, accounts []ledger.Account) *ledger.Account {
	info := m.ExtractBankInfo(description)
	if info == nil {
		return nil
	}

	for i := range accounts {
		acct := accounts[i]
		if !strings.Contains(strings.ToLower(acct.Name), info.BankName) {
			continue
		}
		if info.Last4Digits != "" && acct.Last4Digits != "" && info.Last4Digits != acct.Last4Digits {
			continue
		}
		return &acct
	}

	return nil
}

// SuggestAccounts groups transactions by recognized bank/digit
// signature and proposes a new account for every signature seen at
// least twice. A single sighting is too weak a signal to prompt the
// user. Results are sorted by transaction count, highest first.
func (m *Matcher) SuggestAccounts(transactions []ledger.Transaction) []Suggestion {
	type group struct {
		bankName string
		last4    string
		count    int
	}

	groups := make(map[string]*group)
	order := make([]string, 0)

	for _, txn := range transactions {
		info := m.ExtractBankInfo(txn.Description)
		if info == nil {
			continue
		}
		digits := info.Last4Digits
		key := info.BankName + "|" + keyDigits(digits)
		g, ok := groups[key]
		if !ok {
			g = &group{bankName: info.BankName, last4: digits}
			groups[key] = g
			order = append(order, key)
		}
		g.count++
	}

	suggestions := make([]Suggestion, 0, len(groups))
	for _, key := range order {
		g := groups[key]
		if g.count < 2 {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			BankName:         g.bankName,
			Last4Digits:      g.last4,
			TransactionCount: g.count,
			SuggestedName:    SuggestName(g.bankName, g.last4),
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].TransactionCount > suggestions[j].TransactionCount
	})

	return suggestions
}

// SuggestName generates a display name for a proposed account, like
// "Chase Account ****4321".
func SuggestName(bankName, last4Digits string) string {
	name := capitalize(bankName) + " Account"
	if last4Digits != "" {
		name += " ****" + last4Digits
	}
	return name
}

func keyDigits(last4 string) string {
	if last4 == "" {
		return "unknown"
	}
	return last4
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func containsAny(desc string, patterns []string) bool {
	for _, p := range patterns {
		if p != "" && strings.Contains(desc, p) {
			return true
		}
	}
	return false
}
