package bankmatch

import "github.com/ledgerkit/reconcile-backend/internal/domain/ledger"

// DefaultTable returns the built-in bank recognition rules.
//
// Bank names double as match keys against account display names, so
// they are lowercase. Account types are ordered by how commonly that
// bank shows up in statements, and only feed suggestion text.
func DefaultTable() Table {
	return Table{
		{
			Name:         "chase",
			Patterns:     []string{"chase", "jpmorgan", "jp morgan"},
			AccountTypes: []ledger.AccountType{ledger.AccountChecking, ledger.AccountSavings, ledger.AccountCredit},
		},
		{
			Name:         "bank of america",
			Patterns:     []string{"bank of america", "bofa", "bankamerica"},
			AccountTypes: []ledger.AccountType{ledger.AccountChecking, ledger.AccountSavings, ledger.AccountCredit},
		},
		{
			Name:         "wells fargo",
			Patterns:     []string{"wells fargo", "wellsfargo", "wf "},
			AccountTypes: []ledger.AccountType{ledger.AccountChecking, ledger.AccountSavings},
		},
		{
			Name:         "citi",
			Patterns:     []string{"citibank", "citi ", "citicard"},
			AccountTypes: []ledger.AccountType{ledger.AccountChecking, ledger.AccountCredit},
		},
		{
			Name:         "capital one",
			Patterns:     []string{"capital one", "capitalone", "cap one"},
			AccountTypes: []ledger.AccountType{ledger.AccountCredit, ledger.AccountChecking},
		},
		{
			Name:         "amex",
			Patterns:     []string{"american express", "amex"},
			AccountTypes: []ledger.AccountType{ledger.AccountCredit},
		},
		{
			Name:         "discover",
			Patterns:     []string{"discover"},
			AccountTypes: []ledger.AccountType{ledger.AccountCredit, ledger.AccountSavings},
		},
		{
			Name:         "us bank",
			Patterns:     []string{"us bank", "u.s. bank", "usbank"},
			AccountTypes: []ledger.AccountType{ledger.AccountChecking, ledger.AccountSavings},
		},
		{
			Name:         "fidelity",
			Patterns:     []string{"fidelity"},
			AccountTypes: []ledger.AccountType{ledger.AccountInvestment},
		},
		{
			Name:         "vanguard",
			Patterns:     []string{"vanguard"},
			AccountTypes: []ledger.AccountType{ledger.AccountInvestment},
		},
		{
			Name:         "schwab",
			Patterns:     []string{"schwab"},
			AccountTypes: []ledger.AccountType{ledger.AccountInvestment, ledger.AccountChecking},
		},
		{
			Name:         "ally",
			Patterns:     []string{"ally bank", "ally "},
			AccountTypes: []ledger.AccountType{ledger.AccountSavings, ledger.AccountChecking},
		},
	}
}
