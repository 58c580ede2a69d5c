// Package ledger defines the core record types shared by the
// reconciliation engine: transactions as they arrive from an import
// source, transactions as they are stored, and the accounts they are
// matched against.
//
// Records are plain values. The engine never mutates or retains them;
// every operation takes caller-owned inputs and returns fresh outputs.
package ledger

import "time"

// AccountType is the display classification of a financial account.
// The engine only uses it in generated suggestion text.
type AccountType string

const (
	AccountChecking   AccountType = "checking"
	AccountSavings    AccountType = "savings"
	AccountCredit     AccountType = "credit"
	AccountInvestment AccountType = "investment"
	AccountLoan       AccountType = "loan"
)

// TransactionType classifies money direction, derived from the sign of
// the amount during validation.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Transaction is a normalized transaction record.
//
// Amount is signed: negative is money out, positive is money in.
// ID is empty for records that have not been persisted yet; stored
// transactions always carry one. A zero Date means the date is unknown.
type Transaction struct {
	ID          string          `json:"id,omitempty"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Category    string          `json:"category,omitempty"`
	Type        TransactionType `json:"type,omitempty"`
	AccountID   string          `json:"account_id,omitempty"`
	AccountName string          `json:"account_name,omitempty"`
	UserID      string          `json:"user_id,omitempty"`
}

// HasDate reports whether the transaction carries a usable date.
func (t Transaction) HasDate() bool {
	return !t.Date.IsZero()
}

// RawTransaction is an unvalidated record as it arrives from an import
// source (CSV row, manual entry, extraction output). All fields are
// free text; the processor parses and defaults them.
type RawTransaction struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Category    string `json:"category,omitempty"`
	AccountID   string `json:"account_id,omitempty"`
	UserID      string `json:"user_id,omitempty"`
}

// Account is a known financial account.
//
// Name is the display string used for bank-name substring matching.
// Last4Digits is optional; when recorded it disambiguates multiple
// accounts at the same bank.
type Account struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Last4Digits string      `json:"last4_digits,omitempty"`
	Type        AccountType `json:"type"`
	UserID      string      `json:"user_id,omitempty"`
}
