package dto

import "github.com/ledgerkit/reconcile-backend/internal/domain/ledger"

// ImportRequest is the body of POST /api/import.
type ImportRequest struct {
	UserID       string                  `json:"user_id"`
	DryRun       bool                    `json:"dry_run"`
	Transactions []ledger.RawTransaction `json:"transactions" binding:"required"`
}

// CheckDuplicateRequest is the body of POST /api/duplicates/check: one
// candidate pair plus optional tolerance overrides.
type CheckDuplicateRequest struct {
	New      ledger.Transaction `json:"new" binding:"required"`
	Existing ledger.Transaction `json:"existing" binding:"required"`

	DateToleranceDays    *int     `json:"date_tolerance_days,omitempty"`
	AmountTolerance      *float64 `json:"amount_tolerance,omitempty"`
	RequireExactCategory *bool    `json:"require_exact_category,omitempty"`
}

// ScanDuplicatesRequest is the body of POST /api/duplicates/scan: a
// batch to check against the user's stored transactions.
type ScanDuplicatesRequest struct {
	UserID       string               `json:"user_id"`
	Transactions []ledger.Transaction `json:"transactions" binding:"required"`
}

// ProcessRequest is the body of POST /api/process. Accounts may be
// supplied inline; otherwise the user's stored accounts are used.
// Nothing is persisted.
type ProcessRequest struct {
	UserID       string                  `json:"user_id"`
	Transactions []ledger.RawTransaction `json:"transactions" binding:"required"`
	Accounts     []ledger.Account        `json:"accounts,omitempty"`
}

// CreateAccountRequest is the body of POST /api/accounts.
type CreateAccountRequest struct {
	UserID      string `json:"user_id"`
	Name        string `json:"name" binding:"required"`
	Last4Digits string `json:"last4_digits"`
	Type        string `json:"type"`
}
