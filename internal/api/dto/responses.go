package dto

import (
	"github.com/ledgerkit/reconcile-backend/internal/domain/dedup"
	"github.com/ledgerkit/reconcile-backend/internal/domain/ledger"
)

// HealthResponse is returned by GET /api/health.
type HealthResponse struct {
	Status string `json:"status"`
}

// NewHealthResponse reports a healthy service.
func NewHealthResponse() HealthResponse {
	return HealthResponse{Status: "healthy"}
}

// CheckDuplicateResponse pairs the match verdict with its explanation.
type CheckDuplicateResponse struct {
	Result dedup.MatchResult `json:"result"`
	Reason string            `json:"reason"`
}

// ScanDuplicatesResponse is the batch verdict grouped for review.
type ScanDuplicatesResponse struct {
	Duplicates    []ExplainedDuplicate   `json:"duplicates"`
	NonDuplicates []ledger.Transaction   `json:"non_duplicates"`
	Groups        dedup.ConfidenceGroups `json:"groups"`
	Summary       dedup.Summary          `json:"summary"`
}

// ExplainedDuplicate augments a duplicate with its reason string.
type ExplainedDuplicate struct {
	dedup.Duplicate
	Reason string `json:"reason"`
}

// TransactionListResponse wraps stored transactions.
type TransactionListResponse struct {
	Transactions []ledger.Transaction `json:"transactions"`
	TotalCount   int                  `json:"total_count"`
}

// AccountListResponse wraps stored accounts.
type AccountListResponse struct {
	Accounts []ledger.Account `json:"accounts"`
}
