package storage

import "github.com/ledgerkit/reconcile-backend/internal/domain/ledger"

// Repository defines the complete storage interface.
// This interface allows swapping implementations (SQLite, PostgreSQL, etc.)
// and makes testing with mocks straightforward.
type Repository interface {
	TransactionRepository
	AccountRepository
	ImportRunRepository
	Close() error
}

// TransactionRepository handles stored transaction operations
type TransactionRepository interface {
	// SaveTransaction inserts or updates a single transaction
	SaveTransaction(txn *ledger.Transaction) error

	// SaveTransactions inserts a batch inside one database transaction
	SaveTransactions(txns []ledger.Transaction) error

	// ListTransactions returns stored transactions for a user, newest
	// first. An empty userID returns all transactions.
	ListTransactions(userID string) ([]ledger.Transaction, error)

	// ListUnmatchedTransactions returns stored transactions without an
	// account, the input for account suggestions.
	ListUnmatchedTransactions(userID string) ([]ledger.Transaction, error)

	// CountTransactions returns the number of stored transactions for a user
	CountTransactions(userID string) (int, error)
}

// AccountRepository handles known account operations
type AccountRepository interface {
	// SaveAccount inserts or updates an account
	SaveAccount(acct *ledger.Account) error

	// GetAccount retrieves an account by ID, nil when absent
	GetAccount(id string) (*ledger.Account, error)

	// ListAccounts returns accounts for a user in insertion order
	ListAccounts(userID string) ([]ledger.Account, error)
}

// ImportRunRepository tracks import batches for auditing
type ImportRunRepository interface {
	// SaveImportRun records a completed import run
	SaveImportRun(run *ImportRun) error

	// ListImportRuns returns recent runs, newest first
	ListImportRuns(limit int) ([]ImportRun, error)
}
