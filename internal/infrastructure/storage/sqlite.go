package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ledgerkit/reconcile-backend/internal/domain/ledger"
)

// Storage provides SQLite database access for transactions, accounts
// and import runs. It implements the Repository interface.
type Storage struct {
	db *sql.DB
}

// Compile-time check that Storage implements Repository
var _ Repository = (*Storage)(nil)

// NewStorage creates a new storage instance with SQLite database
func NewStorage(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints (SQLite-specific)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Storage{db: db}

	if err := s.runMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// SaveTransaction inserts or updates a transaction
func (s *Storage) SaveTransaction(txn *ledger.Transaction) error {
	_, err := s.db.Exec(`
	INSERT OR REPLACE INTO transactions
	(id, user_id, account_id, account_name, date, description, amount, category, type)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		txn.ID,
		txn.UserID,
		txn.AccountID,
		txn.AccountName,
		txn.Date,
		txn.Description,
		txn.Amount,
		txn.Category,
		string(txn.Type),
	)
	return err
}

// SaveTransactions inserts a batch inside one database transaction
func (s *Storage) SaveTransactions(txns []ledger.Transaction) error {
	if len(txns) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO transactions
	(id, user_id, account_id, account_name, date, description, amount, category, type)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, txn := range txns {
		if _, err := stmt.Exec(
			txn.ID,
			txn.UserID,
			txn.AccountID,
			txn.AccountName,
			txn.Date,
			txn.Description,
			txn.Amount,
			txn.Category,
			string(txn.Type),
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to save transaction %s: %w", txn.ID, err)
		}
	}

	return tx.Commit()
}

// ListTransactions returns stored transactions for a user, newest first
func (s *Storage) ListTransactions(userID string) ([]ledger.Transaction, error) {
	query := `
	SELECT id, user_id, account_id, account_name, date, description, amount, category, type
	FROM transactions`
	args := []interface{}{}
	if userID != "" {
		query += " WHERE user_id = ?"
		args = append(args, userID)
	}
	query += " ORDER BY date DESC, id"

	return s.queryTransactions(query, args...)
}

// ListUnmatchedTransactions returns stored transactions without an account
func (s *Storage) ListUnmatchedTransactions(userID string) ([]ledger.Transaction, error) {
	query := `
	SELECT id, user_id, account_id, account_name, date, description, amount, category, type
	FROM transactions
	WHERE account_id = ''`
	args := []interface{}{}
	if userID != "" {
		query += " AND user_id = ?"
		args = append(args, userID)
	}
	query += " ORDER BY date DESC, id"

	return s.queryTransactions(query, args...)
}

// CountTransactions returns the number of stored transactions for a user
func (s *Storage) CountTransactions(userID string) (int, error) {
	query := "SELECT COUNT(*) FROM transactions"
	args := []interface{}{}
	if userID != "" {
		query += " WHERE user_id = ?"
		args = append(args, userID)
	}

	var count int
	err := s.db.QueryRow(query, args...).Scan(&count)
	return count, err
}

func (s *Storage) queryTransactions(query string, args ...interface{}) ([]ledger.Transaction, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	txns := make([]ledger.Transaction, 0)
	for rows.Next() {
		var txn ledger.Transaction
		var txnType string
		if err := rows.Scan(
			&txn.ID,
			&txn.UserID,
			&txn.AccountID,
			&txn.AccountName,
			&txn.Date,
			&txn.Description,
			&txn.Amount,
			&txn.Category,
			&txnType,
		); err != nil {
			return nil, err
		}
		txn.Type = ledger.TransactionType(txnType)
		txns = append(txns, txn)
	}
	return txns, rows.Err()
}

// SaveAccount inserts or updates an account
func (s *Storage) SaveAccount(acct *ledger.Account) error {
	_, err := s.db.Exec(`
	INSERT OR REPLACE INTO accounts (id, user_id, name, last4_digits, type)
	VALUES (?, ?, ?, ?, ?)`,
		acct.ID,
		acct.UserID,
		acct.Name,
		acct.Last4Digits,
		string(acct.Type),
	)
	return err
}

// GetAccount retrieves an account by ID, nil when absent
func (s *Storage) GetAccount(id string) (*ledger.Account, error) {
	row := s.db.QueryRow(`
	SELECT id, user_id, name, last4_digits, type FROM accounts WHERE id = ?`, id)

	var acct ledger.Account
	var acctType string
	err := row.Scan(&acct.ID, &acct.UserID, &acct.Name, &acct.Last4Digits, &acctType)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	acct.Type = ledger.AccountType(acctType)
	return &acct, nil
}

// ListAccounts returns accounts for a user in insertion order
func (s *Storage) ListAccounts(userID string) ([]ledger.Account, error) {
	query := "SELECT id, user_id, name, last4_digits, type FROM accounts"
	args := []interface{}{}
	if userID != "" {
		query += " WHERE user_id = ?"
		args = append(args, userID)
	}
	query += " ORDER BY created_at, id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := make([]ledger.Account, 0)
	for rows.Next() {
		var acct ledger.Account
		var acctType string
		if err := rows.Scan(&acct.ID, &acct.UserID, &acct.Name, &acct.Last4Digits, &acctType); err != nil {
			return nil, err
		}
		acct.Type = ledger.AccountType(acctType)
		accounts = append(accounts, acct)
	}
	return accounts, rows.Err()
}

// SaveImportRun records a completed import run
func (s *Storage) SaveImportRun(run *ImportRun) error {
	_, err := s.db.Exec(`
	INSERT OR REPLACE INTO import_runs
	(id, user_id, started_at, completed_at, dry_run, total, accepted, duplicates, suggested, unmatched, skipped)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.UserID,
		run.StartedAt,
		run.CompletedAt,
		run.DryRun,
		run.Total,
		run.Accepted,
		run.Duplicates,
		run.Suggested,
		run.Unmatched,
		run.Skipped,
	)
	return err
}

// ListImportRuns returns recent runs, newest first
func (s *Storage) ListImportRuns(limit int) ([]ImportRun, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
	SELECT id, user_id, started_at, completed_at, dry_run, total, accepted, duplicates, suggested, unmatched, skipped
	FROM import_runs
	ORDER BY started_at DESC
	LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := make([]ImportRun, 0)
	for rows.Next() {
		var run ImportRun
		if err := rows.Scan(
			&run.ID,
			&run.UserID,
			&run.StartedAt,
			&run.CompletedAt,
			&run.DryRun,
			&run.Total,
			&run.Accepted,
			&run.Duplicates,
			&run.Suggested,
			&run.Unmatched,
			&run.Skipped,
		); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
