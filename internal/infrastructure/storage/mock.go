package storage

import (
	"sort"

	"github.com/ledgerkit/reconcile-backend/internal/domain/ledger"
)

// MockRepository is an in-memory implementation of Repository for testing.
// It stores all data in maps and slices, making tests fast and isolated.
type MockRepository struct {
	transactions map[string]ledger.Transaction
	accounts     map[string]ledger.Account
	accountOrder []string
	importRuns   []ImportRun

	// Hooks for test assertions
	SaveTransactionsCalled bool
	LastSavedBatch         []ledger.Transaction
	SaveImportRunCalled    bool
	LastSavedRun           *ImportRun

	// Error injection for testing error paths
	SaveTransactionErr error
	ListTransactionErr error
	SaveAccountErr     error
	SaveImportRunErr   error
}

// Compile-time check that MockRepository implements Repository
var _ Repository = (*MockRepository)(nil)

// NewMockRepository creates a new mock repository for testing
func NewMockRepository() *MockRepository {
	return &MockRepository{
		transactions: make(map[string]ledger.Transaction),
		accounts:     make(map[string]ledger.Account),
		importRuns:   make([]ImportRun, 0),
	}
}

func (m *MockRepository) SaveTransaction(txn *ledger.Transaction) error {
	if m.SaveTransactionErr != nil {
		return m.SaveTransactionErr
	}
	m.transactions[txn.ID] = *txn
	return nil
}

func (m *MockRepository) SaveTransactions(txns []ledger.Transaction) error {
	m.SaveTransactionsCalled = true
	m.LastSavedBatch = txns
	if m.SaveTransactionErr != nil {
		return m.SaveTransactionErr
	}
	for _, txn := range txns {
		m.transactions[txn.ID] = txn
	}
	return nil
}

func (m *MockRepository) ListTransactions(userID string) ([]ledger.Transaction, error) {
	if m.ListTransactionErr != nil {
		return nil, m.ListTransactionErr
	}
	txns := make([]ledger.Transaction, 0, len(m.transactions))
	for _, txn := range m.transactions {
		if userID != "" && txn.UserID != userID {
			continue
		}
		txns = append(txns, txn)
	}
	sort.Slice(txns, func(i, j int) bool {
		if !txns[i].Date.Equal(txns[j].Date) {
			return txns[i].Date.After(txns[j].Date)
		}
		return txns[i].ID < txns[j].ID
	})
	return txns, nil
}

func (m *MockRepository) ListUnmatchedTransactions(userID string) ([]ledger.Transaction, error) {
	all, err := m.ListTransactions(userID)
	if err != nil {
		return nil, err
	}
	unmatched := make([]ledger.Transaction, 0)
	for _, txn := range all {
		if txn.AccountID == "" {
			unmatched = append(unmatched, txn)
		}
	}
	return unmatched, nil
}

func (m *MockRepository) CountTransactions(userID string) (int, error) {
	txns, err := m.ListTransactions(userID)
	if err != nil {
		return 0, err
	}
	return len(txns), nil
}

func (m *MockRepository) SaveAccount(acct *ledger.Account) error {
	if m.SaveAccountErr != nil {
		return m.SaveAccountErr
	}
	if _, exists := m.accounts[acct.ID]; !exists {
		m.accountOrder = append(m.accountOrder, acct.ID)
	}
	m.accounts[acct.ID] = *acct
	return nil
}

func (m *MockRepository) GetAccount(id string) (*ledger.Account, error) {
	acct, ok := m.accounts[id]
	if !ok {
		return nil, nil
	}
	return &acct, nil
}

func (m *MockRepository) ListAccounts(userID string) ([]ledger.Account, error) {
	accounts := make([]ledger.Account, 0, len(m.accounts))
	for _, id := range m.accountOrder {
		acct := m.accounts[id]
		if userID != "" && acct.UserID != userID {
			continue
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

func (m *MockRepository) SaveImportRun(run *ImportRun) error {
	m.SaveImportRunCalled = true
	m.LastSavedRun = run
	if m.SaveImportRunErr != nil {
		return m.SaveImportRunErr
	}
	m.importRuns = append(m.importRuns, *run)
	return nil
}

func (m *MockRepository) ListImportRuns(limit int) ([]ImportRun, error) {
	runs := make([]ImportRun, len(m.importRuns))
	copy(runs, m.importRuns)
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func (m *MockRepository) Close() error {
	return nil
}
