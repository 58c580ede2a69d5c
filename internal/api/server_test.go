package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerkit/reconcile-backend/internal/api/dto"
	"github.com/ledgerkit/reconcile-backend/internal/application/service"
	"github.com/ledgerkit/reconcile-backend/internal/domain/bankmatch"
	"github.com/ledgerkit/reconcile-backend/internal/domain/categorizer"
	"github.com/ledgerkit/reconcile-backend/internal/domain/dedup"
	"github.com/ledgerkit/reconcile-backend/internal/domain/ledger"
	"github.com/ledgerkit/reconcile-backend/internal/domain/processor"
	"github.com/ledgerkit/reconcile-backend/internal/infrastructure/storage"
)

func newTestServer(repo storage.Repository) *Server {
	opts := dedup.DefaultOptions()
	banks := bankmatch.New(nil)
	proc := processor.New(categorizer.New(nil), banks, nil)
	detector := dedup.NewDetector(opts)
	importer := service.NewImportService(repo, detector, proc, banks, nil)
	return NewServer(DefaultConfig(), repo, importer, opts, proc, banks, nil)
}

func doRequest(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(storage.NewMockRepository())

	rec := doRequest(t, server, http.MethodGet, "/api/health", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
}

func TestImportEndpoint(t *testing.T) {
	repo := storage.NewMockRepository()
	server := newTestServer(repo)

	body := dto.ImportRequest{
		UserID: "user-1",
		Transactions: []ledger.RawTransaction{
			{Date: "2024-03-01", Description: "Coffee shop", Amount: "-4.50"},
			{Date: "2024-03-02", Description: "Paycheck deposit", Amount: "2500.00"},
		},
	}

	rec := doRequest(t, server, http.MethodPost, "/api/import", body)

	require.Equal(t, http.StatusOK, rec.Code)
	var result service.ImportResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 2, result.Summary.Total)
	assert.Equal(t, 2, result.Summary.Accepted)
	assert.True(t, repo.SaveTransactionsCalled)
	assert.NotEmpty(t, result.RunID)
}

func TestImportEndpointRejectsMissingTransactions(t *testing.T) {
	server := newTestServer(storage.NewMockRepository())

	rec := doRequest(t, server, http.MethodPost, "/api/import", map[string]any{"user_id": "user-1"})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var apiErr dto.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, "bad_request", apiErr.Error)
}

func TestImportEndpointSurfacesStorageFailure(t *testing.T) {
	repo := storage.NewMockRepository()
	repo.ListTransactionErr = fmt.Errorf("disk on fire")
	server := newTestServer(repo)

	body := dto.ImportRequest{
		Transactions: []ledger.RawTransaction{
			{Date: "2024-03-01", Description: "Coffee shop", Amount: "-4.50"},
		},
	}

	rec := doRequest(t, server, http.MethodPost, "/api/import", body)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var apiErr dto.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, "internal_error", apiErr.Error)
	// The failure detail stays in the logs, not the response.
	assert.NotContains(t, rec.Body.String(), "disk on fire")
}

func TestProcessEndpointWithInlineAccounts(t *testing.T) {
	server := newTestServer(storage.NewMockRepository())

	body := dto.ProcessRequest{
		Transactions: []ledger.RawTransaction{
			{Date: "2024-03-01", Description: "CHASE CHECKING *4321 purchase", Amount: "-20.00"},
		},
		Accounts: []ledger.Account{
			{ID: "acct-1", Name: "Chase Checking *4321", Last4Digits: "4321", Type: ledger.AccountChecking},
		},
	}

	rec := doRequest(t, server, http.MethodPost, "/api/process", body)

	require.Equal(t, http.StatusOK, rec.Code)
	var result processor.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result.Processed, 1)
	assert.Equal(t, "acct-1", result.Processed[0].AccountID)
	assert.Empty(t, result.Unmatched)
}

func TestCheckDuplicateEndpoint(t *testing.T) {
	server := newTestServer(storage.NewMockRepository())

	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	body := dto.CheckDuplicateRequest{
		New:      ledger.Transaction{Date: date, Description: "Coffee shop", Amount: -4.50, Category: "Food & Dining"},
		Existing: ledger.Transaction{Date: date, Description: "Coffee shop", Amount: -4.50, Category: "Food & Dining"},
	}

	rec := doRequest(t, server, http.MethodPost, "/api/duplicates/check", body)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.CheckDuplicateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Result.IsDuplicate)
	assert.InDelta(t, 1.0, resp.Result.Confidence, 1e-9)
	assert.Contains(t, resp.Reason, "very high confidence")
}

func TestCheckDuplicateEndpointToleranceOverride(t *testing.T) {
	server := newTestServer(storage.NewMockRepository())

	// Three days apart: a duplicate only if the date tolerance is widened.
	tolerance := 5
	body := dto.CheckDuplicateRequest{
		New:               ledger.Transaction{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Description: "Coffee shop", Amount: -4.50},
		Existing:          ledger.Transaction{Date: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), Description: "Coffee shop", Amount: -4.50},
		DateToleranceDays: &tolerance,
	}

	rec := doRequest(t, server, http.MethodPost, "/api/duplicates/check", body)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.CheckDuplicateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Result.IsDuplicate)

	// Same pair without the override is not a duplicate.
	body.DateToleranceDays = nil
	rec = doRequest(t, server, http.MethodPost, "/api/duplicates/check", body)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Result.IsDuplicate)
}

func TestScanDuplicatesEndpoint(t *testing.T) {
	repo := storage.NewMockRepository()
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SaveTransaction(&ledger.Transaction{
		ID: "existing-1", UserID: "user-1", Date: date,
		Description: "Coffee shop", Amount: -4.50, Category: "Food & Dining",
	}))
	server := newTestServer(repo)

	body := dto.ScanDuplicatesRequest{
		UserID: "user-1",
		Transactions: []ledger.Transaction{
			{Date: date, Description: "Coffee shop", Amount: -4.50, Category: "Food & Dining"},
			{Date: date, Description: "Grocery store", Amount: -60.00, Category: "Groceries"},
		},
	}

	rec := doRequest(t, server, http.MethodPost, "/api/duplicates/scan", body)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.ScanDuplicatesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Duplicates, 1)
	assert.Equal(t, "existing-1", resp.Duplicates[0].ExistingID)
	assert.NotEmpty(t, resp.Duplicates[0].Reason)
	assert.Len(t, resp.NonDuplicates, 1)
	assert.Len(t, resp.Groups.High, 1)
	assert.Equal(t, 2, resp.Summary.Total)
}

func TestTransactionsEndpoint(t *testing.T) {
	repo := storage.NewMockRepository()
	require.NoError(t, repo.SaveTransaction(&ledger.Transaction{
		ID: "txn-1", UserID: "user-1",
		Date:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Description: "Coffee shop", Amount: -4.50,
	}))
	require.NoError(t, repo.SaveTransaction(&ledger.Transaction{
		ID: "txn-2", UserID: "user-2",
		Date:        time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		Description: "Grocery store", Amount: -60.00,
	}))
	server := newTestServer(repo)

	rec := doRequest(t, server, http.MethodGet, "/api/transactions?user_id=user-1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.TransactionListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Transactions, 1)
	assert.Equal(t, "txn-1", resp.Transactions[0].ID)
	assert.Equal(t, 1, resp.TotalCount)
}

func TestCreateAccountEndpoint(t *testing.T) {
	repo := storage.NewMockRepository()
	server := newTestServer(repo)

	body := dto.CreateAccountRequest{
		UserID:      "user-1",
		Name:        "Chase Checking *4321",
		Last4Digits: "4321",
	}

	rec := doRequest(t, server, http.MethodPost, "/api/accounts", body)

	require.Equal(t, http.StatusCreated, rec.Code)
	var acct ledger.Account
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &acct))
	assert.NotEmpty(t, acct.ID)
	assert.Equal(t, ledger.AccountChecking, acct.Type)

	stored, err := repo.ListAccounts("user-1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Chase Checking *4321", stored[0].Name)
}

func TestCreateAccountEndpointRequiresName(t *testing.T) {
	server := newTestServer(storage.NewMockRepository())

	rec := doRequest(t, server, http.MethodPost, "/api/accounts", map[string]any{"user_id": "user-1"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAccountSuggestionsEndpoint(t *testing.T) {
	repo := storage.NewMockRepository()
	// Two stored sightings of the same unrecognized card cross the
	// suggestion threshold.
	for i, day := range []int{1, 2} {
		require.NoError(t, repo.SaveTransaction(&ledger.Transaction{
			ID:          fmt.Sprintf("txn-%d", i),
			UserID:      "user-1",
			Date:        time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC),
			Description: "CHASE DEBIT *4321 purchase",
			Amount:      -10.00,
		}))
	}
	server := newTestServer(repo)

	rec := doRequest(t, server, http.MethodGet, "/api/accounts/suggestions?user_id=user-1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Suggestions []bankmatch.Suggestion `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Suggestions, 1)
	assert.Equal(t, "chase", resp.Suggestions[0].BankName)
	assert.Equal(t, 2, resp.Suggestions[0].TransactionCount)
}

func TestImportRunsEndpoint(t *testing.T) {
	repo := storage.NewMockRepository()
	server := newTestServer(repo)

	// An import leaves an audit record behind.
	body := dto.ImportRequest{
		UserID: "user-1",
		Transactions: []ledger.RawTransaction{
			{Date: "2024-03-01", Description: "Coffee shop", Amount: "-4.50"},
		},
	}
	rec := doRequest(t, server, http.MethodPost, "/api/import", body)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, server, http.MethodGet, "/api/imports", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Imports []storage.ImportRun `json:"imports"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Imports, 1)
	assert.Equal(t, "user-1", resp.Imports[0].UserID)
	assert.Equal(t, 1, resp.Imports[0].Accepted)
}

func TestImportRunsEndpointRejectsBadLimit(t *testing.T) {
	server := newTestServer(storage.NewMockRepository())

	rec := doRequest(t, server, http.MethodGet, "/api/imports?limit=zero", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
