package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ledgerkit/reconcile-backend/internal/api/dto"
	"github.com/ledgerkit/reconcile-backend/internal/application/service"
	"github.com/ledgerkit/reconcile-backend/internal/domain/dedup"
	"github.com/ledgerkit/reconcile-backend/internal/domain/ledger"
)

func (s *Server) getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewHealthResponse())
}

// postImport runs a batch through the full import workflow.
func (s *Server) postImport(c *gin.Context) {
	var req dto.ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}

	result, err := s.importer.Import(c.Request.Context(), service.ImportRequest{
		UserID:       req.UserID,
		DryRun:       req.DryRun,
		Transactions: req.Transactions,
	})
	if err != nil {
		s.logger.Error("import failed", "error", err, "user_id", req.UserID)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	c.JSON(http.StatusOK, result)
}

// postProcess validates and routes a batch without persisting anything.
// Accounts may be supplied inline; otherwise the user's stored accounts
// are used.
func (s *Server) postProcess(c *gin.Context) {
	var req dto.ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}

	accounts := req.Accounts
	if accounts == nil {
		stored, err := s.repo.ListAccounts(req.UserID)
		if err != nil {
			s.logger.Error("failed to load accounts", "error", err, "user_id", req.UserID)
			c.JSON(http.StatusInternalServerError, dto.InternalError())
			return
		}
		accounts = stored
	}

	result := s.processor.Process(req.Transactions, accounts)
	c.JSON(http.StatusOK, result)
}

// postCheckDuplicate compares one transaction pair. Tolerance fields in
// the request override the configured ones for this call only.
func (s *Server) postCheckDuplicate(c *gin.Context) {
	var req dto.CheckDuplicateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}

	opts := s.dedupOpts
	if req.DateToleranceDays != nil {
		opts.DateToleranceDays = *req.DateToleranceDays
	}
	if req.AmountTolerance != nil {
		opts.AmountTolerance = *req.AmountTolerance
	}
	if req.RequireExactCategory != nil {
		opts.RequireExactCategory = *req.RequireExactCategory
	}

	result := dedup.NewDetector(opts).CheckDuplicate(req.New, req.Existing)
	c.JSON(http.StatusOK, dto.CheckDuplicateResponse{
		Result: result,
		Reason: dedup.ExplainMatch(result),
	})
}

// postScanDuplicates checks a batch against the user's stored
// transactions without persisting anything.
func (s *Server) postScanDuplicates(c *gin.Context) {
	var req dto.ScanDuplicatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}

	batch, err := s.importer.ScanDuplicates(c.Request.Context(), req.UserID, req.Transactions)
	if err != nil {
		s.logger.Error("duplicate scan failed", "error", err, "user_id", req.UserID)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	explained := make([]dto.ExplainedDuplicate, 0, len(batch.Duplicates))
	for _, dup := range batch.Duplicates {
		explained = append(explained, dto.ExplainedDuplicate{
			Duplicate: dup,
			Reason:    dedup.ExplainMatch(dup.Match),
		})
	}

	c.JSON(http.StatusOK, dto.ScanDuplicatesResponse{
		Duplicates:    explained,
		NonDuplicates: batch.NonDuplicates,
		Groups:        dedup.GroupByConfidence(batch.Duplicates),
		Summary:       batch.Summary,
	})
}

func (s *Server) getTransactions(c *gin.Context) {
	userID := c.Query("user_id")

	txns, err := s.repo.ListTransactions(userID)
	if err != nil {
		s.logger.Error("failed to list transactions", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	count, err := s.repo.CountTransactions(userID)
	if err != nil {
		s.logger.Error("failed to count transactions", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	c.JSON(http.StatusOK, dto.TransactionListResponse{
		Transactions: txns,
		TotalCount:   count,
	})
}

func (s *Server) getAccounts(c *gin.Context) {
	userID := c.Query("user_id")

	accounts, err := s.repo.ListAccounts(userID)
	if err != nil {
		s.logger.Error("failed to list accounts", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	c.JSON(http.StatusOK, dto.AccountListResponse{Accounts: accounts})
}

func (s *Server) postAccount(c *gin.Context) {
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}

	acct := ledger.Account{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Last4Digits: req.Last4Digits,
		Type:        ledger.AccountType(req.Type),
		UserID:      req.UserID,
	}
	if acct.Type == "" {
		acct.Type = ledger.AccountChecking
	}

	if err := s.repo.SaveAccount(&acct); err != nil {
		s.logger.Error("failed to save account", "error", err, "user_id", req.UserID)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	c.JSON(http.StatusCreated, acct)
}

func (s *Server) getAccountSuggestions(c *gin.Context) {
	userID := c.Query("user_id")

	suggestions, err := s.importer.SuggestAccounts(c.Request.Context(), userID)
	if err != nil {
		s.logger.Error("failed to suggest accounts", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

func (s *Server) getImportRuns(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, dto.BadRequestError("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	runs, err := s.repo.ListImportRuns(limit)
	if err != nil {
		s.logger.Error("failed to list import runs", "error", err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	c.JSON(http.StatusOK, gin.H{"imports": runs})
}
