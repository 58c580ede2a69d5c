package cli

import (
	"fmt"
	"strings"

	"github.com/ledgerkit/reconcile-backend/internal/application/service"
	"github.com/ledgerkit/reconcile-backend/internal/domain/dedup"
	"github.com/ledgerkit/reconcile-backend/internal/infrastructure/storage"
)

// PrintHeader prints the command header.
func PrintHeader(file string, dryRun bool) {
	mode := "PRODUCTION"
	if dryRun {
		mode = "DRY-RUN"
	}
	fmt.Printf("reconcile-import: %s (%s mode)\n\n", file, mode)
}

// PrintImportSummary prints the result of an import batch.
func PrintImportSummary(result *service.ImportResult, repo storage.Repository, userID string, verbose bool) {
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("Summary: Total=%d Accepted=%d Duplicates=%d Suggested=%d Unmatched=%d Skipped=%d\n",
		result.Summary.Total,
		result.Summary.Accepted,
		result.Summary.Duplicates,
		result.Summary.Suggested,
		result.Summary.Unmatched,
		result.Summary.Skipped)

	if len(result.Duplicates) > 0 {
		fmt.Println("\nDuplicates dropped:")
		for _, dup := range result.Duplicates {
			fmt.Printf("  - %s %s $%.2f: %s\n",
				dup.Transaction.Date.Format("2006-01-02"),
				dup.Transaction.Description,
				dup.Transaction.Amount,
				dedup.ExplainMatch(dup.Match))
		}
	}

	if len(result.Suggestions) > 0 {
		fmt.Println("\nSuggested accounts:")
		for _, sug := range result.Suggestions {
			fmt.Printf("  - %s (seen %d times)\n", sug.SuggestedName, sug.TransactionCount)
		}
	}

	if verbose && len(result.Accepted) > 0 {
		fmt.Println("\nAccepted:")
		for _, txn := range result.Accepted {
			fmt.Printf("  - %s %s $%.2f [%s]\n",
				txn.Date.Format("2006-01-02"), txn.Description, txn.Amount, txn.Category)
		}
	}

	if repo != nil {
		if count, err := repo.CountTransactions(userID); err == nil {
			fmt.Printf("\nStored transactions: %d\n", count)
		}
	}

	if !result.DryRun && result.Summary.Accepted > 0 {
		fmt.Println("\nImport completed successfully.")
	}
}
