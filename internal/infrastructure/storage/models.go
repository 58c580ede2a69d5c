package storage

import "time"

// ImportRun is the audit record of one import batch.
type ImportRun struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id,omitempty"`
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
	DryRun      bool      `json:"dry_run"`

	// Partition counts, mirroring the import result summary.
	Total      int `json:"total"`
	Accepted   int `json:"accepted"`
	Duplicates int `json:"duplicates"`
	Suggested  int `json:"suggested"`
	Unmatched  int `json:"unmatched"`
	Skipped    int `json:"skipped"`
}
