package live

import (
	"time"

	"quizharvest/internal/runner"
)

// DocumentRow holds UI state for a single input document.
type DocumentRow struct {
	Index      int
	Path       string
	Status     runner.DocumentStatus
	TestName   string
	Questions  int
	Skipped    int
	StartedAt  time.Time
	FinishedAt time.Time
	Error      string
}

// StatusCounts aggregates counts by status bucket.
type StatusCounts struct {
	Queued    int
	Running   int
	Done      int
	Failed    int
	Questions int
	Skipped   int
}

// State captures the live UI state for an extraction run.
type State struct {
	RunID     string
	StartedAt time.Time
	Finished  bool
	LastEvent string
	Rows      []DocumentRow
	Counts    StatusCounts
}
