package live

import (
	"time"

	"quizharvest/internal/runner"
)

// EventKind identifies the type of live UI event.
type EventKind int

const (
	// EventRunStart signals the start of a run.
	EventRunStart EventKind = iota
	// EventDocumentStart signals that a worker picked up a document.
	EventDocumentStart
	// EventDocumentEnd delivers a document outcome.
	EventDocumentEnd
	// EventRunEnd signals run completion.
	EventRunEnd
)

// Event carries a UI update payload.
type Event struct {
	Kind      EventKind
	RunID     string
	Documents []string
	Path      string
	Result    runner.DocumentResult
	EmittedAt time.Time
}
