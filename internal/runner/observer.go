package runner

// DocumentStatus is the lifecycle state of one input document.
type DocumentStatus string

const (
	// DocumentQueued marks a document waiting for a worker.
	DocumentQueued DocumentStatus = "queued"
	// DocumentRunning marks a document being loaded and extracted.
	DocumentRunning DocumentStatus = "running"
	// DocumentDone marks a document extracted, possibly with question failures.
	DocumentDone DocumentStatus = "done"
	// DocumentFailed marks a document that could not be loaded.
	DocumentFailed DocumentStatus = "failed"
)

// RunObserver receives run lifecycle events for UI or logging. Calls may come
// from several workers at once.
type RunObserver interface {
	// OnRunStart signals the start of a run over the given documents.
	OnRunStart(runID string, documents []string)
	// OnDocumentStart signals that a worker picked up a document.
	OnDocumentStart(path string)
	// OnDocumentEnd delivers the outcome of one document.
	OnDocumentEnd(result DocumentResult)
	// OnRunEnd signals run completion.
	OnRunEnd(summary Summary)
}

type nopObserver struct{}

func (nopObserver) OnRunStart(string, []string)  {}
func (nopObserver) OnDocumentStart(string)       {}
func (nopObserver) OnDocumentEnd(DocumentResult) {}
func (nopObserver) OnRunEnd(Summary)             {}
