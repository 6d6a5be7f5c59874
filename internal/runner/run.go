package runner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"quizharvest/internal/aggregate"
	"quizharvest/internal/extract"
	"quizharvest/internal/segment"
)

// Source is a loaded document ready for extraction. Exported documents carry
// Text, live pages carry Nodes. TestName is set when the document names its
// own test.
type Source struct {
	Path     string
	TestName string
	Text     string
	Nodes    []segment.Node
}

// Loader reads one input document.
type Loader interface {
	Load(ctx context.Context, path string) (Source, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, path string) (Source, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, path string) (Source, error) {
	return f(ctx, path)
}

// RunDependencies lets callers replace clocks and identifiers.
type RunDependencies struct {
	RunID func() string
	Now   func() time.Time
}

// RunParams configures one extraction run.
type RunParams struct {
	Paths     []string
	Loader    Loader
	Extractor *extract.Extractor
	// TestName names documents that do not carry their own name. When empty
	// the file name without extension is used.
	TestName string
	Workers  int
	Observer RunObserver
	Logger   Logger
	Deps     RunDependencies
}

// DocumentResult is the outcome of one document.
type DocumentResult struct {
	Path      string
	TestName  string
	Questions int
	Failures  []*extract.Failure
	Err       error
	Duration  time.Duration
}

// Status reports the final document state.
func (r DocumentResult) Status() DocumentStatus {
	if r.Err != nil {
		return DocumentFailed
	}
	return DocumentDone
}

// Summary is the outcome of a run. Results holds the merged questions of
// every document in input order.
type Summary struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Documents  []DocumentResult
	Results    *aggregate.Results
}

// FailureCount returns question-level failures across documents.
func (s Summary) FailureCount() int {
	total := 0
	for _, doc := range s.Documents {
		total += len(doc.Failures)
	}
	return total
}

// FailedDocuments returns how many documents could not be loaded.
func (s Summary) FailedDocuments() int {
	total := 0
	for _, doc := range s.Documents {
		if doc.Err != nil {
			total++
		}
	}
	return total
}

// Run extracts every document with a bounded worker pool. Each worker fills
// its own partial results; partials are merged in input order once all
// workers finish. Document and question failures are recorded, not returned;
// only cancellation stops the run.
func Run(ctx context.Context, params RunParams) (Summary, error) {
	if params.Loader == nil {
		return Summary{}, errors.New("loader is required")
	}
	if params.Extractor == nil {
		return Summary{}, errors.New("extractor is required")
	}
	runID := NewRunID
	if params.Deps.RunID != nil {
		runID = params.Deps.RunID
	}
	now := params.Deps.Now
	if now == nil {
		now = time.Now
	}
	observer := params.Observer
	if observer == nil {
		observer = nopObserver{}
	}
	workers := params.Workers
	if workers <= 0 {
		workers = 1
	}
	logger := lockedLogger(workers, params.Logger)

	summary := Summary{RunID: runID(), StartedAt: now()}
	observer.OnRunStart(summary.RunID, append([]string(nil), params.Paths...))
	logger.log(styleDefault, "run %s: %d document(s), %d worker(s)", summary.RunID, len(params.Paths), workers)

	documents := make([]DocumentResult, len(params.Paths))
	partials := make([]*aggregate.Results, len(params.Paths))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for i, path := range params.Paths {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			observer.OnDocumentStart(path)
			logger.log(styleDocument, "document %s", path)
			result, partial := runDocument(groupCtx, params, path, now)
			documents[i] = result
			partials[i] = partial
			logDocument(logger, result)
			observer.OnDocumentEnd(result)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return Summary{}, err
	}
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}

	summary.Results = aggregate.New()
	for _, partial := range partials {
		summary.Results.Merge(partial)
	}
	summary.Documents = documents
	summary.FinishedAt = now()
	logger.log(styleMetrics, "run %s: %d test(s), %d question(s), %d failure(s)",
		summary.RunID, summary.Results.Len(), summary.Results.QuestionCount(), summary.FailureCount())
	observer.OnRunEnd(summary)
	return summary, nil
}

func runDocument(ctx context.Context, params RunParams, path string, now func() time.Time) (DocumentResult, *aggregate.Results) {
	started := now()
	result := DocumentResult{Path: path}
	source, err := params.Loader.Load(ctx, path)
	if err != nil {
		result.Err = fmt.Errorf("load %s: %w", path, err)
		result.Duration = now().Sub(started)
		return result, nil
	}
	name := documentTestName(source, params.TestName, path)
	var report extract.Report
	if source.Nodes != nil {
		report = params.Extractor.Nodes(path, name, source.Nodes)
	} else {
		report = params.Extractor.Text(path, name, source.Text)
	}
	partial := aggregate.New()
	partial.AddAll(name, report.Questions)
	result.TestName = name
	result.Questions = len(report.Questions)
	result.Failures = report.Failures
	result.Duration = now().Sub(started)
	return result, partial
}

func documentTestName(source Source, fallback, path string) string {
	if name := strings.TrimSpace(source.TestName); name != "" {
		return name
	}
	if name := strings.TrimSpace(fallback); name != "" {
		return name
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func logDocument(logger Logger, result DocumentResult) {
	if result.Err != nil {
		logger.log(styleError, "document %s failed: %v", result.Path, result.Err)
		return
	}
	logger.log(styleMetrics, "document %s: test %q, %d question(s), %d failure(s), %s",
		result.Path, result.TestName, result.Questions, len(result.Failures), result.Duration.Round(time.Millisecond))
	for _, failure := range result.Failures {
		logger.log(styleWarning, "  skipped question %d (%s): %v", failure.Index, failure.Stage, failure.Err)
	}
}
