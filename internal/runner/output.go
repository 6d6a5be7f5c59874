package runner

import (
	"fmt"
	"path/filepath"

	"quizharvest/internal/aggregate"
)

// ResultsPath returns the default results file of a run inside outputDir.
func ResultsPath(outputDir, runID string, format aggregate.Format) string {
	ext := ".json"
	if format == aggregate.FormatYAML {
		ext = ".yaml"
	}
	return filepath.Join(outputDir, "results-"+runID+ext)
}

// WriteResults serializes the merged results of a run to path.
func WriteResults(path string, summary Summary, format aggregate.Format) error {
	if path == "" {
		return fmt.Errorf("output path is required")
	}
	if err := aggregate.WriteFile(path, summary.Results, format); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}
