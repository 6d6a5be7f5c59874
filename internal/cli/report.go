package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"quizharvest/internal/aggregate"
	"quizharvest/internal/fsutil"
	"quizharvest/internal/report"
)

// runReport builds the handler for the report command.
func runReport(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := newFlagSet(cmd, stderr)
		title := flags.String("title", "", "Page title (default: results file name)")
		output := flags.String("output", "", "HTML output path (default: <results>.html)")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		resultsPath, code, ok := singleResultsArg(cmd, flags.Args(), stderr)
		if !ok {
			return code
		}

		results, err := aggregate.LoadFile(resultsPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load results: %v\n", err)
			return ExitError
		}
		stem := strings.TrimSuffix(resultsPath, filepath.Ext(resultsPath))
		pageTitle := *title
		if pageTitle == "" {
			pageTitle = filepath.Base(stem)
		}
		outputPath := *output
		if outputPath == "" {
			outputPath = stem + ".html"
		}

		html, err := report.RenderHTML(context.Background(), pageTitle, results)
		if err != nil {
			fmt.Fprintf(stderr, "Report failed: %v\n", err)
			return ExitError
		}
		if err := fsutil.WriteFileAtomic(outputPath, []byte(html), 0o644); err != nil {
			fmt.Fprintf(stderr, "Report failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Report: %s\n", outputPath)
		return ExitOK
	}
}
