package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"quizharvest/internal/aggregate"
	"quizharvest/internal/config"
	"quizharvest/internal/extract"
	"quizharvest/internal/htmldoc"
	"quizharvest/internal/pdftext"
	"quizharvest/internal/runner"
	"quizharvest/internal/ui/live"
)

// runExtraction is a test seam for the extraction run.
var runExtraction = runner.Run

// startLiveUI is a test seam for the live progress UI.
var startLiveUI = func(stdout io.Writer, opts live.Options) liveUI {
	return live.Start(stdout, opts)
}

// liveUI is the part of the live controller the CLI drives.
type liveUI interface {
	runner.RunObserver
	Close()
	Wait()
}

// extractOptions holds the flags shared by extract and scrape.
type extractOptions struct {
	configPath *string
	name       *string
	output     *string
	workers    *int
	format     *string
	locale     *string
	verbose    *bool
	logPath    *string
	noColor    *bool
	uiMode     *string
}

func registerExtractFlags(flags *flag.FlagSet, withName bool) extractOptions {
	opts := extractOptions{
		configPath: flags.String("config", "", "Path to config file (default: search for .quizharvest/config.yml)"),
		output:     flags.String("output", "", "Results file (default: <output_dir>/results-<run-id>.<format>)"),
		workers:    flags.Int("workers", 0, "Documents processed at once (default: config workers)"),
		format:     flags.String("format", "", "Results format: json|yaml (default: config format)"),
		locale:     flags.String("locale", "", "Phrase profile: es|en (default: config locale)"),
		verbose:    flags.Bool("verbose", false, "Log each document and skipped question"),
		logPath:    flags.String("log", "", "Also write verbose lines to this file"),
		noColor:    flags.Bool("no-color", false, "Disable ANSI colors"),
		uiMode:     flags.String("ui", "auto", "Progress UI: auto|live|plain"),
	}
	if withName {
		opts.name = flags.String("name", "", "Test name (default: file name without extension)")
	} else {
		empty := ""
		opts.name = &empty
	}
	return opts
}

// runExtract builds the handler for the extract command.
func runExtract(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return extractionCommand(cmd, true, func(cfg config.Config) runner.Loader {
		return textLoader(pdftext.Extractor{Binary: cfg.PDFToText})
	})
}

// runScrape builds the handler for the scrape command.
func runScrape(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return extractionCommand(cmd, false, func(config.Config) runner.Loader {
		return runner.LoaderFunc(loadPage)
	})
}

// textLoader reads exported documents as normalized text.
func textLoader(extractor pdftext.Extractor) runner.Loader {
	return runner.LoaderFunc(func(ctx context.Context, path string) (runner.Source, error) {
		text, err := extractor.Extract(ctx, path)
		if err != nil {
			return runner.Source{}, err
		}
		return runner.Source{Path: path, Text: pdftext.Normalize(text)}, nil
	})
}

// loadPage reads a saved review page. A page without a breadcrumb is still
// extracted under the fallback name.
func loadPage(_ context.Context, path string) (runner.Source, error) {
	page, err := htmldoc.Load(path)
	if err != nil {
		return runner.Source{}, err
	}
	name, err := page.TestName()
	if err != nil && !errors.Is(err, htmldoc.ErrNoTestName) {
		return runner.Source{}, err
	}
	return runner.Source{Path: path, TestName: name, Nodes: page.Questions()}, nil
}

func extractionCommand(cmd *Command, withName bool, newLoader func(config.Config) runner.Loader) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := newFlagSet(cmd, stderr)
		opts := registerExtractFlags(flags, withName)
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		paths := flags.Args()
		if len(paths) == 0 {
			fmt.Fprintln(stderr, "Missing input files")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		cfg, _, err := loadConfig(*opts.configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		if code, ok := applyOverrides(&cfg, opts, stderr); !ok {
			return code
		}
		format := aggregate.Format(cfg.Format)
		if strings.TrimSpace(*opts.format) == "" && *opts.output != "" {
			format = aggregate.FormatForPath(*opts.output)
		}

		phrases, err := cfg.ResolvePhrases()
		if err != nil {
			fmt.Fprintf(stderr, "Invalid phrases: %v\n", err)
			return ExitError
		}
		extractor, err := extract.New(phrases)
		if err != nil {
			fmt.Fprintf(stderr, "Invalid phrases: %v\n", err)
			return ExitError
		}

		progress, err := chooseProgress(*opts.uiMode, *opts.verbose, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitUsage
		}
		if progress.notice != "" {
			fmt.Fprintln(stderr, progress.notice)
		}

		logger := runner.Logger{Enabled: *opts.verbose, Console: stdout, NoColor: *opts.noColor}
		if *opts.logPath != "" {
			logFile, err := openLogFile(*opts.logPath)
			if err != nil {
				fmt.Fprintf(stderr, "Failed to open log file: %v\n", err)
				return ExitError
			}
			defer logFile.Close()
			logger.File = logFile
			logger.Enabled = true
			if !*opts.verbose {
				logger.Console = nil
			}
		}

		params := runner.RunParams{
			Paths:     paths,
			Loader:    newLoader(cfg),
			Extractor: extractor,
			TestName:  *opts.name,
			Workers:   cfg.Workers,
			Logger:    logger,
		}
		var ui liveUI
		if progress.table {
			ui = startLiveUI(stdout, live.Options{NoColor: *opts.noColor})
			params.Observer = ui
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		summary, err := runExtraction(ctx, params)
		if ui != nil {
			ui.Close()
			ui.Wait()
		}
		if err != nil {
			fmt.Fprintf(stderr, "Run failed: %v\n", err)
			return ExitError
		}

		outputPath := *opts.output
		if outputPath == "" {
			outputPath = runner.ResultsPath(cfg.OutputPath(), summary.RunID, format)
		}
		if err := runner.WriteResults(outputPath, summary, format); err != nil {
			fmt.Fprintf(stderr, "Failed to write results: %v\n", err)
			return ExitError
		}

		reportRun(summary, outputPath, stdout, stderr)
		if summary.FailedDocuments() > 0 {
			return ExitError
		}
		return ExitOK
	}
}

// applyOverrides layers command flags over the loaded config and validates
// the result.
func applyOverrides(cfg *config.Config, opts extractOptions, stderr io.Writer) (int, bool) {
	if value := strings.TrimSpace(*opts.locale); value != "" {
		cfg.Locale = value
	}
	if *opts.workers != 0 {
		cfg.Workers = *opts.workers
	}
	if value := strings.TrimSpace(*opts.format); value != "" {
		cfg.Format = strings.ToLower(value)
	}
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(stderr, "Invalid options:\n%s\n", err.Error())
		return ExitUsage, false
	}
	return ExitOK, true
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// reportRun prints the outcome of a run. Skipped questions and failed
// documents go to stderr.
func reportRun(summary runner.Summary, outputPath string, stdout, stderr io.Writer) {
	for _, doc := range summary.Documents {
		if doc.Err != nil {
			fmt.Fprintf(stderr, "Document failed: %v\n", doc.Err)
			continue
		}
		for _, failure := range doc.Failures {
			fmt.Fprintf(stderr, "Skipped question %d of %s (%s): %v\n", failure.Index, doc.Path, failure.Stage, failure.Err)
		}
	}
	fmt.Fprintf(stdout, "Run %s completed\n", summary.RunID)
	fmt.Fprintf(stdout, "Results: %s\n", outputPath)
	fmt.Fprintf(stdout, "Tests: %d, questions: %d, skipped: %d\n",
		summary.Results.Len(), summary.Results.QuestionCount(), summary.FailureCount())
}
