package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"quizharvest/internal/reportserver"
)

// serveReport is a test seam for running the report server.
var serveReport = reportserver.Serve

// runServe builds the handler for the serve command.
func runServe(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := newFlagSet(cmd, stderr)
		addr := flags.String("addr", "127.0.0.1:5000", "Address to listen on")
		title := flags.String("title", "", "Page title (default: results file name)")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		resultsPath, code, ok := singleResultsArg(cmd, flags.Args(), stderr)
		if !ok {
			return code
		}
		if *addr == "" {
			fmt.Fprintln(stderr, "Missing --addr")
			return ExitUsage
		}
		if _, err := os.Stat(resultsPath); err != nil {
			fmt.Fprintf(stderr, "Results not found: %v\n", err)
			return ExitError
		}
		pageTitle := *title
		if pageTitle == "" {
			base := filepath.Base(resultsPath)
			pageTitle = strings.TrimSuffix(base, filepath.Ext(base))
		}

		cfg := reportserver.Config{
			Addr:        *addr,
			ResultsPath: resultsPath,
			Title:       pageTitle,
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		fmt.Fprintf(stdout, "Serving report at http://%s\n", cfg.Addr)
		if err := serveReport(ctx, cfg); err != nil {
			fmt.Fprintf(stderr, "Server error: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}
