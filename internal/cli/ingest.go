package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"quizharvest/internal/aggregate"
	"quizharvest/internal/duckdb"
)

// runIngest builds the handler for the ingest command.
func runIngest(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := newFlagSet(cmd, stderr)
		dbPath := flags.String("db", "", "DuckDB database file (created if missing)")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if strings.TrimSpace(*dbPath) == "" {
			fmt.Fprintln(stderr, "Missing --db")
			return ExitUsage
		}
		if flags.NArg() == 0 {
			fmt.Fprintln(stderr, "Missing <results>")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		ctx := context.Background()
		db, err := duckdb.Open(ctx, *dbPath)
		if err != nil {
			fmt.Fprintf(stderr, "Ingest failed: %v\n", err)
			return ExitError
		}
		defer db.Close()

		var total duckdb.IngestStats
		for _, resultsPath := range flags.Args() {
			results, err := aggregate.LoadFile(resultsPath)
			if err != nil {
				fmt.Fprintf(stderr, "Ingest failed: %s: %v\n", resultsPath, err)
				return ExitError
			}
			stats, err := duckdb.Ingest(ctx, db, results, resultsPath)
			if err != nil {
				fmt.Fprintf(stderr, "Ingest failed: %s: %v\n", resultsPath, err)
				return ExitError
			}
			total.Tests += stats.Tests
			total.Questions += stats.Questions
			total.Skipped += stats.Skipped
		}
		fmt.Fprintf(stdout, "Ingested %d new test(s), %d new question(s), %d already present\n",
			total.Tests, total.Questions, total.Skipped)
		return ExitOK
	}
}
