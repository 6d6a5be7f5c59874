package cli

import (
	"fmt"
	"io"
	"os"

	"quizharvest/internal/aggregate"
	"quizharvest/internal/ui/live"
)

// runSummary builds the handler for the summary command.
func runSummary(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := newFlagSet(cmd, stderr)
		noColor := flags.Bool("no-color", false, "Disable ANSI colors")
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
		plain := *noColor || os.Getenv("NO_COLOR") != "" || !isTerminal(stdout)
		fmt.Fprintln(stdout, live.SummaryTable(results, plain))
		return ExitOK
	}
}

// singleResultsArg expects exactly one results file argument.
func singleResultsArg(cmd *Command, args []string, stderr io.Writer) (string, int, bool) {
	switch {
	case len(args) == 0:
		fmt.Fprintln(stderr, "Missing <results>")
		printCommandUsage(cmd, stderr)
		return "", ExitUsage, false
	case len(args) > 1:
		fmt.Fprintln(stderr, "Too many arguments")
		printCommandUsage(cmd, stderr)
		return "", ExitUsage, false
	}
	return args[0], ExitOK, true
}
