package cli

import (
	"fmt"
	"io"
	"strings"

	"quizharvest/internal/aggregate"
	"quizharvest/internal/schema"
)

// runJoin builds the handler for the join command.
func runJoin(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := newFlagSet(cmd, stderr)
		dir := flags.String("dir", "", "Directory holding *.json results files")
		output := flags.String("output", "", "Joined results file (default: JSON on stdout)")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if rejectArgs(cmd, flags, stderr) {
			return ExitUsage
		}
		if strings.TrimSpace(*dir) == "" {
			fmt.Fprintln(stderr, "Missing --dir")
			return ExitUsage
		}

		validator, err := schema.New()
		if err != nil {
			fmt.Fprintf(stderr, "Join failed: %v\n", err)
			return ExitError
		}
		joined, files, err := aggregate.JoinDir(*dir, validator)
		if err != nil {
			fmt.Fprintf(stderr, "Join failed: %v\n", err)
			return ExitError
		}
		if len(files) == 0 {
			fmt.Fprintf(stderr, "Join failed: no results files in %s\n", *dir)
			return ExitError
		}
		if *output == "" {
			data, err := aggregate.Encode(joined, aggregate.FormatJSON)
			if err != nil {
				fmt.Fprintf(stderr, "Join failed: %v\n", err)
				return ExitError
			}
			if _, err := stdout.Write(data); err != nil {
				fmt.Fprintf(stderr, "Join failed: %v\n", err)
				return ExitError
			}
			return ExitOK
		}
		if err := aggregate.WriteFile(*output, joined, aggregate.FormatForPath(*output)); err != nil {
			fmt.Fprintf(stderr, "Join failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Joined %d file(s): %d test(s), %d question(s)\n", len(files), joined.Len(), joined.QuestionCount())
		fmt.Fprintf(stdout, "Results: %s\n", *output)
		return ExitOK
	}
}
