package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"quizharvest/internal/aggregate"
	"quizharvest/internal/schema"
)

// stringList collects a repeatable flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}

// runValidate builds the handler for the validate command.
func runValidate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := newFlagSet(cmd, stderr)
		configPath := flags.String("config", "", "Path to config file (default: search for .quizharvest/config.yml)")
		var resultsPaths stringList
		flags.Var(&resultsPaths, "results", "Results file to check against the schema (repeatable)")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if rejectArgs(cmd, flags, stderr) {
			return ExitUsage
		}

		_, path, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%s\n", err.Error())
			return ExitError
		}
		if path == "" {
			fmt.Fprintln(stdout, "No config file found; defaults OK")
		} else {
			fmt.Fprintln(stdout, "Config OK")
		}

		if len(resultsPaths) == 0 {
			return ExitOK
		}
		validator, err := schema.New()
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
			return ExitError
		}
		code := ExitOK
		for _, resultsPath := range resultsPaths {
			results, err := validateResultsFile(validator, resultsPath)
			if err != nil {
				fmt.Fprintf(stderr, "Validation failed: %s:\n%v\n", resultsPath, err)
				code = ExitError
				continue
			}
			fmt.Fprintf(stdout, "Results OK: %s (%d test(s), %d question(s))\n", resultsPath, results.Len(), results.QuestionCount())
		}
		return code
	}
}

// validateResultsFile checks a results file of either format against the
// schema. YAML documents are checked through their JSON encoding.
func validateResultsFile(validator *schema.Results, path string) (*aggregate.Results, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results: %w", err)
	}
	format := aggregate.FormatForPath(path)
	if format == aggregate.FormatJSON {
		if err := validator.Validate(data); err != nil {
			return nil, err
		}
		return aggregate.Decode(data, format)
	}
	results, err := aggregate.Decode(data, format)
	if err != nil {
		return nil, err
	}
	encoded, err := aggregate.Encode(results, aggregate.FormatJSON)
	if err != nil {
		return nil, err
	}
	if err := validator.Validate(encoded); err != nil {
		return nil, err
	}
	return results, nil
}
