package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	progressAuto  = "auto"
	progressLive  = "live"
	progressPlain = "plain"
)

// progressChoice says how an extraction run reports per-document progress.
type progressChoice struct {
	table  bool
	notice string
}

// isTerminal reports whether a writer is a TTY.
var isTerminal = defaultIsTerminal

// chooseProgress picks the live document table or plain lines for --ui.
// Verbose runs print one line per event, so they never draw the table.
func chooseProgress(mode string, verbose bool, stdout io.Writer) (progressChoice, error) {
	mode = strings.ToLower(strings.TrimSpace(mode))
	if mode == "" {
		mode = progressAuto
	}
	switch mode {
	case progressAuto, progressLive, progressPlain:
	default:
		return progressChoice{}, fmt.Errorf("unknown --ui value %q, want %s, %s or %s", mode, progressAuto, progressLive, progressPlain)
	}
	if verbose || mode == progressPlain {
		return progressChoice{}, nil
	}
	tty := isTerminal(stdout)
	if mode == progressLive && !tty {
		return progressChoice{notice: "stdout is not a terminal, document table disabled"}, nil
	}
	return progressChoice{table: tty}, nil
}

func defaultIsTerminal(stdout io.Writer) bool {
	switch out := stdout.(type) {
	case *os.File:
		return out != nil && term.IsTerminal(int(out.Fd()))
	case interface{ Fd() uintptr }:
		return term.IsTerminal(int(out.Fd()))
	default:
		return false
	}
}
