package cli

import (
	"io"
	"strings"
	"testing"
)

// TestChooseProgress verifies when extraction draws the live document table.
func TestChooseProgress(t *testing.T) {
	cases := []struct {
		name      string
		mode      string
		verbose   bool
		tty       bool
		wantTable bool
		wantNote  bool
		wantErr   bool
	}{
		{name: "default on terminal", mode: "", tty: true, wantTable: true},
		{name: "auto piped", mode: "auto", tty: false},
		{name: "plain on terminal", mode: "plain", tty: true},
		{name: "verbose wins", mode: "live", verbose: true, tty: true},
		{name: "live on terminal", mode: " LIVE ", tty: true, wantTable: true},
		{name: "live piped", mode: "live", tty: false, wantNote: true},
		{name: "unknown value", mode: "fancy", tty: true, wantErr: true},
	}

	original := isTerminal
	t.Cleanup(func() { isTerminal = original })

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			isTerminal = func(io.Writer) bool { return tc.tty }
			choice, err := chooseProgress(tc.mode, tc.verbose, nil)
			if tc.wantErr {
				if err == nil || !strings.Contains(err.Error(), "--ui") {
					t.Fatalf("expected a --ui error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if choice.table != tc.wantTable {
				t.Fatalf("expected table=%v, got %v", tc.wantTable, choice.table)
			}
			if (choice.notice != "") != tc.wantNote {
				t.Fatalf("unexpected notice %q", choice.notice)
			}
		})
	}
}

// TestDefaultIsTerminalRejectsBuffers verifies in-memory writers are not terminals.
func TestDefaultIsTerminalRejectsBuffers(t *testing.T) {
	var out strings.Builder
	if defaultIsTerminal(&out) || defaultIsTerminal(nil) {
		t.Fatalf("expected non-file writers to be treated as pipes")
	}
}
