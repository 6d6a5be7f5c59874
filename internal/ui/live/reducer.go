package live

import (
	"fmt"

	"quizharvest/internal/runner"
)

// Reduce applies an event to the UI state.
func Reduce(state State, event Event) State {
	switch event.Kind {
	case EventRunStart:
		state = State{RunID: event.RunID, StartedAt: event.EmittedAt}
		state.Rows = make([]DocumentRow, len(event.Documents))
		for i, path := range event.Documents {
			state.Rows[i] = DocumentRow{Index: i, Path: path, Status: runner.DocumentQueued}
		}
		state.LastEvent = fmt.Sprintf("run %s started", event.RunID)
	case EventDocumentStart:
		index := findRow(state.Rows, event.Path, runner.DocumentQueued)
		if index < 0 {
			index = appendRow(&state, event.Path)
		}
		row := state.Rows[index]
		row.Status = runner.DocumentRunning
		row.StartedAt = event.EmittedAt
		state.Rows[index] = row
	case EventDocumentEnd:
		result := event.Result
		index := findRow(state.Rows, result.Path, runner.DocumentRunning)
		if index < 0 {
			index = findRow(state.Rows, result.Path, runner.DocumentQueued)
		}
		if index < 0 {
			index = appendRow(&state, result.Path)
		}
		row := state.Rows[index]
		row.Status = result.Status()
		row.TestName = result.TestName
		row.Questions = result.Questions
		row.Skipped = len(result.Failures)
		row.FinishedAt = event.EmittedAt
		if row.StartedAt.IsZero() {
			row.StartedAt = event.EmittedAt.Add(-result.Duration)
		}
		if result.Err != nil {
			row.Error = result.Err.Error()
		}
		state.Rows[index] = row
		state.LastEvent = formatDocumentEnd(row)
	case EventRunEnd:
		state.Finished = true
		state.LastEvent = fmt.Sprintf("run %s finished", state.RunID)
	}
	state.Counts = recount(state.Rows)
	return state
}

// findRow returns the first row for path in the given status, or -1.
func findRow(rows []DocumentRow, path string, status runner.DocumentStatus) int {
	for i, row := range rows {
		if row.Path == path && row.Status == status {
			return i
		}
	}
	return -1
}

func appendRow(state *State, path string) int {
	index := len(state.Rows)
	state.Rows = append(state.Rows, DocumentRow{Index: index, Path: path, Status: runner.DocumentQueued})
	return index
}

// recount recomputes status counts for the current rows.
func recount(rows []DocumentRow) StatusCounts {
	var counts StatusCounts
	for _, row := range rows {
		switch row.Status {
		case runner.DocumentQueued:
			counts.Queued++
		case runner.DocumentRunning:
			counts.Running++
		case runner.DocumentDone:
			counts.Done++
		case runner.DocumentFailed:
			counts.Failed++
		}
		counts.Questions += row.Questions
		counts.Skipped += row.Skipped
	}
	return counts
}

// formatDocumentEnd creates a short footer message for a finished document.
func formatDocumentEnd(row DocumentRow) string {
	if row.Status == runner.DocumentFailed {
		return fmt.Sprintf("%s failed: %s", row.Path, row.Error)
	}
	if row.Skipped > 0 {
		return fmt.Sprintf("%s: %d question(s), %d skipped", row.Path, row.Questions, row.Skipped)
	}
	return fmt.Sprintf("%s: %d question(s)", row.Path, row.Questions)
}
