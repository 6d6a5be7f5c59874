package live

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"quizharvest/internal/aggregate"
	"quizharvest/internal/extract"
	"quizharvest/internal/question"
	"quizharvest/internal/runner"
)

// TestReduceDocumentLifecycle verifies statuses and counts across a run.
func TestReduceDocumentLifecycle(t *testing.T) {
	start := time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC)
	state := Reduce(State{}, Event{Kind: EventRunStart, RunID: "run-1", Documents: []string{"a.txt", "b.txt", "a.txt"}, EmittedAt: start})
	if len(state.Rows) != 3 || state.Counts.Queued != 3 {
		t.Fatalf("expected 3 queued rows, got %+v", state)
	}
	state = Reduce(state, Event{Kind: EventDocumentStart, Path: "a.txt", EmittedAt: start})
	state = Reduce(state, Event{Kind: EventDocumentStart, Path: "a.txt", EmittedAt: start})
	if state.Rows[0].Status != runner.DocumentRunning || state.Rows[2].Status != runner.DocumentRunning {
		t.Fatalf("expected both a.txt rows running, got %+v", state.Rows)
	}
	state = Reduce(state, Event{Kind: EventDocumentEnd, Result: runner.DocumentResult{
		Path: "a.txt", TestName: "Tema 1", Questions: 4,
		Failures: []*extract.Failure{{Index: 2}},
	}, EmittedAt: start.Add(time.Second)})
	state = Reduce(state, Event{Kind: EventDocumentEnd, Result: runner.DocumentResult{
		Path: "b.txt", Err: errors.New("no such document"),
	}, EmittedAt: start.Add(time.Second)})

	if state.Rows[0].Status != runner.DocumentDone || state.Rows[0].Questions != 4 || state.Rows[0].Skipped != 1 {
		t.Fatalf("unexpected first row %+v", state.Rows[0])
	}
	if state.Rows[1].Status != runner.DocumentFailed || state.Rows[1].Error != "no such document" {
		t.Fatalf("unexpected failed row %+v", state.Rows[1])
	}
	want := StatusCounts{Running: 1, Done: 1, Failed: 1, Questions: 4, Skipped: 1}
	if state.Counts != want {
		t.Fatalf("expected counts %+v, got %+v", want, state.Counts)
	}
	if !strings.Contains(state.LastEvent, "b.txt failed") {
		t.Fatalf("unexpected last event %q", state.LastEvent)
	}

	state = Reduce(state, Event{Kind: EventRunEnd})
	if !state.Finished {
		t.Fatalf("expected run to be finished")
	}
}

// TestReduceUnknownDocument verifies events for unlisted documents add rows.
func TestReduceUnknownDocument(t *testing.T) {
	state := Reduce(State{}, Event{Kind: EventDocumentEnd, Result: runner.DocumentResult{Path: "x.pdf", Questions: 2}})
	if len(state.Rows) != 1 || state.Rows[0].Status != runner.DocumentDone {
		t.Fatalf("expected one done row, got %+v", state.Rows)
	}
}

// TestModelUpdateAndView verifies the model renders events without a program.
func TestModelUpdateAndView(t *testing.T) {
	events := make(chan Event)
	model := NewModel(events, Options{NoColor: true})
	var updated tea.Model = model
	updated, _ = updated.Update(EventMsg{Event: Event{Kind: EventRunStart, RunID: "run-7", Documents: []string{"tema.pdf"}}})
	updated, _ = updated.Update(EventMsg{Event: Event{Kind: EventDocumentEnd, Result: runner.DocumentResult{Path: "tema.pdf", TestName: "Tema 1", Questions: 3}}})
	view := updated.View()
	for _, want := range []string{"Run run-7", "Done: 1", "Questions: 3", "tema.pdf", "Last event: tema.pdf: 3 question(s)"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
	if strings.Contains(view, "\x1b[") {
		t.Fatalf("expected no ANSI styling with NoColor")
	}
}

// TestControllerSendDoesNotBlock verifies a full event buffer drops events.
func TestControllerSendDoesNotBlock(t *testing.T) {
	controller := &Controller{events: make(chan Event, 1), done: make(chan struct{})}
	controller.OnDocumentStart("a.txt")
	controller.OnDocumentStart("b.txt")
	if len(controller.events) != 1 {
		t.Fatalf("expected one buffered event, got %d", len(controller.events))
	}
	controller.OnRunEnd(runner.Summary{})
	if _, ok := <-controller.events; !ok {
		t.Fatalf("expected buffered event before close")
	}
	if _, ok := <-controller.events; ok {
		t.Fatalf("expected events channel closed after run end")
	}
}

// TestSummaryTable verifies per-test counts and the total row.
func TestSummaryTable(t *testing.T) {
	results := aggregate.New()
	results.AddAll("Tema 1", []question.Question{
		{Text: "a", Answer: question.TextAnswer{Value: "x"}},
		{Text: "b", Answer: question.ChoiceList{Options: []question.Option{{Text: "o", Correct: question.Correct}, {Text: "p"}}}},
	})
	results.AddAll("Tema 2", []question.Question{
		{Text: "c", Answer: question.MatchingList{Pairs: []question.Pair{{Left: "l", Right: "r", Correct: true}}}},
	})
	counts := CountTests(results)
	if len(counts) != 2 || counts[0].Unknown != 2 || counts[1].Matching != 1 {
		t.Fatalf("unexpected counts %+v", counts)
	}
	out := SummaryTable(results, true)
	for _, want := range []string{"Tests: 2", "Tema 1", "Tema 2", "total"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in summary:\n%s", want, out)
		}
	}
}
