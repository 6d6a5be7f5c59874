package reportserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"quizharvest/internal/aggregate"
	"quizharvest/internal/question"
	"quizharvest/internal/testutil"
)

func sampleResults() *aggregate.Results {
	results := aggregate.New()
	results.AddAll("Tema 1", []question.Question{
		{Text: "Capital de Francia", Answer: question.TextAnswer{Value: "París", Correct: question.Correct}},
		{Text: "Río de Madrid", Answer: question.ChoiceList{Single: true, Options: []question.Option{
			{Text: "Manzanares", Correct: question.Correct},
			{Text: "Ebro", Correct: question.Incorrect},
		}}},
	})
	results.AddAll("Tema 2", nil)
	return results
}

// TestHandlerServesStudySheet ensures the root path returns the rendered report.
func TestHandlerServesStudySheet(t *testing.T) {
	server := testutil.StartServer(t, NewHandler(sampleResults(), "Geografía"))
	status, body := testutil.HTTPGet(t, server.BaseURL+"/")
	if status != http.StatusOK {
		t.Fatalf("expected status 200, got %d", status)
	}
	if !strings.Contains(string(body), "<h1>Geografía</h1>") || !strings.Contains(string(body), "Manzanares") {
		t.Fatalf("unexpected report body: %s", body)
	}
}

// TestHandlerListsTests verifies the listing keeps insertion order and counts.
func TestHandlerListsTests(t *testing.T) {
	server := testutil.StartServer(t, NewHandler(sampleResults(), ""))
	var listing []TestSummary
	testutil.HTTPGetJSON(t, server.BaseURL+"/api/tests", &listing)
	want := []TestSummary{{Name: "Tema 1", Questions: 2}, {Name: "Tema 2", Questions: 0}}
	if len(listing) != len(want) || listing[0] != want[0] || listing[1] != want[1] {
		t.Fatalf("expected %+v, got %+v", want, listing)
	}
}

// TestHandlerGetsOneTest verifies a test is returned by its escaped name.
func TestHandlerGetsOneTest(t *testing.T) {
	server := testutil.StartServer(t, NewHandler(sampleResults(), ""))
	var detail TestDetail
	testutil.HTTPGetJSON(t, server.BaseURL+"/api/tests/Tema%201", &detail)
	if detail.Name != "Tema 1" || len(detail.Questions) != 2 {
		t.Fatalf("unexpected detail %+v", detail)
	}
	list, ok := detail.Questions[1].Answer.(question.ChoiceList)
	if !ok || !list.Single || list.Options[1].Correct != question.Incorrect {
		t.Fatalf("unexpected decoded answer %#v", detail.Questions[1].Answer)
	}

	status, _ := testutil.HTTPGet(t, server.BaseURL+"/api/tests/Tema%203")
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown test, got %d", status)
	}
}

// TestServeStopsOnCancel verifies the server shuts down when its context ends.
func TestServeStopsOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	if err := aggregate.WriteFile(path, sampleResults(), aggregate.FormatJSON); err != nil {
		t.Fatalf("write results: %v", err)
	}
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("reserve port: %v", err)
	}
	addr := listener.Addr().String()
	_ = listener.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, Config{Addr: addr, ResultsPath: path}) }()

	testutil.Eventually(t, 2*time.Second, 20*time.Millisecond, func() bool {
		conn, err := net.Dial("tcp", addr)
		if err != nil {
			return false
		}
		_ = conn.Close()
		return true
	}, "the server to accept connections")
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("serve did not stop after cancel")
	}
}

// TestServeRequiresResults verifies configuration errors are reported.
func TestServeRequiresResults(t *testing.T) {
	err := Serve(context.Background(), Config{Addr: "127.0.0.1:0"})
	if err == nil || !strings.Contains(err.Error(), "results path") {
		t.Fatalf("expected results path error, got %v", err)
	}
	if err := Serve(context.Background(), Config{Addr: "127.0.0.1:0", ResultsPath: filepath.Join(t.TempDir(), "missing.json")}); err == nil || errors.Is(err, context.Canceled) {
		t.Fatalf("expected load error, got %v", err)
	}
}
