package aggregate

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"quizharvest/internal/question"
)

func textQuestion(prompt, value string) question.Question {
	return question.Question{Text: prompt, Answer: question.TextAnswer{Value: value, Correct: question.Correct}}
}

// TestAddAppendsWithoutDeduplication verifies repeated documents accumulate.
func TestAddAppendsWithoutDeduplication(t *testing.T) {
	q1 := textQuestion("Capital?", "Paris")
	q2 := textQuestion("River?", "Seine")
	results := New()
	for run := 0; run < 2; run++ {
		results.Add("Geo", q1)
		results.Add("Geo", q2)
	}
	got, ok := results.Questions("Geo")
	if !ok {
		t.Fatalf("expected test Geo")
	}
	want := []question.Question{q1, q2, q1, q2}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

// TestMergeKeepsPartialOrder verifies worker partials merge in call order.
func TestMergeKeepsPartialOrder(t *testing.T) {
	first := New()
	first.Add("B", textQuestion("b1", "x"))
	second := New()
	second.Add("A", textQuestion("a1", "y"))
	second.Add("B", textQuestion("b2", "z"))

	merged := New()
	merged.Merge(first)
	merged.Merge(second)
	if names := merged.Names(); !reflect.DeepEqual(names, []string{"B", "A"}) {
		t.Fatalf("unexpected names %v", names)
	}
	questions, _ := merged.Questions("B")
	if len(questions) != 2 || questions[1].Text != "b2" {
		t.Fatalf("unexpected B questions %+v", questions)
	}
}

// TestAddAllCreatesEmptyTest verifies a document without questions still names its test.
func TestAddAllCreatesEmptyTest(t *testing.T) {
	results := New()
	results.AddAll("Empty", nil)
	if results.Len() != 1 {
		t.Fatalf("expected one test, got %d", results.Len())
	}
	data, err := json.Marshal(results)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"Empty":[]}` {
		t.Fatalf("unexpected json %s", data)
	}
}

// TestJoinReplacesOnCollision verifies the shallow key union used for serialized files.
func TestJoinReplacesOnCollision(t *testing.T) {
	older := New()
	older.Add("Geo", textQuestion("old", "x"))
	older.Add("Math", textQuestion("sum", "2"))
	newer := New()
	newer.Add("Geo", textQuestion("new", "y"))

	joined := Join(older, newer)
	if names := joined.Names(); !reflect.DeepEqual(names, []string{"Geo", "Math"}) {
		t.Fatalf("unexpected names %v", names)
	}
	geo, _ := joined.Questions("Geo")
	if len(geo) != 1 || geo[0].Text != "new" {
		t.Fatalf("expected later file to win, got %+v", geo)
	}
}

// TestJSONRoundTripKeepsOrder verifies test names and entries survive serialization in order.
func TestJSONRoundTripKeepsOrder(t *testing.T) {
	results := sampleResults()
	data, err := Encode(results, FormatJSON)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := Decode(data, FormatJSON)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(decoded.Entries(), results.Entries()) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", decoded.Entries(), results.Entries())
	}
	if strings.Index(string(data), "Zoology") > strings.Index(string(data), "Algebra") {
		t.Fatalf("expected insertion order in output:\n%s", data)
	}
	out := string(data)
	if strings.Contains(out, `\u003e`) || strings.Contains(out, `\u2192`) {
		t.Fatalf("expected arrows and markup to stay unescaped:\n%s", data)
	}
	if !strings.Contains(out, "4 > 3") || !strings.Contains(out, "Dog → pet") {
		t.Fatalf("expected literal markup and arrows in output:\n%s", data)
	}
}

// TestYAMLRoundTripKeepsOrder verifies the YAML encoding keeps order too.
func TestYAMLRoundTripKeepsOrder(t *testing.T) {
	results := sampleResults()
	data, err := Encode(results, FormatYAML)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := Decode(data, FormatYAML)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(decoded.Entries(), results.Entries()) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", decoded.Entries(), results.Entries())
	}
}

// TestDecodeRejectsNonObject verifies malformed documents are reported.
func TestDecodeRejectsNonObject(t *testing.T) {
	if _, err := Decode([]byte(`[1,2]`), FormatJSON); err == nil {
		t.Fatalf("expected error for array document")
	}
}

// TestJoinDir verifies files are joined in lexical order with later files winning.
func TestJoinDir(t *testing.T) {
	dir := t.TempDir()
	first := New()
	first.Add("Geo", textQuestion("first", "x"))
	second := New()
	second.Add("Geo", textQuestion("second", "y"))
	second.Add("Bio", textQuestion("cell", "z"))
	if err := WriteFile(filepath.Join(dir, "b.json"), second, FormatJSON); err != nil {
		t.Fatalf("write b: %v", err)
	}
	if err := WriteFile(filepath.Join(dir, "a.json"), first, FormatJSON); err != nil {
		t.Fatalf("write a: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatalf("write notes: %v", err)
	}

	joined, paths, err := JoinDir(dir, nil)
	if err != nil {
		t.Fatalf("join dir: %v", err)
	}
	if len(paths) != 2 || filepath.Base(paths[0]) != "a.json" {
		t.Fatalf("unexpected paths %v", paths)
	}
	geo, _ := joined.Questions("Geo")
	if len(geo) != 1 || geo[0].Text != "second" {
		t.Fatalf("expected b.json to win, got %+v", geo)
	}
	if joined.Len() != 2 {
		t.Fatalf("expected two tests, got %v", joined.Names())
	}
}

// TestLoadFileByExtension verifies the loader picks the encoding from the extension.
func TestLoadFileByExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.yaml")
	if err := WriteFile(path, sampleResults(), FormatYAML); err != nil {
		t.Fatalf("write: %v", err)
	}
	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.QuestionCount() != 3 {
		t.Fatalf("expected 3 questions, got %d", loaded.QuestionCount())
	}
}

func sampleResults() *Results {
	results := New()
	results.Add("Zoology", question.Question{Text: "Match sounds", Answer: question.MatchingList{Pairs: []question.Pair{
		{Left: "Dog → pet", Right: "Woof", Correct: true},
	}}})
	results.Add("Algebra", question.Question{Text: "Pick primes", Answer: question.ChoiceList{Options: []question.Option{
		{Text: "2", Correct: question.Correct},
		{Text: "4 > 3", Correct: question.Unknown},
	}}})
	results.Add("Zoology", textQuestion("Largest mammal", "Blue whale"))
	return results
}
