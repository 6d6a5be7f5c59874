package report

import (
	"context"
	"strings"
	"testing"

	"quizharvest/internal/aggregate"
	"quizharvest/internal/question"
)

// TestRenderHTMLMarksCorrectness verifies every shape renders with its marks.
func TestRenderHTMLMarksCorrectness(t *testing.T) {
	results := aggregate.New()
	results.AddAll("Tema <1>", []question.Question{
		{Text: "Capital de Francia", Answer: question.TextAnswer{Value: "París", Correct: question.Correct}},
		{Text: "Ciudades costeras", Answer: question.ChoiceList{Options: []question.Option{
			{Text: "Cádiz", Correct: question.Correct},
			{Text: "Toledo", Correct: question.Incorrect},
			{Text: "Vigo", Correct: question.Unknown},
		}}},
		{Text: "Capitales", Answer: question.MatchingList{Pairs: []question.Pair{
			{Left: "Italia", Right: "Roma", Correct: true},
		}}},
	})
	html, err := RenderHTML(context.Background(), "Estudio", results)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		"<title>Estudio</title>",
		"Tema &lt;1&gt;",
		`href="#test-1"`,
		"<strong>Capital de Francia</strong>",
		`title="unknown">?</span> Vigo`,
		`title="incorrect">&#10007;</span> Toledo`,
		"<td>Italia</td><td>&rarr; Roma</td>",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}
	if strings.Contains(html, "Tema <1>") {
		t.Fatalf("expected test names to be escaped")
	}
}

// TestRenderHTMLEmpty verifies an empty result set still renders a page.
func TestRenderHTMLEmpty(t *testing.T) {
	html, err := RenderHTML(context.Background(), "Vacío", aggregate.New())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "No questions.") || !strings.HasSuffix(html, "</html>\n") {
		t.Fatalf("unexpected empty page %q", html)
	}
}
