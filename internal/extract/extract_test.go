package extract

import (
	"errors"
	"reflect"
	"testing"

	"quizharvest/internal/classify"
	"quizharvest/internal/locale"
	"quizharvest/internal/question"
	"quizharvest/internal/segment"
)

const review = "Pregunta 1\n" +
	"Se puntúa 1,00 sobre 1,00\n" +
	"Capital de Francia:\n" +
	"PARÍS\n" +
	"La respuesta correcta es: París\n" +
	"¿Qué río pasa por Madrid?\n" +
	"a. Manzanares.\n" +
	"b. Ebro.\n" +
	"La respuesta correcta es: Manzanares\n" +
	"Pregunta 3\n" +
	"Se puntúa 0,00 sobre 1,00\n" +
	"Escriba un color primario:\n" +
	"Verde\n" +
	"Pregunta 4\n" +
	"Se puntúa 1,00 sobre 1,00\n" +
	"¿Qué ciudades son capitales?\n" +
	"a. Madrid.\n" +
	"b. Roma.\n" +
	"c. Oporto.\n" +
	"Las respuestas correctas son: Madrid., Roma.\n" +
	"12/05/23 10:14 Cuestionario\n"

func newExtractor(t *testing.T, phrases locale.Phrases) *Extractor {
	t.Helper()
	extractor, err := New(phrases)
	if err != nil {
		t.Fatalf("new extractor: %v", err)
	}
	return extractor
}

// TestTextEndToEnd verifies a flattened review resolves every answer kind.
func TestTextEndToEnd(t *testing.T) {
	report := newExtractor(t, locale.ES()).Text("review.pdf", "Geografía", review)
	if len(report.Failures) != 0 {
		t.Fatalf("unexpected failures: %v", report.Failures)
	}
	want := []question.Question{
		{Text: "Capital de Francia", Answer: question.TextAnswer{Value: "PARÍS", Correct: question.Correct}},
		{Text: "¿Qué río pasa por Madrid?", Answer: question.ChoiceList{Single: true, Options: []question.Option{
			{Text: "Manzanares", Correct: question.Correct},
			{Text: "Ebro", Correct: question.Incorrect},
		}}},
		{Text: "Escriba un color primario", Answer: question.TextAnswer{Value: "Verde"}},
		{Text: "¿Qué ciudades son capitales?", Answer: question.ChoiceList{Options: []question.Option{
			{Text: "Madrid", Correct: question.Correct},
			{Text: "Roma", Correct: question.Correct},
			{Text: "Oporto", Correct: question.Incorrect},
		}}},
	}
	if !reflect.DeepEqual(report.Questions, want) {
		t.Fatalf("unexpected questions:\n got %+v\nwant %+v", report.Questions, want)
	}
	if report.TestName != "Geografía" || report.Document != "review.pdf" {
		t.Fatalf("unexpected report identity %+v", report)
	}
}

type node struct {
	title    string
	block    classify.Block
	feedback string
}

func (n node) Title() (string, error)          { return n.title, nil }
func (n node) Answer() (classify.Block, error) { return n.block, nil }
func (n node) Feedback() (string, bool)        { return n.feedback, n.feedback != "" }

// TestNodesRecordsClassificationFailures verifies a broken question is dropped
// and reported while its neighbours survive.
func TestNodesRecordsClassificationFailures(t *testing.T) {
	nodes := []segment.Node{
		node{
			title:    "Match the capital:",
			block:    classify.Block{Shape: classify.MatchingTable, Rows: []classify.MatchRow{{Left: "Capital of France"}}},
			feedback: "The correct answer is: Capital of France → Paris",
		},
		node{
			title: "Match again",
			block: classify.Block{Shape: classify.MatchingTable, Rows: []classify.MatchRow{{Left: "Capital of Spain"}}},
		},
		node{
			title: "Pick one",
			block: classify.Block{Shape: classify.ChoiceRows, Single: true, Choices: []classify.ChoiceRow{
				{Text: "a. Yes", Cue: classify.CueCorrect}, {Text: "b. No"},
			}},
		},
	}
	report := newExtractor(t, locale.EN()).Nodes("page.html", "Capitals", nodes)
	if len(report.Questions) != 2 {
		t.Fatalf("expected two questions, got %+v", report.Questions)
	}
	matching := report.Questions[0].Answer.(question.MatchingList)
	if !reflect.DeepEqual(matching.Pairs, []question.Pair{{Left: "Capital of France", Right: "Paris", Correct: true}}) {
		t.Fatalf("unexpected pairs %+v", matching.Pairs)
	}
	choice := report.Questions[1].Answer.(question.ChoiceList)
	if choice.Options[1].Correct != question.Incorrect {
		t.Fatalf("expected closed-world correction, got %+v", choice.Options)
	}
	if len(report.Failures) != 1 {
		t.Fatalf("expected one failure, got %v", report.Failures)
	}
	failure := report.Failures[0]
	if failure.Index != 2 || failure.Stage != StageClassify || !errors.Is(failure, classify.ErrUnresolvedRow) {
		t.Fatalf("unexpected failure %+v", failure)
	}
}

// TestTextSegmentFailuresAreScoped verifies segmentation failures carry the document and stage.
func TestTextSegmentFailuresAreScoped(t *testing.T) {
	text := "Se puntúa 1,00 sobre 1,00\nsin enunciado\nLa respuesta correcta es: x\n"
	report := newExtractor(t, locale.ES()).Text("broken.txt", "Roto", text)
	if len(report.Questions) != 0 {
		t.Fatalf("expected no questions, got %+v", report.Questions)
	}
	if len(report.Failures) != 1 || report.Failures[0].Stage != StageSegment || !errors.Is(report.Failures[0], segment.ErrNoPrompt) {
		t.Fatalf("unexpected failures %v", report.Failures)
	}
	if report.Failures[0].Document != "broken.txt" {
		t.Fatalf("expected document on failure, got %+v", report.Failures[0])
	}
}

// TestTextWrappedSingleFeedback verifies a correct answer wrapped over two
// lines still marks its option and stays out of the next prompt.
func TestTextWrappedSingleFeedback(t *testing.T) {
	text := "Pregunta 1\n" +
		"Se puntúa 1,00 sobre 1,00\n" +
		"¿Qué frase es correcta?\n" +
		"a. Una respuesta muy larga que el exportador partió en dos líneas.\n" +
		"b. Otra respuesta.\n" +
		"La respuesta correcta es: Una respuesta muy larga que el exportador\n" +
		"partió en dos líneas.\n" +
		"¿Capital de Italia?\n" +
		"Roma\n" +
		"La respuesta correcta es: Roma\n"
	report := newExtractor(t, locale.ES()).Text("wrapped.pdf", "Tema", text)
	if len(report.Failures) != 0 {
		t.Fatalf("unexpected failures: %v", report.Failures)
	}
	if len(report.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %+v", report.Questions)
	}
	choice, ok := report.Questions[0].Answer.(question.ChoiceList)
	if !ok || len(choice.Options) != 2 {
		t.Fatalf("unexpected first answer %+v", report.Questions[0].Answer)
	}
	if choice.Options[0].Correct != question.Correct || choice.Options[1].Correct != question.Incorrect {
		t.Fatalf("unexpected correctness %+v", choice.Options)
	}
	second := report.Questions[1]
	if second.Text != "¿Capital de Italia?" {
		t.Fatalf("wrapped tail leaked into the next prompt: %q", second.Text)
	}
	if second.Answer != (question.TextAnswer{Value: "Roma", Correct: question.Correct}) {
		t.Fatalf("unexpected second answer %+v", second.Answer)
	}
}
