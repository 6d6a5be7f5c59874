package question

import (
	"errors"
	"testing"
)

// TestNormalizeAnswerText verifies case folding and accent composition.
func TestNormalizeAnswerText(t *testing.T) {
	if !EqualFold("PARIS", "Paris") {
		t.Fatalf("expected PARIS to equal Paris")
	}
	if !EqualFold("Cami\u00f3n", "CAMIO\u0301N") {
		t.Fatalf("expected decomposed accent to fold equal")
	}
	if EqualFold("Paris", "Parise") {
		t.Fatalf("expected different answers to differ")
	}
}

// TestCleanPrompt verifies wrapped prompts are joined and trailing colons removed.
func TestCleanPrompt(t *testing.T) {
	got := CleanPrompt("  Complete the\nsentence::\n")
	if got != "Complete the sentence" {
		t.Fatalf("unexpected prompt %q", got)
	}
}

// TestValidateFlagsOpenSingleSelect verifies the single-select invariant is checked.
func TestValidateFlagsOpenSingleSelect(t *testing.T) {
	q := Question{Text: "Pick", Answer: ChoiceList{Single: true, Options: []Option{
		{Text: "A", Correct: Unknown},
		{Text: "B", Correct: Correct},
	}}}
	err := Validate(q)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(validationErr.Issues) != 1 || validationErr.Issues[0].Field != "answer[0].correct" {
		t.Fatalf("unexpected issues: %+v", validationErr.Issues)
	}
}

// TestValidateMatchingRequiresRight verifies matching rows need a right-hand value.
func TestValidateMatchingRequiresRight(t *testing.T) {
	q := Question{Text: "Match", Answer: MatchingList{Pairs: []Pair{{Left: "A", Right: " "}}}}
	if err := Validate(q); err == nil {
		t.Fatalf("expected validation error")
	}
}

// TestValidateAcceptsWellFormedQuestion verifies a clean record passes.
func TestValidateAcceptsWellFormedQuestion(t *testing.T) {
	q := Question{Text: "Capital?", Answer: TextAnswer{Value: "Paris", Correct: Correct}}
	if err := Validate(q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
