package cucumber

import (
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	"quizharvest/internal/aggregate"
	"quizharvest/internal/question"
)

// theOutputListsCommands asserts the output contains expected command names.
func (s *featureState) theOutputListsCommands(table *godog.Table) error {
	output := s.stdout.String()
	for _, row := range table.Rows {
		for _, cell := range row.Cells {
			command := strings.TrimSpace(cell.Value)
			if command == "" {
				continue
			}
			if !strings.Contains(output, command) {
				return fmt.Errorf("expected command %q in output", command)
			}
		}
	}
	return nil
}

func (s *featureState) theExitCodeIs(code int) error {
	if s.exitCode != code {
		return fmt.Errorf("expected exit code %d, got %d (stderr %q)", code, s.exitCode, s.stderr.String())
	}
	return nil
}

// theExitCodeIsNonZero asserts that the CLI returned an error code.
func (s *featureState) theExitCodeIsNonZero() error {
	if s.exitCode == 0 {
		return fmt.Errorf("expected non-zero exit code")
	}
	return nil
}

func (s *featureState) theOutputContains(text string) error {
	if !strings.Contains(s.stdout.String(), text) {
		return fmt.Errorf("expected %q in output, got %q", text, s.stdout.String())
	}
	return nil
}

func (s *featureState) theErrorOutputContains(text string) error {
	if !strings.Contains(s.stderr.String(), text) {
		return fmt.Errorf("expected %q in error output, got %q", text, s.stderr.String())
	}
	return nil
}

// theErrorMessagePointsToInvalidField checks the error output for hints.
func (s *featureState) theErrorMessagePointsToInvalidField() error {
	errOutput := s.stderr.String()
	if !strings.Contains(errOutput, "version") {
		return fmt.Errorf("expected error to mention version, got %q", errOutput)
	}
	return nil
}

func (s *featureState) resultsHaveQuestions(path string, count int, test string) error {
	questions, err := s.questions(path, test)
	if err != nil {
		return err
	}
	if len(questions) != count {
		return fmt.Errorf("expected %d questions under %q, got %d", count, test, len(questions))
	}
	return nil
}

func (s *featureState) questionHasKind(index int, test, path, kind string) error {
	q, err := s.question(path, test, index)
	if err != nil {
		return err
	}
	if got := q.Answer.Kind(); string(got) != kind {
		return fmt.Errorf("expected question %d to be %s, got %s", index, kind, got)
	}
	return nil
}

// questionMarks checks the correctness of one option or text answer.
func (s *featureState) questionMarks(index int, test, path, text, mark string) error {
	q, err := s.question(path, test, index)
	if err != nil {
		return err
	}
	var got question.Correctness
	found := false
	switch answer := q.Answer.(type) {
	case question.TextAnswer:
		got, found = answer.Correct, answer.Value == text
	case question.ChoiceList:
		for _, option := range answer.Options {
			if option.Text == text {
				got, found = option.Correct, true
				break
			}
		}
	case question.MatchingList:
		for _, pair := range answer.Pairs {
			if pair.Left == text {
				got, found = question.FromBool(pair.Correct), true
				break
			}
		}
	}
	if !found {
		return fmt.Errorf("question %d has no answer %q", index, text)
	}
	want := map[string]question.Correctness{
		"correct":   question.Correct,
		"incorrect": question.Incorrect,
		"unknown":   question.Unknown,
	}[mark]
	if got != want {
		return fmt.Errorf("expected %q to be %s, got %s", text, mark, got)
	}
	return nil
}

func (s *featureState) questions(path, test string) ([]question.Question, error) {
	results, err := aggregate.LoadFile(path)
	if err != nil {
		return nil, err
	}
	questions, ok := results.Questions(test)
	if !ok {
		return nil, fmt.Errorf("no test %q in %s (have %v)", test, path, results.Names())
	}
	return questions, nil
}

func (s *featureState) question(path, test string, index int) (question.Question, error) {
	questions, err := s.questions(path, test)
	if err != nil {
		return question.Question{}, err
	}
	if index < 1 || index > len(questions) {
		return question.Question{}, fmt.Errorf("question %d out of range (%d questions)", index, len(questions))
	}
	return questions[index-1], nil
}
