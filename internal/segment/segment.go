package segment

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"quizharvest/internal/anchor"
	"quizharvest/internal/classify"
	"quizharvest/internal/question"
)

var (
	// ErrNoPrompt indicates no prompt terminator was found before the answers.
	ErrNoPrompt = errors.New("no question prompt found")
	// ErrNoAnswers indicates the prompt was not followed by any answer text.
	ErrNoAnswers = errors.New("no answer block after prompt")
	// ErrNoFeedback indicates trailing text opened a question that nothing closes.
	ErrNoFeedback = errors.New("question is not closed by a feedback sentence")
	// ErrNoTitle indicates a question node had no title in any known layout.
	ErrNoTitle = errors.New("question title not found")
	// ErrNoAnswer indicates a question node had no answer block in any known layout.
	ErrNoAnswer = errors.New("answer block not found")
)

// Unit is one segmented question. Text documents carry Raw, node documents
// carry Block. Feedback is empty when none was published.
type Unit struct {
	Index    int
	Prompt   string
	Raw      string
	Block    *classify.Block
	Feedback string
}

// Error is a segmentation failure scoped to one question position.
type Error struct {
	Index int
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("question %d: %v", e.Index, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Node is one rendered question root supplied by a live document adapter.
type Node interface {
	// Title returns the prompt text.
	Title() (string, error)
	// Answer returns the structural answer block.
	Answer() (classify.Block, error)
	// Feedback returns the published correct-answer sentence, if any.
	Feedback() (string, bool)
}

// promptEnd is a prompt terminator followed by a line break.
var promptEnd = regexp.MustCompile(`[…:?][ \t]*\n`)

// Segmenter splits documents into question units.
type Segmenter struct {
	matcher *anchor.Matcher
}

// New returns a segmenter scanning with the given matcher.
func New(matcher *anchor.Matcher) *Segmenter {
	return &Segmenter{matcher: matcher}
}

// Text segments flattened document text. The scan cursor only moves forward;
// a failure skips that one question.
func (s *Segmenter) Text(text string) ([]Unit, []*Error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var units []Unit
	var failures []*Error
	pos := 0
	index := 0
	for {
		opener, ok := s.matcher.NextOpener(text, pos)
		if !ok {
			break
		}
		feedback, okFeedback := s.matcher.NextFeedback(text, opener.End)
		score, okScore := s.matcher.NextScore(text, opener.End)
		if !okFeedback && !okScore {
			if _, _, err := splitPrompt(text[opener.End:]); err == nil {
				failures = append(failures, &Error{Index: index + 1, Err: ErrNoFeedback})
			}
			break
		}
		index++
		unit := Unit{Index: index}
		var block string
		if okScore && (!okFeedback || score.Start < feedback.Start) {
			block = text[opener.End:score.Start]
			pos = score.Start
		} else {
			block = text[opener.End:feedback.Start]
			unit.Feedback = feedback.Statement
			pos = feedback.Start
		}
		prompt, answers, err := splitPrompt(block)
		if err != nil {
			failures = append(failures, &Error{Index: index, Err: err})
			continue
		}
		if unit.Feedback == "" {
			if cut := s.matcher.HeadingLine(answers); cut >= 0 {
				answers = answers[:cut]
			}
			if strings.TrimSpace(answers) == "" {
				failures = append(failures, &Error{Index: index, Err: ErrNoAnswers})
				continue
			}
		}
		unit.Prompt = prompt
		unit.Raw = answers
		units = append(units, unit)
	}
	return units, failures
}

// splitPrompt separates the prompt from the answer text at the first
// terminator that ends a line and closes a non-empty run.
func splitPrompt(block string) (string, string, error) {
	offset := 0
	for offset < len(block) {
		loc := promptEnd.FindStringIndex(block[offset:])
		if loc == nil {
			break
		}
		end := offset + loc[1]
		prompt := question.CleanPrompt(block[:end])
		if strings.Trim(prompt, "…:? \t\n") == "" {
			offset = end
			continue
		}
		answers := block[end:]
		if strings.TrimSpace(answers) == "" {
			return "", "", ErrNoAnswers
		}
		return prompt, answers, nil
	}
	return "", "", ErrNoPrompt
}

// Nodes segments a live document whose question roots are already separate.
func (s *Segmenter) Nodes(nodes []Node) ([]Unit, []*Error) {
	var units []Unit
	var failures []*Error
	for i, node := range nodes {
		index := i + 1
		title, err := node.Title()
		if err != nil {
			failures = append(failures, &Error{Index: index, Err: err})
			continue
		}
		prompt := question.CleanPrompt(title)
		if prompt == "" {
			failures = append(failures, &Error{Index: index, Err: ErrNoTitle})
			continue
		}
		block, err := node.Answer()
		if err != nil {
			failures = append(failures, &Error{Index: index, Err: err})
			continue
		}
		unit := Unit{Index: index, Prompt: prompt, Block: &block}
		if feedback, ok := node.Feedback(); ok {
			unit.Feedback = feedback
		}
		units = append(units, unit)
	}
	return units, failures
}
