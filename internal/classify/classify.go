package classify

import (
	"fmt"
	"regexp"
	"strings"

	"quizharvest/internal/locale"
	"quizharvest/internal/question"
	"quizharvest/internal/statement"
)

var letterPrefix = regexp.MustCompile(`^[a-z]\.\s+`)

// Classifier builds typed answers from raw blocks and parsed statements.
type Classifier struct {
	phrases locale.Phrases
	parser  *statement.Parser
	split   *regexp.Regexp
}

// New builds a classifier sharing the statement parser of the same locale.
func New(phrases locale.Phrases, parser *statement.Parser) (*Classifier, error) {
	if parser == nil {
		return nil, fmt.Errorf("classifier requires a statement parser")
	}
	split, err := regexp.Compile(optionBreak(phrases))
	if err != nil {
		return nil, fmt.Errorf("compile option break: %w", err)
	}
	return &Classifier{phrases: phrases, parser: parser, split: split}, nil
}

// optionBreak matches the end of one exported option: a period and a line
// break, or a cue glyph (optionally after the period) and a line break.
func optionBreak(phrases locale.Phrases) string {
	var glyphs []string
	for _, glyph := range append(append([]string(nil), phrases.CorrectGlyphs...), phrases.IncorrectGlyphs...) {
		if glyph != "" {
			glyphs = append(glyphs, regexp.QuoteMeta(glyph))
		}
	}
	if len(glyphs) == 0 {
		return `\.[ \t]*\n`
	}
	return `\.?(` + strings.Join(glyphs, "|") + `)[ \t]*\n|\.[ \t]*\n`
}

// Classify dispatches on the block shape and resolves per-option correctness.
func (c *Classifier) Classify(block Block, st statement.Statement) (question.Answer, error) {
	switch block.Shape {
	case TextField:
		return c.text(block.Field, st), nil
	case ChoiceRows:
		return c.choice(block, st)
	case MatchingTable:
		return c.matching(block.Rows, st)
	default:
		return nil, ErrMalformedBlock
	}
}

func (c *Classifier) text(field Field, st statement.Statement) question.TextAnswer {
	answer := question.TextAnswer{Value: strings.TrimSpace(field.Value)}
	switch {
	case !st.Empty():
		answer.Correct = question.FromBool(st.ContainsFold(answer.Value))
	case field.Cue == CueCorrect:
		answer.Correct = question.Correct
	}
	return answer
}

func (c *Classifier) choice(block Block, st statement.Statement) (question.ChoiceList, error) {
	if len(block.Choices) == 0 {
		return question.ChoiceList{}, fmt.Errorf("%w: choice list has no rows", ErrMalformedBlock)
	}
	list := question.ChoiceList{Single: block.Single, Options: make([]question.Option, 0, len(block.Choices))}
	for i, row := range block.Choices {
		if row.Missing {
			return question.ChoiceList{}, fmt.Errorf("%w: choice row %d has no text", ErrMalformedBlock, i+1)
		}
		text := CleanOption(row.Text)
		option := question.Option{Text: text}
		switch {
		case !st.Empty():
			option.Correct = question.FromBool(st.Contains(text))
		case row.Cue == CueCorrect:
			option.Correct = question.Correct
		case row.Cue == CueIncorrect:
			option.Correct = question.Incorrect
		}
		list.Options = append(list.Options, option)
	}
	CloseWorld(&list)
	return list, nil
}

// CloseWorld resolves every unknown option of a single-select list to
// incorrect once exactly one option is known to be correct. Lists with no or
// several correct options are left as they are.
func CloseWorld(list *question.ChoiceList) {
	if !list.Single || list.CorrectCount() != 1 {
		return
	}
	for i := range list.Options {
		if !list.Options[i].Correct.Known() {
			list.Options[i].Correct = question.Incorrect
		}
	}
}

// CleanOption removes a lettered prefix ("a. ") and one trailing period.
func CleanOption(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	text = letterPrefix.ReplaceAllString(text, "")
	return strings.TrimSpace(strings.TrimSuffix(text, "."))
}

func (c *Classifier) matching(rows []MatchRow, st statement.Statement) (question.MatchingList, error) {
	if len(rows) == 0 {
		return question.MatchingList{}, fmt.Errorf("%w: matching table has no rows", ErrMalformedBlock)
	}
	var expected map[string]string
	if c.parser.AllPairs(st) {
		pairs, err := c.parser.Pairs(st)
		if err != nil {
			return question.MatchingList{}, fmt.Errorf("%w: %v", ErrMalformedBlock, err)
		}
		expected = make(map[string]string, len(pairs))
		for _, pair := range pairs {
			expected[labelKey(pair.Left)] = pair.Right
		}
	}
	list := question.MatchingList{Pairs: make([]question.Pair, 0, len(rows))}
	for i, row := range rows {
		left := strings.Join(strings.Fields(row.Left), " ")
		if expected != nil {
			right, ok := lookup(expected, left)
			if !ok {
				return question.MatchingList{}, fmt.Errorf("%w: row %d %q has no published answer", ErrUnresolvedRow, i+1, left)
			}
			list.Pairs = append(list.Pairs, question.Pair{Left: left, Right: right, Correct: true})
			continue
		}
		if !row.HasSelection {
			return question.MatchingList{}, fmt.Errorf("%w: row %d %q has no selected value", ErrUnresolvedRow, i+1, left)
		}
		list.Pairs = append(list.Pairs, question.Pair{
			Left:    left,
			Right:   strings.TrimSpace(row.Selected),
			Correct: row.Cue == CueCorrect,
		})
	}
	return list, nil
}

func labelKey(label string) string {
	return strings.Join(strings.Fields(label), " ")
}

func lookup(expected map[string]string, left string) (string, bool) {
	if right, ok := expected[labelKey(left)]; ok {
		return right, true
	}
	for key, right := range expected {
		if question.EqualFold(key, left) {
			return right, true
		}
	}
	return "", false
}
