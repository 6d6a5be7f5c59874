package classify

import (
	"strings"

	"quizharvest/internal/question"
	"quizharvest/internal/statement"
)

// exportedOption is one option line recovered from exported text.
type exportedOption struct {
	text string
	cue  Cue
}

// ClassifyText classifies a raw answer block taken from exported text, where
// the line shape stands in for the missing structure.
func (c *Classifier) ClassifyText(raw string, st statement.Statement) (question.Answer, error) {
	block, err := c.TextBlock(raw, st)
	if err != nil {
		return nil, err
	}
	return c.Classify(block, st)
}

// TextBlock rebuilds a structured block from exported answer text.
func (c *Classifier) TextBlock(raw string, st statement.Statement) (Block, error) {
	body := strings.TrimSpace(strings.ReplaceAll(raw, "\r\n", "\n"))
	single, hinted, body := c.stripHint(body)
	options := c.splitOptions(body)
	if len(options) == 0 {
		return Block{}, ErrMalformedBlock
	}

	if allContain(options, c.parser.HasArrow) {
		rows := make([]MatchRow, 0, len(options))
		for _, option := range options {
			pair, err := c.parser.SplitPair(option.text)
			if err != nil {
				return Block{}, ErrMalformedBlock
			}
			rows = append(rows, MatchRow{Left: pair.Left, Selected: pair.Right, HasSelection: pair.Right != "", Cue: option.cue})
		}
		return Block{Shape: MatchingTable, Rows: rows}, nil
	}
	if c.parser.AllPairs(st) {
		rows := make([]MatchRow, 0, len(options))
		for _, option := range options {
			rows = append(rows, MatchRow{Left: option.text, Cue: option.cue})
		}
		return Block{Shape: MatchingTable, Rows: rows}, nil
	}
	if len(options) > 1 || letterPrefix.MatchString(options[0].text) || hinted {
		if !hinted {
			single = st.Form == statement.Single
		}
		choices := make([]ChoiceRow, 0, len(options))
		for _, option := range options {
			choices = append(choices, ChoiceRow{Text: option.text, Cue: option.cue})
		}
		return Block{Shape: ChoiceRows, Single: single, Choices: choices}, nil
	}
	return Block{Shape: TextField, Field: Field{Value: options[0].text, Cue: options[0].cue}}, nil
}

// stripHint removes a leading select instruction and reports whether it asked
// for a single answer.
func (c *Classifier) stripHint(body string) (single bool, hinted bool, rest string) {
	hints := []struct {
		text   string
		single bool
	}{
		{c.phrases.MultiSelectHint, false},
		{c.phrases.SingleSelectHint, true},
	}
	for _, hint := range hints {
		if hint.text == "" {
			continue
		}
		if len(body) >= len(hint.text) && strings.EqualFold(body[:len(hint.text)], hint.text) {
			return hint.single, true, strings.TrimSpace(body[len(hint.text):])
		}
	}
	return false, false, body
}

func (c *Classifier) splitOptions(body string) []exportedOption {
	var options []exportedOption
	add := func(chunk string, cue Cue) {
		parts := splitLettered(chunk)
		for i, part := range parts {
			text := strings.Join(strings.Fields(part), " ")
			if text == "" {
				continue
			}
			option := exportedOption{text: text}
			if i == len(parts)-1 {
				option.cue = cue
			}
			options = append(options, option)
		}
	}
	body += "\n"
	start := 0
	for _, loc := range c.split.FindAllStringSubmatchIndex(body, -1) {
		cue := NoCue
		if len(loc) >= 4 && loc[2] >= 0 {
			cue = c.glyphCue(body[loc[2]:loc[3]])
		}
		add(body[start:loc[0]], cue)
		start = loc[1]
	}
	add(body[start:], NoCue)
	return options
}

// splitLettered breaks a chunk whose lines each open with their own letter
// ("a. ", "b. ") when the options were exported without closing periods.
func splitLettered(chunk string) []string {
	lines := strings.Split(chunk, "\n")
	var parts []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if len(parts) > 0 && letterPrefix.MatchString(trimmed) && letterPrefix.MatchString(strings.TrimSpace(parts[0])) {
			parts = append(parts, line)
			continue
		}
		if len(parts) == 0 {
			parts = append(parts, line)
			continue
		}
		parts[len(parts)-1] += "\n" + line
	}
	return parts
}

func (c *Classifier) glyphCue(glyph string) Cue {
	for _, candidate := range c.phrases.CorrectGlyphs {
		if glyph == candidate {
			return CueCorrect
		}
	}
	for _, candidate := range c.phrases.IncorrectGlyphs {
		if glyph == candidate {
			return CueIncorrect
		}
	}
	return NoCue
}

func allContain(options []exportedOption, test func(string) bool) bool {
	for _, option := range options {
		if !test(option.text) {
			return false
		}
	}
	return len(options) > 0
}
