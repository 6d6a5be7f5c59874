package statement

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"quizharvest/internal/locale"
	"quizharvest/internal/question"
)

// ErrNoArrow indicates a matching fragment did not contain the arrow delimiter.
var ErrNoArrow = errors.New("fragment has no matching arrow")

// Form records which sentence template a statement was parsed from.
type Form int

const (
	// None means no template matched: no correctness was published.
	None Form = iota
	// Single is the "the correct answer is" template.
	Single
	// Plural is the "the correct answers are" template.
	Plural
)

func (f Form) String() string {
	switch f {
	case Single:
		return "single"
	case Plural:
		return "plural"
	default:
		return "none"
	}
}

// Statement is the ordered list of correct answers published in one feedback
// sentence. The zero value is the empty statement.
type Statement struct {
	Form   Form
	Values []string
}

// Empty reports whether the statement carries no values.
func (s Statement) Empty() bool {
	return len(s.Values) == 0
}

// Contains reports exact membership of value.
func (s Statement) Contains(value string) bool {
	for _, candidate := range s.Values {
		if candidate == value {
			return true
		}
	}
	return false
}

// ContainsFold reports membership of value under case folding.
func (s Statement) ContainsFold(value string) bool {
	for _, candidate := range s.Values {
		if question.EqualFold(candidate, value) {
			return true
		}
	}
	return false
}

// Pair is one left/right fragment of a matching statement.
type Pair struct {
	Left  string
	Right string
}

// Parser turns feedback sentences into statements.
type Parser struct {
	single    *regexp.Regexp
	plural    *regexp.Regexp
	separator string
	arrow     string
}

// NewParser builds a parser for the given phrases.
func NewParser(phrases locale.Phrases) (*Parser, error) {
	if err := phrases.Check(); err != nil {
		return nil, fmt.Errorf("statement phrases: %w", err)
	}
	single, err := regexp.Compile(`^\s*` + template(phrases.SingleAnswer) + `:?(?:\s+|$)`)
	if err != nil {
		return nil, fmt.Errorf("compile single template: %w", err)
	}
	plural, err := regexp.Compile(`^\s*` + template(phrases.PluralAnswers) + `:?(?:\s+|$)`)
	if err != nil {
		return nil, fmt.Errorf("compile plural template: %w", err)
	}
	return &Parser{
		single:    single,
		plural:    plural,
		separator: phrases.PluralSeparator,
		arrow:     phrases.MatchingArrow,
	}, nil
}

// MustNewParser is NewParser for built-in phrase profiles known to compile.
func MustNewParser(phrases locale.Phrases) *Parser {
	p, err := NewParser(phrases)
	if err != nil {
		panic(err)
	}
	return p
}

func template(text string) string {
	words := strings.Fields(text)
	for i, word := range words {
		words[i] = regexp.QuoteMeta(word)
	}
	return `(?i:` + strings.Join(words, `\s+`) + `)`
}

// Parse reads a feedback sentence. Text matching neither template yields the
// empty statement.
func (p *Parser) Parse(feedback string) Statement {
	text := strings.ReplaceAll(feedback, "\r", "")
	if loc := p.plural.FindStringIndex(text); loc != nil {
		return Statement{Form: Plural, Values: p.splitPlural(joinLines(text[loc[1]:]))}
	}
	if loc := p.single.FindStringIndex(text); loc != nil {
		value := cleanFragment(joinLines(text[loc[1]:]))
		if value == "" {
			return Statement{}
		}
		return Statement{Form: Single, Values: []string{value}}
	}
	return Statement{}
}

func (p *Parser) splitPlural(rest string) []string {
	rest = strings.Trim(strings.TrimSpace(rest), quotes)
	rest = strings.TrimSuffix(rest, ".")
	fragments := strings.Split(rest, p.separator)
	values := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		if value := cleanFragment(fragment); value != "" {
			values = append(values, value)
		}
	}
	return values
}

const quotes = `'"‘’“”`

// cleanFragment strips enclosing quotes and one trailing period.
func cleanFragment(fragment string) string {
	value := strings.Trim(strings.TrimSpace(fragment), quotes)
	value = strings.TrimSuffix(value, ".")
	return strings.TrimSpace(strings.Trim(value, quotes))
}

func joinLines(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// SplitPair splits one matching fragment at the arrow delimiter.
func (p *Parser) SplitPair(fragment string) (Pair, error) {
	left, right, ok := strings.Cut(fragment, p.arrow)
	if !ok {
		trimmed := strings.TrimSpace(p.arrow)
		if trimmed == "" {
			return Pair{}, fmt.Errorf("%w: %q", ErrNoArrow, fragment)
		}
		left, right, ok = strings.Cut(fragment, trimmed)
		if !ok {
			return Pair{}, fmt.Errorf("%w: %q", ErrNoArrow, fragment)
		}
	}
	return Pair{Left: strings.TrimSpace(left), Right: cleanFragment(right)}, nil
}

// HasArrow reports whether a fragment carries the matching delimiter.
func (p *Parser) HasArrow(fragment string) bool {
	return strings.Contains(fragment, strings.TrimSpace(p.arrow))
}

// Pairs splits every value of a matching statement. Matching feedback is often
// published as one sentence listing several rows, "A → 1, B → 2", so a value
// is further split at ", " wherever the next piece carries its own arrow.
func (p *Parser) Pairs(st Statement) ([]Pair, error) {
	var pairs []Pair
	for _, value := range st.Values {
		for _, fragment := range p.rowFragments(value) {
			pair, err := p.SplitPair(fragment)
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, pair)
		}
	}
	return pairs, nil
}

func (p *Parser) rowFragments(value string) []string {
	pieces := strings.Split(value, ", ")
	fragments := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		if len(fragments) > 0 && !p.HasArrow(piece) {
			fragments[len(fragments)-1] += ", " + piece
			continue
		}
		fragments = append(fragments, piece)
	}
	return fragments
}

// AllPairs reports whether every value of st is a matching fragment.
func (p *Parser) AllPairs(st Statement) bool {
	if st.Empty() {
		return false
	}
	for _, value := range st.Values {
		if !p.HasArrow(value) {
			return false
		}
	}
	return true
}
