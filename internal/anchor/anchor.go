package anchor

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"quizharvest/internal/locale"
)

// Kind identifies which boundary sentence a span matched.
type Kind int

const (
	// Score marks a scoring line such as "Se puntúa 1,00 sobre 1,00".
	Score Kind = iota + 1
	// Single marks the singular correct-answer sentence.
	Single
	// Plural marks the plural correct-answers sentence.
	Plural
)

func (k Kind) String() string {
	switch k {
	case Score:
		return "score"
	case Single:
		return "single"
	case Plural:
		return "plural"
	default:
		return "unknown"
	}
}

// Feedback reports whether the kind is one of the correct-answer sentences.
func (k Kind) Feedback() bool {
	return k == Single || k == Plural
}

// Span is one anchor occurrence. Start and End are byte offsets into the
// scanned text; Statement is the matched sentence without its line break.
type Span struct {
	Kind      Kind
	Start     int
	End       int
	Statement string
}

// Matches groups the spans found in one window by kind, each in text order.
type Matches struct {
	Score  []Span
	Single []Span
	Plural []Span
}

// Empty reports whether no anchor was found.
func (m Matches) Empty() bool {
	return len(m.Score) == 0 && len(m.Single) == 0 && len(m.Plural) == 0
}

// Feedback returns the singular and plural spans merged in text order.
func (m Matches) Feedback() []Span {
	spans := make([]Span, 0, len(m.Single)+len(m.Plural))
	spans = append(spans, m.Single...)
	spans = append(spans, m.Plural...)
	sort.SliceStable(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })
	return spans
}

// Matcher recognizes the boundary sentences of one locale.
type Matcher struct {
	score   *regexp.Regexp
	single  *regexp.Regexp
	plural  *regexp.Regexp
	heading *regexp.Regexp
}

var footerDate = `\d{1,2}/\d{1,2}/\d{2}`

// New compiles a matcher for the given phrases.
func New(phrases locale.Phrases) (*Matcher, error) {
	if err := phrases.Check(); err != nil {
		return nil, fmt.Errorf("anchor phrases: %w", err)
	}
	number := `\d{1,3}[.,]\d{2}`
	score := phrase(phrases.ScorePrefix) + `[ \t]+` + number + `\s+` + phrase(phrases.ScoreSeparator) + `\s+` + number + `[ \t]*\n?`
	single := phrase(phrases.SingleAnswer) + `:?[ \t]+[^\n]*(?:\n|$)`
	plural := phrase(phrases.PluralAnswers) + `:?\s+(?s:.*?)\.(?:\n|$)`

	markers := []string{footerDate}
	for _, marker := range phrases.HeadingMarkers {
		if strings.TrimSpace(marker) == "" {
			continue
		}
		markers = append(markers, regexp.QuoteMeta(strings.TrimSpace(marker)))
	}
	heading := `^[ \t]*(?:` + strings.Join(markers, "|") + `)`

	m := &Matcher{}
	var err error
	if m.score, err = regexp.Compile(score); err != nil {
		return nil, fmt.Errorf("compile score anchor: %w", err)
	}
	if m.single, err = regexp.Compile(single); err != nil {
		return nil, fmt.Errorf("compile single anchor: %w", err)
	}
	if m.plural, err = regexp.Compile(plural); err != nil {
		return nil, fmt.Errorf("compile plural anchor: %w", err)
	}
	if m.heading, err = regexp.Compile(heading); err != nil {
		return nil, fmt.Errorf("compile heading markers: %w", err)
	}
	return m, nil
}

// MustNew is New for built-in phrase profiles known to compile.
func MustNew(phrases locale.Phrases) *Matcher {
	m, err := New(phrases)
	if err != nil {
		panic(err)
	}
	return m
}

// phrase matches a literal sentence case-insensitively, letting any run of
// whitespace stand in for the spaces between its words.
func phrase(text string) string {
	words := strings.Fields(text)
	for i, word := range words {
		words[i] = regexp.QuoteMeta(word)
	}
	return `(?i:` + strings.Join(words, `\s+`) + `)`
}

// Match returns every anchor span found in window.
func (m *Matcher) Match(window string) Matches {
	return Matches{
		Score:  m.find(window, 0, m.score, Score),
		Single: m.find(window, 0, m.single, Single),
		Plural: m.find(window, 0, m.plural, Plural),
	}
}

func (m *Matcher) find(text string, from int, re *regexp.Regexp, kind Kind) []Span {
	if from > len(text) {
		return nil
	}
	locs := re.FindAllStringIndex(text[from:], -1)
	spans := make([]Span, 0, len(locs))
	for _, loc := range locs {
		start, end := from+loc[0], from+loc[1]
		if kind == Single {
			end = m.wrapEnd(text, end)
		}
		spans = append(spans, Span{
			Kind:      kind,
			Start:     start,
			End:       end,
			Statement: strings.TrimRight(text[start:end], "\r\n"),
		})
	}
	return spans
}

func (m *Matcher) first(text string, from int, re *regexp.Regexp, kind Kind) (Span, bool) {
	if from > len(text) {
		return Span{}, false
	}
	loc := re.FindStringIndex(text[from:])
	if loc == nil {
		return Span{}, false
	}
	start, end := from+loc[0], from+loc[1]
	if kind == Single {
		end = m.wrapEnd(text, end)
	}
	return Span{Kind: kind, Start: start, End: end, Statement: strings.TrimRight(text[start:end], "\r\n")}, true
}

// singleTerminators end a correct-answer sentence that the exporter wrapped
// over several lines.
const singleTerminators = ".'VF"

// wrapEnd extends a single-answer sentence ending at end over the lines that
// continue it. The sentence stops at a line ending in a terminator, and never
// takes a blank, heading, score, feedback or prompt line.
func (m *Matcher) wrapEnd(text string, end int) int {
	if end == 0 || end > len(text) || text[end-1] != '\n' {
		return end
	}
	if endsSentence(text[:end]) {
		return end
	}
	for end < len(text) {
		lineEnd := len(text)
		if next := strings.IndexByte(text[end:], '\n'); next >= 0 {
			lineEnd = end + next + 1
		}
		line := strings.TrimRight(text[end:lineEnd], "\r\n")
		if !m.continues(line) {
			return end
		}
		end = lineEnd
		if endsSentence(line) {
			return end
		}
	}
	return end
}

func (m *Matcher) continues(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || m.heading.MatchString(line) {
		return false
	}
	if strings.HasSuffix(trimmed, "?") || strings.HasSuffix(trimmed, ":") || strings.HasSuffix(trimmed, "…") {
		return false
	}
	for _, re := range []*regexp.Regexp{m.score, m.single, m.plural} {
		if loc := re.FindStringIndex(trimmed); loc != nil && loc[0] == 0 {
			return false
		}
	}
	return true
}

func endsSentence(text string) bool {
	trimmed := strings.TrimRight(text, " \t\r\n")
	return trimmed != "" && strings.ContainsAny(trimmed[len(trimmed)-1:], singleTerminators)
}

// NextScore returns the first scoring line at or after from.
func (m *Matcher) NextScore(text string, from int) (Span, bool) {
	return m.first(text, from, m.score, Score)
}

// NextFeedback returns the first correct-answer sentence at or after from,
// whether or not it may open the next question.
func (m *Matcher) NextFeedback(text string, from int) (Span, bool) {
	single, okSingle := m.first(text, from, m.single, Single)
	plural, okPlural := m.first(text, from, m.plural, Plural)
	switch {
	case okSingle && okPlural:
		if plural.Start < single.Start {
			return plural, true
		}
		return single, true
	case okSingle:
		return single, true
	case okPlural:
		return plural, true
	default:
		return Span{}, false
	}
}

// Opens reports whether a feedback span may be read as the opener of the next
// question: it must end in a line break and the following line must not be a
// heading marker or a date-stamped footer.
func (m *Matcher) Opens(text string, span Span) bool {
	if !span.Kind.Feedback() {
		return span.Kind == Score
	}
	if span.End == 0 || span.End > len(text) || text[span.End-1] != '\n' {
		return false
	}
	return !m.heading.MatchString(text[span.End:])
}

// NextOpener returns the first span at or after from that a question prompt
// may follow: a scoring line or an accepted feedback sentence.
func (m *Matcher) NextOpener(text string, from int) (Span, bool) {
	score, okScore := m.NextScore(text, from)
	var feedback Span
	okFeedback := false
	for _, span := range m.feedbackFrom(text, from) {
		if okScore && span.Start > score.Start {
			break
		}
		if m.Opens(text, span) {
			feedback, okFeedback = span, true
			break
		}
	}
	switch {
	case okScore && okFeedback:
		if feedback.Start < score.Start {
			return feedback, true
		}
		return score, true
	case okScore:
		return score, true
	case okFeedback:
		return feedback, true
	default:
		return Span{}, false
	}
}

func (m *Matcher) feedbackFrom(text string, from int) []Span {
	spans := append(m.find(text, from, m.single, Single), m.find(text, from, m.plural, Plural)...)
	sort.SliceStable(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })
	return spans
}

// HeadingLine returns the offset of the first line in block that starts with
// a heading marker or footer date, or -1.
func (m *Matcher) HeadingLine(block string) int {
	offset := 0
	for offset <= len(block) {
		if m.heading.MatchString(block[offset:]) {
			return offset
		}
		next := strings.IndexByte(block[offset:], '\n')
		if next < 0 {
			return -1
		}
		offset += next + 1
	}
	return -1
}
