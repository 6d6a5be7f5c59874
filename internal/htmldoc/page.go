package htmldoc

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"quizharvest/internal/classify"
	"quizharvest/internal/segment"
)

// ErrNoTestName indicates the page breadcrumb did not name the test.
var ErrNoTestName = errors.New("test name not found in breadcrumb")

// Page is a parsed quiz review page.
type Page struct {
	root *html.Node
}

// Parse reads a review page.
func Parse(r io.Reader) (*Page, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Page{root: root}, nil
}

// Load reads a review page from disk.
func Load(path string) (*Page, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	defer file.Close()
	return Parse(file)
}

// nameLayouts are tried in order; the first non-empty name wins.
var nameLayouts = []func(*html.Node) string{
	// breadcrumb-item list: <li class="breadcrumb-item"><a>Test</a></li>
	func(root *html.Node) string {
		items := findAll(root, withClass("breadcrumb-item"))
		if len(items) == 0 {
			return ""
		}
		return text(findFirst(items[len(items)-1], tagIs(atom.A)))
	},
	// older themes: <ol class="breadcrumb"><li><span><a><span>Test</span></a></span></li></ol>
	func(root *html.Node) string {
		var names []string
		for _, list := range findAll(root, func(n *html.Node) bool {
			value, _ := attr(n, "class")
			return n.DataAtom == atom.Ol && strings.Contains(value, "breadcrumb")
		}) {
			for _, li := range children(list, tagIs(atom.Li)) {
				for _, span := range children(li, tagIs(atom.Span)) {
					for _, a := range children(span, tagIs(atom.A)) {
						for _, inner := range children(a, tagIs(atom.Span)) {
							names = append(names, text(inner))
						}
					}
				}
			}
		}
		if len(names) == 0 {
			return ""
		}
		return names[len(names)-1]
	},
}

// TestName returns the test title from the last breadcrumb entry, without a
// trailing period.
func (p *Page) TestName() (string, error) {
	for _, layout := range nameLayouts {
		if name := strings.TrimRight(strings.TrimSpace(layout(p.root)), "."); name != "" {
			return name, nil
		}
	}
	return "", ErrNoTestName
}

// Questions returns one node per question root (class exactly "content") in
// document order.
func (p *Page) Questions() []segment.Node {
	roots := findAll(p.root, classIs("content"))
	nodes := make([]segment.Node, 0, len(roots))
	for _, root := range roots {
		nodes = append(nodes, QuestionNode{root: root})
	}
	return nodes
}

// QuestionNode is one rendered question.
type QuestionNode struct {
	root *html.Node
}

// scopes returns the question root followed by its container, for layouts
// that render parts of a question beside the content element.
func (q QuestionNode) scopes() []*html.Node {
	scopes := []*html.Node{q.root}
	if q.root.Parent != nil {
		scopes = append(scopes, q.root.Parent)
	}
	return scopes
}

// Title returns the prompt from .qtext, or from its first paragraph in the
// alternate layout.
func (q QuestionNode) Title() (string, error) {
	for _, scope := range q.scopes() {
		qtext := findFirst(scope, withClass("qtext"))
		if title := text(qtext); title != "" {
			return title, nil
		}
		if title := text(findFirst(findFirst(scope, classIs("qtext")), tagIs(atom.P))); title != "" {
			return title, nil
		}
	}
	return "", segment.ErrNoTitle
}

// Feedback returns the .rightanswer text when the page published one.
func (q QuestionNode) Feedback() (string, bool) {
	for _, scope := range q.scopes() {
		if node := findFirst(scope, withClass("rightanswer")); node != nil {
			if value := text(node); value != "" {
				return value, true
			}
		}
	}
	return "", false
}

// Answer locates the answer block and reads it according to its tag.
func (q QuestionNode) Answer() (classify.Block, error) {
	var answer *html.Node
	for _, scope := range q.scopes() {
		if answer = findFirst(scope, withClass("answer")); answer != nil {
			break
		}
		if answer = findFirst(scope, classIs("answer")); answer != nil {
			break
		}
	}
	if answer == nil {
		return classify.Block{}, segment.ErrNoAnswer
	}
	switch answer.DataAtom {
	case atom.Span:
		return textField(answer), nil
	case atom.Div:
		return choiceRows(answer), nil
	case atom.Table:
		return matchingTable(answer)
	default:
		return classify.Block{Shape: classify.Unrecognized}, nil
	}
}

func textField(answer *html.Node) classify.Block {
	field := classify.Field{}
	if input := findFirst(answer, tagIs(atom.Input)); input != nil {
		field.Value, _ = attr(input, "value")
	}
	if icon := findFirst(answer, tagIs(atom.I)); icon != nil {
		switch {
		case hasClass(icon, "fa-check"):
			field.Cue = classify.CueCorrect
		case hasClass(icon, "fa-remove"), hasClass(icon, "fa-times"):
			field.Cue = classify.CueIncorrect
		}
	}
	return classify.Block{Shape: classify.TextField, Field: field}
}

func choiceRows(answer *html.Node) classify.Block {
	block := classify.Block{Shape: classify.ChoiceRows}
	if input := findFirst(answer, tagIs(atom.Input)); input != nil {
		kind, _ := attr(input, "type")
		block.Single = strings.EqualFold(kind, "radio")
	}
	for _, row := range children(answer, tagIs(atom.Div)) {
		choice := classify.ChoiceRow{Cue: rowCue(row)}
		// newer themes wrap the option in a div, older ones in a label
		if inner := findFirst(row, tagIs(atom.Div)); inner != nil {
			choice.Text = text(inner)
		} else if label := findFirst(row, tagIs(atom.Label)); label != nil {
			choice.Text = text(label)
		}
		choice.Missing = choice.Text == ""
		block.Choices = append(block.Choices, choice)
	}
	return block
}

func rowCue(row *html.Node) classify.Cue {
	switch {
	case hasClass(row, "correct"):
		return classify.CueCorrect
	case hasClass(row, "incorrect"):
		return classify.CueIncorrect
	default:
		return classify.NoCue
	}
}

func matchingTable(answer *html.Node) (classify.Block, error) {
	block := classify.Block{Shape: classify.MatchingTable}
	for i, tr := range findAll(answer, tagIs(atom.Tr)) {
		label := findFirst(tr, withClass("text"))
		if label == nil {
			return classify.Block{}, fmt.Errorf("%w: matching row %d has no label", classify.ErrMalformedBlock, i+1)
		}
		row := classify.MatchRow{Left: text(label)}
		for _, option := range findAll(tr, tagIs(atom.Option)) {
			if _, selected := attr(option, "selected"); selected {
				row.Selected = text(option)
				row.HasSelection = true
				break
			}
		}
		if control := findFirst(tr, withClass("control")); control != nil {
			row.Cue = rowCue(control)
		}
		block.Rows = append(block.Rows, row)
	}
	return block, nil
}
