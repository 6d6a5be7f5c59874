package extract

import (
	"fmt"
	"sort"

	"quizharvest/internal/anchor"
	"quizharvest/internal/classify"
	"quizharvest/internal/locale"
	"quizharvest/internal/question"
	"quizharvest/internal/segment"
	"quizharvest/internal/statement"
)

// Stage names the pipeline step a question failed in.
type Stage string

const (
	StageSegment  Stage = "segment"
	StageClassify Stage = "classify"
)

// Failure is a problem scoped to one question of one document.
type Failure struct {
	Document string
	Index    int
	Stage    Stage
	Err      error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: question %d: %s: %v", f.Document, f.Index, f.Stage, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Report is the outcome of extracting one document. Questions holds every
// question that survived, in document order.
type Report struct {
	Document  string
	TestName  string
	Questions []question.Question
	Failures  []*Failure
}

// Extractor runs segmentation, statement parsing and classification for one
// locale. It holds no per-document state and may be shared by workers.
type Extractor struct {
	segmenter  *segment.Segmenter
	parser     *statement.Parser
	classifier *classify.Classifier
}

// New builds the matcher, parser and classifier for phrases once.
func New(phrases locale.Phrases) (*Extractor, error) {
	matcher, err := anchor.New(phrases)
	if err != nil {
		return nil, err
	}
	parser, err := statement.NewParser(phrases)
	if err != nil {
		return nil, err
	}
	classifier, err := classify.New(phrases, parser)
	if err != nil {
		return nil, err
	}
	return &Extractor{
		segmenter:  segment.New(matcher),
		parser:     parser,
		classifier: classifier,
	}, nil
}

// Text extracts questions from flattened document text.
func (e *Extractor) Text(document, testName, text string) Report {
	units, failures := e.segmenter.Text(text)
	return e.build(document, testName, units, failures)
}

// Nodes extracts questions from live question nodes.
func (e *Extractor) Nodes(document, testName string, nodes []segment.Node) Report {
	units, failures := e.segmenter.Nodes(nodes)
	return e.build(document, testName, units, failures)
}

func (e *Extractor) build(document, testName string, units []segment.Unit, segmentFailures []*segment.Error) Report {
	report := Report{Document: document, TestName: testName, Questions: []question.Question{}}
	for _, failure := range segmentFailures {
		report.Failures = append(report.Failures, &Failure{Document: document, Index: failure.Index, Stage: StageSegment, Err: failure.Err})
	}
	for _, unit := range units {
		q, err := e.classify(unit)
		if err != nil {
			report.Failures = append(report.Failures, &Failure{Document: document, Index: unit.Index, Stage: StageClassify, Err: err})
			continue
		}
		report.Questions = append(report.Questions, q)
	}
	sortFailures(report.Failures)
	return report
}

func (e *Extractor) classify(unit segment.Unit) (question.Question, error) {
	st := e.parser.Parse(unit.Feedback)
	var (
		answer question.Answer
		err    error
	)
	if unit.Block != nil {
		answer, err = e.classifier.Classify(*unit.Block, st)
	} else {
		answer, err = e.classifier.ClassifyText(unit.Raw, st)
	}
	if err != nil {
		return question.Question{}, err
	}
	q := question.Question{Text: unit.Prompt, Answer: answer}
	if err := question.Validate(q); err != nil {
		return question.Question{}, err
	}
	return q, nil
}

func sortFailures(failures []*Failure) {
	sort.SliceStable(failures, func(i, j int) bool { return failures[i].Index < failures[j].Index })
}
