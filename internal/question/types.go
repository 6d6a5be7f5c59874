package question

// Kind identifies which answer shape a question was rendered with.
type Kind string

const (
	KindText     Kind = "text"
	KindChoice   Kind = "choice"
	KindMatching Kind = "matching"
)

// Valid reports whether the kind is one of the known shapes.
func (k Kind) Valid() bool {
	switch k {
	case KindText, KindChoice, KindMatching:
		return true
	default:
		return false
	}
}

// Answer is the typed answer record of a question. It is implemented only by
// TextAnswer, ChoiceList and MatchingList.
type Answer interface {
	Kind() Kind
	sealed()
}

// TextAnswer is a single free-text response.
type TextAnswer struct {
	Value   string
	Correct Correctness
}

// Option is one selectable row of a choice list.
type Option struct {
	Text    string      `json:"text" yaml:"text"`
	Correct Correctness `json:"correct" yaml:"correct"`
}

// ChoiceList holds radio or checkbox options in rendering order.
type ChoiceList struct {
	Single  bool
	Options []Option
}

// Pair is one row of a matching question.
type Pair struct {
	Left    string `json:"left" yaml:"left"`
	Right   string `json:"right" yaml:"right"`
	Correct bool   `json:"correct" yaml:"correct"`
}

// MatchingList holds matching rows in rendering order.
type MatchingList struct {
	Pairs []Pair
}

func (TextAnswer) Kind() Kind   { return KindText }
func (ChoiceList) Kind() Kind   { return KindChoice }
func (MatchingList) Kind() Kind { return KindMatching }

func (TextAnswer) sealed()   {}
func (ChoiceList) sealed()   {}
func (MatchingList) sealed() {}

// Question is one extracted question with its typed answer.
type Question struct {
	Text   string
	Answer Answer
}

// CorrectCount returns how many options resolved to correct.
func (c ChoiceList) CorrectCount() int {
	count := 0
	for _, option := range c.Options {
		if option.Correct == Correct {
			count++
		}
	}
	return count
}
