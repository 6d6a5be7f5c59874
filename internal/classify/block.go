package classify

import "errors"

var (
	// ErrMalformedBlock indicates an answer block matched no known shape.
	ErrMalformedBlock = errors.New("malformed answer block")
	// ErrUnresolvedRow indicates a matching row had no right-hand value in any source.
	ErrUnresolvedRow = errors.New("unresolved matching row")
)

// Shape is the structural kind of a raw answer block, derived once from the
// source and used to pick exactly one classifier.
type Shape int

const (
	// Unrecognized blocks fail classification.
	Unrecognized Shape = iota
	// TextField is a single free-text input.
	TextField
	// ChoiceRows is a list of radio or checkbox rows.
	ChoiceRows
	// MatchingTable is a table of left labels with a selected right value.
	MatchingTable
)

func (s Shape) String() string {
	switch s {
	case TextField:
		return "text"
	case ChoiceRows:
		return "choice"
	case MatchingTable:
		return "matching"
	default:
		return "unrecognized"
	}
}

// Cue is a rendering hint about correctness attached to a field or row, such
// as a check icon or a "correct" class.
type Cue int

const (
	NoCue Cue = iota
	CueCorrect
	CueIncorrect
)

// Field is the value typed into a free-text input.
type Field struct {
	Value string
	Cue   Cue
}

// ChoiceRow is one selectable option. Missing marks a row whose text could not
// be located in the source.
type ChoiceRow struct {
	Text    string
	Cue     Cue
	Missing bool
}

// MatchRow is one row of a matching table. HasSelection is false when no
// right-hand value was selected or exported.
type MatchRow struct {
	Left         string
	Selected     string
	HasSelection bool
	Cue          Cue
}

// Block is the adapter-neutral form of a raw answer block. Only the fields of
// its Shape are meaningful.
type Block struct {
	Shape   Shape
	Field   Field
	Single  bool
	Choices []ChoiceRow
	Rows    []MatchRow
}
