package locale

import (
	"fmt"
	"sort"
	"strings"
)

// Phrases holds the literal sentence forms a quiz review page is rendered with.
type Phrases struct {
	ScorePrefix      string   `yaml:"score_prefix"`
	ScoreSeparator   string   `yaml:"score_separator"`
	SingleAnswer     string   `yaml:"single_answer"`
	PluralAnswers    string   `yaml:"plural_answers"`
	HeadingMarkers   []string `yaml:"heading_markers"`
	SingleSelectHint string   `yaml:"single_select_hint"`
	MultiSelectHint  string   `yaml:"multi_select_hint"`
	MatchingArrow    string   `yaml:"matching_arrow"`
	PluralSeparator  string   `yaml:"plural_separator"`
	CorrectGlyphs    []string `yaml:"correct_glyphs"`
	IncorrectGlyphs  []string `yaml:"incorrect_glyphs"`
}

// Profile names accepted by Lookup.
const (
	Spanish = "es"
	English = "en"
)

// Default is the profile used when none is configured.
const Default = Spanish

// Glyphs left behind by the icon font when a review page is exported to PDF.
const (
	GlyphCheck = "\uf00c"
	GlyphTimes = "\uf00d"
)

// ES returns the phrases of the Spanish platform UI.
func ES() Phrases {
	return Phrases{
		ScorePrefix:      "Se puntúa",
		ScoreSeparator:   "sobre",
		SingleAnswer:     "La respuesta correcta es",
		PluralAnswers:    "Las respuestas correctas son",
		HeadingMarkers:   []string{"Pregunta", "Actividad"},
		SingleSelectHint: "Seleccione una:",
		MultiSelectHint:  "Seleccione una o más de una:",
		MatchingArrow:    " → ",
		PluralSeparator:  "., ",
		CorrectGlyphs:    []string{GlyphCheck},
		IncorrectGlyphs:  []string{GlyphTimes},
	}
}

// EN returns the phrases of the English platform UI.
func EN() Phrases {
	return Phrases{
		ScorePrefix:      "Mark",
		ScoreSeparator:   "out of",
		SingleAnswer:     "The correct answer is",
		PluralAnswers:    "The correct answers are",
		HeadingMarkers:   []string{"Question", "Activity"},
		SingleSelectHint: "Select one:",
		MultiSelectHint:  "Select one or more:",
		MatchingArrow:    " → ",
		PluralSeparator:  "., ",
		CorrectGlyphs:    []string{GlyphCheck},
		IncorrectGlyphs:  []string{GlyphTimes},
	}
}

var profiles = map[string]func() Phrases{
	Spanish: ES,
	English: EN,
}

// Lookup returns a fresh copy of the named profile.
func Lookup(name string) (Phrases, bool) {
	build, ok := profiles[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Phrases{}, false
	}
	return build(), true
}

// Names lists the built-in profile names in sorted order.
func Names() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Override returns base with every non-empty field of patch applied.
func Override(base, patch Phrases) Phrases {
	out := base
	setString(&out.ScorePrefix, patch.ScorePrefix)
	setString(&out.ScoreSeparator, patch.ScoreSeparator)
	setString(&out.SingleAnswer, patch.SingleAnswer)
	setString(&out.PluralAnswers, patch.PluralAnswers)
	setString(&out.SingleSelectHint, patch.SingleSelectHint)
	setString(&out.MultiSelectHint, patch.MultiSelectHint)
	setString(&out.MatchingArrow, patch.MatchingArrow)
	setString(&out.PluralSeparator, patch.PluralSeparator)
	if patch.HeadingMarkers != nil {
		out.HeadingMarkers = append([]string(nil), patch.HeadingMarkers...)
	}
	if patch.CorrectGlyphs != nil {
		out.CorrectGlyphs = append([]string(nil), patch.CorrectGlyphs...)
	}
	if patch.IncorrectGlyphs != nil {
		out.IncorrectGlyphs = append([]string(nil), patch.IncorrectGlyphs...)
	}
	return out
}

func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

// Check reports the first missing phrase required by the matcher and parsers.
func (p Phrases) Check() error {
	required := []struct {
		field string
		value string
	}{
		{"score_prefix", p.ScorePrefix},
		{"score_separator", p.ScoreSeparator},
		{"single_answer", p.SingleAnswer},
		{"plural_answers", p.PluralAnswers},
		{"matching_arrow", p.MatchingArrow},
		{"plural_separator", p.PluralSeparator},
	}
	for _, item := range required {
		if strings.TrimSpace(item.value) == "" {
			return fmt.Errorf("phrase %s is required", item.field)
		}
	}
	return nil
}
