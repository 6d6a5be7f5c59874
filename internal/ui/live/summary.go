package live

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"quizharvest/internal/aggregate"
	"quizharvest/internal/question"
)

// TestCounts tallies the questions of one test by answer kind.
type TestCounts struct {
	Name     string
	Total    int
	Text     int
	Choice   int
	Matching int
	// Unknown counts text answers and options whose correctness is unknown.
	Unknown int
}

// CountTests tallies every test of results in order.
func CountTests(results *aggregate.Results) []TestCounts {
	entries := results.Entries()
	out := make([]TestCounts, 0, len(entries))
	for _, entry := range entries {
		counts := TestCounts{Name: entry.Name, Total: len(entry.Questions)}
		for _, q := range entry.Questions {
			switch answer := q.Answer.(type) {
			case question.TextAnswer:
				counts.Text++
				if !answer.Correct.Known() {
					counts.Unknown++
				}
			case question.ChoiceList:
				counts.Choice++
				for _, option := range answer.Options {
					if !option.Correct.Known() {
						counts.Unknown++
					}
				}
			case question.MatchingList:
				counts.Matching++
			}
		}
		out = append(out, counts)
	}
	return out
}

// SummaryTable renders per-test counts as a static table.
func SummaryTable(results *aggregate.Results, noColor bool) string {
	counts := CountTests(results)
	nameWidth := 12
	for _, c := range counts {
		nameWidth = max(nameWidth, len([]rune(c.Name)))
	}
	nameWidth = min(nameWidth, 48)
	rows := make([]table.Row, 0, len(counts)+1)
	var total TestCounts
	for _, c := range counts {
		rows = append(rows, countsRow(truncate(c.Name, nameWidth), c))
		total.Total += c.Total
		total.Text += c.Text
		total.Choice += c.Choice
		total.Matching += c.Matching
		total.Unknown += c.Unknown
	}
	rows = append(rows, countsRow("total", total))
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Test", Width: nameWidth},
			{Title: "Questions", Width: 9},
			{Title: "Text", Width: 5},
			{Title: "Choice", Width: 6},
			{Title: "Matching", Width: 8},
			{Title: "Unknown", Width: 7},
		}),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+3),
	)
	t.SetStyles(tableStyles(noColor))
	title := stylize("Tests: "+fmtInt(len(counts)), noColor, lipgloss.Color("33"))
	return lipgloss.JoinVertical(lipgloss.Left, title, t.View()) + "\n"
}

func countsRow(name string, c TestCounts) table.Row {
	return table.Row{name, fmtInt(c.Total), fmtInt(c.Text), fmtInt(c.Choice), fmtInt(c.Matching), fmtInt(c.Unknown)}
}
