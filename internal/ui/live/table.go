package live

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	styles := table.DefaultStyles()
	if noColor {
		styles.Header = lipgloss.NewStyle().Padding(0, 1)
		styles.Cell = lipgloss.NewStyle().Padding(0, 1)
		styles.Selected = lipgloss.NewStyle()
		return styles
	}
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	styles.Selected = lipgloss.NewStyle()
	return styles
}

// defaultColumns returns the document table columns for an 80 column terminal.
func defaultColumns() []table.Column {
	return columnsForWidth(80)
}

// columnsForWidth sizes the document column to the terminal width.
func columnsForWidth(width int) []table.Column {
	const fixed = 4 + 10 + 22 + 9 + 8 + 8 + 12
	docWidth := max(width-fixed, 16)
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Document", Width: docWidth},
		{Title: "Status", Width: 10},
		{Title: "Test", Width: 22},
		{Title: "Questions", Width: 9},
		{Title: "Skipped", Width: 8},
		{Title: "Time", Width: 8},
	}
}

// rowsForState converts UI state into table rows.
func rowsForState(state State, now time.Time, noColor bool) []table.Row {
	rows := make([]table.Row, 0, len(state.Rows))
	for _, row := range state.Rows {
		rows = append(rows, table.Row{
			fmtInt(row.Index + 1),
			truncate(row.Path, 60),
			stylizeStatus(statusLabel(row.Status), row.Status, noColor),
			truncate(row.TestName, 22),
			formatCount(row.Questions, row.Status),
			formatCount(row.Skipped, row.Status),
			formatRowDuration(row, now),
		})
	}
	return rows
}
