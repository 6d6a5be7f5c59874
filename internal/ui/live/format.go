package live

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"quizharvest/internal/runner"
)

// fmtInt converts an int to string.
func fmtInt(value int) string {
	return strconv.Itoa(value)
}

// truncate shortens text to limit runes for display.
func truncate(text string, limit int) string {
	normalized := strings.Join(strings.Fields(text), " ")
	runes := []rune(normalized)
	if len(runes) <= limit {
		return normalized
	}
	return string(runes[:limit-3]) + "..."
}

// statusLabel maps status codes to display labels.
func statusLabel(status runner.DocumentStatus) string {
	if status == "" {
		return string(runner.DocumentQueued)
	}
	return string(status)
}

// formatCount hides counts of documents that have not finished.
func formatCount(value int, status runner.DocumentStatus) string {
	if status != runner.DocumentDone {
		return ""
	}
	return fmtInt(value)
}

// formatRowDuration returns elapsed or total time for a row.
func formatRowDuration(row DocumentRow, now time.Time) string {
	if !row.FinishedAt.IsZero() && !row.StartedAt.IsZero() {
		return formatDuration(row.FinishedAt.Sub(row.StartedAt))
	}
	if !row.StartedAt.IsZero() {
		return formatDuration(now.Sub(row.StartedAt))
	}
	return ""
}

// formatDuration renders a rounded duration for display.
func formatDuration(duration time.Duration) string {
	if duration <= 0 {
		return "0s"
	}
	return duration.Round(100 * time.Millisecond).String()
}

// stylizeStatus applies status coloring when enabled.
func stylizeStatus(text string, status runner.DocumentStatus, noColor bool) string {
	if noColor {
		return text
	}
	return statusStyle(status).Render(text)
}

// statusStyle selects a style for a given status.
func statusStyle(status runner.DocumentStatus) lipgloss.Style {
	color := lipgloss.Color("246")
	switch status {
	case runner.DocumentDone:
		color = lipgloss.Color("42")
	case runner.DocumentFailed:
		color = lipgloss.Color("196")
	case runner.DocumentRunning:
		color = lipgloss.Color("33")
	}
	return lipgloss.NewStyle().Foreground(color)
}
