// ABOUTME: Shared lipgloss styles for consistent terminal output
// ABOUTME: Defines colors, text styles and the erasure-code table layout

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	// Colors - Core palette
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Danger    = lipgloss.Color("#EF4444") // Red
	Muted     = lipgloss.Color("#6B7280") // Gray
	Text      = lipgloss.Color("#F9FAFB") // Light
	Surface   = lipgloss.Color("#374151") // Elevated surface background

	// Base styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Label = lipgloss.NewStyle().
		Foreground(Muted)

	// Value style for emphasized data
	ValueStyle = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true)

	// Status indicators
	StatusOK = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	StatusCritical = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	// Panels
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(0, 1)

	headerCell   = lipgloss.NewStyle().Foreground(Primary).Bold(true).Padding(0, 1)
	cell         = lipgloss.NewStyle().Padding(0, 1)
	selectedCell = lipgloss.NewStyle().Foreground(Secondary).Bold(true).Padding(0, 1)
)

// Table renders rows under headers. The row at index highlight (if any) is
// drawn in the success color; pass -1 for none.
func Table(headers []string, rows [][]string, highlight int) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(Muted)).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerCell
			case row == highlight:
				return selectedCell
			default:
				return cell
			}
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}

// KeyValue renders an aligned "label: value" line.
func KeyValue(label, value string, width int) string {
	return Label.Width(width).Render(label+":") + " " + ValueStyle.Render(value)
}
