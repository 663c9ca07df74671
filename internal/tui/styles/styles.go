// Package styles provides the lipgloss styles used by command output.
package styles

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Color palette using ANSI colors for broad terminal compatibility.
var (
	Primary   = lipgloss.Color("4")   // Blue
	Secondary = lipgloss.Color("245") // Light gray
	Success   = lipgloss.Color("2")   // Green
	Warning   = lipgloss.Color("3")   // Yellow
	Error     = lipgloss.Color("1")   // Red
)

// Text styles.
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Label = lipgloss.NewStyle().
		Foreground(lipgloss.Color("7"))

	MutedText = lipgloss.NewStyle().
			Foreground(Secondary)

	SuccessText = lipgloss.NewStyle().
			Foreground(Success)

	WarningText = lipgloss.NewStyle().
			Foreground(Warning)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Table cell styles.
var (
	HeaderCell = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	Cell = lipgloss.NewStyle().
		Padding(0, 1)

	NumberCell = Cell.
			Align(lipgloss.Right)

	TableBorder = lipgloss.NewStyle().
			Foreground(Secondary)
)

// Indicators.
const (
	CheckMark = "✓"
	CrossMark = "✗"
)

// NewTable returns a rounded-border table with a styled header row. Columns
// listed in numeric are right-aligned.
func NewTable(headers []string, numeric ...int) *table.Table {
	right := make(map[int]bool, len(numeric))
	for _, c := range numeric {
		right[c] = true
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(TableBorder).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return HeaderCell
			case right[col]:
				return NumberCell
			default:
				return Cell
			}
		})
}

// Count renders n, highlighted with style when it is non-zero.
func Count(n int, style lipgloss.Style) string {
	if n == 0 {
		return MutedText.Render("0")
	}
	return style.Render(strconv.Itoa(n))
}
