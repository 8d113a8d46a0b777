// File: pkg/formatter/table.go
package formatter

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Table renders key/value listings such as `config list`
type Table struct {
	Headers []string
	Rows    [][]string
}

// Creates a new table with the given headers
func NewTable(headers []string) *Table {
	return &Table{
		Headers: headers,
		Rows:    [][]string{},
	}
}

// Adds a row, padding or truncating it to the header width
func (t *Table) AddRow(row []string) {
	cells := make([]string, len(t.Headers))
	copy(cells, row)
	t.Rows = append(t.Rows, cells)
}

// Returns the string representation of the table
func (t *Table) String() string {
	if len(t.Headers) == 0 {
		return ""
	}

	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(t.Headers...).
		Rows(t.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		}).
		String()
}

// Formats a simple section title
func FormatSectionTitle(title string) string {
	return "-- " + title + " --"
}
