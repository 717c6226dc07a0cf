package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Column defines a table column.
type Column struct {
	Title string
	Width int
}

// Row is a slice of cell values.
type Row []string

// Table renders a plain lipgloss-styled table for list commands.
type Table struct {
	Columns []Column
	Rows    []Row
}

// NewTable creates a new table.
func NewTable(cols []Column) *Table {
	return &Table{Columns: cols}
}

// AddRow appends a row.
func (t *Table) AddRow(r Row) {
	t.Rows = append(t.Rows, r)
}

// Len reports the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// Render returns the full table as a string. Cells are padded by display
// width before styling so lipgloss never wraps them.
func (t *Table) Render() string {
	var sb strings.Builder

	headerStyle := lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)
	cellStyle := lipgloss.NewStyle().Foreground(ColorValue)

	var headers, divider []string
	for _, col := range t.Columns {
		headers = append(headers, headerStyle.Render(pad(col.Title, col.Width)))
		divider = append(divider, StyleDim.Render(strings.Repeat("-", col.Width)))
	}
	sb.WriteString(strings.Join(headers, " "))
	sb.WriteString("\n")
	sb.WriteString(strings.Join(divider, " "))
	sb.WriteString("\n")

	for _, row := range t.Rows {
		cells := make([]string, 0, len(t.Columns))
		for j, col := range t.Columns {
			val := ""
			if j < len(row) {
				val = row[j]
			}
			cells = append(cells, cellStyle.Render(pad(val, col.Width)))
		}
		sb.WriteString(strings.Join(cells, " "))
		sb.WriteString("\n")
	}

	return sb.String()
}

// KeyValueBlock renders a set of key-value pairs in a bordered box.
func KeyValueBlock(title string, pairs [][2]string) string {
	keyWidth := 0
	for _, p := range pairs {
		if w := lipgloss.Width(p[0]) + 1; w > keyWidth {
			keyWidth = w
		}
	}

	var sb strings.Builder
	if title != "" {
		sb.WriteString(StyleTitle.Render(title))
		sb.WriteString("\n")
	}
	for _, p := range pairs {
		key := StyleMeta.Render(pad(p[0]+":", keyWidth))
		sb.WriteString("  " + key + " " + StyleValue.Render(p[1]) + "\n")
	}
	return StyleBorder.Render(strings.TrimRight(sb.String(), "\n"))
}

// pad left-aligns s within exactly width display cells, truncating with an
// ellipsis when it does not fit.
func pad(s string, width int) string {
	w := lipgloss.Width(s)
	if w == width {
		return s
	}
	if w < width {
		return s + strings.Repeat(" ", width-w)
	}
	if width <= 1 {
		return string([]rune(s)[:width])
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes)) > width-1 {
		runes = runes[:len(runes)-1]
	}
	return pad(string(runes)+"…", width)
}
