// Package tui provides terminal output components for gittyup.
// This file contains the plain-text table writer used for repository and
// result listings.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// TableColumn defines a column in a table.
type TableColumn struct {
	Name  string
	Width int
}

// Table provides styled fixed-width table rendering. Cell contents wider
// than the column are truncated with an ellipsis; width accounting is
// display-cell based so East Asian characters align correctly.
type Table struct {
	w       io.Writer
	styles  *OutputStyles
	columns []TableColumn
}

// NewTable creates a new table with the given columns.
func NewTable(w io.Writer, columns []TableColumn) *Table {
	return &Table{
		w:       w,
		styles:  NewOutputStyles(),
		columns: columns,
	}
}

// WriteHeader writes the table header row.
func (t *Table) WriteHeader() {
	cells := make([]string, len(t.columns))
	for i, col := range t.columns {
		cells[i] = pad(col.Name, col.Width)
	}
	_, _ = fmt.Fprintln(t.w, t.styles.Bold.Render(strings.Join(cells, "  ")))
}

// WriteRow writes a data row. Missing values render as empty cells.
func (t *Table) WriteRow(values ...string) {
	cells := make([]string, len(t.columns))
	for i, col := range t.columns {
		value := ""
		if i < len(values) {
			value = values[i]
		}
		cells[i] = pad(Truncate(value, col.Width), col.Width)
	}
	_, _ = fmt.Fprintln(t.w, strings.Join(cells, "  "))
}

// Truncate shortens s to at most width display cells, appending an ellipsis
// when anything was cut. Widths below 2 return the bare cut.
func Truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width < 2 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "…")
}

// pad right-pads s with spaces to the given display width.
func pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}
