package frame

import (
	"fmt"
	"strings"
)

// RawTable is a table as detected on a single page, before any header
// processing. Rows[0] is the candidate header.
type RawTable struct {
	Page  int // 1-indexed page number
	Index int // 0-indexed position of the table on its page
	Rows  [][]string
}

// Header returns the first row, or nil if the table has no rows.
func (t RawTable) Header() []string {
	if len(t.Rows) == 0 {
		return nil
	}
	return t.Rows[0]
}

// Body returns all rows after the header.
func (t RawTable) Body() [][]string {
	if len(t.Rows) < 2 {
		return nil
	}
	return t.Rows[1:]
}

// Frame is a table with named columns. Every row holds exactly one value per
// column.
type Frame struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// New creates a frame with the given columns. Rows shorter than the column
// list are padded with empty strings; longer rows are truncated. The input
// slices are copied.
func New(columns []string, rows [][]string) *Frame {
	f := &Frame{
		Columns: copyColumns(columns),
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, row := range rows {
		f.Rows = append(f.Rows, fitRow(row, len(columns)))
	}
	return f
}

// copyColumns returns a copy of columns that is never nil.
func copyColumns(columns []string) []string {
	out := make([]string, len(columns))
	copy(out, columns)
	return out
}

// fitRow returns a copy of row with exactly width cells.
func fitRow(row []string, width int) []string {
	out := make([]string, width)
	copy(out, row)
	return out
}

// RowCount returns the number of data rows
func (f *Frame) RowCount() int {
	return len(f.Rows)
}

// ColumnIndex returns the index of the first column with the given name, or
// -1 if there is none.
func (f *Frame) ColumnIndex(name string) int {
	for i, c := range f.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	c := New(f.Columns, f.Rows)
	c.Name = f.Name
	return c
}

// Append adds the rows of other to f. Both frames must have the same columns
// in the same order; use AlignTo first when they may differ.
func (f *Frame) Append(other *Frame) error {
	if !sameColumns(f.Columns, other.Columns) {
		return fmt.Errorf("cannot append frame with columns %q to frame with columns %q", other.Columns, f.Columns)
	}
	for _, row := range other.Rows {
		f.Rows = append(f.Rows, fitRow(row, len(f.Columns)))
	}
	return nil
}

// AlignTo returns a copy of f re-expressed under ref's columns.
func (f *Frame) AlignTo(ref *Frame) *Frame {
	return Align(f, ref.Columns)
}

// Records returns the header followed by all data rows, suitable for writing
// to a spreadsheet.
func (f *Frame) Records() [][]string {
	records := make([][]string, 0, len(f.Rows)+1)
	records = append(records, append([]string(nil), f.Columns...))
	for _, row := range f.Rows {
		records = append(records, append([]string(nil), row...))
	}
	return records
}

// ToMarkdown converts the frame to a markdown table
func (f *Frame) ToMarkdown() string {
	if len(f.Columns) == 0 {
		return ""
	}

	var sb strings.Builder

	writeRow := func(cells []string) {
		for _, cell := range cells {
			sb.WriteString("| ")
			sb.WriteString(escapeMarkdownCell(cell))
			sb.WriteString(" ")
		}
		sb.WriteString("|\n")
	}

	writeRow(f.Columns)
	for range f.Columns {
		sb.WriteString("|---")
	}
	sb.WriteString("|\n")
	for _, row := range f.Rows {
		writeRow(row)
	}

	return sb.String()
}

// escapeMarkdownCell flattens line breaks and escapes pipes so a cell stays on
// one markdown table row.
func escapeMarkdownCell(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}

func sameColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
