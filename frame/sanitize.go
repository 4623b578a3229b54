package frame

// Sanitize removes fully blank rows and then rows whose first cell is empty.
// Row order is preserved and f is not modified.
func Sanitize(f *Frame) *Frame {
	return DropMissingKeys(DropBlankRows(f))
}

// DropBlankRows returns a copy of f without rows in which every cell is empty.
func DropBlankRows(f *Frame) *Frame {
	return filterRows(f, func(row []string) bool {
		return !AllEmpty(row)
	})
}

// DropMissingKeys returns a copy of f without rows whose first-column value is
// empty, regardless of the other cells.
func DropMissingKeys(f *Frame) *Frame {
	return filterRows(f, func(row []string) bool {
		return len(row) > 0 && !IsEmpty(row[0])
	})
}

func filterRows(f *Frame, keep func(row []string) bool) *Frame {
	out := &Frame{
		Name:    f.Name,
		Columns: copyColumns(f.Columns),
		Rows:    make([][]string, 0, len(f.Rows)),
	}
	for _, row := range f.Rows {
		if keep(row) {
			out.Rows = append(out.Rows, append([]string(nil), row...))
		}
	}
	return out
}
