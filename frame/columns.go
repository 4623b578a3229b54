package frame

import "strconv"

// UniqueColumns returns a copy of names in which every name is unique. The
// first occurrence of a name is kept; each later occurrence is suffixed with
// "_<n>", where n counts the earlier duplicates of that name. If a suffixed
// name is already taken, n keeps increasing until it is free.
func UniqueColumns(names []string) []string {
	out := make([]string, len(names))
	counts := make(map[string]int, len(names))
	taken := make(map[string]bool, len(names))

	for i, name := range names {
		n, seen := counts[name]
		if !seen && !taken[name] {
			counts[name] = 0
			taken[name] = true
			out[i] = name
			continue
		}

		var candidate string
		for {
			n++
			candidate = name + "_" + strconv.Itoa(n)
			if !taken[candidate] {
				break
			}
		}
		counts[name] = n
		taken[candidate] = true
		out[i] = candidate
	}

	return out
}

// Align returns a new frame with exactly the given columns, in that order.
// Values of columns present in f are copied, columns missing from f are
// filled with empty strings, and columns of f not listed are dropped. The
// columns of f should already be unique; otherwise the first match wins.
func Align(f *Frame, columns []string) *Frame {
	source := make([]int, len(columns))
	for i, col := range columns {
		source[i] = f.ColumnIndex(col)
	}

	out := &Frame{
		Name:    f.Name,
		Columns: copyColumns(columns),
		Rows:    make([][]string, len(f.Rows)),
	}
	for r, row := range f.Rows {
		aligned := make([]string, len(columns))
		for i, idx := range source {
			if idx >= 0 && idx < len(row) {
				aligned[i] = row[idx]
			}
		}
		out.Rows[r] = aligned
	}
	return out
}

// UnionColumns returns the ordered union of the given column lists: each name
// appears once, at the position of its first appearance.
func UnionColumns(lists ...[]string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, list := range lists {
		for _, name := range list {
			if seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}
