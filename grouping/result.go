package grouping

import (
	"fmt"

	"github.com/tsawler/pdfxlsx/frame"
)

// Result is the set of sanitized groups produced by an Engine.
type Result struct {
	Groups  []*Group // in the order their signatures were first seen
	Skipped []Skip
	Tables  int // raw tables offered to the engine, including skipped ones
}

// Empty reports whether no group was formed, i.e. no usable table was found.
func (r *Result) Empty() bool {
	return r == nil || len(r.Groups) == 0
}

// Rows returns the total number of data rows across all groups.
func (r *Result) Rows() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, g := range r.Groups {
		n += g.Table.RowCount()
	}
	return n
}

// Combined concatenates all groups into a single frame with the given name.
// Its columns are the ordered union of the groups' columns; each group is
// aligned to that union before its rows are appended.
func (r *Result) Combined(name string) *frame.Frame {
	if r.Empty() {
		return &frame.Frame{Name: name}
	}

	lists := make([][]string, len(r.Groups))
	for i, g := range r.Groups {
		lists[i] = g.Table.Columns
	}
	combined := frame.New(frame.UnionColumns(lists...), nil)
	combined.Name = name

	for _, g := range r.Groups {
		aligned := g.Table.AlignTo(combined)
		combined.Rows = append(combined.Rows, aligned.Rows...)
	}
	return combined
}

// Frames returns one frame per group, named prefix_1, prefix_2, and so on.
func (r *Result) Frames(prefix string) []*frame.Frame {
	if r.Empty() {
		return nil
	}
	frames := make([]*frame.Frame, len(r.Groups))
	for i, g := range r.Groups {
		f := g.Table.Clone()
		f.Name = fmt.Sprintf("%s_%d", prefix, i+1)
		frames[i] = f
	}
	return frames
}
