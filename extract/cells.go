package extract

import (
	"math"
	"sort"
	"strings"

	"github.com/tsawler/tabula/model"
	"github.com/tsawler/tabula/tables"
	"github.com/tsawler/tabula/text"
)

// spaceRatio is the horizontal gap, as a fraction of the font size, above
// which two fragments on the same line are separated by a space.
const spaceRatio = 0.3

// toModelFragments converts reader fragments to the model form used by the
// table detectors.
func toModelFragments(fragments []text.TextFragment) []model.TextFragment {
	result := make([]model.TextFragment, len(fragments))
	for i, f := range fragments {
		result[i] = model.TextFragment{
			Text:     f.Text,
			BBox:     model.BBox{X: f.X, Y: f.Y, Width: f.Width, Height: f.Height},
			FontSize: f.FontSize,
			FontName: f.FontName,
		}
	}
	return result
}

// fillGrid assigns every unused fragment whose centre lies inside the grid
// to its cell and returns the cell text row by row, top row first. Assigned
// fragments are marked in used.
func fillGrid(g *tables.GridHypothesis, fragments []model.TextFragment, used []bool, lineTolerance float64) [][]string {
	cells := make([][][]model.TextFragment, g.Rows)
	for r := range cells {
		cells[r] = make([][]model.TextFragment, g.Cols)
	}

	for i, f := range fragments {
		if used[i] {
			continue
		}
		c := f.BBox.Center()
		row := band(c.Y, g.HorizontalLines, true)
		col := band(c.X, g.VerticalLines, false)
		if row < 0 || col < 0 || row >= g.Rows || col >= g.Cols {
			continue
		}
		cells[row][col] = append(cells[row][col], f)
		used[i] = true
	}

	rows := make([][]string, g.Rows)
	for r := range cells {
		rows[r] = make([]string, g.Cols)
		for c, frags := range cells[r] {
			rows[r][c] = cellText(frags, lineTolerance)
		}
	}
	return rows
}

// band returns the index i such that v lies between bounds[i] and
// bounds[i+1], or -1. Bounds are sorted descending or ascending.
func band(v float64, bounds []float64, descending bool) int {
	for i := 0; i+1 < len(bounds); i++ {
		lo, hi := bounds[i], bounds[i+1]
		if descending {
			lo, hi = hi, lo
		}
		if v >= lo && v <= hi {
			return i
		}
	}
	return -1
}

// cellText joins the fragments of one cell. Fragments whose baselines are
// within lineTolerance points form one visual line read left to right, and
// visual lines are joined top to bottom with "\n".
func cellText(fragments []model.TextFragment, lineTolerance float64) string {
	if len(fragments) == 0 {
		return ""
	}

	sorted := make([]model.TextFragment, len(fragments))
	copy(sorted, fragments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BBox.Y > sorted[j].BBox.Y
	})

	var lines [][]model.TextFragment
	var lineY float64
	for i, f := range sorted {
		if i == 0 || math.Abs(lineY-f.BBox.Y) > lineTolerance {
			lines = append(lines, []model.TextFragment{f})
			lineY = f.BBox.Y
			continue
		}
		lines[len(lines)-1] = append(lines[len(lines)-1], f)
	}

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if s := strings.TrimSpace(joinLine(line)); s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, "\n")
}

// joinLine concatenates the fragments of one visual line in X order,
// inserting a space where the gap between them is wide enough to be one.
func joinLine(line []model.TextFragment) string {
	sort.SliceStable(line, func(i, j int) bool {
		return line[i].BBox.X < line[j].BBox.X
	})

	var b strings.Builder
	var lastEnd float64
	for i, f := range line {
		if i > 0 {
			gap := f.BBox.X - lastEnd
			if gap > spaceThreshold(f) && !strings.HasSuffix(b.String(), " ") && !strings.HasPrefix(f.Text, " ") {
				b.WriteByte(' ')
			}
		}
		b.WriteString(f.Text)
		lastEnd = f.BBox.X + f.BBox.Width
	}
	return b.String()
}

func spaceThreshold(f model.TextFragment) float64 {
	size := f.FontSize
	if size <= 0 {
		size = f.BBox.Height
	}
	return size * spaceRatio
}

// tableRows returns the cell text of a detected table, one slice per row.
// The text of a merged cell appears once, in the cell holding its centre.
func tableRows(t *model.Table) [][]string {
	rows := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		row := make([]string, len(r))
		for c, cell := range r {
			row[c] = strings.TrimSpace(cell.Text)
		}
		rows = append(rows, row)
	}
	return rows
}
