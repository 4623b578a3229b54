package extract

import (
	"fmt"
	"math"
	"sort"

	"github.com/tsawler/tabula/graphicsstate"
	"github.com/tsawler/tabula/model"
	"github.com/tsawler/tabula/tables"
)

// thinRect is the largest extent, in points, of a filled rectangle that is
// read as a ruling line rather than a shaded area.
const thinRect = 2.0

// detected is a table found on a page, before it is numbered.
type detected struct {
	bbox model.BBox
	rows [][]string
}

// pageInput is everything the detectors need from one page.
type pageInput struct {
	width, height float64
	fragments     []model.TextFragment
	rulings       graphicsstate.GridLines
	lines         []model.Line
}

// pageDetector runs the configured detection passes over a page.
type pageDetector struct {
	cfg      Config
	grid     *tables.GridDetector
	geometry *tables.GeometricDetector
}

func newPageDetector(cfg Config) (*pageDetector, error) {
	geometry := tables.NewGeometricDetector()
	if err := geometry.Configure(cfg.Detector); err != nil {
		return nil, fmt.Errorf("failed to configure table detector: %w", err)
	}
	return &pageDetector{
		cfg:      cfg,
		grid:     tables.NewGridDetector(),
		geometry: geometry,
	}, nil
}

// detect returns the tables on a page ordered top to bottom.
func (d *pageDetector) detect(in pageInput) ([]detected, error) {
	used := make([]bool, len(in.fragments))
	var found []detected

	if d.cfg.Strategy.useLines() {
		for _, rulings := range clusterRulings(in.rulings, d.grid.AlignmentTolerance) {
			for _, g := range d.grid.DetectFromLines(rulings.Horizontals, rulings.Verticals) {
				if g.Confidence < d.cfg.MinGridConfidence {
					continue
				}
				rows := fillGrid(g, in.fragments, used, d.cfg.LineTolerance)
				found = append(found, detected{bbox: g.BBox, rows: rows})
			}
		}
	}

	if d.cfg.Strategy.useText() {
		page := model.NewPage(in.width, in.height)
		for i, f := range in.fragments {
			if !used[i] {
				page.RawText = append(page.RawText, f)
			}
		}
		page.RawLines = append(page.RawLines, in.lines...)

		tbls, err := d.geometry.Detect(page)
		if err != nil {
			return nil, fmt.Errorf("text table detection failed: %w", err)
		}
		for _, t := range tbls {
			found = append(found, detected{bbox: t.BBox, rows: tableRows(t)})
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].bbox.Top() > found[j].bbox.Top()
	})
	return found, nil
}

// rulingsFrom collects the ruling lines of a page: stroked lines plus the
// edges of stroked rectangles and thin filled rectangles.
func rulingsFrom(ge *graphicsstate.GraphicsExtractor) graphicsstate.GridLines {
	rulings := ge.GetGridLines()
	for _, r := range ge.GetRectangles() {
		h, v := rectEdges(r)
		rulings.Horizontals = append(rulings.Horizontals, h...)
		rulings.Verticals = append(rulings.Verticals, v...)
	}
	return rulings
}

// rectEdges returns the ruling lines a rectangle contributes. Filled
// rectangles that are thin in one direction are rules drawn as fills; other
// filled rectangles are shading and contribute nothing.
func rectEdges(r graphicsstate.ExtractedRectangle) (horizontal, vertical []graphicsstate.ExtractedLine) {
	b := r.BBox
	switch {
	case b.Height <= thinRect && b.Width > thinRect:
		y := b.Y + b.Height/2
		return []graphicsstate.ExtractedLine{hline(b.X, b.X+b.Width, y)}, nil
	case b.Width <= thinRect && b.Height > thinRect:
		x := b.X + b.Width/2
		return nil, []graphicsstate.ExtractedLine{vline(x, b.Y, b.Y+b.Height)}
	case r.IsStroked && b.Width > thinRect && b.Height > thinRect:
		return []graphicsstate.ExtractedLine{
				hline(b.X, b.X+b.Width, b.Y),
				hline(b.X, b.X+b.Width, b.Y+b.Height),
			}, []graphicsstate.ExtractedLine{
				vline(b.X, b.Y, b.Y+b.Height),
				vline(b.X+b.Width, b.Y, b.Y+b.Height),
			}
	}
	return nil, nil
}

func hline(x1, x2, y float64) graphicsstate.ExtractedLine {
	return graphicsstate.ExtractedLine{
		Start:        model.Point{X: x1, Y: y},
		End:          model.Point{X: x2, Y: y},
		IsHorizontal: true,
		BBox:         model.BBox{X: x1, Y: y, Width: x2 - x1},
	}
}

func vline(x, y1, y2 float64) graphicsstate.ExtractedLine {
	return graphicsstate.ExtractedLine{
		Start:      model.Point{X: x, Y: y1},
		End:        model.Point{X: x, Y: y2},
		IsVertical: true,
		BBox:       model.BBox{X: x, Y: y1, Height: y2 - y1},
	}
}

// clusterRulings splits the ruling lines of a page into groups of lines
// that touch one another, so that separate grids on one page are detected
// separately. Groups are returned in order of their first line.
func clusterRulings(rulings graphicsstate.GridLines, tolerance float64) []graphicsstate.GridLines {
	all := make([]graphicsstate.ExtractedLine, 0, len(rulings.Horizontals)+len(rulings.Verticals))
	all = append(all, rulings.Horizontals...)
	all = append(all, rulings.Verticals...)
	if len(all) == 0 {
		return nil
	}

	boxes := make([]model.BBox, len(all))
	for i, l := range all {
		boxes[i] = lineBox(l).Expand(tolerance)
	}

	parent := make([]int, len(all))
	for i := range parent {
		parent[i] = i
	}
	find := func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	for i := range all {
		for j := i + 1; j < len(all); j++ {
			if boxes[i].Intersects(boxes[j]) {
				if a, b := find(i), find(j); a != b {
					parent[b] = a
				}
			}
		}
	}

	index := make(map[int]int)
	var groups []graphicsstate.GridLines
	for i, l := range all {
		root := find(i)
		g, ok := index[root]
		if !ok {
			g = len(groups)
			index[root] = g
			groups = append(groups, graphicsstate.GridLines{})
		}
		if i < len(rulings.Horizontals) {
			groups[g].Horizontals = append(groups[g].Horizontals, l)
		} else {
			groups[g].Verticals = append(groups[g].Verticals, l)
		}
	}
	return groups
}

func lineBox(l graphicsstate.ExtractedLine) model.BBox {
	x := math.Min(l.Start.X, l.End.X)
	y := math.Min(l.Start.Y, l.End.Y)
	return model.BBox{
		X:      x,
		Y:      y,
		Width:  math.Max(l.Start.X, l.End.X) - x,
		Height: math.Max(l.Start.Y, l.End.Y) - y,
	}
}
