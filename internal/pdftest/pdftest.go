// Package pdftest builds small PDF documents for tests. Pages use Helvetica
// as /F1 on a US Letter media box, and cross-reference offsets are computed
// from the output, so the documents open with any conforming reader.
package pdftest

import (
	"bytes"
	"fmt"
	"strings"
)

// Grid geometry used by RuledTable, in points.
const (
	Left       = 50.0
	Top        = 740.0
	CellWidth  = 100.0
	CellHeight = 20.0
	FontSize   = 10.0
)

// Build assembles a PDF with one page per content stream.
func Build(contents ...string) []byte {
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"", // page tree, filled in once the page numbers are known
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}

	kids := make([]string, len(contents))
	for i, content := range contents {
		pageNum := len(objects) + 1
		kids[i] = fmt.Sprintf("%d 0 R", pageNum)
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", pageNum+1),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		)
	}
	objects[1] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(contents))

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(objects)+1, xref)
	return buf.Bytes()
}

// RuledTable returns a content stream drawing rows as a fully ruled grid
// whose top-left corner is (Left, Top). Every row must have the same number
// of cells.
func RuledTable(rows [][]string) string {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return ""
	}
	cols := len(rows[0])
	width := CellWidth * float64(cols)
	height := CellHeight * float64(len(rows))
	bottom := Top - height

	var sb strings.Builder
	fmt.Fprintf(&sb, "0.5 w\n%g %g %g %g re S\n", Left, bottom, width, height)
	for r := 1; r < len(rows); r++ {
		y := Top - CellHeight*float64(r)
		fmt.Fprintf(&sb, "%g %g m %g %g l S\n", Left, y, Left+width, y)
	}
	for c := 1; c < cols; c++ {
		x := Left + CellWidth*float64(c)
		fmt.Fprintf(&sb, "%g %g m %g %g l S\n", x, bottom, x, Top)
	}

	for r, row := range rows {
		y := Top - CellHeight*float64(r) - 14
		for c, cell := range row {
			if cell == "" {
				continue
			}
			x := Left + CellWidth*float64(c) + 10
			fmt.Fprintf(&sb, "BT /F1 %g Tf %g %g Td (%s) Tj ET\n", FontSize, x, y, escape(cell))
		}
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func escape(s string) string {
	return strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`).Replace(s)
}
