// Package extract finds tables on the pages of a PDF document and returns
// their cell text as [frame.RawTable] values.
//
// Parsing, text positioning, and ruling-line recovery are delegated to the
// tabula reader and graphics packages. Two detection passes run per page:
//
//   - Ruled grids: horizontal and vertical ruling lines (including the edges
//     of drawn rectangles) are clustered into separate grids and each grid is
//     filled by assigning text fragments to cells by their centre point.
//     Fragments stacked inside a cell are joined with "\n", so multi-line
//     cells survive.
//   - Text alignment: fragments that fall outside every ruled grid are handed
//     to tabula's geometric detector, which infers rows and columns from
//     whitespace and alignment.
//
// [Config.Strategy] selects either pass or both. Tables on a page are
// returned top to bottom.
//
// Usage:
//
//	src, err := extract.Open("report.pdf", extract.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
//	for page := 1; page <= src.PageCount(); page++ {
//	    tables, err := src.PageTables(page)
//	    ...
//	}
package extract
