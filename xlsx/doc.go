// Package xlsx writes reconciled tables to Office Open XML spreadsheets.
//
// Each [frame.Frame] becomes one worksheet: a bold header row built from the
// column names followed by one row per data row. Column widths follow the
// longest value in each column plus [Options.ColumnPadding], and rows whose
// cells span several lines are made [Options.LineHeight] points tall per
// line.
//
//	if err := xlsx.CheckDestination("out/report.xlsx"); err != nil {
//	    return err // before doing any extraction work
//	}
//	err := xlsx.Write("out/report.xlsx", frames, xlsx.DefaultOptions())
//
// [Write] saves the workbook to a temporary file next to the destination and
// renames it into place, so a failed export never leaves a partial file
// behind.
package xlsx
