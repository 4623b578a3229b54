package pdfxlsx

import (
	"fmt"
	"strings"
)

// Report describes a finished conversion.
type Report struct {
	Output        string   // path of the written workbook, "" when NoTables
	Pages         int      // pages examined
	TablesFound   int      // raw tables detected on those pages
	TablesSkipped int      // detected tables left out for a bad header or no data
	Groups        int      // distinct header signatures
	Rows          int      // data rows written across all sheets
	Sheets        []string // worksheet names, in workbook order
	Policy        Policy
	// NoTables is set when no usable table was found. The conversion still
	// succeeds but nothing is written.
	NoTables bool
	Warnings []Warning
}

// Summary returns a one-paragraph human-readable description of the
// outcome.
func (r *Report) Summary() string {
	if r.NoTables {
		return fmt.Sprintf("No tables found in %d page(s); no spreadsheet was written.", r.Pages)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Wrote %d row(s) from %d table(s) in %d group(s) to %s",
		r.Rows, r.TablesFound-r.TablesSkipped, r.Groups, r.Output)
	fmt.Fprintf(&b, " (%s: %s).", r.Policy, strings.Join(r.Sheets, ", "))
	if r.TablesSkipped > 0 {
		fmt.Fprintf(&b, " Skipped %d table(s).", r.TablesSkipped)
	}
	return b.String()
}
