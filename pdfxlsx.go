// Package pdfxlsx converts the tables in a PDF document into a single
// spreadsheet.
//
// Tables are detected page by page, their header rows are normalized, and
// tables that share a header signature are merged into one group no matter
// which page they came from. Each group is cleaned of blank rows and rows
// without a key, then all groups are written to one workbook.
//
// Basic usage:
//
//	report, err := pdfxlsx.Convert("statement.pdf", "statement.xlsx")
//	if err != nil {
//	    // handle error
//	}
//	if report.NoTables {
//	    log.Println("no tables found")
//	}
//
// With options:
//
//	report, err := pdfxlsx.Open("statement.pdf").
//	    PageRange(2, 9).
//	    SheetPerGroup().
//	    WithLogger(logger).
//	    Convert("statement.xlsx")
//
// Non-fatal problems, such as a table without a header, are collected as
// warnings on the Report:
//
//	if len(report.Warnings) > 0 {
//	    log.Println("Warnings:\n" + pdfxlsx.FormatWarnings(report.Warnings))
//	}
//
// The frame, grouping, extract and xlsx packages are usable on their own for
// callers that need a different pipeline.
package pdfxlsx

import (
	"github.com/tsawler/pdfxlsx/extract"
)

// Convert writes the tables found in the PDF at pdfPath to a workbook at
// xlsxPath, with all groups combined into one sheet. A nil error means the
// conversion finished. Report.NoTables tells apart a document without
// usable tables, for which nothing is written.
func Convert(pdfPath, xlsxPath string) (*Report, error) {
	return Open(pdfPath).Convert(xlsxPath)
}

// Open returns a Converter for the PDF at filename. Nothing is read until a
// terminal method such as Convert or Tables is called, and each terminal
// call opens and closes the file itself.
//
// Example:
//
//	report, err := pdfxlsx.Open("document.pdf").Convert("document.xlsx")
func Open(filename string) *Converter {
	return &Converter{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromSource creates a Converter that reads tables from an existing source.
// This is useful for custom detectors and for tests.
// Note: The caller is responsible for closing the source.
//
// Example:
//
//	src, err := extract.Open("document.pdf", cfg)
//	if err != nil {
//	    // handle error
//	}
//	defer src.Close()
//	report, err := pdfxlsx.FromSource(src).Convert("document.xlsx")
func FromSource(src extract.Source) *Converter {
	return &Converter{
		source:  src,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	report := pdfxlsx.Must(pdfxlsx.Convert("in.pdf", "out.xlsx"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustTables is a helper that wraps a call to Tables() and panics if the
// error is non-nil. It discards warnings and returns just the value.
//
// Example:
//
//	result := pdfxlsx.MustTables(pdfxlsx.Open("document.pdf").Tables())
func MustTables[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
