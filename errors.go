package pdfxlsx

import (
	"errors"

	"github.com/tsawler/pdfxlsx/extract"
	"github.com/tsawler/pdfxlsx/xlsx"
)

// Precondition errors. Convert returns them, wrapped, before the source
// document is opened.
var (
	// ErrInputFormat means the input path does not name a PDF file.
	ErrInputFormat = errors.New("input file must be a PDF")
	// ErrOutputFormat means the output path does not have an .xlsx extension.
	ErrOutputFormat = xlsx.ErrOutputFormat
	// ErrDestinationNotWritable means the output directory is missing or
	// cannot be written to.
	ErrDestinationNotWritable = xlsx.ErrNotWritable
)

// ErrNotPDF is returned when the input file exists but is not a PDF
// document.
var ErrNotPDF = extract.ErrNotPDF
