// Package frame provides the row/column table type used while reconciling
// tables extracted from PDF pages, together with the helpers that make two
// tables comparable and mergeable.
//
// # Tables
//
// A [RawTable] is what a detector produced for one table on one page: plain
// rows of cell text, the first of which is the candidate header.
//
// A [Frame] is a named set of unique columns plus rows that all have exactly
// one value per column:
//
//	f := frame.New([]string{"id", "value"}, rows)
//	f.Append(other.AlignTo(f))
//
// # Header Normalization
//
// [NormalizeHeader] turns a raw header row into a comparable form. Each cell
// is Unicode-normalized (NFC), trimmed, lower-cased, and has embedded line
// breaks replaced with spaces, so "Unit\nPrice " and "unit price" compare
// equal. Normalization is idempotent.
//
// # Column Names
//
// [UniqueColumns] renames repeated names left to right, so
// ["a", "a", "b", "a"] becomes ["a", "a_1", "b", "a_2"].
//
// # Alignment
//
// [Align] re-expresses a frame under a target column list: missing columns
// are filled with empty strings and extra columns are dropped.
//
// # Sanitizing
//
// [Sanitize] drops fully blank rows and rows without a value in the first
// column. A cell counts as empty when it is blank after trimming whitespace.
package frame
