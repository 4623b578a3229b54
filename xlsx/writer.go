package xlsx

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/renameio/v2"
	"github.com/xuri/excelize/v2"

	"github.com/tsawler/pdfxlsx/format"
	"github.com/tsawler/pdfxlsx/frame"
)

// Excel limits
const (
	maxColumnWidth = 255
	maxRowHeight   = 409
)

var (
	// ErrOutputFormat is returned when the destination is not an .xlsx path.
	ErrOutputFormat = errors.New("output file must have an .xlsx extension")
	// ErrNotWritable is returned when the destination directory cannot be
	// written to.
	ErrNotWritable = errors.New("cannot write to directory")
	// ErrNoSheets is returned when Write is called without any frames.
	ErrNoSheets = errors.New("no sheets to write")
)

// Options controls the cosmetic layout of written sheets.
type Options struct {
	// ColumnPadding is added to the longest value length of each column.
	ColumnPadding float64
	// LineHeight is the row height, in points, per line of the tallest cell.
	// Rows with single-line cells keep the default height.
	LineHeight float64
}

// DefaultOptions returns the default layout options.
func DefaultOptions() Options {
	return Options{
		ColumnPadding: 2,
		LineHeight:    15,
	}
}

// CheckDestination verifies that path names an .xlsx file in an existing,
// writable directory. It does not create or modify path itself.
func CheckDestination(path string) error {
	if format.Detect(path) != format.XLSX {
		return fmt.Errorf("%w: %s", ErrOutputFormat, path)
	}

	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNotWritable, dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrNotWritable, dir)
	}

	scratch, err := os.CreateTemp(dir, ".pdfxlsx-check-*")
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNotWritable, dir, err)
	}
	name := scratch.Name()
	scratch.Close()
	os.Remove(name)

	return nil
}

// Write saves frames as worksheets of a new workbook at path, one sheet per
// frame in order. Sheet names come from Frame.Name and are adjusted to
// Excel's naming rules.
func Write(path string, frames []*frame.Frame, opts Options) error {
	if len(frames) == 0 {
		return ErrNoSheets
	}

	f := excelize.NewFile()
	defer f.Close()

	w, err := newSheetWriter(f, opts)
	if err != nil {
		return err
	}

	names := SheetNames(frames)
	for i, fr := range frames {
		name := names[i]
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				return fmt.Errorf("failed to name sheet %q: %w", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", name, err)
		}

		if err := w.write(name, fr); err != nil {
			return fmt.Errorf("sheet %q: %w", name, err)
		}
	}
	f.SetActiveSheet(0)

	return save(f, path)
}

// outputPerm is the mode of written workbooks before the umask is applied.
const outputPerm = 0o644

// save writes the workbook to a pending file in the destination directory
// and atomically replaces path with it. The pending file is removed if any
// step fails.
func save(f *excelize.File, path string) error {
	pf, err := renameio.NewPendingFile(path,
		renameio.WithTempDir(filepath.Dir(path)),
		renameio.WithPermissions(outputPerm))
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer pf.Cleanup()

	if err := f.Write(pf); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := pf.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("failed to move workbook into place: %w", err)
	}
	return nil
}

// sheetWriter fills worksheets with frame contents and applies the layout
// rules.
type sheetWriter struct {
	f           *excelize.File
	opts        Options
	headerStyle int
	wrapStyle   int
}

func newSheetWriter(f *excelize.File, opts Options) (*sheetWriter, error) {
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	wrap, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create wrap style: %w", err)
	}
	return &sheetWriter{f: f, opts: opts, headerStyle: header, wrapStyle: wrap}, nil
}

func (w *sheetWriter) write(sheet string, fr *frame.Frame) error {
	records := fr.Records()
	widths := make([]int, len(fr.Columns))

	for r, record := range records {
		row := r + 1
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(record))
		for i, v := range record {
			values[i] = v
		}
		if err := w.f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row, err)
		}

		maxLines := 1
		for c, v := range record {
			if c < len(widths) {
				if n := utf8.RuneCountInString(v); n > widths[c] {
					widths[c] = n
				}
			}
			lines := lineCount(v)
			if lines > 1 {
				ref, err := excelize.CoordinatesToCellName(c+1, row)
				if err != nil {
					return err
				}
				if err := w.f.SetCellStyle(sheet, ref, ref, w.wrapStyle); err != nil {
					return err
				}
			}
			if lines > maxLines {
				maxLines = lines
			}
		}
		if maxLines > 1 {
			height := math.Min(float64(maxLines)*w.opts.LineHeight, maxRowHeight)
			if err := w.f.SetRowHeight(sheet, row, height); err != nil {
				return fmt.Errorf("failed to set height of row %d: %w", row, err)
			}
		}
	}

	if len(fr.Columns) > 0 {
		first, _ := excelize.CoordinatesToCellName(1, 1)
		last, _ := excelize.CoordinatesToCellName(len(fr.Columns), 1)
		if err := w.f.SetCellStyle(sheet, first, last, w.headerStyle); err != nil {
			return err
		}
	}

	for c, n := range widths {
		col, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return err
		}
		width := math.Min(float64(n)+w.opts.ColumnPadding, maxColumnWidth)
		if err := w.f.SetColWidth(sheet, col, col, width); err != nil {
			return fmt.Errorf("failed to set width of column %s: %w", col, err)
		}
	}

	return nil
}

// lineCount returns the number of lines in s, counting "\r\n" as one break.
func lineCount(s string) int {
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Count(strings.TrimRight(s, "\n"), "\n") + 1
}
