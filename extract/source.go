package extract

import (
	"errors"
	"fmt"
	"os"

	"github.com/tsawler/tabula/core"
	"github.com/tsawler/tabula/graphicsstate"
	"github.com/tsawler/tabula/pages"
	"github.com/tsawler/tabula/reader"

	"github.com/tsawler/pdfxlsx/format"
	"github.com/tsawler/pdfxlsx/frame"
)

// ErrNotPDF is returned by Open when the file does not start with the PDF
// header.
var ErrNotPDF = errors.New("not a PDF file")

// Source yields the tables of a document one page at a time. Pages are
// numbered from 1.
type Source interface {
	PageCount() int
	PageTables(page int) ([]frame.RawTable, error)
	Close() error
}

// PDFSource reads tables from a PDF file.
type PDFSource struct {
	path     string
	reader   *reader.Reader
	pages    int
	detector *pageDetector
}

var _ Source = (*PDFSource)(nil)

// Open opens the PDF at path and resolves its page tree. A file that cannot
// be read, is not a PDF, or has an unreadable page tree is an error.
func Open(path string, cfg Config) (*PDFSource, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid extraction config: %w", err)
	}
	detector, err := newPageDetector(cfg)
	if err != nil {
		return nil, err
	}

	if err := checkMagic(path); err != nil {
		return nil, err
	}

	r, err := reader.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	count, err := r.PageCount()
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("failed to get page count: %w", err)
	}

	return &PDFSource{
		path:     path,
		reader:   r,
		pages:    count,
		detector: detector,
	}, nil
}

// checkMagic sniffs the content of path. Anything that is not a PDF,
// including a workbook given the wrong extension, is ErrNotPDF.
func checkMagic(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	detected, err := format.DetectFromReader(f, info.Size())
	switch {
	case err != nil:
		return fmt.Errorf("%w: %s: %v", ErrNotPDF, path, err)
	case detected == format.PDF:
		return nil
	case detected != format.Unknown:
		return fmt.Errorf("%w: %s is an %s file", ErrNotPDF, path, detected)
	default:
		return fmt.Errorf("%w: %s", ErrNotPDF, path)
	}
}

// Path returns the file the source was opened from.
func (s *PDFSource) Path() string {
	return s.path
}

// PageCount returns the number of pages in the document.
func (s *PDFSource) PageCount() int {
	return s.pages
}

// PageTables returns the tables on page n (1-indexed), ordered top to
// bottom. Each table's first row is its header candidate.
func (s *PDFSource) PageTables(n int) ([]frame.RawTable, error) {
	if s.reader == nil {
		return nil, errors.New("source is closed")
	}
	if n < 1 || n > s.pages {
		return nil, fmt.Errorf("page %d out of range (1-%d)", n, s.pages)
	}

	page, err := s.reader.GetPage(n - 1)
	if err != nil {
		return nil, fmt.Errorf("failed to get page %d: %w", n, err)
	}

	fragments, err := s.reader.ExtractTextFragments(page)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text from page %d: %w", n, err)
	}
	if len(fragments) == 0 {
		return nil, nil
	}

	ge, err := pageGraphics(page)
	if err != nil {
		return nil, fmt.Errorf("failed to read graphics on page %d: %w", n, err)
	}

	width, _ := page.Width()
	height, _ := page.Height()
	found, err := s.detector.detect(pageInput{
		width:     width,
		height:    height,
		fragments: toModelFragments(fragments),
		rulings:   rulingsFrom(ge),
		lines:     ge.ToModelLines(),
	})
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", n, err)
	}

	result := make([]frame.RawTable, len(found))
	for i, t := range found {
		result[i] = frame.RawTable{Page: n, Index: i, Rows: t.rows}
	}
	return result, nil
}

// pageGraphics runs the graphics extractor over the decoded content
// streams of a page.
func pageGraphics(page *pages.Page) (*graphicsstate.GraphicsExtractor, error) {
	ge := graphicsstate.NewGraphicsExtractor()

	contents, err := page.Contents()
	if err != nil {
		return nil, fmt.Errorf("failed to get contents: %w", err)
	}

	var data []byte
	for _, obj := range contents {
		stream, ok := obj.(*core.Stream)
		if !ok {
			continue
		}
		decoded, err := stream.Decode()
		if err != nil {
			return nil, fmt.Errorf("failed to decode content stream: %w", err)
		}
		data = append(data, decoded...)
	}
	if len(data) == 0 {
		return ge, nil
	}

	if err := ge.ExtractFromBytes(data); err != nil {
		return nil, err
	}
	return ge, nil
}

// Close releases the underlying reader. It is safe to call Close more than
// once.
func (s *PDFSource) Close() error {
	if s.reader == nil {
		return nil
	}
	err := s.reader.Close()
	s.reader = nil
	return err
}
