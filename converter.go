package pdfxlsx

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/tsawler/pdfxlsx/extract"
	"github.com/tsawler/pdfxlsx/format"
	"github.com/tsawler/pdfxlsx/frame"
	"github.com/tsawler/pdfxlsx/grouping"
	"github.com/tsawler/pdfxlsx/xlsx"
)

// Converter provides a fluent interface for turning the tables of a PDF into
// a spreadsheet. Each configuration method returns a new Converter instance,
// making it safe for concurrent use and allowing method chaining. Every
// terminal call runs its own conversion.
type Converter struct {
	// Source
	filename string
	source   extract.Source // caller-owned, set by FromSource

	// Configuration
	options ConvertOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Converter with a deep copy of options.
func (c *Converter) clone() *Converter {
	return &Converter{
		filename: c.filename,
		source:   c.source,
		options:  c.options.clone(),
		err:      c.err,
	}
}

// ============================================================================
// Configuration Methods (return new Converter instance)
// ============================================================================

// Pages restricts the conversion to the given pages (1-indexed).
// Multiple calls are cumulative.
//
// Example:
//
//	report, err := pdfxlsx.Open("doc.pdf").Pages(1, 3, 5).Convert("out.xlsx")
func (c *Converter) Pages(pages ...int) *Converter {
	newConv := c.clone()
	newConv.options.pages = append(newConv.options.pages, pages...)
	return newConv
}

// PageRange restricts the conversion to a range of pages (1-indexed,
// inclusive).
//
// Example:
//
//	report, err := pdfxlsx.Open("doc.pdf").PageRange(5, 10).Convert("out.xlsx")
func (c *Converter) PageRange(start, end int) *Converter {
	newConv := c.clone()
	if start > end {
		newConv.err = fmt.Errorf("invalid page range %d-%d", start, end)
		return newConv
	}
	for i := start; i <= end; i++ {
		newConv.options.pages = append(newConv.options.pages, i)
	}
	return newConv
}

// SheetPerGroup writes each header group to its own sheet (Table_1,
// Table_2, ...) instead of one combined sheet.
func (c *Converter) SheetPerGroup() *Converter {
	newConv := c.clone()
	newConv.options.policy = PolicySheetPerGroup
	return newConv
}

// CombinedSheet writes all groups to one sheet with the given name. This is
// the default, with the name Combined_Table. An empty name keeps the
// current one.
func (c *Converter) CombinedSheet(name string) *Converter {
	newConv := c.clone()
	newConv.options.policy = PolicyCombined
	if name != "" {
		newConv.options.sheetName = name
	}
	return newConv
}

// Strategy selects the table detection passes.
//
// Example:
//
//	report, err := pdfxlsx.Open("ruled.pdf").Strategy(extract.StrategyLines).Convert("out.xlsx")
func (c *Converter) Strategy(s extract.Strategy) *Converter {
	newConv := c.clone()
	newConv.options.extract.Strategy = s
	return newConv
}

// WithExtractConfig replaces the table detection settings.
func (c *Converter) WithExtractConfig(cfg extract.Config) *Converter {
	newConv := c.clone()
	newConv.options.extract = cfg
	return newConv
}

// WithExportOptions replaces the worksheet layout settings.
func (c *Converter) WithExportOptions(opts xlsx.Options) *Converter {
	newConv := c.clone()
	newConv.options.export = opts
	return newConv
}

// WithLogger sets the logger for progress and per-table diagnostics. A nil
// logger silences them. The default is the logrus standard logger.
func (c *Converter) WithLogger(l logrus.FieldLogger) *Converter {
	newConv := c.clone()
	if l == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		l = discard
	}
	newConv.options.log = l
	return newConv
}

// ============================================================================
// Terminal Methods
// ============================================================================

// Convert extracts the tables of the configured pages, groups them by header
// and writes the result to output, an .xlsx path.
//
// The output path is checked before the document is opened: a wrong
// extension or an unwritable directory fails with ErrOutputFormat or
// ErrDestinationNotWritable and nothing is read. When no usable table is
// found the conversion succeeds with Report.NoTables set and no file is
// written. A failed export leaves no file at output.
//
// Example:
//
//	report, err := pdfxlsx.Open("invoices.pdf").SheetPerGroup().Convert("invoices.xlsx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(report.Summary())
func (c *Converter) Convert(output string) (*Report, error) {
	if c.err != nil {
		return nil, c.err
	}
	if err := c.checkInput(); err != nil {
		return nil, err
	}
	if err := xlsx.CheckDestination(output); err != nil {
		return nil, err
	}

	log := c.options.log.WithFields(logrus.Fields{"input": c.name(), "output": output})
	log.Infof("converting %s to %s", c.name(), output)

	result, warnings, pages, err := c.collect()
	if err != nil {
		return nil, err
	}

	report := &Report{
		Pages:         pages,
		TablesFound:   result.Tables,
		TablesSkipped: len(result.Skipped),
		Groups:        len(result.Groups),
		Policy:        c.options.policy,
		Warnings:      warnings,
	}

	if result.Empty() {
		report.NoTables = true
		log.Warnf("no tables found in %s", c.name())
		return report, nil
	}

	frames := c.frames(result)
	if err := xlsx.Write(output, frames, c.options.export); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	report.Output = output
	report.Sheets = xlsx.SheetNames(frames)
	report.Rows = result.Rows()

	log.WithFields(logrus.Fields{"groups": report.Groups, "rows": report.Rows}).
		Infof("wrote %d rows in %d sheet(s) to %s", report.Rows, len(report.Sheets), output)
	return report, nil
}

// Tables extracts and groups the tables of the configured pages without
// writing anything. Groups are sanitized and in first-seen order.
//
// Example:
//
//	result, warnings, err := pdfxlsx.Open("report.pdf").Tables()
//	for _, g := range result.Groups {
//	    fmt.Println(g.Signature, g.Table.RowCount())
//	}
func (c *Converter) Tables() (*grouping.Result, []Warning, error) {
	if c.err != nil {
		return nil, nil, c.err
	}
	if err := c.checkInput(); err != nil {
		return nil, nil, err
	}

	result, warnings, _, err := c.collect()
	if err != nil {
		return nil, nil, err
	}
	return result, warnings, nil
}

// Frames returns the sheets Convert would write, after the sheet policy is
// applied.
func (c *Converter) Frames() ([]*frame.Frame, []Warning, error) {
	result, warnings, err := c.Tables()
	if err != nil {
		return nil, nil, err
	}
	if result.Empty() {
		return nil, warnings, nil
	}
	return c.frames(result), warnings, nil
}

// ============================================================================
// Internals
// ============================================================================

func (c *Converter) name() string {
	if c.filename != "" {
		return c.filename
	}
	return "source"
}

// checkInput validates the input before anything is opened.
func (c *Converter) checkInput() error {
	if c.source != nil {
		return nil
	}
	if c.filename == "" {
		return errors.New("no input file specified")
	}
	if format.Detect(c.filename) != format.PDF {
		return fmt.Errorf("%w: %s", ErrInputFormat, c.filename)
	}
	return nil
}

// openPDF opens a document by name. Tests replace it to observe how the
// converter releases sources it opened itself.
var openPDF = func(path string, cfg extract.Config) (extract.Source, error) {
	src, err := extract.Open(path, cfg)
	if err != nil {
		return nil, err
	}
	return src, nil
}

// openSource returns the configured source and a function that releases
// it. Sources passed to FromSource are left open.
func (c *Converter) openSource() (extract.Source, func(), error) {
	if c.source != nil {
		return c.source, func() {}, nil
	}
	src, err := openPDF(c.filename, c.options.extract)
	if err != nil {
		return nil, nil, err
	}
	release := func() {
		if err := src.Close(); err != nil {
			c.options.log.WithField("input", c.filename).Warnf("failed to close %s: %v", c.filename, err)
		}
	}
	return src, release, nil
}

// collect runs the grouping engine over every selected page. It returns the
// result, the warnings raised and the number of pages examined.
func (c *Converter) collect() (*grouping.Result, []Warning, int, error) {
	src, release, err := c.openSource()
	if err != nil {
		return nil, nil, 0, err
	}
	defer release()

	pages, err := resolvePages(src.PageCount(), c.options.pages)
	if err != nil {
		return nil, nil, 0, err
	}

	log := c.options.log
	engine := grouping.New(grouping.WithLogger(log))

	var warnings []Warning
	for _, page := range pages {
		tables, err := src.PageTables(page)
		if err != nil {
			log.WithField("page", page).Warnf("failed to read tables on page %d: %v", page, err)
			warnings = append(warnings, Warning{Kind: WarningPageFailed, Page: page, Message: err.Error()})
			continue
		}
		if len(tables) == 0 {
			log.WithField("page", page).Debugf("no tables on page %d", page)
			continue
		}

		for _, t := range tables {
			if skip := engine.Add(t); skip != nil {
				warnings = append(warnings, Warning{Kind: WarningTableSkipped, Page: page, Message: skip.Error()})
			}
		}
	}

	return engine.Result(), warnings, len(pages), nil
}

// frames applies the sheet policy to a non-empty result.
func (c *Converter) frames(result *grouping.Result) []*frame.Frame {
	if c.options.policy == PolicySheetPerGroup {
		return result.Frames(GroupSheetPrefix)
	}
	return []*frame.Frame{result.Combined(c.options.sheetName)}
}

// resolvePages validates the requested pages against the page count and
// returns them sorted and without repeats. No request means every page.
func resolvePages(pageCount int, requested []int) ([]int, error) {
	if len(requested) == 0 {
		pages := make([]int, pageCount)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages, nil
	}

	seen := make(map[int]bool)
	var pages []int
	for _, p := range requested {
		if p < 1 || p > pageCount {
			return nil, fmt.Errorf("page %d out of range (1-%d)", p, pageCount)
		}
		if !seen[p] {
			seen[p] = true
			pages = append(pages, p)
		}
	}

	sort.Ints(pages)
	return pages, nil
}
