package grouping

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/tsawler/pdfxlsx/frame"
)

// SkipReason describes why a table was not merged into any group.
type SkipReason int

const (
	// SkipTooFewRows means the table had no data rows below its header.
	SkipTooFewRows SkipReason = iota
	// SkipMissingHeader means the first row had no cells.
	SkipMissingHeader
	// SkipEmptyHeader means every header cell was empty after normalization.
	SkipEmptyHeader
	// SkipMisaligned means the table's rows could not be appended to its
	// group after alignment.
	SkipMisaligned
)

// String returns a human-readable description of the reason.
func (r SkipReason) String() string {
	switch r {
	case SkipTooFewRows:
		return "missing or invalid data"
	case SkipMissingHeader:
		return "missing header row"
	case SkipEmptyHeader:
		return "invalid or empty header"
	case SkipMisaligned:
		return "misaligned columns"
	default:
		return "unknown"
	}
}

// Skip records a table that was left out of the result.
type Skip struct {
	Page   int
	Index  int
	Reason SkipReason
}

// Error implements error so a Skip can be wrapped or reported like one.
func (s *Skip) Error() string {
	return fmt.Sprintf("page %d table %d skipped: %s", s.Page, s.Index+1, s.Reason)
}

// Group is the accumulated table for one signature.
type Group struct {
	Signature Signature
	Header    []string     // normalized header, before deduplication
	Table     *frame.Frame // deduplicated columns and all merged rows
	Pages     []int        // pages that contributed, in order, without repeats
	Tables    int          // number of raw tables merged
}

func (g *Group) addPage(page int) {
	if n := len(g.Pages); n > 0 && g.Pages[n-1] == page {
		return
	}
	g.Pages = append(g.Pages, page)
}

// Engine groups raw tables by header signature. It is scoped to a single
// conversion run.
type Engine struct {
	groups map[Signature]*Group
	order  []Signature
	skips  []Skip
	added  int
	log    logrus.FieldLogger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for per-table diagnostics.
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// New creates an empty Engine. Without WithLogger, diagnostics are discarded.
func New(opts ...Option) *Engine {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	e := &Engine{
		groups: make(map[Signature]*Group),
		log:    discard,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Add merges a raw table into its group, creating the group on first sight of
// the table's signature. It returns a non-nil Skip if the table was unusable.
func (e *Engine) Add(raw frame.RawTable) *Skip {
	e.added++
	fields := logrus.Fields{"page": raw.Page, "table": raw.Index + 1}

	if len(raw.Rows) < 2 {
		return e.skip(raw, SkipTooFewRows, fields)
	}
	if len(raw.Header()) == 0 {
		return e.skip(raw, SkipMissingHeader, fields)
	}

	header := frame.NormalizeHeader(raw.Header())
	if frame.AllEmpty(header) {
		return e.skip(raw, SkipEmptyHeader, fields)
	}

	e.log.WithFields(fields).WithField("headers", header).Infof("page %d headers: %q", raw.Page, header)

	table := frame.New(frame.UniqueColumns(header), raw.Body())
	sig := NewSignature(header)

	group, ok := e.groups[sig]
	if !ok {
		group = &Group{
			Signature: sig,
			Header:    header,
			Table:     table,
		}
		e.groups[sig] = group
		e.order = append(e.order, sig)
	} else if err := group.Table.Append(table.AlignTo(group.Table)); err != nil {
		fields["error"] = err.Error()
		return e.skip(raw, SkipMisaligned, fields)
	}
	group.Tables++
	group.addPage(raw.Page)

	return nil
}

func (e *Engine) skip(raw frame.RawTable, reason SkipReason, fields logrus.Fields) *Skip {
	s := Skip{Page: raw.Page, Index: raw.Index, Reason: reason}
	e.skips = append(e.skips, s)
	e.log.WithFields(fields).WithField("reason", reason.String()).
		Warnf("skipping a table on page %d due to %s", raw.Page, reason)
	return &s
}

// Skips returns the tables skipped so far, in the order they were added.
func (e *Engine) Skips() []Skip {
	return append([]Skip(nil), e.skips...)
}

// Len returns the number of groups.
func (e *Engine) Len() int {
	return len(e.order)
}

// Result returns sanitized copies of all groups in first-seen order. The
// engine keeps its own state and may continue to accept tables.
func (e *Engine) Result() *Result {
	res := &Result{
		Groups:  make([]*Group, 0, len(e.order)),
		Skipped: e.Skips(),
		Tables:  e.added,
	}
	for _, sig := range e.order {
		g := e.groups[sig]
		res.Groups = append(res.Groups, &Group{
			Signature: g.Signature,
			Header:    append([]string(nil), g.Header...),
			Table:     frame.Sanitize(g.Table),
			Pages:     append([]int(nil), g.Pages...),
			Tables:    g.Tables,
		})
	}
	return res
}
