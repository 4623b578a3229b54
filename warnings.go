package pdfxlsx

import (
	"fmt"
	"strings"
)

// WarningKind classifies a non-fatal problem met during a conversion.
type WarningKind int

const (
	// WarningPageFailed means tables could not be read from a page. The page
	// is skipped.
	WarningPageFailed WarningKind = iota
	// WarningTableSkipped means a detected table had no usable header or no
	// data rows.
	WarningTableSkipped
)

// String returns a short name for the kind.
func (k WarningKind) String() string {
	switch k {
	case WarningPageFailed:
		return "page failed"
	case WarningTableSkipped:
		return "table skipped"
	default:
		return "unknown"
	}
}

// Warning is a non-fatal issue. The conversion continued past it.
type Warning struct {
	Kind    WarningKind
	Page    int // 1-indexed page the warning refers to, 0 if none
	Message string
}

// String formats the warning for display.
func (w Warning) String() string {
	if w.Page > 0 {
		return fmt.Sprintf("page %d: %s", w.Page, w.Message)
	}
	return w.Message
}

// FormatWarnings renders warnings one per line, or returns "" if there are
// none.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = "- " + w.String()
	}
	return strings.Join(lines, "\n")
}
