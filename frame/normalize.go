package frame

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// NormalizeHeader returns a normalized copy of a header row. The result has
// the same length as the input.
func NormalizeHeader(cells []string) []string {
	if cells == nil {
		return nil
	}
	// Casers keep state, so each call gets its own.
	lower := cases.Lower(language.Und)
	out := make([]string, len(cells))
	for i, cell := range cells {
		out[i] = normalizeCell(cell, lower)
	}
	return out
}

// NormalizeCell normalizes a single header cell.
func NormalizeCell(cell string) string {
	return normalizeCell(cell, cases.Lower(language.Und))
}

func normalizeCell(cell string, lower cases.Caser) string {
	if cell == "" {
		return ""
	}
	s := norm.NFC.String(cell)
	s = strings.TrimSpace(s)
	s = lower.String(s)
	return lineBreaks.Replace(s)
}

// IsEmpty reports whether a cell has no content other than whitespace.
func IsEmpty(cell string) bool {
	return strings.TrimSpace(cell) == ""
}

// AllEmpty reports whether every cell is empty. A zero-length slice is
// considered empty.
func AllEmpty(cells []string) bool {
	for _, c := range cells {
		if !IsEmpty(c) {
			return false
		}
	}
	return true
}
