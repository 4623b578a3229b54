package xlsx

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tsawler/pdfxlsx/frame"
)

const maxSheetNameLength = 31

var invalidSheetChars = strings.NewReplacer(
	":", "_", `\`, "_", "/", "_", "?", "_", "*", "_", "[", "_", "]", "_",
)

// sheetNamer hands out valid, unique worksheet names.
type sheetNamer struct {
	used map[string]bool // lower-cased; Excel compares names case-insensitively
}

func newSheetNamer() *sheetNamer {
	return &sheetNamer{used: make(map[string]bool)}
}

// next returns a valid sheet name derived from want that has not been
// returned before.
func (n *sheetNamer) next(want string) string {
	base := SanitizeSheetName(want)
	if base == "" {
		base = "Sheet" + strconv.Itoa(len(n.used)+1)
	}

	name := base
	for i := 2; n.used[strings.ToLower(name)]; i++ {
		suffix := "_" + strconv.Itoa(i)
		name = truncateRunes(base, maxSheetNameLength-len(suffix)) + suffix
	}
	n.used[strings.ToLower(name)] = true
	return name
}

// SheetNames returns the worksheet names Write gives frames, in order.
func SheetNames(frames []*frame.Frame) []string {
	n := newSheetNamer()
	names := make([]string, len(frames))
	for i, f := range frames {
		names[i] = n.next(f.Name)
	}
	return names
}

// SanitizeSheetName replaces characters Excel forbids in sheet names, strips
// leading and trailing apostrophes, and truncates to 31 characters.
func SanitizeSheetName(name string) string {
	name = invalidSheetChars.Replace(name)
	name = strings.Trim(strings.TrimSpace(name), "'")
	return truncateRunes(name, maxSheetNameLength)
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}
