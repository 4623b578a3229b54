package grouping

import (
	"strconv"
	"strings"
)

// Signature identifies a normalized header. Two headers have the same
// signature iff they have the same length and are equal element by element,
// including empty entries. The zero value is the signature of an empty
// header.
type Signature string

// NewSignature builds the signature of an already normalized header.
func NewSignature(header []string) Signature {
	var sb strings.Builder
	for _, h := range header {
		// length-prefixed: ["a", ""] and ["a"] must differ
		sb.WriteString(strconv.Itoa(len(h)))
		sb.WriteByte(':')
		sb.WriteString(h)
	}
	return Signature(sb.String())
}

// Columns decodes the header the signature was built from.
func (s Signature) Columns() []string {
	var cols []string
	rest := string(s)
	for rest != "" {
		colon := strings.IndexByte(rest, ':')
		if colon < 0 {
			break
		}
		n, err := strconv.Atoi(rest[:colon])
		if err != nil || colon+1+n > len(rest) {
			break
		}
		cols = append(cols, rest[colon+1:colon+1+n])
		rest = rest[colon+1+n:]
	}
	return cols
}

// String returns a readable form of the signature.
func (s Signature) String() string {
	return "[" + strings.Join(s.Columns(), ", ") + "]"
}
