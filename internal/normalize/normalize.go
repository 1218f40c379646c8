// Package normalize provides the text folding used by library searches.
//
// Searches are symmetric: both the stored field and the search term are
// folded before comparison, so "lôr" matches "Lord" and "ü" matches
// "Müller".
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Folder turns text into a case- and diacritic-insensitive comparison key.
// Implementations must be pure: same input, same output, no side effects.
type Folder interface {
	Fold(s string) string
}

// UnicodeFolder strips diacritics and lowercases. Characters without
// combining marks (e.g. Cyrillic) pass through case-folded unchanged.
type UnicodeFolder struct{}

// NewUnicodeFolder creates the full unicode folder.
func NewUnicodeFolder() *UnicodeFolder {
	return &UnicodeFolder{}
}

// Fold decomposes the string, drops combining marks and lowercases the
// result. If the transform fails on malformed input the plain lowercased
// string is returned instead.
//
// The transform chain carries per-call buffers, so it is built fresh on
// every call. One folder instance serves all pooled DB connections at once.
func (f *UnicodeFolder) Fold(s string) string {
	chain := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(chain, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}

// ASCIIFolder is the fallback comparator: plain case-insensitive matching
// with no diacritic handling. Narrower than UnicodeFolder but never wrong.
type ASCIIFolder struct{}

func (ASCIIFolder) Fold(s string) string {
	return strings.ToLower(s)
}

// Default returns the folder used when the caller does not inject one.
func Default() Folder {
	return NewUnicodeFolder()
}
