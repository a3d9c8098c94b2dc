package allocation

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// letters, digits, underscore, whitespace and period survive.
	headerStripRegex = regexp.MustCompile(`[^\p{L}\p{N}_\s.]`)
	whitespaceRegex  = regexp.MustCompile(`\s+`)
)

// NormalizeHeader canonicalizes a raw column header into a comparison key:
// lower case, accents folded (à→a, é→e, ...), punctuation other than '_'
// and '.' removed, and whitespace collapsed.
//
// NormalizeHeader is idempotent.
func NormalizeHeader(h string) string {
	s := strings.ToLower(strings.TrimSpace(h))
	s = foldAccents(s)
	s = headerStripRegex.ReplaceAllString(s, "")
	s = whitespaceRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// foldAccents removes combining marks after canonical decomposition.
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	res, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return res
}
