package sanitizer

import (
	"html"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	initOnce     sync.Once
)

func policy() *bluemonday.Policy {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}

// StripHTML removes every tag from s and returns plain text. Entities the
// policy escapes are decoded again so the result is raw text, safe to hand
// to an escaping template or a form encoder.
func StripHTML(s string) string {
	return html.UnescapeString(policy().Sanitize(s))
}

// Text strips markup, trims surrounding whitespace and caps the result at
// maxRunes runes. A maxRunes of zero or less disables the cap.
func Text(s string, maxRunes int) string {
	return Truncate(strings.TrimSpace(StripHTML(s)), maxRunes)
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
