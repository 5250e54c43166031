package i18n

import (
	"golang.org/x/text/language"
)

// maxAcceptLanguageLength caps the header before parsing.
const maxAcceptLanguageLength = 4096

// MatchAcceptLanguage returns the available language that best matches the
// Accept-Language header, or "" when nothing matches with at least low
// confidence. Matching is done by golang.org/x/text/language, so "fa-IR"
// resolves to "fa" and "ar-EG" to "ar".
func MatchAcceptLanguage(header string, available []string) string {
	if header == "" || len(available) == 0 {
		return ""
	}
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	requested, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(requested) == 0 {
		return ""
	}

	supported := make([]language.Tag, 0, len(available))
	for _, a := range available {
		supported = append(supported, language.Make(a))
	}

	_, idx, confidence := language.NewMatcher(supported).Match(requested...)
	if confidence == language.No {
		return ""
	}
	return available[idx]
}
