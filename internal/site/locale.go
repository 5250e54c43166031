package site

import "strings"

// Locale is a supported interface language.
type Locale string

const (
	LocaleFA Locale = "fa"
	LocaleEN Locale = "en"
	LocaleAR Locale = "ar"

	DefaultLocale = LocaleFA

	// LocaleCookie holds the choice for the browser session only.
	LocaleCookie = "lang"
)

// Dir is the text direction of a locale.
type Dir string

const (
	DirRTL Dir = "rtl"
	DirLTR Dir = "ltr"
)

var locales = []Locale{LocaleFA, LocaleEN, LocaleAR}

var labels = map[Locale]string{
	LocaleFA: "فارسی",
	LocaleEN: "English",
	LocaleAR: "عربي",
}

// Locales returns the supported locales in display order.
func Locales() []Locale {
	out := make([]Locale, len(locales))
	copy(out, locales)
	return out
}

// LocaleCodes returns the supported locales as plain strings.
func LocaleCodes() []string {
	out := make([]string, len(locales))
	for i, l := range locales {
		out[i] = string(l)
	}
	return out
}

// ParseLocale accepts a supported code, ignoring case and any region
// subtag ("en-US" is en).
func ParseLocale(raw string) (Locale, bool) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if base, _, found := strings.Cut(raw, "-"); found {
		raw = base
	}
	l := Locale(raw)
	if _, ok := labels[l]; ok {
		return l, true
	}
	return "", false
}

// Dir is rtl for Persian and Arabic and ltr for English.
func (l Locale) Dir() Dir {
	if l == LocaleEN {
		return DirLTR
	}
	return DirRTL
}

// Label is the locale's name in its own script, used on the switch buttons.
func (l Locale) Label() string {
	return labels[l]
}

// GoogTrans is the value the translate widget expects in its googtrans
// cookie to translate the Persian page into l. It is empty for Persian,
// which needs no translation.
func (l Locale) GoogTrans() string {
	if l == DefaultLocale || l == "" {
		return ""
	}
	return "/" + string(DefaultLocale) + "/" + string(l)
}

func (l Locale) String() string { return string(l) }
