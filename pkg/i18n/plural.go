package i18n

import "strings"

// PluralRule determines which plural form to use for a given count.
// It follows Unicode CLDR guidelines.
type PluralRule func(n int) string

// Plural category constants as defined by Unicode CLDR.
const (
	PluralZero  = "zero"
	PluralOne   = "one"
	PluralTwo   = "two"
	PluralFew   = "few"
	PluralMany  = "many"
	PluralOther = "other"
)

// DefaultPluralRule distinguishes one from everything else.
var DefaultPluralRule PluralRule = func(n int) string {
	if n == 1 || n == -1 {
		return PluralOne
	}
	return PluralOther
}

// EnglishPluralRule: zero (0), one (1), other. Persian uses the same forms.
var EnglishPluralRule PluralRule = func(n int) string {
	if n == 0 {
		return PluralZero
	}
	return DefaultPluralRule(n)
}

// ArabicPluralRule: zero, one, two, few (3-10), many (11-99), other.
var ArabicPluralRule PluralRule = func(n int) string {
	if n < 0 {
		n = -n
	}
	switch n {
	case 0:
		return PluralZero
	case 1:
		return PluralOne
	case 2:
		return PluralTwo
	}

	mod100 := n % 100
	switch {
	case mod100 >= 3 && mod100 <= 10:
		return PluralFew
	case mod100 >= 11 && mod100 <= 99:
		return PluralMany
	default:
		return PluralOther
	}
}

// GetPluralRuleForLanguage returns the plural rule for an ISO 639-1 code.
func GetPluralRuleForLanguage(lang string) PluralRule {
	switch strings.ToLower(baseLanguage(lang)) {
	case "en", "fa":
		return EnglishPluralRule
	case "ar":
		return ArabicPluralRule
	default:
		return DefaultPluralRule
	}
}

func pluralFallbackForms(form string) []string {
	switch form {
	case PluralTwo:
		return []string{PluralFew, PluralMany, PluralOther}
	case PluralFew:
		return []string{PluralMany, PluralOther}
	case PluralOther:
		return nil
	default:
		return []string{PluralOther}
	}
}
