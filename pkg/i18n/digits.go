package i18n

import "strconv"

var nativeDigits = map[string][10]rune{
	"fa": {'۰', '۱', '۲', '۳', '۴', '۵', '۶', '۷', '۸', '۹'},
	"ar": {'٠', '١', '٢', '٣', '٤', '٥', '٦', '٧', '٨', '٩'},
}

// LocalizeDigits rewrites ASCII digits in s with the native digits of lang.
// Languages without native digits are returned unchanged.
func LocalizeDigits(lang, s string) string {
	digits, ok := nativeDigits[baseLanguage(lang)]
	if !ok {
		return s
	}

	out := []rune(s)
	for i, r := range out {
		if r >= '0' && r <= '9' {
			out[i] = digits[r-'0']
		}
	}
	return string(out)
}

// NormalizeDigits rewrites Persian and Arabic-Indic digits in s to ASCII.
// Phone numbers typed on Persian or Arabic keyboards pass through it.
func NormalizeDigits(s string) string {
	out := []rune(s)
	for i, r := range out {
		switch {
		case r >= '۰' && r <= '۹':
			out[i] = '0' + (r - '۰')
		case r >= '٠' && r <= '٩':
			out[i] = '0' + (r - '٠')
		}
	}
	return string(out)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
