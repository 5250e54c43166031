// Package i18n renders the site's interface text in Persian, English and
// Arabic.
//
// Catalogs are YAML files laid out as {lang}/{namespace}.yaml and loaded once
// at startup; the resulting I18n value is immutable. Lookups fall back from a
// regional tag to its base language and then to the default language, and
// return the key itself when nothing matches.
//
//	svc, err := i18n.New(
//		i18n.WithDefaultLanguage("fa"),
//		i18n.WithLanguages("fa", "en", "ar"),
//		i18n.WithYAMLDir(locales),
//	)
//	tr := i18n.NewTranslator(svc, "ar", "site")
//	tr.Tn("gallery.count", 12) // "١٢ عملًا"
//
// Counts are rendered with native digits (LocalizeDigits) and Accept-Language
// negotiation is delegated to golang.org/x/text/language.
package i18n
