package i18n

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// DefaultLang is the default language code used when no default language is specified.
const DefaultLang = "en"

// I18n holds flattened translation catalogs and plural rules.
// It is immutable after creation, making it safe for concurrent use.
type I18n struct {
	// Key format: "lang:namespace:key.path"
	translations      map[string]string
	pluralRules       map[string]PluralRule
	missingKeyHandler func(lang, namespace, key string)
	defaultLang       string
	languages         []string
}

// Option configures the I18n instance during construction.
type Option func(*I18n) error

// New creates a new I18n instance with the given options.
func New(opts ...Option) (*I18n, error) {
	i := &I18n{
		translations: make(map[string]string),
		pluralRules:  make(map[string]PluralRule),
		defaultLang:  DefaultLang,
	}

	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if i.defaultLang == "" {
		return nil, ErrEmptyLanguage
	}
	i.languages = i.buildLanguagesList()

	return i, nil
}

// WithDefaultLanguage sets the default/fallback language.
func WithDefaultLanguage(lang string) Option {
	return func(i *I18n) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		i.defaultLang = lang
		return nil
	}
}

// WithLanguages sets the supported languages.
// The default language is always listed first; the rest keep the given order.
func WithLanguages(langs ...string) Option {
	return func(i *I18n) error {
		i.languages = nil
		for _, lang := range langs {
			if lang != "" && !slices.Contains(i.languages, lang) {
				i.languages = append(i.languages, lang)
			}
		}
		return nil
	}
}

// WithTranslations loads translations for a specific language and namespace.
// Nested maps are flattened into dotted keys.
func WithTranslations(lang, namespace string, translations map[string]any) Option {
	return func(i *I18n) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		if namespace == "" {
			return ErrEmptyNamespace
		}
		i.add(lang, namespace, translations)
		return nil
	}
}

// WithMissingKeyHandler sets a handler called when a key is not found in any
// language, including the default fallback.
func WithMissingKeyHandler(handler func(lang, namespace, key string)) Option {
	return func(i *I18n) error {
		i.missingKeyHandler = handler
		return nil
	}
}

// T retrieves a translation for the given language, namespace, and key.
// Falls back to the default language; returns the key itself if nothing matches.
func (i *I18n) T(lang, namespace, key string, placeholders ...M) string {
	if translation, ok := i.lookup(lang, namespace, key); ok {
		return replacePlaceholdersWithMerge(translation, placeholders...)
	}

	if i.missingKeyHandler != nil {
		i.missingKeyHandler(lang, namespace, key)
	}
	return key
}

// Tn retrieves a pluralized translation for the given count.
// The count is available to the template as {{count}}.
func (i *I18n) Tn(lang, namespace, key string, n int, placeholders ...M) string {
	rule, ok := i.pluralRules[lang]
	if !ok {
		rule = GetPluralRuleForLanguage(lang)
	}

	merged := M{"count": n}
	for _, p := range placeholders {
		maps.Copy(merged, p)
	}

	form := rule(n)
	for _, candidate := range append([]string{form}, pluralFallbackForms(form)...) {
		if translation, ok := i.lookup(lang, namespace, key+"."+candidate); ok {
			return ReplacePlaceholders(translation, merged)
		}
	}

	if i.missingKeyHandler != nil {
		i.missingKeyHandler(lang, namespace, key)
	}
	return key
}

// Has reports whether the key is translated for lang without falling back.
func (i *I18n) Has(lang, namespace, key string) bool {
	_, ok := i.translations[buildKey(lang, namespace, key)]
	return ok
}

// Languages returns the list of available languages.
func (i *I18n) Languages() []string {
	return slices.Clone(i.languages)
}

// DefaultLanguage returns the default/fallback language.
func (i *I18n) DefaultLanguage() string {
	return i.defaultLang
}

func (i *I18n) lookup(lang, namespace, key string) (string, bool) {
	candidates := []string{lang}
	if base := baseLanguage(lang); base != lang {
		candidates = append(candidates, base)
	}
	if !slices.Contains(candidates, i.defaultLang) {
		candidates = append(candidates, i.defaultLang)
	}

	for _, l := range candidates {
		if translation, ok := i.translations[buildKey(l, namespace, key)]; ok {
			return translation, true
		}
	}
	return "", false
}

func (i *I18n) add(lang, namespace string, translations map[string]any) {
	for key, value := range flattenTranslations(translations, "") {
		i.translations[buildKey(lang, namespace, key)] = value
	}
	if _, exists := i.pluralRules[lang]; !exists {
		i.pluralRules[lang] = GetPluralRuleForLanguage(lang)
	}
}

func (i *I18n) buildLanguagesList() []string {
	langs := []string{i.defaultLang}
	for _, l := range i.languages {
		if l != i.defaultLang {
			langs = append(langs, l)
		}
	}
	return langs
}

func buildKey(lang, namespace, key string) string {
	return lang + ":" + namespace + ":" + key
}

func flattenTranslations(data map[string]any, prefix string) map[string]string {
	result := make(map[string]string)

	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[fullKey] = v
		case map[string]any:
			maps.Copy(result, flattenTranslations(v, fullKey))
		case map[string]string:
			for subKey, subVal := range v {
				result[fullKey+"."+subKey] = subVal
			}
		default:
			result[fullKey] = fmt.Sprintf("%v", v)
		}
	}

	return result
}

func replacePlaceholdersWithMerge(template string, placeholders ...M) string {
	if len(placeholders) == 0 {
		return template
	}

	merged := make(M)
	for _, p := range placeholders {
		maps.Copy(merged, p)
	}
	return ReplacePlaceholders(template, merged)
}

// baseLanguage strips the region from a language tag ("fa-IR" -> "fa").
func baseLanguage(lang string) string {
	if i := strings.IndexByte(lang, '-'); i > 0 {
		return lang[:i]
	}
	return lang
}
