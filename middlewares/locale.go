package middlewares

import (
	"context"
	"slices"

	"github.com/ehsanpg/mazzehabi/internal/web"
	"github.com/ehsanpg/mazzehabi/pkg/i18n"
	"github.com/ehsanpg/mazzehabi/pkg/logger"
)

type LocaleConfig struct {
	Namespace    string
	Extractor    web.Extractor
	extractorSet bool
}

type LocaleOption func(*LocaleConfig)

func WithLocaleNamespace(ns string) LocaleOption {
	return func(cfg *LocaleConfig) {
		cfg.Namespace = ns
	}
}

func WithLocaleExtractor(ext web.Extractor) LocaleOption {
	return func(cfg *LocaleConfig) {
		cfg.Extractor = ext
		cfg.extractorSet = true
	}
}

// FromAcceptLanguage picks the best available language from the
// Accept-Language header.
func FromAcceptLanguage(available []string) web.ExtractorSource {
	return func(c web.Context) (string, bool) {
		lang := i18n.MatchAcceptLanguage(c.Header("Accept-Language"), available)
		return lang, lang != ""
	}
}

// Locale resolves the request language and stores a translator for it.
// The default order is the lang query parameter, the lang cookie, the
// Accept-Language header and finally the catalog's default language.
// Values outside the catalog's languages are skipped.
func Locale(svc *i18n.I18n, opts ...LocaleOption) web.Middleware {
	cfg := &LocaleConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	available := svc.Languages()
	if !cfg.extractorSet {
		cfg.Extractor = web.NewExtractor(
			supported(web.FromQuery("lang"), available),
			supported(web.FromCookie("lang"), available),
			FromAcceptLanguage(available),
		)
	}

	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(c web.Context) error {
			lang, ok := cfg.Extractor.Extract(c)
			if !ok {
				lang = svc.DefaultLanguage()
			}

			c.Set(web.TranslatorKey{}, i18n.NewTranslator(svc, lang, cfg.Namespace))
			c.SetHeader("Content-Language", lang)
			c.Response().Header().Add("Vary", "Accept-Language, Cookie")

			return next(c)
		}
	}
}

func supported(src web.ExtractorSource, available []string) web.ExtractorSource {
	return func(c web.Context) (string, bool) {
		v, ok := src(c)
		if !ok || !slices.Contains(available, v) {
			return "", false
		}
		return v, true
	}
}

// GetTranslator returns the translator set by Locale.
func GetTranslator(ctx context.Context) *i18n.Translator {
	tr, _ := ctx.Value(web.TranslatorKey{}).(*i18n.Translator)
	return tr
}

// LocaleExtractor adds the resolved language to log records.
func LocaleExtractor() logger.ContextExtractor {
	return logger.StringExtractor("locale", func(ctx context.Context) string {
		if tr := GetTranslator(ctx); tr != nil {
			return tr.Language()
		}
		return ""
	})
}
