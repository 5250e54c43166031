// Package logger builds the site's slog.Logger.
//
// Records go to stdout as JSON (or text for local work) and, when a Sentry
// DSN is configured, also to Sentry: errors become issues, warnings are kept
// as searchable logs.
//
// Request-scoped values are attached through ContextExtractor functions that
// run on every log call:
//
//	log := logger.New(logger.Config{Level: "debug"},
//		middlewares.RequestIDExtractor(),
//		middlewares.LocaleExtractor(),
//	)
//	log.InfoContext(ctx, "order submitted", slog.String("ref", ref))
package logger
