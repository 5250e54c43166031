// Package server assembles the site from its configuration.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/ehsanpg/mazzehabi/assets"
	"github.com/ehsanpg/mazzehabi/internal/config"
	"github.com/ehsanpg/mazzehabi/internal/handlers"
	"github.com/ehsanpg/mazzehabi/internal/order"
	"github.com/ehsanpg/mazzehabi/internal/site"
	"github.com/ehsanpg/mazzehabi/internal/translate"
	"github.com/ehsanpg/mazzehabi/internal/views"
	"github.com/ehsanpg/mazzehabi/internal/web"
	"github.com/ehsanpg/mazzehabi/internal/works"
	"github.com/ehsanpg/mazzehabi/middlewares"
	"github.com/ehsanpg/mazzehabi/pkg/cache"
	"github.com/ehsanpg/mazzehabi/pkg/cookie"
	"github.com/ehsanpg/mazzehabi/pkg/i18n"
	"github.com/ehsanpg/mazzehabi/pkg/mailer"
	"github.com/ehsanpg/mazzehabi/pkg/mailer/resend"
	"github.com/ehsanpg/mazzehabi/pkg/redis"
	"github.com/ehsanpg/mazzehabi/pkg/storage"
)

// Server is the assembled site with the hooks that start and stop its
// background work.
type Server struct {
	cfg       *config.Config
	logger    *slog.Logger
	app       *web.App
	catalog   *works.Catalog
	startup   []func(context.Context) error
	shutdown  []func(context.Context) error
	closers   []func(context.Context) error
	readiness []web.HealthOption
}

// Option overrides a dependency, mostly for tests.
type Option func(*deps)

type deps struct {
	cache      cache.Cache[[]works.Item]
	httpClient *http.Client
	sender     mailer.Sender
}

// WithCache replaces the configured catalog cache.
func WithCache(c cache.Cache[[]works.Item]) Option {
	return func(d *deps) { d.cache = c }
}

// WithHTTPClient sets the client used for the order endpoint.
func WithHTTPClient(c *http.Client) Option {
	return func(d *deps) { d.httpClient = c }
}

// WithMailSender enables owner notifications through sender regardless of
// the mail configuration.
func WithMailSender(s mailer.Sender) Option {
	return func(d *deps) { d.sender = s }
}

// New builds the site from cfg. ctx bounds connecting to Redis.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger, opts ...Option) (_ *Server, err error) {
	d := &deps{}
	for _, opt := range opts {
		opt(d)
	}
	s := &Server{cfg: cfg, logger: log}
	defer func() {
		if err != nil {
			for _, fn := range s.closers {
				_ = fn(context.WithoutCancel(ctx))
			}
		}
	}()

	translations, err := newI18n()
	if err != nil {
		return nil, err
	}

	catalog, err := s.newCatalog(ctx, d)
	if err != nil {
		return nil, err
	}
	s.catalog = catalog

	refresher, err := works.NewRefresher(catalog, cfg.Works.Refresh, log)
	if err != nil {
		return nil, err
	}
	s.startup = append(s.startup, refresher.StartFunc())
	s.shutdown = append(s.shutdown, refresher.Shutdown())

	service, err := s.newOrderService(d)
	if err != nil {
		return nil, err
	}
	s.shutdown = append(s.shutdown, service.Wait)

	widget := translate.New(translate.Config{
		Enabled:      cfg.Translate.Enabled,
		PageLanguage: string(site.DefaultLocale),
		Languages:    site.LocaleCodes(),
	})
	v, err := views.New(views.Config{
		I18n:          translations,
		Widget:        widget,
		FallbackDelay: cfg.Order.FallbackDelay,
	})
	if err != nil {
		return nil, err
	}

	// Connections close after the refresher and pending notifications.
	s.shutdown = append(s.shutdown, s.closers...)

	pages := handlers.NewPages(v, catalog)
	s.readiness = append(s.readiness, web.WithReadinessCheck("works", catalog.Healthcheck))

	s.app = web.New(
		web.WithLogger(log),
		web.WithCookieManager(cookie.New(
			cookie.WithSecret(cfg.Cookie.Secret),
			cookie.WithDomain(cfg.Cookie.Domain),
			cookie.WithSecure(cfg.Cookie.Secure),
		)),
		web.WithMiddleware(
			middlewares.RequestID(),
			middlewares.RequestLogger(),
			middlewares.Recover(),
			middlewares.Locale(translations, middlewares.WithLocaleNamespace(views.Namespace)),
			middlewares.Theme(),
		),
		web.WithStaticFiles("/static", assets.FS, "static", cfg.Server.StaticMaxAge),
		web.WithErrorHandler(handlers.ErrorHandler(v)),
		web.WithNotFoundHandler(handlers.NotFound),
		web.WithMethodNotAllowedHandler(handlers.MethodNotAllowed),
		web.WithHealthChecks(s.readiness...),
		web.WithHandlers(
			handlers.NewSite(pages, translations, widget),
			handlers.NewWorks(pages, catalog),
			handlers.NewOrder(pages, service),
		),
	)
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.app }

// Catalog returns the works catalog.
func (s *Server) Catalog() *works.Catalog { return s.catalog }

// Run serves on the configured address until SIGINT or SIGTERM.
func (s *Server) Run(ctx context.Context) error {
	opts := []web.RunOption{
		web.WithContext(ctx),
		web.ShutdownTimeout(s.cfg.Server.ShutdownTimeout),
	}
	for _, hook := range s.startup {
		opts = append(opts, web.StartupHook(hook))
	}
	for _, hook := range s.shutdown {
		opts = append(opts, web.ShutdownHook(hook))
	}
	return s.app.Run(s.cfg.Server.Addr, opts...)
}

// Start runs the startup hooks without serving, for tests and one-off
// commands.
func (s *Server) Start(ctx context.Context) error {
	for _, hook := range s.startup {
		if err := hook(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Stop runs the shutdown hooks.
func (s *Server) Stop(ctx context.Context) error {
	var errs []error
	for _, hook := range s.shutdown {
		if err := hook(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func newI18n() (*i18n.I18n, error) {
	locales, err := fs.Sub(assets.FS, "locales")
	if err != nil {
		return nil, fmt.Errorf("locales: %w", err)
	}
	return i18n.New(
		i18n.WithDefaultLanguage(string(site.DefaultLocale)),
		i18n.WithLanguages(site.LocaleCodes()...),
		i18n.WithYAMLDir(locales),
	)
}

// NewCatalog builds the works catalog from cfg alone, without Redis. The
// works command uses it to print the list.
func NewCatalog(cfg *config.Config, log *slog.Logger) (*works.Catalog, error) {
	source, err := newSource(cfg)
	if err != nil {
		return nil, err
	}
	return works.NewCatalog(source, cache.NewMemory[[]works.Item](),
		works.WithTTL(cfg.Works.TTL),
		works.WithLogger(log),
	), nil
}

func newSource(cfg *config.Config) (works.Source, error) {
	return works.NewSource(cfg.Works.Source, works.SourceOptions{
		Embedded:    assets.FS,
		HTTPTimeout: cfg.Works.HTTPTimeout,
		S3: func(bucket string) (storage.Reader, error) {
			return storage.New(storage.Config{
				Bucket:    bucket,
				AccessKey: cfg.S3.AccessKey,
				SecretKey: cfg.S3.SecretKey,
				Endpoint:  cfg.S3.Endpoint,
				Region:    cfg.S3.Region,
				PathStyle: cfg.S3.PathStyle,
			})
		},
	})
}

func (s *Server) newCatalog(ctx context.Context, d *deps) (*works.Catalog, error) {
	source, err := newSource(s.cfg)
	if err != nil {
		return nil, err
	}
	if src, ok := source.(works.S3Source); ok {
		if h, ok := src.Store.(interface{ Healthcheck(context.Context) error }); ok {
			s.readiness = append(s.readiness, web.WithReadinessCheck("s3", h.Healthcheck))
		}
	}

	c := d.cache
	if c == nil {
		c, err = s.newCache(ctx)
		if err != nil {
			return nil, err
		}
	}
	s.closers = append(s.closers, func(context.Context) error { return c.Close() })

	return works.NewCatalog(source, c,
		works.WithTTL(s.cfg.Works.TTL),
		works.WithLogger(s.logger),
	), nil
}

func (s *Server) newCache(ctx context.Context) (cache.Cache[[]works.Item], error) {
	if s.cfg.Cache.Driver != "redis" {
		return cache.NewMemory[[]works.Item](), nil
	}

	client, err := redis.Open(ctx, s.cfg.Redis.URL, redis.WithPoolSize(s.cfg.Redis.PoolSize))
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}
	s.readiness = append(s.readiness, web.WithReadinessCheck("works_cache", redis.Ping(client)))
	s.closers = append(s.closers, redis.Shutdown(client))
	return cache.NewRedis[[]works.Item](client, cache.WithPrefix(s.cfg.Cache.Prefix)), nil
}

func (s *Server) newOrderService(d *deps) (*order.Service, error) {
	rule, err := order.ParsePhoneRule(s.cfg.Order.PhoneRule)
	if err != nil {
		return nil, err
	}
	mode, err := order.ParseFallbackMode(s.cfg.Order.Fallback)
	if err != nil {
		return nil, err
	}

	client := order.NewClient(order.ClientConfig{
		Endpoint: s.cfg.Order.Endpoint,
		Timeout:  s.cfg.Order.Timeout,
	}, d.httpClient)

	opts := []order.ServiceOption{
		order.WithPhoneRule(rule),
		order.WithFallbackMode(mode),
		order.WithNotifyTimeout(s.cfg.Mail.Timeout),
		order.WithLogger(s.logger),
	}
	if n := s.newNotifier(d); n != nil {
		opts = append(opts, order.WithNotifier(n))
	}
	return order.NewService(client, opts...), nil
}

func (s *Server) newNotifier(d *deps) *order.Notifier {
	sender := d.sender
	if sender == nil {
		if !s.cfg.MailEnabled() {
			return nil
		}
		sender = resend.New(resend.Config{
			APIKey:    s.cfg.Mail.ResendAPIKey,
			FromEmail: s.cfg.Mail.FromEmail,
			FromName:  s.cfg.Mail.FromName,
		})
	}

	templates, err := fs.Sub(assets.FS, "mail")
	if err != nil {
		s.logger.Error("mail templates unavailable", slog.Any("error", err))
		return nil
	}
	m := mailer.New(sender, mailer.NewRenderer(templates, "layout.html"), mailer.Config{
		From:            mailer.Address(s.cfg.Mail.FromName, s.cfg.Mail.FromEmail),
		FallbackSubject: "سفارش جدید",
	})
	return order.NewNotifier(m, s.cfg.Mail.OwnerEmail...)
}

