package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/ehsanpg/mazzehabi/assets"
	"github.com/ehsanpg/mazzehabi/internal/order"
	"github.com/ehsanpg/mazzehabi/internal/works"
	"github.com/ehsanpg/mazzehabi/pkg/cookie"
)

// EnvPrefix prefixes environment overrides. A double underscore separates
// sections: MAZZEHABI_SERVER__ADDR sets server.addr.
const EnvPrefix = "MAZZEHABI_"

var ErrInvalid = errors.New("config: invalid")

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 30 * time.Second,
			StaticMaxAge:    24 * time.Hour,
		},
		Log: LogConfig{Level: "info", Format: "json"},
		Works: WorksConfig{
			Source:      assets.DefaultWorksSource,
			Refresh:     "@every 10m",
			TTL:         15 * time.Minute,
			HTTPTimeout: 10 * time.Second,
		},
		Cache: CacheConfig{Driver: "memory", Prefix: "mazzehabi:"},
		Redis: RedisConfig{PoolSize: 10},
		Order: OrderConfig{
			Endpoint:      order.DefaultEndpoint,
			Timeout:       order.DefaultTimeout,
			PhoneRule:     "pattern",
			Fallback:      string(order.FallbackBoth),
			FallbackDelay: 2 * time.Second,
		},
		Mail: MailConfig{
			FromName: "خانه مضه‌حبی",
			Timeout:  order.DefaultNotifyTimeout,
		},
		Translate: TranslateConfig{Enabled: true},
	}
}

// Load applies, in order, the defaults, the YAML file at path (skipped when
// path is empty or the file does not exist) and MAZZEHABI_ environment
// variables.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// Validate checks values and the combinations that depend on each other.
func (c *Config) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Server.Addr == "" {
		fail("server.addr is required")
	}
	if c.Cookie.Secret != "" && len(c.Cookie.Secret) < cookie.MinSecretLength {
		fail("cookie.secret must be at least %d bytes", cookie.MinSecretLength)
	}

	if c.Works.Source == "" {
		fail("works.source is required")
	}
	if strings.HasPrefix(c.Works.Source, "s3://") && (c.S3.AccessKey == "" || c.S3.SecretKey == "") {
		fail("works.source %q needs s3.access_key and s3.secret_key", c.Works.Source)
	}

	if interval, err := works.RefreshInterval(c.Works.Refresh); err != nil {
		fail("works.refresh: %v", err)
	} else if ttl := c.Works.TTL; ttl > 0 && ttl <= interval {
		fail("works.ttl %s must be longer than the refresh interval %s", ttl, interval)
	}

	switch c.Cache.Driver {
	case "", "memory":
	case "redis":
		if c.Redis.URL == "" {
			fail("cache.driver redis needs redis.url")
		}
	default:
		fail("cache.driver %q: want memory or redis", c.Cache.Driver)
	}

	if _, err := order.ParsePhoneRule(c.Order.PhoneRule); err != nil {
		fail("order.phone_rule: %v", err)
	}
	if _, err := order.ParseFallbackMode(c.Order.Fallback); err != nil {
		fail("order.fallback: %v", err)
	}

	if c.Mail.ResendAPIKey != "" {
		if c.Mail.FromEmail == "" {
			fail("mail.from_email is required when mail is enabled")
		}
		if len(c.Mail.OwnerEmail) == 0 {
			fail("mail.owner_email is required when mail is enabled")
		}
	}

	return errors.Join(errs...)
}

// MailEnabled reports whether owner notifications are configured.
func (c *Config) MailEnabled() bool {
	return c.Mail.ResendAPIKey != ""
}
