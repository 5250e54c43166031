package config

import "time"

// Config is the full site configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server" yaml:"server"`
	Log       LogConfig       `koanf:"log" yaml:"log"`
	Sentry    SentryConfig    `koanf:"sentry" yaml:"sentry"`
	Cookie    CookieConfig    `koanf:"cookie" yaml:"cookie"`
	Works     WorksConfig     `koanf:"works" yaml:"works"`
	Cache     CacheConfig     `koanf:"cache" yaml:"cache"`
	Redis     RedisConfig     `koanf:"redis" yaml:"redis"`
	S3        S3Config        `koanf:"s3" yaml:"s3"`
	Order     OrderConfig     `koanf:"order" yaml:"order"`
	Mail      MailConfig      `koanf:"mail" yaml:"mail"`
	Translate TranslateConfig `koanf:"translate" yaml:"translate"`
}

type ServerConfig struct {
	Addr            string        `koanf:"addr" yaml:"addr"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" yaml:"shutdown_timeout"`
	StaticMaxAge    time.Duration `koanf:"static_max_age" yaml:"static_max_age"`
}

type LogConfig struct {
	Level  string `koanf:"level" yaml:"level"`
	Format string `koanf:"format" yaml:"format"`
}

type SentryConfig struct {
	DSN         string `koanf:"dsn" yaml:"dsn"`
	Environment string `koanf:"environment" yaml:"environment"`
}

// CookieConfig configures the cookie manager. Secret encrypts the order
// flash cookie and must be at least 32 bytes when set.
type CookieConfig struct {
	Secret string `koanf:"secret" yaml:"secret"`
	Domain string `koanf:"domain" yaml:"domain"`
	Secure bool   `koanf:"secure" yaml:"secure"`
}

// WorksConfig selects where the portfolio comes from: "embed:<path>",
// "file://<path>", an http(s) URL or "s3://bucket/key".
type WorksConfig struct {
	Source      string        `koanf:"source" yaml:"source"`
	Refresh     string        `koanf:"refresh" yaml:"refresh"`
	TTL         time.Duration `koanf:"ttl" yaml:"ttl"`
	HTTPTimeout time.Duration `koanf:"http_timeout" yaml:"http_timeout"`
}

// CacheConfig selects the catalog cache: "memory" or "redis".
type CacheConfig struct {
	Driver string `koanf:"driver" yaml:"driver"`
	Prefix string `koanf:"prefix" yaml:"prefix"`
}

type RedisConfig struct {
	URL      string `koanf:"url" yaml:"url"`
	PoolSize int    `koanf:"pool_size" yaml:"pool_size"`
}

type S3Config struct {
	Bucket    string `koanf:"bucket" yaml:"bucket"`
	AccessKey string `koanf:"access_key" yaml:"access_key"`
	SecretKey string `koanf:"secret_key" yaml:"secret_key"`
	Endpoint  string `koanf:"endpoint" yaml:"endpoint"`
	Region    string `koanf:"region" yaml:"region"`
	PathStyle bool   `koanf:"path_style" yaml:"path_style"`
}

// OrderConfig configures the order form. PhoneRule is "pattern" or
// "digits"; Fallback is "form", "link" or "both".
type OrderConfig struct {
	Endpoint      string        `koanf:"endpoint" yaml:"endpoint"`
	Timeout       time.Duration `koanf:"timeout" yaml:"timeout"`
	PhoneRule     string        `koanf:"phone_rule" yaml:"phone_rule"`
	Fallback      string        `koanf:"fallback" yaml:"fallback"`
	FallbackDelay time.Duration `koanf:"fallback_delay" yaml:"fallback_delay"`
}

// MailConfig configures owner notifications. They are off while
// ResendAPIKey is empty.
type MailConfig struct {
	ResendAPIKey string        `koanf:"resend_api_key" yaml:"resend_api_key"`
	FromEmail    string        `koanf:"from_email" yaml:"from_email"`
	FromName     string        `koanf:"from_name" yaml:"from_name"`
	OwnerEmail   []string      `koanf:"owner_email" yaml:"owner_email"`
	Timeout      time.Duration `koanf:"timeout" yaml:"timeout"`
}

type TranslateConfig struct {
	Enabled bool `koanf:"enabled" yaml:"enabled"`
}
