package storage

import (
	"context"
	"fmt"
	"strings"
)

const (
	DefaultRegion        = "us-east-1"
	DefaultMaxObjectSize = 8 << 20
)

// Reader fetches whole objects by key.
type Reader interface {
	Get(ctx context.Context, key string) ([]byte, error)
}

// Config describes an S3-compatible bucket. Endpoint overrides the AWS
// endpoint for MinIO or R2; MaxObjectSize caps how many bytes Get reads.
type Config struct {
	Bucket        string
	AccessKey     string
	SecretKey     string
	Endpoint      string
	Region        string
	PathStyle     bool
	MaxObjectSize int64
}

func (c *Config) applyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
	if c.MaxObjectSize <= 0 {
		c.MaxObjectSize = DefaultMaxObjectSize
	}
}

func (c Config) validate() error {
	var missing []string
	if c.Bucket == "" {
		missing = append(missing, "bucket")
	}
	if c.AccessKey == "" {
		missing = append(missing, "access key")
	}
	if c.SecretKey == "" {
		missing = append(missing, "secret key")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidConfig, strings.Join(missing, ", "))
	}
	return nil
}
