// Package redis wraps go-redis so repositories depend on a mockable client.
package redis

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-progression/internal/errors"
)

// Config describes how to reach Redis. Either URL or Addrs must be set.
// More than one address selects cluster mode.
type Config struct {
	URL         string
	Addrs       []string
	Password    string
	DB          int
	PoolSize    int
	MaxRetries  int
	DialTimeout time.Duration
	UseTLS      bool
}

// Validate validates the config
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	if c.URL == "" && len(c.Addrs) == 0 {
		vb.Field("addrs", "either url or addrs is required")
	}
	if c.URL != "" && len(c.Addrs) > 0 {
		vb.Field("url", "url and addrs are mutually exclusive")
	}
	if c.DB < 0 {
		vb.Field("db", "must not be negative")
	}
	if c.PoolSize < 0 {
		vb.Field("pool_size", "must not be negative")
	}
	if c.MaxRetries < 0 {
		vb.Field("max_retries", "must not be negative")
	}
	return vb.Build()
}

// NewClient builds a client from the config. Redis connects lazily, so no
// round trip happens here; call Ping to check reachability.
func NewClient(cfg *Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	if cfg.URL != "" {
		opts, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid redis url")
		}
		if cfg.PoolSize > 0 {
			opts.PoolSize = cfg.PoolSize
		}
		if cfg.MaxRetries > 0 {
			opts.MaxRetries = cfg.MaxRetries
		}
		if cfg.DialTimeout > 0 {
			opts.DialTimeout = cfg.DialTimeout
		}
		return redis.NewClient(opts), nil
	}

	opts := &redis.UniversalOptions{
		Addrs:       cfg.Addrs,
		Password:    cfg.Password,
		DB:          cfg.DB,
		PoolSize:    cfg.PoolSize,
		MaxRetries:  cfg.MaxRetries,
		DialTimeout: cfg.DialTimeout,
	}
	if cfg.UseTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	return redis.NewUniversalClient(opts), nil
}

// Ping checks that the server answers
func Ping(ctx context.Context, client Client) error {
	if err := client.Ping(ctx).Err(); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "redis unreachable")
	}
	return nil
}
