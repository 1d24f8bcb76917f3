package database

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/redis/go-redis/v9"
)

// RedisConfig holds connection settings for the Redis instance backing the
// notification stream and token revocation.
type RedisConfig struct {
	Enabled         bool   `env:"REDIS_ENABLED" envDefault:"false"`
	Host            string `env:"REDIS_HOST" envDefault:"localhost"`
	Port            string `env:"REDIS_PORT" envDefault:"6379"`
	Password        string `env:"REDIS_PASSWORD"`
	Database        int    `env:"REDIS_DB" envDefault:"0"`
	MaxRetries      int    `env:"REDIS_MAX_RETRIES" envDefault:"3"`
	PoolSize        int    `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns    int    `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	EnableTLS       bool   `env:"REDIS_TLS" envDefault:"false"`
	ConnMaxIdleTime string `env:"REDIS_CONN_MAX_IDLE_TIME" envDefault:"30m"`
	ConnMaxLifetime string `env:"REDIS_CONN_MAX_LIFETIME" envDefault:"1h"`
}

// GetAddr returns host:port.
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// LoadRedisConfig reads RedisConfig from the environment.
func LoadRedisConfig() (*RedisConfig, error) {
	cfg := &RedisConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to load redis configuration: %w", err)
	}
	return cfg, nil
}

// NewRedisClient creates a new Redis client using the provided configuration
func NewRedisClient(cfg *RedisConfig) *redis.Client {
	connMaxIdleTime, _ := time.ParseDuration(cfg.ConnMaxIdleTime)
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 30 * time.Minute
	}

	connMaxLifetime, _ := time.ParseDuration(cfg.ConnMaxLifetime)
	if connMaxLifetime == 0 {
		connMaxLifetime = time.Hour
	}

	options := &redis.Options{
		Addr:         cfg.GetAddr(),
		Password:     cfg.Password,
		DB:           cfg.Database,
		MaxRetries:   cfg.MaxRetries,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,

		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolTimeout:  4 * time.Second,

		ConnMaxIdleTime: connMaxIdleTime,
		ConnMaxLifetime: connMaxLifetime,
	}

	if cfg.EnableTLS {
		options.TLSConfig = &tls.Config{
			ServerName: cfg.Host,
		}
	}

	return redis.NewClient(options)
}

// ConnectRedis creates a client and verifies it with PING.
func ConnectRedis(ctx context.Context, cfg *RedisConfig) (*redis.Client, error) {
	client := NewRedisClient(cfg)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.GetAddr(), err)
	}
	return client, nil
}
