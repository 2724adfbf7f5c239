package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the process configuration, read once at startup from the
// environment so main stays lean.
type Config struct {
	Server   Server
	Log      Log
	Systems  Systems
	Database Database
	Redis    RedisConfig
	Batch    Batch
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `env:"NUMERUS_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"NUMERUS_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type Log struct {
	Level  string `env:"NUMERUS_LOG_LEVEL" envDefault:"info"`
	Format string `env:"NUMERUS_LOG_FORMAT" envDefault:"json"`
}

// Systems selects where rule-set definitions come from. Dir, when set,
// replaces the embedded definitions.
type Systems struct {
	Dir      string        `env:"NUMERUS_SYSTEMS_DIR"`
	Default  string        `env:"NUMERUS_DEFAULT_SYSTEM" envDefault:"pythagorean"`
	CacheTTL time.Duration `env:"NUMERUS_RULESET_CACHE_TTL" envDefault:"10m"`
}

// Database enables the Postgres rule-set store when URL is set.
type Database struct {
	URL string `env:"DATABASE_URL"`
}

// RedisConfig enables the shared definition cache when URL is set.
type RedisConfig struct {
	URL          string        `env:"REDIS_URL"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"2s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"500ms"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"500ms"`
}

type Batch struct {
	MaxItems    int `env:"NUMERUS_BATCH_MAX_ITEMS" envDefault:"50"`
	Concurrency int `env:"NUMERUS_BATCH_CONCURRENCY" envDefault:"4"`
}

// FromEnv loads and validates the configuration.
func FromEnv() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Batch.MaxItems < 1 {
		return fmt.Errorf("NUMERUS_BATCH_MAX_ITEMS must be positive, got %d", c.Batch.MaxItems)
	}
	if c.Batch.Concurrency < 1 {
		return fmt.Errorf("NUMERUS_BATCH_CONCURRENCY must be positive, got %d", c.Batch.Concurrency)
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("NUMERUS_LOG_FORMAT must be json or text, got %q", c.Log.Format)
	}
	return nil
}
