package config

import (
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/pflag"
)

// Config stores dispatch service settings.
type Config struct {
	Port      int `envconfig:"PORT" default:"8080"`
	DB        DB
	Redis     Redis
	Kafka     Kafka
	Dispatch  Dispatch
	RateLimit RateLimit
	Pprof     Pprof
	Log       Log
}

// DB stores Postgres connection settings.
type DB struct {
	Host string `envconfig:"POSTGRES_HOST" default:"127.0.0.1"`
	Port string `envconfig:"POSTGRES_PORT" default:"5432"`
	User string `envconfig:"POSTGRES_USER" default:"myuser"`
	Pass string `envconfig:"POSTGRES_PASSWORD" default:"mypassword"`
	Name string `envconfig:"POSTGRES_DB" default:"dispatch_db"`

	ConnectAttempts int           `envconfig:"POSTGRES_CONNECT_ATTEMPTS" default:"10"`
	ConnectDelay    time.Duration `envconfig:"POSTGRES_CONNECT_DELAY" default:"1s"`
}

// DSN returns a postgres connection string.
func (d DB) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Pass),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Redis stores the rejection store connection. An empty Addr selects the in-memory store.
type Redis struct {
	Addr     string `envconfig:"REDIS_ADDR"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// Enabled reports whether a redis address is configured.
func (r Redis) Enabled() bool { return strings.TrimSpace(r.Addr) != "" }

// Kafka stores order events consumer settings.
type Kafka struct {
	Brokers []string `envconfig:"KAFKA_BROKERS"`
	Topic   string   `envconfig:"KAFKA_ORDERS_TOPIC" default:"orders.events"`
	GroupID string   `envconfig:"KAFKA_GROUP_ID" default:"dispatch-worker"`

	ClientID  string `envconfig:"KAFKA_CLIENT_ID" default:"marketplace-dispatch"`
	StartFrom string `envconfig:"KAFKA_START_FROM" default:"oldest"`

	RetryBackoff    time.Duration `envconfig:"KAFKA_RETRY_BACKOFF" default:"1s"`
	RetryMaxBackoff time.Duration `envconfig:"KAFKA_RETRY_MAX_BACKOFF" default:"30s"`
}

// Dispatch stores workflow settings.
type Dispatch struct {
	OperationTimeout time.Duration `envconfig:"DISPATCH_OPERATION_TIMEOUT" default:"3s"`
	RejectionTTL     time.Duration `envconfig:"DISPATCH_REJECTION_TTL" default:"2h"`
}

// RateLimit stores per-client token bucket settings.
type RateLimit struct {
	Enabled    bool          `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
	Rate       float64       `envconfig:"RATE_LIMIT_RPS" default:"5"`
	Burst      int           `envconfig:"RATE_LIMIT_BURST" default:"10"`
	TTL        time.Duration `envconfig:"RATE_LIMIT_TTL" default:"10m"`
	MaxBuckets int           `envconfig:"RATE_LIMIT_MAX_BUCKETS" default:"10000"`
}

// Pprof stores the debug server settings.
type Pprof struct {
	Enabled bool   `envconfig:"PPROF_ENABLED" default:"false"`
	Addr    string `envconfig:"PPROF_ADDR" default:"127.0.0.1:6060"`
	User    string `envconfig:"PPROF_USER"`
	Pass    string `envconfig:"PPROF_PASSWORD"`
}

// Log stores logger settings.
type Log struct {
	Level   string `envconfig:"LOG_LEVEL" default:"info"`
	Backend string `envconfig:"LOG_BACKEND" default:"slog"`
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if pflag.Lookup("port") == nil {
		pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	}
	if err := pflag.CommandLine.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if p, err := strconv.Atoi(c.DB.Port); err != nil || p <= 0 || p > 65535 {
		return fmt.Errorf("invalid postgres port: %q", c.DB.Port)
	}
	if c.Dispatch.OperationTimeout <= 0 {
		return fmt.Errorf("invalid dispatch operation timeout: %s", c.Dispatch.OperationTimeout)
	}
	if c.Dispatch.RejectionTTL <= 0 {
		return fmt.Errorf("invalid rejection ttl: %s", c.Dispatch.RejectionTTL)
	}
	if c.Pprof.Enabled && strings.TrimSpace(c.Pprof.Addr) == "" {
		return fmt.Errorf("pprof enabled without PPROF_ADDR")
	}
	switch c.Log.Backend {
	case "slog", "zap":
	default:
		return fmt.Errorf("invalid log backend: %q", c.Log.Backend)
	}
	return nil
}
