package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	CacheMemory = "memory"
	CacheRedis  = "redis"
)

type Config struct {
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`

	Governance Governance
	Database   Database
	Redis      Redis
	Auth       Auth

	CacheBackend string `envconfig:"CACHE_BACKEND" default:"memory"`
}

// Governance holds the identities and thresholds the consortium starts with.
type Governance struct {
	OwnerAddress string          `envconfig:"OWNER_ADDRESS" required:"true"`
	SeedAirline  string          `envconfig:"SEED_AIRLINE" required:"true"`
	AppAddress   string          `envconfig:"APP_ADDRESS" required:"true"`
	AuthorizeApp bool            `envconfig:"AUTHORIZE_APP" default:"true"`
	MinFunding   decimal.Decimal `envconfig:"MIN_FUNDING" default:"10000000000000000000"`

	EventsEnabled bool   `envconfig:"EVENTS_ENABLED" default:"false"`
	EventsStream  string `envconfig:"EVENTS_STREAM" default:"governance:events"`
}

type Database struct {
	Driver     string `envconfig:"DB_DRIVER" default:"sqlite"`
	SQLitePath string `envconfig:"SQLITE_PATH" default:"consortium.db"`

	Host     string `envconfig:"PG_HOST" default:"localhost"`
	Port     string `envconfig:"PG_PORT" default:"5432"`
	User     string `envconfig:"PG_USER"`
	Name     string `envconfig:"PG_DB"`
	Password string `envconfig:"PG_PASSWORD"`
}

// DSN builds the postgres connection string the same way for sqlx and GORM.
func (d Database) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", d.User, d.Password, d.Host, d.Port, d.Name)
}

type Redis struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

func (r Redis) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

type Auth struct {
	JWTSecret      string  `envconfig:"JWT_SECRET"`
	RateLimitRPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"5"`
	RateLimitBurst int     `envconfig:"RATE_LIMIT_BURST" default:"10"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// A missing .env is normal outside local development
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	g := c.Governance
	if g.OwnerAddress == "" || g.SeedAirline == "" || g.AppAddress == "" {
		return fmt.Errorf("OWNER_ADDRESS, SEED_AIRLINE and APP_ADDRESS must be set")
	}

	switch strings.ToLower(c.Database.Driver) {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}

	switch strings.ToLower(c.CacheBackend) {
	case CacheMemory, CacheRedis:
	default:
		return fmt.Errorf("unsupported CACHE_BACKEND %q", c.CacheBackend)
	}

	if c.Governance.MinFunding.IsNegative() || !c.Governance.MinFunding.IsInteger() {
		return fmt.Errorf("MIN_FUNDING must be a non-negative integer, got %s", c.Governance.MinFunding)
	}

	if c.Auth.JWTSecret == "" && c.AppEnv == "production" {
		return fmt.Errorf("JWT_SECRET is required in production")
	}
	return nil
}
