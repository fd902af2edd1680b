package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/caarlos0/env/v11"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	// Database
	DBDriver    string `env:"DB_DRIVER" envDefault:"sqlite"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"library.db"`
	DBHost      string `env:"DB_HOST" envDefault:"localhost"`
	DBPort      string `env:"DB_PORT" envDefault:"5432"`
	DBUser      string `env:"DB_USER" envDefault:"library"`
	DBPassword  string `env:"DB_PASSWORD" envDefault:"library"`
	DBName      string `env:"DB_NAME" envDefault:"library"`
	DBSSLMode   string `env:"DB_SSLMODE" envDefault:"disable"`
	DatabaseURL string `env:"DATABASE_URL"`

	// Redis
	EnableCache bool   `env:"ENABLE_CACHE" envDefault:"false"`
	RedisURL    string `env:"REDIS_URL" envDefault:"localhost:6379"`

	// Server
	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// CORS
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:8080"`

	// Rate Limiting
	RateLimitRequests int `env:"RATE_LIMIT_REQUESTS" envDefault:"100"`
	RateLimitWindow   int `env:"RATE_LIMIT_WINDOW" envDefault:"60"`
	RateLimitBurst    int `env:"RATE_LIMIT_BURST" envDefault:"0"`

	// Features
	EnableMetrics bool `env:"ENABLE_METRICS" envDefault:"true"`
	SeedOnStart   bool `env:"SEED_ON_START" envDefault:"false"`

	// Site Meta
	SiteName        string `env:"SITE_NAME" envDefault:"Personal Library"`
	SiteDescription string `env:"SITE_DESCRIPTION" envDefault:"Keep track of books, readers and their reviews."`
}

func New() (*Config, error) {
	c := &Config{}
	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres, DriverMemory:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	origins := c.CORSOrigins[:0]
	for _, origin := range c.CORSOrigins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	c.CORSOrigins = origins

	if c.DatabaseURL == "" && c.DBDriver == DriverPostgres {
		c.DatabaseURL = c.postgresURL()
	}

	return c, nil
}

// postgresURL assembles a DSN from the DB_* settings, escaping credentials
// and the database name.
func (c *Config) postgresURL() string {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": {c.DBSSLMode}}.Encode(),
	}
	return dsn.String()
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
