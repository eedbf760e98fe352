package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"expense-tracking"`
		Port int    `envconfig:"PORT" default:"8080"`
		Env  string `envconfig:"APP_ENV" default:"development"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"expenses"`
		SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Auth struct {
		JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
		TokenTTL  time.Duration `envconfig:"JWT_TTL" default:"24h"`
		Issuer    string        `envconfig:"JWT_ISSUER" default:"expense-tracking"`
	}

	Upload struct {
		MaxBytes int64 `envconfig:"UPLOAD_MAX_BYTES" default:"5242880"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`
	}

	RateLimit struct {
		// Login is a ulule/limiter rate such as "5-M" (five per minute).
		Login string `envconfig:"RATE_LIMIT_LOGIN" default:"5-M"`
	}

	// Seed is only read by cmd/seed.
	Seed struct {
		AdminEmail       string   `envconfig:"SEED_ADMIN_EMAIL" default:"admin@example.com"`
		AdminPassword    string   `envconfig:"SEED_ADMIN_PASSWORD" default:"admin123"`
		EmployeeEmails   []string `envconfig:"SEED_EMPLOYEE_EMAILS" default:"john@example.com,jane@example.com"`
		EmployeePassword string   `envconfig:"SEED_EMPLOYEE_PASSWORD" default:"employee123"`
		Categories       []string `envconfig:"SEED_CATEGORIES" default:"Travel,Meals,Office Supplies,Software"`
	}
}

func (c *Config) ConnectionString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DB.User, c.DB.Password),
		Host:     fmt.Sprintf("%s:%d", c.DB.Host, c.DB.Port),
		Path:     c.DB.Name,
		RawQuery: url.Values{"sslmode": {c.DB.SSLMode}}.Encode(),
	}

	return u.String()
}

// Load reads the configuration from the environment, after loading a .env file if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
