package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Xpense"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Ledger struct {
		// Balance floor below which a low-funds alert is raised.
		LowBalanceThreshold string `envconfig:"LOW_BALANCE_THRESHOLD" default:"100.00"`
		// Prefix for auto-generated expenditure ids.
		IDPrefix string `envconfig:"EXPENDITURE_ID_PREFIX" default:"EXP-"`
	}

	Persistence struct {
		// Backend selects the persistence collaborator: flatfile or postgres.
		Backend string `envconfig:"PERSISTENCE_BACKEND" default:"flatfile"`
		DataDir string `envconfig:"DATA_DIR" default:"data"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"xpense"`
	}

	Auth struct {
		// HMAC secret for API bearer tokens. Auth is disabled when blank.
		Secret string `envconfig:"AUTH_SECRET"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// Threshold parses the configured low-balance threshold.
func (c *Config) Threshold() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(c.Ledger.LowBalanceThreshold)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing LOW_BALANCE_THRESHOLD: %w", err)
	}

	return d, nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
