package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"vehicle-insights/utils"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DataPath   string `envconfig:"DATA_PATH" default:"notebooks/vehicles_us.csv"`
	DataSource string `envconfig:"DATA_SOURCE" validate:"omitempty,oneof=csv xlsx postgres"`
	SheetName  string `envconfig:"SHEET_NAME"`

	PostgresHost     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	PostgresPort     string `envconfig:"POSTGRES_PORT" default:"5432" validate:"numeric"`
	PostgresUser     string `envconfig:"POSTGRES_USER" default:"vehicles"`
	PostgresPassword string `envconfig:"POSTGRES_PASSWORD" default:"vehicles"`
	PostgresDB       string `envconfig:"POSTGRES_DB" default:"vehicles_db"`
	PostgresSSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable"`
	PostgresTable    string `envconfig:"POSTGRES_TABLE" default:"vehicles" validate:"required"`

	HTTPAddr          string `envconfig:"HTTP_ADDR" default:":8501" validate:"required"`
	LogLevel          string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	ExportConcurrency int    `envconfig:"EXPORT_CONCURRENCY" default:"4" validate:"min=1,max=64"`
	PreviewRows       int    `envconfig:"PREVIEW_ROWS" default:"10" validate:"min=1,max=1000"`

	ChromeBin string `envconfig:"CHROME_BIN"`
}

// Load reads the .env file and returns a populated, validated Config.
func Load(logger *utils.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Info("[config] No .env file found, falling back to system env vars")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current process environment only.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}
