package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/nwp-tools/windborne-export/internal/log"
)

var validate = validator.New()

// AppConfig holds everything resolved from the environment. The API
// credentials are required; without them the run aborts before any
// network activity.
type AppConfig struct {
	// WindBorne API credentials. Contact WindBorne if you do not have
	// a client ID or API key.
	ClientID string `validate:"required"`
	APIKey   string `validate:"required"`

	// BaseURL of the sensor-data API; empty means production.
	BaseURL string `validate:"omitempty,url"`

	// OutputDir is where CSV files land. Defaults to the working
	// directory; the -o flag overrides it.
	OutputDir string
}

// Load reads configuration from the environment, honouring a local
// .env file if one exists.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env file loaded: %v", err)
	}

	cfg := &AppConfig{
		ClientID:  os.Getenv("WB_CLIENT_ID"),
		APIKey:    os.Getenv("WB_API_KEY"),
		BaseURL:   os.Getenv("WB_API_URL"),
		OutputDir: getenvDefault("WB_OUTPUT_DIR", "."),
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("you must set environment variables WB_CLIENT_ID and WB_API_KEY: %w", err)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
