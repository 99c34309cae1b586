package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port      string
	Env       string
	CoopName  string
	CoopTaxID string
}

// Load reads the service configuration from the environment, applying
// defaults where a variable is unset.
func Load() (*Config, error) {
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}
	if _, err := strconv.Atoi(port); err != nil {
		return nil, fmt.Errorf("SERVER_PORT must be numeric, got %q", port)
	}

	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	name := os.Getenv("COOP_NAME")
	if name == "" {
		name = "Cooperativa Central"
	}

	taxID := os.Getenv("COOP_TAX_ID")
	if taxID == "" {
		taxID = "900123456-7"
	}

	return &Config{
		Port:      port,
		Env:       env,
		CoopName:  name,
		CoopTaxID: taxID,
	}, nil
}
