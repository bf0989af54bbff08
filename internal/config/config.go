package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config contains server configuration parameters.
type Config struct {
	LogLevel int   `env:"LOG_LEVEL" envDefault:"0"`
	HTTP     HTTP  `envPrefix:"HTTP_"`
	Auth     Auth  `envPrefix:"AUTH_"`
	Store    Store `envPrefix:"STORE_"`
}

// HTTP contains HTTP server parameters.
type HTTP struct {
	Port               string `env:"PORT" envDefault:"8080"`
	EnableHTTPS        bool   `env:"ENABLE_HTTPS" envDefault:"false"`
	CertFileName       string `env:"CERT_FILE_NAME" envDefault:"cert.pem"`
	PrivateKeyFileName string `env:"PRIVATE_KEY_FILE_NAME" envDefault:"key.pem"`
}

// Auth contains API authentication parameters. Token has no default:
// an unset token means every authenticated route rejects requests.
type Auth struct {
	Token string `env:"TOKEN"`
}

// Store contains user store parameters.
type Store struct {
	FilePath string `env:"FILE_PATH" envDefault:"users.json"`
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
