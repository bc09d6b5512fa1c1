package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// SERVER_ADDR points at a running server. The suites skip when it is empty.
	ServerAddr string `envconfig:"SERVER_ADDR"`
	// E2E_OWNER_SCOPE must match the OWNER_SCOPE of the server under test
	OwnerScope string `envconfig:"E2E_OWNER_SCOPE" default:"session"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
