package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config is populated from TSU_* environment variables. Station is the only
// required setting; everything else has a sensible default.
type Config struct {
	Station     string        `envconfig:"STATION" required:"true"`
	CacheDir    string        `envconfig:"CACHE_DIR"`
	APIURL      string        `envconfig:"API_URL" default:"https://api.tidesandcurrents.noaa.gov"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
	LogLevel    string        `envconfig:"LOG_LEVEL" default:"disabled"`
}

// Load reads configuration from the environment. A missing station id is the
// one fatal configuration error this program has.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("tsu", &cfg); err != nil {
		return nil, err
	}

	if cfg.CacheDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		cfg.CacheDir = filepath.Join(home, ".cache", "tsu")
	}

	return &cfg, nil
}

// InitializeLogging sets up zerolog. The default level is disabled: a prompt
// widget must keep stdout clean and stderr silent, so diagnostics only appear
// when TSU_LOG_LEVEL is set explicitly, and then only on stderr.
func (c *Config) InitializeLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		level = zerolog.Disabled
	}
	zerolog.SetGlobalLevel(level)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}
