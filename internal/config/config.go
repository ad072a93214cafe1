// Package config loads process-level settings for the lantran CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "lantran"

type Settings struct {
	Environment string        `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string        `envconfig:"LOG_LEVEL" default:"info"`
	Timeout     time.Duration `envconfig:"TIMEOUT" default:"30s"`
	DBPath      string        `envconfig:"DB" default:"./data/lantran.db"`
	UserAgent   string        `envconfig:"USER_AGENT" default:"lantran"`
}

// Load reads envFile (when it exists) into the process environment without
// overriding variables that are already set, then processes LANTRAN_*
// variables into Settings.
func Load(envFile string) (*Settings, error) {
	if strings.TrimSpace(envFile) != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	var s Settings
	if err := envconfig.Process(envPrefix, &s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &s, nil
}

func (s *Settings) Validate() error {
	if s.Timeout <= 0 {
		return fmt.Errorf("LANTRAN_TIMEOUT must be > 0")
	}
	if strings.TrimSpace(s.LogLevel) == "" {
		return fmt.Errorf("LANTRAN_LOG_LEVEL is required")
	}
	if strings.TrimSpace(s.Environment) == "" {
		return fmt.Errorf("LANTRAN_ENVIRONMENT is required")
	}
	return nil
}
