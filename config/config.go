// Package config loads the command line configuration from environment variables with defaults.
package config

import (
	"fmt"
	"os"
	"strconv"

	derrors "github.com/Jumpaku/go-drivemirror/errors"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/go-homedir"
)

// Config holds everything needed to build an authenticated session.
type Config struct {
	// Auth. CredentialsFile (service account or authorized user JSON) wins over ClientSecretFile.
	// With neither, application default credentials are used.
	CredentialsFile  string
	ClientSecretFile string
	TokenFile        string `validate:"required_with=ClientSecretFile"`

	// Logging
	LogLevel         string `validate:"oneof=panic fatal error warn warning info debug trace"`
	LogColorDisabled bool
}

const (
	EnvCredentials      = "DRIVEMIRROR_CREDENTIALS"
	EnvClientSecret     = "DRIVEMIRROR_CLIENT_SECRET"
	EnvTokenFile        = "DRIVEMIRROR_TOKEN_FILE"
	EnvLogLevel         = "DRIVEMIRROR_LOG_LEVEL"
	EnvLogColorDisabled = "DRIVEMIRROR_LOG_COLOR_DISABLED"

	DefaultTokenFile = "~/.config/drivemirror/token.json"
)

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		CredentialsFile:  envOr(EnvCredentials, ""),
		ClientSecretFile: envOr(EnvClientSecret, ""),
		TokenFile:        envOr(EnvTokenFile, DefaultTokenFile),
		LogLevel:         envOr(EnvLogLevel, "info"),
		LogColorDisabled: envBool(EnvLogColorDisabled, false),
	}
}

// Finalize expands '~' in file paths and validates the configuration.
func (c *Config) Finalize() error {
	for _, p := range []*string{&c.CredentialsFile, &c.ClientSecretFile, &c.TokenFile} {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("failed to expand '%s': %w", *p, derrors.ErrInvalidPath)
		}
		*p = expanded
	}
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w: %w", derrors.ErrInvalidArgument, err)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
