package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. PLEXROULETTE_PLEX_PASSWORD
const EnvPrefix = "PLEXROULETTE"

// Load loads the configuration from file and environment.
// Without an explicit path a missing config file is not an error, so
// credentials can come from the environment alone.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".plexroulette"))
		}

		// Check /etc
		v.AddConfigPath("/etc/plexroulette/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values. Every key is registered
// so that environment overrides are picked up by Unmarshal.
func setDefaults(v *viper.Viper) {
	// Plex defaults
	v.SetDefault("plex.host", "http://localhost:32400")
	v.SetDefault("plex.login", "")
	v.SetDefault("plex.password", "")
	v.SetDefault("plex.token", "")
	v.SetDefault("plex.client_identifier", "")
	v.SetDefault("plex.product", "PlexRoulette")
	v.SetDefault("plex.version", "1")
	v.SetDefault("plex.timeout", "30s")

	// Roulette defaults
	v.SetDefault("roulette.libraries", []string{})
	v.SetDefault("roulette.default_filter", "")
	v.SetDefault("roulette.count", 1)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Plex.Host == "" {
		return fmt.Errorf("plex.host is required")
	}

	if cfg.Plex.Token == "" && !cfg.Plex.HasCredentials() {
		return fmt.Errorf("plex.token or plex.login and plex.password must be set")
	}

	if cfg.Plex.Timeout < 0 {
		return fmt.Errorf("plex.timeout must not be negative")
	}

	if cfg.Roulette.Count < 1 {
		return fmt.Errorf("roulette.count must be at least 1")
	}

	for name, expression := range cfg.Roulette.Presets {
		if strings.TrimSpace(expression) == "" {
			return fmt.Errorf("roulette.presets.%s has an empty expression", name)
		}
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
