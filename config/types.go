package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Plex     PlexConfig     `mapstructure:"plex"`
	Roulette RouletteConfig `mapstructure:"roulette"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// PlexConfig holds the Plex server address and plex.tv credentials
type PlexConfig struct {
	Host     string `mapstructure:"host"`
	Login    string `mapstructure:"login"`
	Password string `mapstructure:"password"`
	// Token skips sign-in when set
	Token            string        `mapstructure:"token"`
	ClientIdentifier string        `mapstructure:"client_identifier"`
	Product          string        `mapstructure:"product"`
	Version          string        `mapstructure:"version"`
	Timeout          time.Duration `mapstructure:"timeout"`
}

// HasCredentials reports whether a sign-in can be attempted
func (p PlexConfig) HasCredentials() bool {
	return p.Login != "" && p.Password != ""
}

// RouletteConfig contains the defaults for picking titles
type RouletteConfig struct {
	// Libraries are section keys to draw from; empty means all sections
	Libraries     []string          `mapstructure:"libraries"`
	DefaultFilter string            `mapstructure:"default_filter"`
	Presets       map[string]string `mapstructure:"presets"`
	Count         int               `mapstructure:"count"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
