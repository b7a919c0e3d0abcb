package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all server configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Sessions SessionsConfig `yaml:"sessions"`
	Game     GameConfig     `yaml:"game"`
	Ngrok    NgrokConfig    `yaml:"ngrok"`
}

// ServerConfig holds server-specific settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// SessionsConfig holds session storage settings. Backend selects where
// sessions live between restarts: "memory", "file" or "sqlite".
type SessionsConfig struct {
	Backend        string `yaml:"backend"`
	Dir            string `yaml:"dir"`
	SqlitePath     string `yaml:"sqlite_path"`
	CleanupMinutes int    `yaml:"cleanup_minutes"`
}

// GameConfig holds defaults for newly created games
type GameConfig struct {
	DefaultPreset string   `yaml:"default_preset"`
	DefaultSeats  []string `yaml:"default_seats"`
}

// NgrokConfig holds public tunnel settings
type NgrokConfig struct {
	Enabled bool   `yaml:"enabled"`
	Domain  string `yaml:"domain"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Sessions: SessionsConfig{
			Backend:        "file",
			Dir:            "sessions",
			SqlitePath:     "sessions.db",
			CleanupMinutes: 0,
		},
		Game: GameConfig{
			DefaultPreset: "first",
			DefaultSeats:  []string{"human", "greedy"},
		},
	}
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault loads the file when it exists and falls back to defaults
// otherwise. An unreadable or invalid file is still an error.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Addr returns the host:port the server should listen on
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) validate() error {
	switch c.Sessions.Backend {
	case "memory", "file", "sqlite":
	default:
		return fmt.Errorf("unknown sessions backend %q (want memory, file or sqlite)", c.Sessions.Backend)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	return nil
}
