package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
	Search    SearchConfig    `yaml:"search"`
	Import    ImportConfig    `yaml:"import"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// SearchConfig holds the fuzzy-match edit budgets as a fraction of the
// token length. The multi-token budget is capped by the single-token one.
type SearchConfig struct {
	Threshold           float64 `yaml:"threshold"`
	MultiTokenThreshold float64 `yaml:"multi_token_threshold"`
}

type ImportConfig struct {
	StateDir string `yaml:"state_dir"`
}

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A .env file next to the working directory is loaded first if present; it
// never overrides variables already set in the environment.
// Env vars use the prefix WODBOARD_ and underscore-separated paths:
//
//	WODBOARD_SERVER_HOST, WODBOARD_SERVER_PORT,
//	WODBOARD_DB_HOST, WODBOARD_DB_PORT, WODBOARD_DB_NAME,
//	WODBOARD_DB_USER, WODBOARD_DB_PASSWORD, WODBOARD_DB_SSLMODE,
//	WODBOARD_AUTH_API_KEY,
//	WODBOARD_TAILSCALE_ENABLED, WODBOARD_TAILSCALE_HOSTNAME, WODBOARD_TAILSCALE_STATE_DIR,
//	WODBOARD_SEARCH_THRESHOLD, WODBOARD_SEARCH_MULTI_TOKEN_THRESHOLD,
//	WODBOARD_IMPORT_STATE_DIR
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// Default returns the values used for keys the file leaves out.
func Default() *Config {
	return &Config{
		Tailscale: TailscaleConfig{Hostname: "wodboard", StateDir: "tsnet-state"},
		Search:    SearchConfig{Threshold: 0.25, MultiTokenThreshold: 0.34},
		Import:    ImportConfig{StateDir: ".wodboard"},
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("WODBOARD_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("WODBOARD_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("WODBOARD_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("WODBOARD_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("WODBOARD_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("WODBOARD_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("WODBOARD_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("WODBOARD_DB_SSLMODE"); v != "" {
		cfg.Database.SSLMode = v
	}
	if v := os.Getenv("WODBOARD_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("WODBOARD_TAILSCALE_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Tailscale.Enabled = enabled
		}
	}
	if v := os.Getenv("WODBOARD_TAILSCALE_HOSTNAME"); v != "" {
		cfg.Tailscale.Hostname = v
	}
	if v := os.Getenv("WODBOARD_TAILSCALE_STATE_DIR"); v != "" {
		cfg.Tailscale.StateDir = v
	}
	if v := os.Getenv("WODBOARD_SEARCH_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Search.Threshold = f
		}
	}
	if v := os.Getenv("WODBOARD_SEARCH_MULTI_TOKEN_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Search.MultiTokenThreshold = f
		}
	}
	if v := os.Getenv("WODBOARD_IMPORT_STATE_DIR"); v != "" {
		cfg.Import.StateDir = v
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.Port == 0 {
		return fmt.Errorf("database.port is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database.name is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key is required")
	}
	if c.Search.Threshold < 0 || c.Search.Threshold >= 1 {
		return fmt.Errorf("search.threshold must be in [0, 1)")
	}
	if c.Search.MultiTokenThreshold < 0 || c.Search.MultiTokenThreshold >= 1 {
		return fmt.Errorf("search.multi_token_threshold must be in [0, 1)")
	}
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
	}
	return nil
}
