// Package config loads tripflow.yaml and resolves its location.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	projectConfigName = "tripflow.yaml"
	homeConfigDir     = ".tripflow"
	homeConfigName    = "config.yaml"

	// EnvRapidAPIKey overrides every RapidAPI key in the file when set.
	EnvRapidAPIKey = "TRIPFLOW_RAPIDAPI_KEY"
)

// Config is the declarative server configuration shape.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	HotelAPI  APIConfig       `yaml:"hotel_api"`
	FlightAPI APIConfig       `yaml:"flight_api"`
	CarAPI    APIConfig       `yaml:"car_api"`
	Monitor   MonitorConfig   `yaml:"monitor"`
	Rail      RailConfig      `yaml:"rail"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig carries the MCP server identity.
type ServerConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// APIConfig wraps the provider block for one travel API.
type APIConfig struct {
	RapidAPI RapidAPIConfig `yaml:"rapidapi"`
}

// RapidAPIConfig holds RapidAPI endpoint credentials.
type RapidAPIConfig struct {
	Host    string `yaml:"host"`
	Key     string `yaml:"key"`
	BaseURL string `yaml:"base_url"`
}

// MonitorConfig controls the upstream reachability monitor.
type MonitorConfig struct {
	Enabled bool `yaml:"enabled"`
	// Schedule is a 5-field UTC cron expression.
	Schedule string `yaml:"schedule"`
}

// RailConfig locates the rail route catalog database.
type RailConfig struct {
	// CatalogDSN is a SQLite path, or ":memory:" for ephemeral.
	CatalogDSN string `yaml:"catalog_dsn"`
}

// TelemetryConfig controls trace export.
type TelemetryConfig struct {
	Enabled bool `yaml:"enabled"`
	// Endpoint is an OTLP HTTP collector address, host:port.
	Endpoint string `yaml:"endpoint"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Server:  ServerConfig{Name: "tripflow", Version: "dev"},
		Monitor: MonitorConfig{Schedule: "*/15 * * * *"},
		Rail:    RailConfig{CatalogDSN: ":memory:"},
	}
}

// DiscoverPath resolves the config location with first-match semantics:
// the explicit path when given, then ./tripflow.yaml, then
// ~/.tripflow/config.yaml. The boolean reports whether a file was found.
func DiscoverPath(explicitPath string) (string, bool, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", false, fmt.Errorf("config: resolve working directory: %w", err)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", false, fmt.Errorf("config: resolve user home: %w", err)
	}
	return DiscoverPathFrom(explicitPath, cwd, homeDir)
}

// DiscoverPathFrom is a testable variant of DiscoverPath.
func DiscoverPathFrom(explicitPath, cwd, homeDir string) (string, bool, error) {
	candidates := make([]string, 0, 2)
	if clean := strings.TrimSpace(explicitPath); clean != "" {
		candidates = append(candidates, filepath.Clean(clean))
	} else {
		candidates = append(candidates, filepath.Join(cwd, projectConfigName))
		candidates = append(candidates, filepath.Join(homeDir, homeConfigDir, homeConfigName))
	}

	for i, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, true, nil
		}
		if errors.Is(err, os.ErrNotExist) {
			// An explicit path that does not exist is an error, not a miss.
			if i == 0 && strings.TrimSpace(explicitPath) != "" {
				return "", false, fmt.Errorf("config: file %q not found", candidate)
			}
			continue
		}
		if err != nil {
			return "", false, fmt.Errorf("config: checking path %q: %w", candidate, err)
		}
	}
	return "", false, nil
}

// Load reads and decodes a config file, then applies environment overrides
// and defaults.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	cfg.applyDefaults()
	cfg.applyEnv(os.Getenv)
	return cfg, nil
}

// LoadDiscovered resolves the config path and loads it, falling back to
// Default when no file exists.
func LoadDiscovered(explicitPath string) (*Config, error) {
	path, found, err := DiscoverPath(explicitPath)
	if err != nil {
		return nil, err
	}
	if !found {
		cfg := Default()
		cfg.applyEnv(os.Getenv)
		return cfg, nil
	}
	return Load(path)
}

func (c *Config) applyDefaults() {
	if c.Server.Name == "" {
		c.Server.Name = "tripflow"
	}
	if c.Server.Version == "" {
		c.Server.Version = "dev"
	}
	if c.Monitor.Schedule == "" {
		c.Monitor.Schedule = "*/15 * * * *"
	}
	if c.Rail.CatalogDSN == "" {
		c.Rail.CatalogDSN = ":memory:"
	}
}

func (c *Config) applyEnv(getenv func(string) string) {
	if key := strings.TrimSpace(getenv(EnvRapidAPIKey)); key != "" {
		c.HotelAPI.RapidAPI.Key = key
		c.FlightAPI.RapidAPI.Key = key
		c.CarAPI.RapidAPI.Key = key
	}
}

// Validate reports configuration problems that would break startup.
func (c *Config) Validate() error {
	var problems []string
	for _, section := range []struct {
		name string
		api  RapidAPIConfig
	}{
		{"hotel_api", c.HotelAPI.RapidAPI},
		{"flight_api", c.FlightAPI.RapidAPI},
		{"car_api", c.CarAPI.RapidAPI},
	} {
		name, api := section.name, section.api
		if api.BaseURL != "" && api.Key == "" {
			problems = append(problems, fmt.Sprintf("%s has a base_url but no key", name))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}
