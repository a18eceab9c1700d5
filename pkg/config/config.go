package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override the config file
const (
	EnvHopStopURL           = "HOPSTOP_URL"
	EnvGeocoderURL          = "GEOCODER_URL"
	EnvTransitDirectDefault = "TRANSIT_DIRECT_DEFAULT"
)

// AppConfig holds all user-defined persistent settings
type AppConfig struct {
	HopStopURL           string `json:"hopstop_url,omitempty"`
	GeocoderURL          string `json:"geocoder_url,omitempty"`
	DefaultMode          string `json:"default_mode,omitempty"`
	TransitDirectDefault bool   `json:"transit_direct_default,omitempty"`
	HomeAddress          string `json:"home_address,omitempty"`
	AccentColor          string `json:"accent_color,omitempty"`
	CacheEnabled         bool   `json:"cache_enabled,omitempty"`
}

// LoadEnv reads a .env file from the working directory if one exists.
// Variables already set in the environment win.
func LoadEnv() {
	_ = godotenv.Load()
}

// getConfigPath returns the absolute path to ~/.hootroot.json
func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".hootroot.json"), nil
}

// Load reads the application configuration from disk.
// Returns an empty struct if the file does not exist.
func Load() (*AppConfig, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &AppConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Save writes the application configuration back to disk.
func Save(cfg *AppConfig) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Resolved returns a copy of cfg with environment overrides applied
func (cfg AppConfig) Resolved() AppConfig {
	if v := strings.TrimSpace(os.Getenv(EnvHopStopURL)); v != "" {
		cfg.HopStopURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvGeocoderURL)); v != "" {
		cfg.GeocoderURL = v
	}
	if v, ok := envBool(EnvTransitDirectDefault); ok {
		cfg.TransitDirectDefault = v
	}
	return cfg
}

// TransitDirectDefault reports whether TRANSIT_DIRECT_DEFAULT is set to a true value.
// Unset or unparsable values count as false.
func TransitDirectDefault() bool {
	v, _ := envBool(EnvTransitDirectDefault)
	return v
}

func envBool(key string) (bool, bool) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return false, false
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, false
	}
	return v, true
}
