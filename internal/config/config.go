package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"docsearch/internal/debounce"
)

// ErrNotFound is returned when a config file does not exist
var ErrNotFound = errors.New("config file not found")

// Config represents the application configuration
type Config struct {
	Version    int          `toml:"version"`
	CorpusURL  string       `toml:"corpus_url"`  // http(s) URL or local path of allData.json
	DebounceMs int          `toml:"debounce_ms"` // quiet period before a typed query runs
	LogFile    string       `toml:"log_file"`
	LogLevel   string       `toml:"log_level"` // debug, info, warn, error
	UISettings UISettings   `toml:"ui"`
	Site       SiteSettings `toml:"site"`
	Server     Server       `toml:"server"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	Small        bool `toml:"small"`         // render the main widget in compact mode
	HeaderWidget bool `toml:"header_widget"` // add a compact widget above the main one
	ShowHelp     bool `toml:"show_help"`
}

// SiteSettings configures the site build
type SiteSettings struct {
	DataFile   string `toml:"data_file"`
	OutDir     string `toml:"out_dir"`
	CorpusFile string `toml:"corpus_file"`
}

// Server configures the static site server
type Server struct {
	Addr string `toml:"addr"`
	Dir  string `toml:"dir"`
}

// QuietPeriod returns the debounce delay
func (c *Config) QuietPeriod() time.Duration {
	if c.DebounceMs <= 0 {
		return debounce.DefaultDelay
	}
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a config service backed by the user config directory
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "docsearch", "config.toml"),
	}
}

// NewConfigServiceAt creates a config service for a specific file
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

// Load loads the configuration from file, or the defaults if there is none
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, ErrNotFound) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path.
// Missing keys keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	// Ensure config directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:    1,
		CorpusURL:  "./allData.json",
		DebounceMs: int(debounce.DefaultDelay / time.Millisecond),
		LogFile:    "docsearch.log",
		LogLevel:   "info",
		UISettings: UISettings{
			HeaderWidget: true,
			ShowHelp:     true,
		},
		Site: SiteSettings{
			OutDir:     "public",
			CorpusFile: "allData.json",
		},
		Server: Server{
			Addr: ":8080",
			Dir:  "public",
		},
	}
}
