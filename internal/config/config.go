package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	CatalogPath string `mapstructure:"catalog_path" yaml:"catalog_path"` // YAML catalog override (empty = built-in)
	BaseURL     string `mapstructure:"base_url" yaml:"base_url"`         // Prefix for calculator links when opening them
	PageSize    int    `mapstructure:"page_size" yaml:"page_size"`       // Initial cards and load-more step
	Listen      string `mapstructure:"listen" yaml:"listen"`             // HTTP listen address for serve
	Watch       bool   `mapstructure:"watch" yaml:"watch"`               // Reload the catalog file on change
	CacheSize   int    `mapstructure:"cache_size" yaml:"cache_size"`     // Rendered pages kept by serve
	Debug       bool   `mapstructure:"debug" yaml:"-"`                   // Debug logging
}

// configFileName is the name of the config file
const configFileName = "calcdir.yaml"

// EnvPrefix prefixes environment overrides, e.g. CALCDIR_PAGE_SIZE
const EnvPrefix = "CALCDIR"

// Default returns the default configuration
func Default() *Config {
	return &Config{
		CatalogPath: "", // Empty = use built-in catalog
		BaseURL:     "https://houseofcalculators.com",
		PageSize:    6,
		Listen:      "127.0.0.1:8080",
		Watch:       true,
		CacheSize:   128,
	}
}

// ConfigDir returns the directory containing calcdir config files
func ConfigDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "calcdir")
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(ConfigDir(), configFileName)
}

// LogPath returns the path of the debug log written by the TUI
func LogPath() string {
	return filepath.Join(ConfigDir(), "calcdir.log")
}

// SetDefaults registers default values on v
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("catalog_path", d.CatalogPath)
	v.SetDefault("base_url", d.BaseURL)
	v.SetDefault("page_size", d.PageSize)
	v.SetDefault("listen", d.Listen)
	v.SetDefault("watch", d.Watch)
	v.SetDefault("cache_size", d.CacheSize)
	v.SetDefault("debug", false)
}

// Load reads configuration from defaults, the config file at path (ConfigPath
// when empty), CALCDIR_* environment variables and any flags already bound to v.
// A missing config file is not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = ConfigPath()
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.PageSize < 1 {
		return fmt.Errorf("page_size must be at least 1, got %d", c.PageSize)
	}
	if c.CacheSize < 1 {
		return fmt.Errorf("cache_size must be at least 1, got %d", c.CacheSize)
	}
	return nil
}

// Save writes the configuration as YAML to path (ConfigPath when empty)
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	// Create config directory
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// CalculatorURL joins the base URL with a calculator link
func (c *Config) CalculatorURL(link string) string {
	if strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://") {
		return link
	}
	base := strings.TrimRight(c.BaseURL, "/")
	if !strings.HasPrefix(link, "/") {
		link = "/" + link
	}
	return base + link
}
