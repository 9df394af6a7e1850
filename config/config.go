// Package config loads the YAML configuration for f. Values come from, in
// increasing precedence: built-in defaults, the config file, F_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/montrey/f/search"
)

// MaxPageSize bounds ui.page_size so quick-pick digits cover a full page.
const MaxPageSize = 10

// Config is the full configuration.
type Config struct {
	DataDir string      `mapstructure:"data_dir" yaml:"data_dir"`
	Log     LogConfig   `mapstructure:"log" yaml:"log"`
	Index   IndexConfig `mapstructure:"index" yaml:"index"`
	Jump    JumpConfig  `mapstructure:"jump" yaml:"jump"`
	UI      UIConfig    `mapstructure:"ui" yaml:"ui"`
}

// LogConfig controls the stderr logger.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// IndexConfig controls the directory scanner.
type IndexConfig struct {
	MaxDepth int      `mapstructure:"max_depth" yaml:"max_depth"`
	Markers  []string `mapstructure:"markers" yaml:"markers"`
	Skip     []string `mapstructure:"skip" yaml:"skip"`
}

// JumpConfig controls ranking output.
type JumpConfig struct {
	Limit int `mapstructure:"limit" yaml:"limit"`
}

// UIConfig controls the interactive selector.
type UIConfig struct {
	PageSize     int  `mapstructure:"page_size" yaml:"page_size"`
	ShowDetail   bool `mapstructure:"show_detail" yaml:"show_detail"`
	Disambiguate bool `mapstructure:"disambiguate" yaml:"disambiguate"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		DataDir: defaultDataDir(),
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Index: IndexConfig{
			MaxDepth: 5,
			Markers:  append([]string(nil), search.DefaultMarkers...),
			Skip:     append([]string(nil), search.DefaultSkip...),
		},
		Jump: JumpConfig{Limit: 20},
		UI: UIConfig{
			PageSize:     MaxPageSize,
			ShowDetail:   false,
			Disambiguate: true,
		},
	}
}

// Load reads the config at path, or DefaultPath when path is empty. A
// missing file means defaults; a malformed one is an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	def := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("F")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, def)

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

func setDefaults(v *viper.Viper, def *Config) {
	v.SetDefault("data_dir", def.DataDir)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
	v.SetDefault("index.max_depth", def.Index.MaxDepth)
	v.SetDefault("index.markers", def.Index.Markers)
	v.SetDefault("index.skip", def.Index.Skip)
	v.SetDefault("jump.limit", def.Jump.Limit)
	v.SetDefault("ui.page_size", def.UI.PageSize)
	v.SetDefault("ui.show_detail", def.UI.ShowDetail)
	v.SetDefault("ui.disambiguate", def.UI.Disambiguate)
}

func (c *Config) normalize() {
	c.DataDir = ExpandHome(c.DataDir)
	if c.Index.MaxDepth <= 0 {
		c.Index.MaxDepth = 5
	}
	if c.Jump.Limit <= 0 {
		c.Jump.Limit = 20
	}
	if c.UI.PageSize <= 0 || c.UI.PageSize > MaxPageSize {
		c.UI.PageSize = MaxPageSize
	}
}

// DBPath is where the state database lives.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "f.db")
}

// WriteDefault writes the default configuration to path, creating parent
// directories. It refuses to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to encode default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// DefaultPath is $XDG_CONFIG_HOME/f/config.yaml.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "f", "config.yaml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "f", "config.yaml")
}

func defaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "f")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "f")
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
