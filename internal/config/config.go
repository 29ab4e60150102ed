package config

// Package config handles configuration loading for Trademetriks.
// It supports YAML config files with environment variable overrides.

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/seenimoa/trademetriks/pkg/utils"
)

// Config represents the complete application configuration.
type Config struct {
	Data    DataConfig    `mapstructure:"data"    yaml:"data"    json:"data"`
	Report  ReportConfig  `mapstructure:"report"  yaml:"report"  json:"report"`
	API     APIConfig     `mapstructure:"api"     yaml:"api"     json:"api"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging" json:"logging"`
	Tracing TracingConfig `mapstructure:"tracing" yaml:"tracing" json:"tracing"`
}

// DataConfig describes the tradebook input.
type DataConfig struct {
	TradesFile      string   `mapstructure:"trades_file"       yaml:"trades_file"       json:"trades_file"`
	SymbolPrefixLen int      `mapstructure:"symbol_prefix_len" yaml:"symbol_prefix_len" json:"symbol_prefix_len"` // "NSE:" = 4
	EquitySuffix    string   `mapstructure:"equity_suffix"     yaml:"equity_suffix"     json:"equity_suffix"`
	Timezone        string   `mapstructure:"timezone"          yaml:"timezone"          json:"timezone"`
	DatetimeLayouts []string `mapstructure:"datetime_layouts"  yaml:"datetime_layouts"  json:"datetime_layouts"` // Go layouts, day-first
}

// ReportConfig holds dashboard rendering settings.
type ReportConfig struct {
	Title             string   `mapstructure:"title"               yaml:"title"               json:"title"`
	Author            string   `mapstructure:"author"              yaml:"author"              json:"author"`
	OutputDir         string   `mapstructure:"output_dir"          yaml:"output_dir"          json:"output_dir"`
	Formats           []string `mapstructure:"formats"             yaml:"formats"             json:"formats"` // html, json, yaml, text, pdf, rss
	RecentTradesLimit int      `mapstructure:"recent_trades_limit" yaml:"recent_trades_limit" json:"recent_trades_limit"` // 0 = all
	ChartWidth        int      `mapstructure:"chart_width"         yaml:"chart_width"         json:"chart_width"`
	ChartHeight       int      `mapstructure:"chart_height"        yaml:"chart_height"        json:"chart_height"`
}

// APIConfig holds HTTP server settings.
type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"         json:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"         json:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins" json:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"  json:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format" json:"format"` // "console" or "json"
}

// TracingConfig controls OpenTelemetry span export.
type TracingConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	Pretty  bool `mapstructure:"pretty"  yaml:"pretty"  json:"pretty"`
}

// SupportedFormats lists the report formats the renderer understands.
var SupportedFormats = []string{"html", "json", "yaml", "text", "pdf", "rss"}

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// activeFile is the config file the last Load/LoadFromFile read, if any.
var activeFile string

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.trademetriks/config.yaml (home directory)
//  3. /etc/trademetriks/config.yaml (system)
//
// Environment variables override config file values.
// Format: TRADEMETRIKS_<SECTION>_<KEY>, e.g., TRADEMETRIKS_DATA_TRADES_FILE
func Load() (*Config, error) {
	v := newViper()

	// Config file settings
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".trademetriks"))
	v.AddConfigPath("/etc/trademetriks")

	activeFile = ""
	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found — that's fine, use defaults + env vars
	} else {
		activeFile = v.ConfigFileUsed()
	}

	return unmarshal(v)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	activeFile = v.ConfigFileUsed()

	return unmarshal(v)
}

// ConfigFilePath returns the file the active configuration was read from,
// or "" when running on defaults and environment only.
func ConfigFilePath() string {
	return activeFile
}

// SaveToFile writes cfg as YAML, creating parent directories.
func SaveToFile(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Data.TradesFile == "" {
		errs = append(errs, errors.New("data.trades_file is empty"))
	}
	if c.Data.SymbolPrefixLen < 0 {
		errs = append(errs, fmt.Errorf("data.symbol_prefix_len %d is negative", c.Data.SymbolPrefixLen))
	}
	if _, err := utils.LoadLocation(c.Data.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("data.timezone: %w", err))
	}
	for _, f := range c.Report.Formats {
		if !slices.Contains(SupportedFormats, strings.ToLower(f)) {
			errs = append(errs, fmt.Errorf("report.formats: unsupported format %q", f))
		}
	}
	if c.Report.RecentTradesLimit < 0 {
		errs = append(errs, errors.New("report.recent_trades_limit must be >= 0"))
	}
	if c.API.Port <= 0 || c.API.Port > 65535 {
		errs = append(errs, fmt.Errorf("api.port %d out of range", c.API.Port))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	// Environment variable settings
	v.SetEnvPrefix("TRADEMETRIKS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// Data defaults (Fyers tradebook export)
	v.SetDefault("data.trades_file", "./data/trades_data_latest.csv")
	v.SetDefault("data.symbol_prefix_len", 4)
	v.SetDefault("data.equity_suffix", "EQ")
	v.SetDefault("data.timezone", "Asia/Kolkata")
	v.SetDefault("data.datetime_layouts", utils.DayFirstLayouts)

	// Report defaults
	v.SetDefault("report.title", "Trademetriks")
	v.SetDefault("report.author", "")
	v.SetDefault("report.output_dir", "./out")
	v.SetDefault("report.formats", []string{"html"})
	v.SetDefault("report.recent_trades_limit", 0)
	v.SetDefault("report.chart_width", 800)
	v.SetDefault("report.chart_height", 360)

	// API defaults
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.cors_origins", []string{"*"})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Tracing defaults
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.pretty", false)
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
