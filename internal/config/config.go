// Package config loads application configuration and initializes logging.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gulfstar-ops/vesselkpi/internal/store"
)

// Config holds the full application configuration.
type Config struct {
	Data      DataConfig      `yaml:"data" mapstructure:"data"`
	Registry  RegistryConfig  `yaml:"registry" mapstructure:"registry"`
	Report    ReportConfig    `yaml:"report" mapstructure:"report"`
	Store     store.Config    `yaml:"store" mapstructure:"store"`
	Fetch     FetchConfig     `yaml:"fetch" mapstructure:"fetch"`
	Notion    NotionConfig    `yaml:"notion" mapstructure:"notion"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// DataConfig locates the spreadsheet export files.
type DataConfig struct {
	Dir         string `yaml:"dir" mapstructure:"dir"`
	Events      string `yaml:"events" mapstructure:"events"`
	Manifests   string `yaml:"manifests" mapstructure:"manifests"`
	Allocations string `yaml:"allocations" mapstructure:"allocations"`
	Fluids      string `yaml:"fluids" mapstructure:"fluids"`
	Voyages     string `yaml:"voyages" mapstructure:"voyages"`
}

// RegistryConfig locates the facility registry fixture. An empty path uses
// the built-in reference set.
type RegistryConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ReportConfig tunes KPI reporting behavior.
type ReportConfig struct {
	// LagMonths is how far the feed runs behind real time; it shifts the
	// reference point used for the year-to-date window.
	LagMonths int `yaml:"lag_months" mapstructure:"lag_months"`
}

// FetchConfig configures the report drop download.
type FetchConfig struct {
	BaseURL     string  `yaml:"base_url" mapstructure:"base_url"` // http(s):// or ftp:// directory URL
	FTPUser     string  `yaml:"ftp_user" mapstructure:"ftp_user"`
	FTPPassword string  `yaml:"ftp_password" mapstructure:"ftp_password"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RPS         float64 `yaml:"rps" mapstructure:"rps"`
}

// NotionConfig holds the digest publish target.
type NotionConfig struct {
	Token    string `yaml:"token" mapstructure:"token"`
	DigestDB string `yaml:"digest_db" mapstructure:"digest_db"`
}

// AnthropicConfig holds API settings for the explain command.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int64  `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port               int `yaml:"port" mapstructure:"port"`
	RequestTimeoutSecs int `yaml:"request_timeout_secs" mapstructure:"request_timeout_secs"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("VESSELKPI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("data.dir", "data")
	v.SetDefault("data.events", "voyage_events.xlsx")
	v.SetDefault("data.manifests", "vessel_manifests.xlsx")
	v.SetDefault("data.allocations", "cost_allocation.xlsx")
	v.SetDefault("data.fluids", "bulk_actions.xlsx")
	v.SetDefault("data.voyages", "voyage_list.xlsx")
	v.SetDefault("report.lag_months", 1)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "vesselkpi.db")
	v.SetDefault("fetch.timeout_secs", 60)
	v.SetDefault("fetch.rps", 2)
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.max_tokens", 1024)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.request_timeout_secs", 30)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
