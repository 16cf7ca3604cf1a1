package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape. Timeouts and waits are plain seconds so a
// config file reads the same regardless of format. Zero values mean
// "unspecified" and keep the default.
type fileConfig struct {
	OllamaPort   int    `json:"ollama_port" yaml:"ollama_port" toml:"ollama_port"`
	DefaultModel string `json:"default_model" yaml:"default_model" toml:"default_model"`

	InstallTimeout  int `json:"install_timeout" yaml:"install_timeout" toml:"install_timeout"`
	UpdateTimeout   int `json:"update_timeout" yaml:"update_timeout" toml:"update_timeout"`
	DownloadTimeout int `json:"download_timeout" yaml:"download_timeout" toml:"download_timeout"`
	ServiceTimeout  int `json:"service_timeout" yaml:"service_timeout" toml:"service_timeout"`
	APITimeout      int `json:"api_timeout" yaml:"api_timeout" toml:"api_timeout"`
	HealthTimeout   int `json:"health_check_timeout" yaml:"health_check_timeout" toml:"health_check_timeout"`

	MaxRetries   int     `json:"max_retries" yaml:"max_retries" toml:"max_retries"`
	RetryDelay   float64 `json:"retry_delay" yaml:"retry_delay" toml:"retry_delay"`
	RetryBackoff float64 `json:"retry_backoff" yaml:"retry_backoff" toml:"retry_backoff"`

	StartupWait   int `json:"startup_wait" yaml:"startup_wait" toml:"startup_wait"`
	TunnelURLWait int `json:"tunnel_url_wait" yaml:"tunnel_url_wait" toml:"tunnel_url_wait"`

	MaxModelNameLength int `json:"max_model_name_length" yaml:"max_model_name_length" toml:"max_model_name_length"`
}

// Load reads a configuration file based on its extension and overlays it on
// the defaults. Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	var fc fileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &fc); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return fc.apply(cfg), nil
}

func (fc fileConfig) apply(cfg Config) Config {
	if fc.OllamaPort > 0 {
		cfg.OllamaPort = fc.OllamaPort
	}
	if fc.DefaultModel != "" {
		cfg.DefaultModel = fc.DefaultModel
	}
	if fc.InstallTimeout > 0 {
		cfg.InstallTimeout = time.Duration(fc.InstallTimeout) * time.Second
	}
	if fc.UpdateTimeout > 0 {
		cfg.UpdateTimeout = time.Duration(fc.UpdateTimeout) * time.Second
	}
	if fc.DownloadTimeout > 0 {
		cfg.DownloadTimeout = time.Duration(fc.DownloadTimeout) * time.Second
	}
	if fc.ServiceTimeout > 0 {
		cfg.ServiceTimeout = time.Duration(fc.ServiceTimeout) * time.Second
	}
	if fc.APITimeout > 0 {
		cfg.APITimeout = time.Duration(fc.APITimeout) * time.Second
	}
	if fc.HealthTimeout > 0 {
		cfg.HealthTimeout = time.Duration(fc.HealthTimeout) * time.Second
	}
	if fc.MaxRetries > 0 {
		cfg.MaxRetries = fc.MaxRetries
	}
	if fc.RetryDelay > 0 {
		cfg.RetryDelay = time.Duration(fc.RetryDelay * float64(time.Second))
	}
	if fc.RetryBackoff > 0 {
		cfg.RetryBackoff = fc.RetryBackoff
	}
	if fc.StartupWait > 0 {
		cfg.StartupWait = fc.StartupWait
	}
	if fc.TunnelURLWait > 0 {
		cfg.TunnelURLWait = fc.TunnelURLWait
	}
	if fc.MaxModelNameLength > 0 {
		cfg.MaxModelNameLen = fc.MaxModelNameLength
	}
	return cfg
}
