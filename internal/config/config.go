// Package config holds the runtime parameters threaded through every
// component. Values are resolved once at startup and never mutated.
package config

import (
	"fmt"
	"time"
)

// Config bundles ports, timeouts and retry settings for one invocation.
type Config struct {
	OllamaPort   int
	DefaultModel string

	InstallTimeout  time.Duration
	UpdateTimeout   time.Duration
	DownloadTimeout time.Duration
	ServiceTimeout  time.Duration
	APITimeout      time.Duration
	HealthTimeout   time.Duration

	MaxRetries   int
	RetryDelay   time.Duration
	RetryBackoff float64

	// StartupWait and TunnelURLWait are poll iterations, one second apart.
	StartupWait   int
	TunnelURLWait int

	MaxModelNameLen int
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		OllamaPort:      11434,
		DefaultModel:    "llama3",
		InstallTimeout:  300 * time.Second,
		UpdateTimeout:   120 * time.Second,
		DownloadTimeout: 120 * time.Second,
		ServiceTimeout:  60 * time.Second,
		APITimeout:      30 * time.Second,
		HealthTimeout:   5 * time.Second,
		MaxRetries:      3,
		RetryDelay:      time.Second,
		RetryBackoff:    2.0,
		StartupWait:     30,
		TunnelURLWait:   30,
		MaxModelNameLen: 100,
	}
}

// ServerURL is the base URL of the local Ollama server.
func (c Config) ServerURL() string {
	return fmt.Sprintf("http://localhost:%d", c.OllamaPort)
}

// RetryConfig groups the backoff parameters for retry wrappers.
type RetryConfig struct {
	MaxAttempts int
	Delay       time.Duration
	Backoff     float64
}

// Retry returns the default retry parameters for this configuration.
func (c Config) Retry() RetryConfig {
	return RetryConfig{MaxAttempts: c.MaxRetries, Delay: c.RetryDelay, Backoff: c.RetryBackoff}
}
