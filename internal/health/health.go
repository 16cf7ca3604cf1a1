// Package health determines whether the local Ollama server is up. The check
// is two-tier: a cheap local port probe, then an HTTP liveness call. The
// split avoids false negatives in the window between process spawn and the
// listener binding.
package health

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/sho-luv/cloudlamma/internal/config"
	"github.com/sho-luv/cloudlamma/internal/retry"
)

const dialProbeTimeout = 200 * time.Millisecond

// Monitor reports on the server's readiness.
type Monitor struct {
	cfg    config.Config
	log    zerolog.Logger
	client *http.Client
}

// NewMonitor returns a Monitor for the configured server port.
func NewMonitor(cfg config.Config, log zerolog.Logger) *Monitor {
	return &Monitor{
		cfg:    cfg,
		log:    log.With().Str("component", "health").Logger(),
		client: &http.Client{Timeout: cfg.HealthTimeout},
	}
}

// Listening reports whether something holds the server's port.
func (m *Monitor) Listening() bool {
	addr := fmt.Sprintf("127.0.0.1:%d", m.cfg.OllamaPort)
	conn, err := net.DialTimeout("tcp", addr, dialProbeTimeout)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

// Responsive reports whether the server is listening and answers its
// liveness endpoint with 200. The HTTP probe carries a short internal retry
// because a server mid-bind may refuse the first attempt.
func (m *Monitor) Responsive(ctx context.Context) bool {
	if !m.Listening() {
		return false
	}
	probeCfg := config.RetryConfig{MaxAttempts: 2, Delay: 500 * time.Millisecond, Backoff: m.cfg.RetryBackoff}
	ok, err := retry.Do(probeCfg, func() (bool, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.cfg.ServerURL()+"/api/tags", nil)
		if err != nil {
			return false, err
		}
		resp, err := m.client.Do(req)
		if err != nil {
			return false, err
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK, nil
	})
	if err != nil {
		m.log.Debug().Err(err).Msg("liveness probe failed")
		return false
	}
	return ok
}
