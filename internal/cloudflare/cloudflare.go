// Package cloudflare is a minimal client for the zone-listing API.
package cloudflare

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/rs/zerolog"

	"github.com/sho-luv/cloudlamma/internal/config"
	"github.com/sho-luv/cloudlamma/internal/retry"
)

const defaultBaseURL = "https://api.cloudflare.com/client/v4"

// TokenEnv names the environment variable carrying the API token.
const TokenEnv = "CLOUDFLARE_API_TOKEN"

var (
	// ErrNoToken reports a missing API token.
	ErrNoToken = errors.New("CLOUDFLARE_API_TOKEN environment variable not set")
	// ErrAuth reports a rejected token (HTTP 401).
	ErrAuth = errors.New("authentication failed")
	// ErrForbidden reports a token lacking permissions (HTTP 403).
	ErrForbidden = errors.New("access denied")
)

// Client talks to the Cloudflare API with a bearer token.
type Client struct {
	baseURL  string
	token    string
	client   *http.Client
	retryCfg config.RetryConfig
	log      zerolog.Logger
}

// NewClient builds a Client from the environment token. The token may be
// empty; Zones reports ErrNoToken in that case.
func NewClient(cfg config.Config, log zerolog.Logger) *Client {
	return &Client{
		baseURL:  defaultBaseURL,
		token:    os.Getenv(TokenEnv),
		client:   &http.Client{Timeout: cfg.APITimeout},
		retryCfg: cfg.Retry(),
		log:      log.With().Str("component", "cloudflare").Logger(),
	}
}

type zone struct {
	Name string `json:"name"`
}

type zonesResponse struct {
	Result []zone `json:"result"`
}

// Zones lists the zone names in the account. Transport failures are retried;
// auth failures are terminal and mapped to distinct errors.
func (c *Client) Zones(ctx context.Context) ([]string, error) {
	if c.token == "" {
		return nil, ErrNoToken
	}

	type result struct {
		status int
		body   []byte
	}
	res, err := retry.Do(c.retryCfg, func() (result, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/zones", nil)
		if err != nil {
			return result{}, err
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Content-Type", "application/json")
		resp, err := c.client.Do(req)
		if err != nil {
			return result{}, err
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return result{}, err
		}
		return result{status: resp.StatusCode, body: body}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch zones: %w", err)
	}

	switch res.status {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return nil, ErrAuth
	case http.StatusForbidden:
		return nil, ErrForbidden
	default:
		return nil, fmt.Errorf("failed to fetch domains from Cloudflare (HTTP %d)", res.status)
	}

	var zr zonesResponse
	if err := json.Unmarshal(res.body, &zr); err != nil {
		return nil, fmt.Errorf("unexpected response format from Cloudflare API: %w", err)
	}
	names := make([]string, 0, len(zr.Result))
	for _, z := range zr.Result {
		names = append(names, z.Name)
	}
	return names, nil
}
