// Package backendapi is the HTTP client for the central reporting backend
package backendapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	perr "classwatch/internal/platform/errors"
)

// Config for the backend client
type Config struct {
	// BaseURL is the backend root, e.g. http://backend:3000
	BaseURL string

	// AuthToken is sent as a bearer header when configured (best-effort auth)
	AuthToken string

	// Timeout bounds every call; defaults to 2s
	Timeout time.Duration
}

// Client posts JSON payloads to backend endpoints
type Client struct {
	cfg Config
	hc  *http.Client
}

// New constructs a backend client
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}
	return &Client{cfg: cfg, hc: &http.Client{Timeout: cfg.Timeout}}
}

// Post sends payload as JSON to path and treats any non-2xx as failure
func (c *Client) Post(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "encode payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.AuthToken)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "backend unreachable")
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return perr.Unavailablef("backend rejected %s: %s", path, resp.Status)
	}
	return nil
}
