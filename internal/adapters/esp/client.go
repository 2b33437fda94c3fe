// Package esp is a small HTTP client for the ESP8266 LED/sensor board
package esp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	perr "classwatch/internal/platform/errors"
	"classwatch/internal/services/actuator/domain"
)

// Config for the device client
type Config struct {
	// BaseURL is the device root, e.g. http://192.168.1.100
	BaseURL string

	// Username and Password are the device's basic-auth credentials
	Username string
	Password string

	// Timeout bounds every device call; defaults to 2s
	Timeout time.Duration
}

// Client talks to the device endpoints
type Client struct {
	cfg Config
	hc  *http.Client
}

var _ domain.DevicePort = (*Client)(nil)

// New constructs a device client
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}
	return &Client{cfg: cfg, hc: &http.Client{Timeout: cfg.Timeout}}
}

// SetLED posts the requested LED state to the device
func (c *Client) SetLED(ctx context.Context, red, yellow bool) error {
	body, _ := json.Marshal(map[string]bool{"red": red, "yellow": yellow})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/led", bytes.NewReader(body))
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "build led request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.cfg.Username, c.cfg.Password)

	resp, err := c.hc.Do(req)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "device unreachable")
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return perr.Unavailablef("device rejected led write: %s", resp.Status)
	}
	return nil
}

// ReadSensor fetches the current temperature and humidity
func (c *Client) ReadSensor(ctx context.Context) (domain.Reading, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/dht11", nil)
	if err != nil {
		return domain.Reading{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "build sensor request")
	}
	req.SetBasicAuth(c.cfg.Username, c.cfg.Password)

	resp, err := c.hc.Do(req)
	if err != nil {
		return domain.Reading{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "device unreachable")
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return domain.Reading{}, perr.Unavailablef("device rejected sensor read: %s", resp.Status)
	}

	var r domain.Reading
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return domain.Reading{}, perr.Wrap(err, perr.ErrorCodeUnavailable, fmt.Sprintf("bad sensor payload from %s", c.cfg.BaseURL))
	}
	return r, nil
}
