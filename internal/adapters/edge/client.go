// Package edge is the HTTP client for the perception sidecar, which owns the
// camera plus the face detection and recognition models. The monitor loop
// stays model-free: it pulls decoded frames and ready-made detections
package edge

import (
	"bytes"
	"context"
	"encoding/json"
	"image/jpeg"
	"io"
	"net/http"
	"time"

	"classwatch/internal/core/vision"
	perr "classwatch/internal/platform/errors"
)

// Config for the sidecar client
type Config struct {
	// BaseURL is the sidecar root, e.g. http://127.0.0.1:8090
	BaseURL string

	// Timeout bounds every sidecar call; defaults to 5s
	Timeout time.Duration
}

// Client talks to the sidecar's /frame and /detect endpoints
type Client struct {
	cfg Config
	hc  *http.Client
}

// New constructs a sidecar client
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &Client{cfg: cfg, hc: &http.Client{Timeout: cfg.Timeout}}
}

// Frame fetches and decodes the latest camera frame as JPEG
func (c *Client) Frame(ctx context.Context) (vision.Frame, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/frame", nil)
	if err != nil {
		return vision.Frame{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "build frame request")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return vision.Frame{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "sidecar unreachable")
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return vision.Frame{}, perr.Unavailablef("sidecar rejected frame read: %s", resp.Status)
	}

	img, err := jpeg.Decode(resp.Body)
	if err != nil {
		return vision.Frame{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "bad frame payload")
	}
	return vision.FrameOf(img), nil
}

// Detect posts the frame back as JPEG and returns the sidecar's detections
func (c *Client) Detect(ctx context.Context, f vision.Frame) ([]vision.Detection, error) {
	if f.Image == nil {
		return nil, perr.InvalidArgf("detect: empty frame")
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, f.Image, nil); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "encode frame")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/detect", &buf)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "build detect request")
	}
	req.Header.Set("Content-Type", "image/jpeg")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "sidecar unreachable")
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, perr.Unavailablef("sidecar rejected detect: %s", resp.Status)
	}

	var out struct {
		Detections []vision.Detection `json:"detections"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "bad detect payload")
	}
	return out.Detections, nil
}
