// Package service implements the token-gated actuator controller
package service

import (
	"context"
	"sync"
	"time"

	perr "classwatch/internal/platform/errors"
	"classwatch/internal/platform/logger"
	"classwatch/internal/services/actuator/domain"
	sessdom "classwatch/internal/services/session/domain"
)

// Config for the actuator controller
type Config struct {
	// WriteTimeout bounds every device call; defaults to 2s
	WriteTimeout time.Duration

	// PulseDuration is how long a warning assertion holds before the
	// automatic revert; defaults to 3s
	PulseDuration time.Duration
}

// Service owns the cached LED state and the device connection flag.
// mu serializes state changes; a device write holds it, so a call is
// delayed at most one WriteTimeout
type Service struct {
	cfg    Config
	device domain.DevicePort
	tokens sessdom.TokenVerifierPort

	mu        sync.Mutex
	led       domain.LEDState
	connected bool
	revert    *time.Timer
}

// New constructs the controller
func New(cfg Config, device domain.DevicePort, tokens sessdom.TokenVerifierPort) *Service {
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 2 * time.Second
	}
	if cfg.PulseDuration <= 0 {
		cfg.PulseDuration = 3 * time.Second
	}
	return &Service{cfg: cfg, device: device, tokens: tokens}
}

// SetLED implements domain.ControllerPort
func (s *Service) SetLED(ctx context.Context, red, yellow bool, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	want := domain.LEDState{Red: red, Yellow: yellow}
	if want == s.led {
		// avoid redundant device writes
		return nil
	}

	if token != domain.InternalToken {
		if s.tokens == nil || !s.tokens.VerifyActuatorToken(ctx, token) {
			return perr.Forbiddenf("actuator token invalid or expired")
		}
	}

	wctx, cancel := context.WithTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()

	if err := s.device.SetLED(wctx, red, yellow); err != nil {
		// physical state is now unknown; keep the cache so the next explicit
		// command is not suppressed as a no-op
		s.connected = false
		return perr.WrapIf(err, perr.ErrorCodeUnavailable, "led write failed")
	}

	s.led = want
	s.connected = true
	return nil
}

// TempHumidity implements domain.ControllerPort. The read does not hold the
// state lock so a slow sensor cannot delay LED commands
func (s *Service) TempHumidity(ctx context.Context) (domain.Reading, error) {
	rctx, cancel := context.WithTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()

	r, err := s.device.ReadSensor(rctx)

	s.mu.Lock()
	s.connected = err == nil
	s.mu.Unlock()

	if err != nil {
		return domain.Reading{}, perr.WrapIf(err, perr.ErrorCodeUnavailable, "sensor read failed")
	}
	return r, nil
}

// PulseWarning implements domain.ControllerPort
func (s *Service) PulseWarning(d time.Duration) {
	if d <= 0 {
		d = s.cfg.PulseDuration
	}
	log := logger.Named("actuator")

	if err := s.SetLED(context.Background(), true, false, domain.InternalToken); err != nil {
		log.Warn().Err(err).Msg("warning assert failed")
		return
	}

	s.mu.Lock()
	if s.revert != nil {
		// a newer assertion supersedes the pending revert
		s.revert.Stop()
	}
	s.revert = time.AfterFunc(d, func() {
		if err := s.SetLED(context.Background(), false, false, domain.InternalToken); err != nil {
			log.Warn().Err(err).Msg("warning revert failed")
		}
	})
	s.mu.Unlock()
}

// Status implements domain.ControllerPort
func (s *Service) Status() domain.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Status{Connected: s.connected, LED: s.led}
}
