// Package service implements the asynchronous reporting channel
package service

import (
	"context"
	"sync"
	"time"

	"classwatch/internal/adapters/backendapi"
	"classwatch/internal/core/violation"
	"classwatch/internal/platform/logger"
)

// Config for the reporting service
type Config struct {
	// MaxInflight bounds concurrent delivery attempts; defaults to 8.
	// When the bound is reached new deliveries are dropped, not queued:
	// the evaluation loop's cadence outranks delivery guarantees
	MaxInflight int
}

// Service dispatches each admitted event as an independent delivery attempt.
// There is no retry and no ordering guarantee across events
type Service struct {
	client *backendapi.Client
	sem    chan struct{}
	log    *logger.Logger

	wg sync.WaitGroup // lets tests wait for in-flight deliveries
}

// New constructs the reporting channel
func New(client *backendapi.Client, cfg Config) *Service {
	if cfg.MaxInflight <= 0 {
		cfg.MaxInflight = 8
	}
	return &Service{
		client: client,
		sem:    make(chan struct{}, cfg.MaxInflight),
		log:    logger.Named("reporting"),
	}
}

type reportWire struct {
	Subject   string    `json:"subject"`
	Kind      string    `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
	Detail    string    `json:"detail,omitempty"`
}

// ReportViolation implements domain.ReporterPort
func (s *Service) ReportViolation(ev violation.Event) {
	s.dispatch("/report", reportWire{
		Subject:   ev.Subject,
		Kind:      string(ev.Kind),
		Timestamp: ev.At,
		Detail:    ev.Detail,
	})
}

// ReportAttendance implements domain.ReporterPort
func (s *Service) ReportAttendance(subject string, at time.Time) {
	s.dispatch("/attendance", map[string]any{"subject": subject, "timestamp": at})
}

// ReportEnvironment implements domain.ReporterPort
func (s *Service) ReportEnvironment(temp, humidity float64) {
	s.dispatch("/env", map[string]float64{"temp": temp, "humidity": humidity})
}

// dispatch spawns one bounded delivery attempt; failures are logged and dropped
func (s *Service) dispatch(path string, payload any) {
	if s.client == nil {
		s.log.Debug().Str("path", path).Msg("no backend configured, dropped")
		return
	}
	select {
	case s.sem <- struct{}{}:
	default:
		s.log.Warn().Str("path", path).Msg("delivery dropped: too many in flight")
		return
	}

	s.wg.Add(1)
	go func() {
		defer func() {
			<-s.sem
			s.wg.Done()
		}()
		if err := s.client.Post(context.Background(), path, payload); err != nil {
			s.log.Warn().Err(err).Str("path", path).Msg("delivery failed, dropped")
		}
	}()
}

// Flush blocks until all currently in-flight deliveries finish
func (s *Service) Flush() { s.wg.Wait() }
