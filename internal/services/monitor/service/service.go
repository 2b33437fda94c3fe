// Package service runs the perception loop: the single goroutine that turns
// per-frame detections into debounced events, actuator reactions, and stats
package service

import (
	"context"
	"time"

	"classwatch/internal/core/rules"
	"classwatch/internal/core/violation"
	"classwatch/internal/platform/logger"
	actdom "classwatch/internal/services/actuator/domain"
	leddom "classwatch/internal/services/ledger/domain"
	"classwatch/internal/services/monitor/domain"
	repdom "classwatch/internal/services/reporting/domain"
	statsdom "classwatch/internal/services/stats/domain"
)

// Config for the loop cadence and reaction thresholds
type Config struct {
	// Interval paces evaluation cycles; defaults to 100ms
	Interval time.Duration

	// EnvPollInterval spaces temperature/humidity polls; defaults to 5s
	EnvPollInterval time.Duration

	// TempThreshold asserts the yellow LED when exceeded; defaults to 30
	TempThreshold float64

	// AbsentThreshold is the minimum absent count before absence events are
	// emitted; defaults to 1
	AbsentThreshold int

	// PulseDuration is how long the red warning stays asserted after a
	// safety-critical event; defaults to 3s
	PulseDuration time.Duration
}

func (c Config) withDefaults() Config {
	if c.Interval <= 0 {
		c.Interval = 100 * time.Millisecond
	}
	if c.EnvPollInterval <= 0 {
		c.EnvPollInterval = 5 * time.Second
	}
	if c.TempThreshold == 0 {
		c.TempThreshold = 30
	}
	if c.AbsentThreshold <= 0 {
		c.AbsentThreshold = 1
	}
	if c.PulseDuration <= 0 {
		c.PulseDuration = 3 * time.Second
	}
	return c
}

// Deps are the capabilities the loop drives. The loop owns no shared state
// beyond its own counters: everything cross-component goes through these ports
type Deps struct {
	Frames     domain.FrameSource
	Perception domain.Perception
	Eval       *rules.Evaluator
	Ledger     leddom.AdmitterPort
	Reporter   repdom.ReporterPort
	Controller actdom.ControllerPort
	Stats      statsdom.StatsPort
	Hub        statsdom.BroadcastPort
	Roster     domain.RosterPort
}

// Service is the perception loop
type Service struct {
	cfg  Config
	deps Deps
	log  *logger.Logger

	// counters owned by the single loop goroutine
	frameCount  int
	fps         int
	lastFPSTime time.Time
	lastEnvPoll time.Time
	temp        *float64
	humidity    *float64
}

// New constructs the loop
func New(cfg Config, deps Deps) *Service {
	return &Service{cfg: cfg.withDefaults(), deps: deps, log: logger.Named("monitor")}
}

// Run evaluates cycles until ctx is cancelled. Nothing in a cycle is fatal:
// a failed frame or detect call skips the cycle and the loop keeps going
func (s *Service) Run(ctx context.Context) {
	s.log.Info().Dur("interval", s.cfg.Interval).Int("subjects", s.deps.Roster.Count()).Msg("perception loop started")

	tick := time.NewTicker(s.cfg.Interval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("perception loop stopped")
			return
		case <-tick.C:
			s.Cycle(ctx, time.Now())
		}
	}
}

// Cycle runs one evaluation pass at the given instant. Exported for tests;
// Run is the only production caller
func (s *Service) Cycle(ctx context.Context, now time.Time) {
	frame, err := s.deps.Frames.Frame(ctx)
	if err != nil {
		s.log.Debug().Err(err).Msg("frame unavailable")
		return
	}
	s.tickFPS(now)

	dets, err := s.deps.Perception.Detect(ctx, frame)
	if err != nil {
		s.log.Warn().Err(err).Msg("detect failed, cycle skipped")
		return
	}

	present := make([]string, 0, len(dets))
	seen := make(map[string]struct{}, len(dets))
	for _, det := range dets {
		if !det.Known() {
			continue
		}
		if !s.deps.Roster.Known(det.Identity) {
			// sidecar labels outside the roster never mint attendance or events
			s.log.Debug().Str("identity", det.Identity).Msg("unenrolled identity ignored")
			continue
		}
		if _, dup := seen[det.Identity]; dup {
			continue
		}
		seen[det.Identity] = struct{}{}
		present = append(present, det.Identity)

		// every recognition is a sighting, violation or not
		if s.deps.Ledger.Sight(ctx, det.Identity, now) {
			s.deps.Reporter.ReportAttendance(det.Identity, now)
		}

		finding, ok := s.deps.Eval.Evaluate(det, frame)
		if !ok {
			continue
		}
		if finding.Degraded {
			s.log.Debug().Str("subject", det.Identity).Str("detail", finding.Detail).Msg("degraded classification")
		}

		if d := s.deps.Ledger.Admit(ctx, det.Identity, finding.Kind, now); !d.Admitted {
			continue
		}

		ev := violation.Event{Subject: det.Identity, Kind: finding.Kind, At: now, Detail: finding.Detail}
		s.log.Info().Str("subject", ev.Subject).Str("kind", string(ev.Kind)).Msg("violation admitted")
		s.deps.Reporter.ReportViolation(ev)
		s.deps.Hub.Publish(ev)
		if ev.Kind.Critical() {
			s.deps.Controller.PulseWarning(s.cfg.PulseDuration)
		}
	}

	absent := s.absentSet(seen)
	if len(absent) >= s.cfg.AbsentThreshold {
		s.emitAbsences(ctx, absent, now)
	}

	if now.Sub(s.lastEnvPoll) >= s.cfg.EnvPollInterval {
		s.lastEnvPoll = now
		s.pollEnvironment(ctx)
	}

	st := s.deps.Controller.Status()
	s.deps.Stats.Set(statsdom.Snapshot{
		Present:           present,
		Absent:            absent,
		Temp:              s.temp,
		Humidity:          s.humidity,
		Time:              now,
		FPS:               s.fps,
		ActuatorConnected: st.Connected,
		LED:               st.LED,
		TotalSubjects:     s.deps.Roster.Count(),
	})
}

func (s *Service) tickFPS(now time.Time) {
	if s.lastFPSTime.IsZero() {
		s.lastFPSTime = now
	}
	s.frameCount++
	if now.Sub(s.lastFPSTime) >= time.Second {
		s.fps = s.frameCount
		s.frameCount = 0
		s.lastFPSTime = now
	}
}

// absentSet is enrolled minus seen, recomputed wholesale every cycle
func (s *Service) absentSet(seen map[string]struct{}) []string {
	names := s.deps.Roster.Names()
	absent := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := seen[name]; !ok {
			absent = append(absent, name)
		}
	}
	return absent
}

// emitAbsences pushes one-shot absence events through the ledger; absence is
// an admission, never a sighting
func (s *Service) emitAbsences(ctx context.Context, absent []string, now time.Time) {
	for _, name := range absent {
		d := s.deps.Ledger.Admit(ctx, name, violation.KindAbsent, now)
		if !d.Admitted {
			continue
		}
		ev := violation.Event{Subject: name, Kind: violation.KindAbsent, At: now, Detail: "not seen in frame"}
		s.log.Info().Str("subject", name).Msg("absence recorded")
		s.deps.Reporter.ReportViolation(ev)
		s.deps.Hub.Publish(ev)
	}
}

// pollEnvironment samples the device and drives the yellow LED off the
// temperature threshold using the internal token
func (s *Service) pollEnvironment(ctx context.Context) {
	rd, err := s.deps.Controller.TempHumidity(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("environment poll failed")
		return
	}
	t, h := rd.Temp, rd.Humidity
	s.temp, s.humidity = &t, &h
	s.deps.Reporter.ReportEnvironment(t, h)

	yellow := t > s.cfg.TempThreshold
	if err := s.deps.Controller.SetLED(ctx, false, yellow, actdom.InternalToken); err != nil {
		s.log.Warn().Err(err).Bool("yellow", yellow).Msg("led write failed")
	}
}
