// Package service implements the debounce and attendance ledger
package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"classwatch/internal/core/violation"
	"classwatch/internal/core/vision"
	"classwatch/internal/services/ledger/domain"
)

// Config for the ledger service
type Config struct {
	// Cooldown is the minimum spacing between admitted events of the same
	// (subject, kind) for the rate-limited kinds
	Cooldown time.Duration
}

// pairKey identifies a (subject, kind) pair in the owned maps
type pairKey struct {
	subject string
	kind    violation.Kind
}

// Service owns the per-run debounce state. All maps are guarded by mu and
// only reachable through Sight/Admit/Attendance; entries are never deleted,
// which is bounded by distinct subject x kind pairs
type Service struct {
	cfg Config

	mu         sync.Mutex
	attendance map[string]domain.AttendanceRecord
	oneShot    map[pairKey]struct{}
	lastSent   map[pairKey]time.Time
}

// New constructs a ledger; a non-positive cooldown gets the stock 30s window
func New(cfg Config) *Service {
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 30 * time.Second
	}
	return &Service{
		cfg:        cfg,
		attendance: make(map[string]domain.AttendanceRecord),
		oneShot:    make(map[pairKey]struct{}),
		lastSent:   make(map[pairKey]time.Time),
	}
}

// Sight implements domain.AdmitterPort
func (s *Service) Sight(_ context.Context, subject string, now time.Time) bool {
	if subject == "" || subject == vision.Unknown {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.attendance[subject]; ok {
		return false
	}
	s.attendance[subject] = domain.AttendanceRecord{Subject: subject, FirstSeen: now}
	return true
}

// Admit implements domain.AdmitterPort. Admission is pure debounce: it never
// touches attendance, so absence events cannot mint a sighting
func (s *Service) Admit(_ context.Context, subject string, kind violation.Kind, now time.Time) domain.Decision {
	if subject == "" || subject == vision.Unknown || !kind.Valid() {
		return domain.Decision{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var d domain.Decision
	key := pairKey{subject: subject, kind: kind}
	if kind.OneShot() {
		if _, sent := s.oneShot[key]; sent {
			return d
		}
		s.oneShot[key] = struct{}{}
		d.Admitted = true
		return d
	}

	if last, ok := s.lastSent[key]; ok && now.Sub(last) < s.cfg.Cooldown {
		return d
	}
	s.lastSent[key] = now
	d.Admitted = true
	return d
}

// Attendance implements domain.AdmitterPort
func (s *Service) Attendance(_ context.Context) []domain.AttendanceRecord {
	s.mu.Lock()
	out := make([]domain.AttendanceRecord, 0, len(s.attendance))
	for _, rec := range s.attendance {
		out = append(out, rec)
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Subject < out[j].Subject })
	return out
}
