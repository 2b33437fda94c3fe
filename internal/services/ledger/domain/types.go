// Package domain defines the types and contracts for the debounce ledger
package domain

import (
	"context"
	"time"

	"classwatch/internal/core/violation"
)

// AttendanceRecord marks the first sighting of a subject, created at most
// once per subject per run and never mutated afterwards
type AttendanceRecord struct {
	Subject   string    `json:"subject"`
	FirstSeen time.Time `json:"first_seen"`
}

// Decision is the outcome of one admission attempt
type Decision struct {
	// Admitted means the event passed debounce and should be delivered
	Admitted bool
}

// AdmitterPort is consumed by the monitor loop
type AdmitterPort interface {
	// Sight records that subject was recognized in frame at now, creating
	// the attendance record on the first call; returns true exactly once
	// per subject per run. Sightings are independent of violations
	Sight(ctx context.Context, subject string, now time.Time) bool

	// Admit decides whether a (subject, kind) occurrence at now passes the
	// debounce policy. Unknown subjects are never admitted
	Admit(ctx context.Context, subject string, kind violation.Kind, now time.Time) Decision

	// Attendance returns a copy of the attendance records created so far
	Attendance(ctx context.Context) []AttendanceRecord
}
