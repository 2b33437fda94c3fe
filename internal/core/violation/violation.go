// Package violation defines the closed set of classroom policy violations
// and the event type that moves through the pipeline
package violation

import "time"

// Kind is a closed enumeration of violation kinds
// values are stable wire identifiers consumed by the backend and the dashboard
type Kind string

const (
	// KindInattentive is the head-turn proxy for looking away / cheating
	KindInattentive Kind = "inattentive"

	// KindDrowsy is the low-head-position proxy for sleeping
	KindDrowsy Kind = "drowsy"

	// KindUniformMismatch means the sampled uniform color differs from the expected one
	KindUniformMismatch Kind = "uniform_mismatch"

	// KindAbsent means a registered subject was not seen this run
	KindAbsent Kind = "absent"
)

// Valid reports whether k is one of the known kinds
func (k Kind) Valid() bool {
	switch k {
	case KindInattentive, KindDrowsy, KindUniformMismatch, KindAbsent:
		return true
	}
	return false
}

// Critical reports whether admitted events of this kind drive the actuator
func (k Kind) Critical() bool { return k == KindInattentive }

// OneShot reports whether the kind is delivered at most once per subject per run
func (k Kind) OneShot() bool { return k == KindUniformMismatch || k == KindAbsent }

// Event is one admitted (or candidate) violation occurrence
// immutable once created
type Event struct {
	Subject string    `json:"subject"`
	Kind    Kind      `json:"kind"`
	At      time.Time `json:"timestamp"`
	Detail  string    `json:"detail,omitempty"`
}
