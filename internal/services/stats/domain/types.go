// Package domain defines the live snapshot and broadcast contracts
package domain

import (
	"time"

	"classwatch/internal/core/violation"
	actdom "classwatch/internal/services/actuator/domain"
)

// Snapshot is the process-wide dashboard state, replaced wholesale each
// cycle; the present set is this frame's resolved detections, not cumulative
type Snapshot struct {
	Present           []string        `json:"present"`
	Absent            []string        `json:"absent"`
	Temp              *float64        `json:"temp"`
	Humidity          *float64        `json:"humidity"`
	Time              time.Time       `json:"time"`
	FPS               int             `json:"fps"`
	ActuatorConnected bool            `json:"actuator_connected"`
	LED               actdom.LEDState `json:"led_state"`
	TotalSubjects     int             `json:"total_subjects"`
}

// StatsPort is the aggregator surface
type StatsPort interface {
	// Set replaces the snapshot (last write wins, no history)
	Set(s Snapshot)

	// Snapshot returns a copy of the current snapshot
	Snapshot() Snapshot
}

// Subscription is one live observer's event feed
type Subscription struct {
	C <-chan violation.Event

	c chan violation.Event
}

// NewSubscription wraps a buffered channel; used by the hub only
func NewSubscription(buf int) *Subscription {
	ch := make(chan violation.Event, buf)
	return &Subscription{C: ch, c: ch}
}

// Chan exposes the writable side to the hub
func (s *Subscription) Chan() chan violation.Event { return s.c }

// BroadcastPort pushes admitted events to live observers, independent of
// the periodic snapshot cadence
type BroadcastPort interface {
	Publish(ev violation.Event)
	Subscribe(buf int) *Subscription
	Unsubscribe(sub *Subscription)
}
