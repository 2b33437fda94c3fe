// Package service implements the snapshot aggregator and the event hub
package service

import (
	"sync"

	"classwatch/internal/core/violation"
	"classwatch/internal/platform/logger"
	"classwatch/internal/services/stats/domain"
)

// Aggregator holds the live snapshot. Writers replace it wholesale;
// readers get copies
type Aggregator struct {
	mu   sync.RWMutex
	snap domain.Snapshot
}

// NewAggregator returns an empty aggregator
func NewAggregator() *Aggregator { return &Aggregator{} }

// Set replaces the snapshot
func (a *Aggregator) Set(s domain.Snapshot) {
	a.mu.Lock()
	a.snap = s
	a.mu.Unlock()
}

// Snapshot returns a shallow copy with cloned name slices, so callers
// never observe a later cycle's mutation
func (a *Aggregator) Snapshot() domain.Snapshot {
	a.mu.RLock()
	s := a.snap
	a.mu.RUnlock()
	s.Present = append([]string(nil), s.Present...)
	s.Absent = append([]string(nil), s.Absent...)
	return s
}

// Hub fans admitted events out to subscribers. Publish never blocks:
// a subscriber whose buffer is full loses that event
type Hub struct {
	mu   sync.Mutex
	subs map[*domain.Subscription]struct{}
	log  *logger.Logger
}

// NewHub returns an empty hub
func NewHub() *Hub {
	return &Hub{subs: make(map[*domain.Subscription]struct{}), log: logger.Named("stats.hub")}
}

// Subscribe registers a new observer with the given buffer size
func (h *Hub) Subscribe(buf int) *domain.Subscription {
	if buf <= 0 {
		buf = 16
	}
	sub := domain.NewSubscription(buf)
	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

// Unsubscribe removes the observer and closes its channel
func (h *Hub) Unsubscribe(sub *domain.Subscription) {
	h.mu.Lock()
	if _, ok := h.subs[sub]; ok {
		delete(h.subs, sub)
		close(sub.Chan())
	}
	h.mu.Unlock()
}

// Publish delivers ev to every subscriber that has buffer room
func (h *Hub) Publish(ev violation.Event) {
	h.mu.Lock()
	for sub := range h.subs {
		select {
		case sub.Chan() <- ev:
		default:
			h.log.Warn().Str("subject", ev.Subject).Str("kind", string(ev.Kind)).Msg("slow subscriber, event dropped")
		}
	}
	h.mu.Unlock()
}
