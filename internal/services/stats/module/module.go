// Package module implements the stats service module
package module

import (
	"classwatch/internal/modkit"
	phttp "classwatch/internal/platform/net/http"
	"classwatch/internal/services/stats/domain"
	statshttp "classwatch/internal/services/stats/http"
	"classwatch/internal/services/stats/service"
)

// Ports exposed by the stats module
type Ports struct {
	Stats domain.StatsPort
	Hub   domain.BroadcastPort
}

// Module implements the stats service module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the stats module
func New(deps modkit.Deps) *Module {
	m := &Module{deps: deps}
	m.ports = Ports{
		Stats: service.NewAggregator(),
		Hub:   service.NewHub(),
	}
	return m
}

// Name satisfies module.Module
func (m *Module) Name() string { return "stats" }

// Ports satisfies module.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies module.Module
func (m *Module) MountRoutes(r phttp.Router) {
	statshttp.NewHandlers(m.ports.Stats, m.ports.Hub).Register(r)
}
