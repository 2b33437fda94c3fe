// Package module assembles the perception loop and its collaborators
package module

import (
	"context"
	"net/http"

	"classwatch/internal/adapters/backendapi"
	"classwatch/internal/adapters/edge"
	"classwatch/internal/core/rules"
	"classwatch/internal/core/vision"
	"classwatch/internal/modkit"
	phttp "classwatch/internal/platform/net/http"
	actdom "classwatch/internal/services/actuator/domain"
	leddom "classwatch/internal/services/ledger/domain"
	ledsvc "classwatch/internal/services/ledger/service"
	"classwatch/internal/services/monitor/domain"
	"classwatch/internal/services/monitor/service"
	repdom "classwatch/internal/services/reporting/domain"
	repsvc "classwatch/internal/services/reporting/service"
	statsdom "classwatch/internal/services/stats/domain"
)

// In carries the cross-module collaborators the loop drives
type In struct {
	Stats      statsdom.StatsPort
	Hub        statsdom.BroadcastPort
	Controller actdom.ControllerPort
	Roster     domain.RosterPort
	Uniforms   rules.Uniforms
}

// Ports exposed by the monitor module
type Ports struct {
	Admitter leddom.AdmitterPort
	Reporter repdom.ReporterPort
}

// Module owns the perception loop lifecycle
type Module struct {
	deps  modkit.Deps
	ports Ports
	loop  *service.Service
}

// New wires the sidecar client, rule evaluator, ledger, and reporting channel
// from MONITOR_*, EDGE_*, and BACKEND_* config
func New(deps modkit.Deps, in In) *Module {
	mcfg := deps.Cfg.Prefix("MONITOR_")
	ecfg := deps.Cfg.Prefix("EDGE_")
	bcfg := deps.Cfg.Prefix("BACKEND_")

	sidecar := edge.New(edge.Config{
		BaseURL: ecfg.MustString("URL"),
		Timeout: ecfg.MayDuration("TIMEOUT", 0),
	})

	rcfg := rules.DefaultConfig()
	rcfg.HeadTurnRatio = mcfg.MayFloat64("HEAD_TURN_RATIO", rcfg.HeadTurnRatio)
	rcfg.DrowsyFrac = mcfg.MayFloat64("DROWSY_FRAC", rcfg.DrowsyFrac)
	rcfg.RegionDepth = mcfg.MayInt("UNIFORM_REGION_DEPTH", rcfg.RegionDepth)
	if v := mcfg.MayString("DEFAULT_UNIFORM", ""); v != "" {
		rcfg.DefaultUniform = vision.ColorLabel(v)
	}
	eval := rules.New(rcfg, vision.NewWhiteBandClassifier(), in.Uniforms)

	ledger := ledsvc.New(ledsvc.Config{
		Cooldown: mcfg.MayDuration("COOLDOWN", 0),
	})

	var backend *backendapi.Client
	if url := bcfg.MayString("URL", ""); url != "" {
		backend = backendapi.New(backendapi.Config{
			BaseURL:   url,
			AuthToken: bcfg.MayString("TOKEN", ""),
			Timeout:   bcfg.MayDuration("TIMEOUT", 0),
		})
	}
	reporter := repsvc.New(backend, repsvc.Config{
		MaxInflight: mcfg.MayInt("MAX_INFLIGHT_REPORTS", 0),
	})

	loop := service.New(service.Config{
		Interval:        mcfg.MayDuration("INTERVAL", 0),
		EnvPollInterval: mcfg.MayDuration("ENV_POLL_INTERVAL", 0),
		TempThreshold:   mcfg.MayFloat64("TEMP_THRESHOLD", 0),
		AbsentThreshold: mcfg.MayInt("ABSENT_THRESHOLD", 0),
		PulseDuration:   mcfg.MayDuration("PULSE", 0),
	}, service.Deps{
		Frames:     sidecar,
		Perception: sidecar,
		Eval:       eval,
		Ledger:     ledger,
		Reporter:   reporter,
		Controller: in.Controller,
		Stats:      in.Stats,
		Hub:        in.Hub,
		Roster:     in.Roster,
	})

	return &Module{
		deps:  deps,
		ports: Ports{Admitter: ledger, Reporter: reporter},
		loop:  loop,
	}
}

// Run starts the loop and blocks until ctx is cancelled
func (m *Module) Run(ctx context.Context) { m.loop.Run(ctx) }

// Name satisfies module.Module
func (m *Module) Name() string { return "monitor" }

// Ports satisfies module.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies module.Module
func (m *Module) MountRoutes(r phttp.Router) {
	phttp.GetJSON(r, "/attendance", func(rq *http.Request) (any, error) {
		return m.ports.Admitter.Attendance(rq.Context()), nil
	})
}
