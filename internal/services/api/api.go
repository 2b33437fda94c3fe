// Package api composes the service modules onto the HTTP surface
package api

import (
	"context"

	"classwatch/internal/modkit"
	"classwatch/internal/modkit/httpkit"
	"classwatch/internal/modkit/module"
	"classwatch/internal/platform/config"
	"classwatch/internal/platform/logger"
	phttp "classwatch/internal/platform/net/http"
	"classwatch/internal/services/roster"

	actmod "classwatch/internal/services/actuator/module"
	monmod "classwatch/internal/services/monitor/module"
	sessmod "classwatch/internal/services/session/module"
	statsmod "classwatch/internal/services/stats/module"
)

// Options are the API options
type Options struct {
	Config config.Conf
	Logger *logger.Logger
	Roster *roster.Roster
}

// Monitor is returned so main can run the perception loop alongside the server
type Monitor interface {
	Run(ctx context.Context)
}

// Mount builds the modules, wires their cross-module ports, and mounts
// everything under /api/v1. Auth routes stay public; stats, events, actuator,
// and attendance sit behind session auth
func Mount(r phttp.Router, opt Options) Monitor {
	deps := modkit.Deps{Cfg: opt.Config, Log: opt.Logger}

	// session first: its ports gate everything privileged
	session := sessmod.New(deps)
	sp := module.MustPortsOf[sessmod.Ports](session)

	actuator := actmod.New(deps, sp.Tokens, sp.Auth)
	ap := module.MustPortsOf[actmod.Ports](actuator)

	stats := statsmod.New(deps)
	stp := module.MustPortsOf[statsmod.Ports](stats)

	monitor := monmod.New(deps, monmod.In{
		Stats:      stp.Stats,
		Hub:        stp.Hub,
		Controller: ap.Controller,
		Roster:     opt.Roster,
		Uniforms:   opt.Roster,
	})

	authPort := httpkit.NewPortFunc(func(sessionID string) (string, error) {
		s, err := sp.Auth.Verify(context.Background(), sessionID)
		if err != nil {
			return "", err
		}
		return s.Username, nil
	})

	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		for _, m := range []module.Module{session, actuator, stats, monitor} {
			module.Register(m.Name(), m.Ports())
		}

		session.MountRoutes(api)

		httpkit.Protected(api, authPort, func(pr httpkit.Router) {
			stats.MountRoutes(pr)
			actuator.MountRoutes(pr)
			monitor.MountRoutes(pr)
		})
	})

	return monitor
}
