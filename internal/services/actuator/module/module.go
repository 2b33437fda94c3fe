// Package module implements the actuator service module
package module

import (
	"classwatch/internal/adapters/esp"
	"classwatch/internal/modkit"
	phttp "classwatch/internal/platform/net/http"
	"classwatch/internal/services/actuator/domain"
	acthttp "classwatch/internal/services/actuator/http"
	"classwatch/internal/services/actuator/service"
	sessdom "classwatch/internal/services/session/domain"
)

// Ports exposed by the actuator module
type Ports struct {
	Controller domain.ControllerPort
}

// Module implements the actuator service module
type Module struct {
	deps  modkit.Deps
	ports Ports
	auth  sessdom.AuthPort
}

// New constructs the actuator module from ESP_* config, with the session
// module's token verifier and auth ports injected
func New(deps modkit.Deps, tokens sessdom.TokenVerifierPort, auth sessdom.AuthPort) *Module {
	cfg := deps.Cfg.Prefix("ESP_")

	device := esp.New(esp.Config{
		BaseURL:  cfg.MustString("URL"),
		Username: cfg.MayString("USER", "admin"),
		Password: cfg.MustString("PASSWORD"),
		Timeout:  cfg.MayDuration("TIMEOUT", 0),
	})

	svc := service.New(service.Config{
		WriteTimeout:  cfg.MayDuration("TIMEOUT", 0),
		PulseDuration: cfg.MayDuration("PULSE", 0),
	}, device, tokens)

	m := &Module{deps: deps, auth: auth}
	m.ports = Ports{Controller: svc}
	return m
}

// Name satisfies module.Module
func (m *Module) Name() string { return "actuator" }

// Ports satisfies module.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies module.Module
func (m *Module) MountRoutes(r phttp.Router) {
	r.Route("/actuator", func(sr phttp.Router) {
		acthttp.Register(sr, m.ports.Controller, m.auth)
	})
}
