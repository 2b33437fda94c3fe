// Package module implements the session service module
package module

import (
	"classwatch/internal/modkit"
	phttp "classwatch/internal/platform/net/http"
	"classwatch/internal/services/session/domain"
	sesshttp "classwatch/internal/services/session/http"
	"classwatch/internal/services/session/service"
)

// Ports exposed by the session module
type Ports struct {
	Auth   domain.AuthPort
	Tokens domain.TokenVerifierPort
}

// Module implements the session service module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the session module from AUTH_* config.
// AUTH_ADMIN_PASSWORD is required; AUTH_VIEWER_PASSWORD optionally enables a
// read-only account without the actuator capability
func New(deps modkit.Deps) *Module {
	cfg := deps.Cfg.Prefix("AUTH_")

	users := []domain.User{{
		Username:        cfg.MayString("ADMIN_USER", "admin"),
		PasswordHash:    service.MustHashPassword(cfg.MustString("ADMIN_PASSWORD")),
		Role:            domain.RoleAdmin,
		ActuatorControl: true,
	}}
	if pw := cfg.MayString("VIEWER_PASSWORD", ""); pw != "" {
		users = append(users, domain.User{
			Username:     cfg.MayString("VIEWER_USER", "viewer"),
			PasswordHash: service.MustHashPassword(pw),
			Role:         domain.RoleViewer,
		})
	}

	svc := service.New(service.Config{
		IdleTimeout: cfg.MayDuration("IDLE_TIMEOUT", 0),
	}, users)

	m := &Module{deps: deps}
	m.ports = Ports{Auth: svc, Tokens: svc}
	return m
}

// Name satisfies module.Module
func (m *Module) Name() string { return "session" }

// Ports satisfies module.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies module.Module
func (m *Module) MountRoutes(r phttp.Router) {
	r.Route("/auth", func(sr phttp.Router) {
		sesshttp.Register(sr, m.ports.Auth)
	})
}
