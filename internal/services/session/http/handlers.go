// Package http provides http transport for the session store
package http

import (
	stdhttp "net/http"

	"classwatch/internal/modkit/httpkit"
	"classwatch/internal/services/session/domain"
)

// LoginInput is the login request body
type LoginInput struct {
	Username string `json:"username" validate:"required,min=1,max=64"`
	Password string `json:"password" validate:"required,min=1,max=128"`
}

// LogoutInput is the logout request body
type LogoutInput struct {
	SessionID string `json:"session_id" validate:"required"`
}

// Register mounts auth endpoints on the given router
func Register(r httpkit.Router, auth domain.AuthPort) {
	h := &handlers{auth: auth}

	httpkit.PostJSON[LoginInput](r, "/login", h.login)
	httpkit.PostJSON[LogoutInput](r, "/logout", h.logout)
}

type handlers struct{ auth domain.AuthPort }

func (h *handlers) login(r *stdhttp.Request, in LoginInput) (any, error) {
	sess, err := h.auth.Login(r.Context(), in.Username, in.Password)
	if err != nil {
		return nil, err
	}
	return sess, nil
}

func (h *handlers) logout(r *stdhttp.Request, in LogoutInput) (any, error) {
	h.auth.Logout(r.Context(), in.SessionID)
	return map[string]bool{"ok": true}, nil
}
