// Package http provides http transport for actuator control
package http

import (
	stdhttp "net/http"

	"classwatch/internal/modkit/httpkit"
	perr "classwatch/internal/platform/errors"
	pnet "classwatch/internal/platform/net"
	"classwatch/internal/services/actuator/domain"
	sessdom "classwatch/internal/services/session/domain"
)

// LEDInput is the requested LED state
type LEDInput struct {
	Red    bool `json:"red"`
	Yellow bool `json:"yellow"`
}

// Register mounts actuator endpoints; callers must already be session-gated
func Register(r httpkit.Router, ctrl domain.ControllerPort, auth sessdom.AuthPort) {
	h := &handlers{ctrl: ctrl, auth: auth}

	httpkit.PostJSON[LEDInput](r, "/led", h.setLED)
	httpkit.GetJSON(r, "/status", h.status)
	httpkit.GetJSON(r, "/sensor", h.sensor)
}

type handlers struct {
	ctrl domain.ControllerPort
	auth sessdom.AuthPort
}

// setLED resolves the caller's session-issued actuator token; the controller
// verifies it against all currently valid sessions, so a viewer session (no
// token issued) is rejected without mutating cached state
func (h *handlers) setLED(r *stdhttp.Request, in LEDInput) (any, error) {
	sid := pnet.SessionID(r.Context())
	sess, err := h.auth.Verify(r.Context(), sid)
	if err != nil {
		return nil, err
	}
	if sess.ActuatorToken == "" {
		return nil, perr.Forbiddenf("session has no actuator capability")
	}
	if err := h.ctrl.SetLED(r.Context(), in.Red, in.Yellow, sess.ActuatorToken); err != nil {
		return nil, err
	}
	return h.ctrl.Status(), nil
}

func (h *handlers) status(r *stdhttp.Request) (any, error) {
	return h.ctrl.Status(), nil
}

func (h *handlers) sensor(r *stdhttp.Request) (any, error) {
	return h.ctrl.TempHumidity(r.Context())
}
