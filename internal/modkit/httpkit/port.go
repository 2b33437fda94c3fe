package httpkit

import (
	"net/http"
	"strings"

	perr "classwatch/internal/platform/errors"
)

// SessionFunc verifies a session id and returns the owning username
type SessionFunc func(sessionID string) (username string, err error)

// Port implements middleware.AuthPort by reading Authorization and delegating to a SessionFunc
type Port struct {
	verify SessionFunc
}

// NewPortFunc builds a Port from a simple verifier function
func NewPortFunc(fn SessionFunc) *Port {
	return &Port{verify: fn}
}

// Parse extracts the session id from an Authorization Bearer header
// returns unauthorized when the header is missing, malformed, or the session is not live
func (p *Port) Parse(r *http.Request) (string, string, error) {
	sid := BearerToken(r)
	if sid == "" {
		// websocket clients cannot set headers; allow the query fallback
		sid = strings.TrimSpace(r.URL.Query().Get("session_id"))
	}
	if sid == "" {
		return "", "", perr.Unauthorizedf("missing session credential")
	}
	if p.verify == nil {
		return "", "", perr.Unauthorizedf("no session verifier configured")
	}
	user, err := p.verify(sid)
	if err != nil {
		return "", "", err
	}
	return sid, user, nil
}

// BearerToken returns the trimmed bearer token from the Authorization header or ""
func BearerToken(r *http.Request) string {
	s := strings.TrimSpace(r.Header.Get("Authorization"))
	if s == "" {
		return ""
	}
	const prefix = "bearer"
	if !strings.HasPrefix(strings.ToLower(s), prefix) {
		return ""
	}
	return strings.TrimSpace(s[len(prefix):])
}
