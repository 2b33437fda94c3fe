package middleware

import (
	"net/http"

	pnet "classwatch/internal/platform/net"
)

// AuthPort is the seam the session service implements
type AuthPort interface {
	// Parse returns a session id and username from the request or an error
	Parse(r *http.Request) (sessionID string, username string, err error)
}

// Auth rejects requests the port cannot resolve to a live session.
// A nil port passes everything through (useful in tests)
func Auth(p AuthPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			sid, user, err := p.Parse(r)
			if err != nil {
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			ctx := pnet.WithSession(r.Context(), sid, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
