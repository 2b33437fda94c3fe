package httpkit

import (
	"net/http"
	"time"

	phttp "classwatch/internal/platform/net/http"
	"classwatch/internal/platform/net/middleware"
)

// CommonStack returns a baseline per module middleware slice
// compose with the session auth middleware as needed in main
func CommonStack() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),

		// safety
		middleware.RecoverJSON,

		// cache / freshness
		middleware.NoCache(),

		// observability
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: 500 * time.Millisecond}),

		// cross-origin (dashboard is typically served from another origin)
		middleware.CORS(middleware.CORSOptions{}),
		middleware.Heartbeat("/health"),
		middleware.RedirectSlashes(),
		middleware.StripSlashes(),
		middleware.Timeout(30 * time.Second),
	}
}

// Auth wires the auth middleware to the platform JSON writer
func Auth(p middleware.AuthPort) func(http.Handler) http.Handler {
	return middleware.Auth(p, phttp.JSON)
}

// Protected groups routes behind session auth
func Protected(r Router, p middleware.AuthPort, fn func(Router)) {
	r.Group(func(gr Router) {
		gr.Use(Auth(p))
		fn(gr)
	})
}

// MountAPIV1 mounts fn under /api/v1 with the given middleware stack
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, fn func(Router)) {
	r.Use(mw...)
	r.Route("/api/v1", fn)
}
