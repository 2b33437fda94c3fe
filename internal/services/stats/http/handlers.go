// Package http mounts the stats and live-event routes
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"classwatch/internal/modkit/httpkit"
	"classwatch/internal/platform/logger"
	"classwatch/internal/services/stats/domain"
)

const writeTimeout = 5 * time.Second

// Handlers serves the dashboard snapshot and the websocket event feed
type Handlers struct {
	stats domain.StatsPort
	hub   domain.BroadcastPort
	log   *logger.Logger
}

// NewHandlers builds the route set
func NewHandlers(stats domain.StatsPort, hub domain.BroadcastPort) *Handlers {
	return &Handlers{stats: stats, hub: hub, log: logger.Named("stats.http")}
}

// Register mounts routes on r. The caller decides auth wrapping
func (h *Handlers) Register(r httpkit.Router) {
	httpkit.GetJSON(r, "/stats", func(*http.Request) (any, error) {
		return h.stats.Snapshot(), nil
	})
	r.Get("/events", h.streamEvents)
}

// streamEvents upgrades to a websocket and relays admitted events until
// the client goes away or a write stalls past the timeout
func (h *Handlers) streamEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{})
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket accept failed")
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	sub := h.hub.Subscribe(64)
	defer h.hub.Unsubscribe(sub)

	readErr := make(chan error, 1)
	go func() {
		for {
			if _, _, err := conn.Read(ctx); err != nil {
				readErr <- err
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			_ = conn.Close(websocket.StatusNormalClosure, "closed")
			return
		case <-readErr:
			_ = conn.Close(websocket.StatusNormalClosure, "closed")
			return
		case ev, ok := <-sub.C:
			if !ok {
				_ = conn.Close(websocket.StatusNormalClosure, "closed")
				return
			}
			writeCtx, cancelWrite := context.WithTimeout(ctx, writeTimeout)
			err := wsjson.Write(writeCtx, conn, ev)
			cancelWrite()
			if err != nil {
				_ = conn.Close(websocket.StatusNormalClosure, "write_failed")
				return
			}
		}
	}
}
