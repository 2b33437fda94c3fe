package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"classwatch/internal/platform/config"
	"classwatch/internal/platform/logger"
	phttp "classwatch/internal/platform/net/http"

	"classwatch/internal/services/api"
	"classwatch/internal/services/roster"
)

func main() {
	// service-scoped config for HTTP (CORE_API_*); modules read their own prefixes
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	l := logger.Get()

	ros, err := roster.Load(root.MustString("ROSTER_PATH"))
	if err != nil {
		l.Panic().Err(err).Msg("roster load failed")
	}
	l.Info().Int("subjects", ros.Count()).Msg("roster loaded")

	// http server (CORE_API_PORT)
	srv := phttp.NewServer(apiCfg)

	mon := api.Mount(
		srv.Router(),
		api.Options{
			Config: root,
			Logger: l,
			Roster: ros,
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go mon.Run(ctx)

	go func() {
		<-ctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shCtx); err != nil {
			l.Error().Err(err).Msg("shutdown failed")
		}
	}()

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
