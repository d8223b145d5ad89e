// @title         Langid API
// @version       0.1.0
// @description   Caching language identification endpoints

package main

import (
	"context"
	"os/signal"
	"syscall"

	"langid/internal/adapters/lingua"
	"langid/internal/platform/config"
	"langid/internal/platform/logger"
	phttp "langid/internal/platform/net/http"

	"langid/internal/services/api"
	"langid/internal/services/classify/domain"
	"langid/internal/services/classify/service"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	l := logger.Get()

	// detector initialization is slow (model load), so it runs asynchronously
	// behind the lifecycle; /classify rejects with 503 until it finishes
	lc := service.NewLifecycle()
	lc.Start(func() (domain.Detector, error) {
		return lingua.New(lingua.Options{}), nil
	})

	// http server (reads CORE_API_PORT / CORE_API_DRAIN_TIMEOUT)
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:    root,
			Logger:    l,
			Lifecycle: lc,
		},
	)

	// SIGINT/SIGTERM cancels the context, Run drains in-flight requests,
	// and only then the detector is disposed; disposal runs even when
	// draining reported an error
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := srv.Run(ctx)
	lc.Dispose()
	if err != nil {
		l.Error().Err(err).Msg("http server stopped with error")
		return
	}
	l.Info().Msg("shutdown complete")
}
