// Package api provides the HTTP API for the application
package api

import (
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"langid/internal/platform/config"
	"langid/internal/platform/logger"
	phttp "langid/internal/platform/net/http"
	"langid/internal/platform/net/middleware"

	"langid/internal/modkit"
	"langid/internal/modkit/httpkit"

	classifymod "langid/internal/services/classify/module"
	"langid/internal/services/classify/service"
	metamod "langid/internal/services/meta/module"
)

// Options are the API options
type Options struct {
	Config    config.Conf
	Logger    *logger.Logger
	Lifecycle *service.Lifecycle
}

// Mount mounts the API service onto the given router.
//
// The surface is flat (no version prefix): /health, /ready, /classify plus
// the operational extras. The classify module is constructed first so the
// meta module can report its readiness and cache counters.
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{
		Cfg: opt.Config,
		Log: opt.Logger,
	}
	apiCfg := deps.Cfg.Prefix("CORE_API_")

	// boundary middleware in front of every route
	for _, mw := range httpkit.CommonStack() {
		r.Use(mw)
	}
	r.Use(middleware.RequestSize(apiCfg.MayInt64("MAX_BODY_BYTES", 1<<20)))
	r.Use(middleware.RateLimit(
		apiCfg.MayInt("RATE_LIMIT", 0),
		apiCfg.MayDuration("RATE_WINDOW", time.Minute),
	))
	if apiCfg.MayBool("VERBOSE", false) {
		r.Use(middleware.AccessLog(middleware.AccessLogOptions{Slow: time.Second}))
	}

	classify := classifymod.New(deps, opt.Lifecycle)
	meta := metamod.New(deps, classify.Service(), classify.CacheStats)

	mods := []modkit.Module{
		meta,
		classify,
	}
	for _, m := range mods {
		m.MountRoutes(r)
	}

	if apiCfg.MayBool("METRICS", true) {
		r.Handle("/metrics", promhttp.Handler())
	}
}
