// Package http provides the operational endpoints: health, readiness,
// build info and service info
package http

import (
	stdhttp "net/http"
	"time"

	"langid/internal/core/version"
	"langid/internal/modkit/httpkit"
	"langid/internal/platform/cache"
)

// ReadinessPort answers whether the classification capability can serve
type ReadinessPort interface {
	Ready() bool
}

// okBody is the exact wire shape of /health and /ready
type okBody struct {
	OK bool `json:"ok"`
}

// ServiceInfo is the /service payload
type ServiceInfo struct {
	version.BuildInfo
	InstanceID    string      `json:"instance_id"`
	StartedAt     time.Time   `json:"started_at"`
	UptimeSeconds float64     `json:"uptime_seconds"`
	Ready         bool        `json:"ready"`
	Cache         cache.Stats `json:"cache"`
}

// Deps carries what the handlers report on
type Deps struct {
	Ready      ReadinessPort
	CacheStats func() cache.Stats
	InstanceID string
	StartedAt  time.Time
}

// Register mounts the meta endpoints on the given router
func Register(r httpkit.Router, d Deps) {
	h := &handlers{d: d}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

type handlers struct{ d Deps }

// health reports process liveness; it says nothing about the detector
func (h *handlers) health(*stdhttp.Request) (any, error) {
	return okBody{OK: true}, nil
}

// ready gates on the detector lifecycle: 200 when it can classify, 503 before
func (h *handlers) ready(*stdhttp.Request) (any, error) {
	if h.d.Ready != nil && h.d.Ready.Ready() {
		return okBody{OK: true}, nil
	}
	return httpkit.Status(stdhttp.StatusServiceUnavailable, okBody{OK: false}), nil
}

func (h *handlers) version(*stdhttp.Request) (any, error) {
	return version.Info(), nil
}

func (h *handlers) service(*stdhttp.Request) (any, error) {
	info := ServiceInfo{
		BuildInfo:     version.Info(),
		InstanceID:    h.d.InstanceID,
		StartedAt:     h.d.StartedAt,
		UptimeSeconds: time.Since(h.d.StartedAt).Seconds(),
	}
	if h.d.Ready != nil {
		info.Ready = h.d.Ready.Ready()
	}
	if h.d.CacheStats != nil {
		info.Cache = h.d.CacheStats()
	}
	return info, nil
}
