// Package module wires the classification service into HTTP via modkit
package module

import (
	"net/http"

	"langid/internal/modkit"
	"langid/internal/modkit/httpkit"
	"langid/internal/platform/cache"
	"langid/internal/platform/strings"
	"langid/internal/services/classify/domain"

	classifyhttp "langid/internal/services/classify/http"
	"langid/internal/services/classify/service"
)

// Ports exposes the service port for cross-module lookups (the meta module
// reads readiness and cache stats through it)
type Ports struct {
	Service domain.ServicePort
}

// Module implements the classify module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws      []func(http.Handler) http.Handler
	ports    Ports
	register func(httpkit.Router)

	svc *service.Svc
}

// New constructs the classify module around an externally-owned lifecycle.
// The lifecycle stays outside because shutdown disposes it after the HTTP
// server has drained, which is main's sequencing concern, not the module's.
func New(deps modkit.Deps, lc *service.Lifecycle, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("classify")}, opts...)...)

	svc := service.New(lc, service.ConfigFromEnv(deps.Cfg.Prefix("CORE_CLASSIFY_")))

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		svc:    svc,
	}
	m.ports = Ports{Service: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		classifyhttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router.
// The classify surface lives at the root, so an empty prefix mounts directly
func (m *Module) MountRoutes(r httpkit.Router) {
	if m.prefix == "" {
		r.Group(func(rr httpkit.Router) {
			for _, mw := range m.mws {
				rr.Use(mw)
			}
			m.register(rr)
		})
		return
	}
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		m.register(rr)
	})
}

// Name is the module name
func (m *Module) Name() string { return strings.MustString(m.name, "module name") }

// Service returns the classification service port
func (m *Module) Service() domain.ServicePort { return m.svc }

// CacheStats exposes the LRU counters for the meta module
func (m *Module) CacheStats() cache.Stats { return m.svc.CacheStats() }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
