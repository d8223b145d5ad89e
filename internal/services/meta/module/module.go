// Package module wires the meta endpoints into HTTP via modkit
package module

import (
	stdhttp "net/http"
	"time"

	"github.com/google/uuid"

	"langid/internal/modkit"
	"langid/internal/modkit/httpkit"
	"langid/internal/platform/cache"
	"langid/internal/platform/strings"

	metahttp "langid/internal/services/meta/http"
)

// Module implements the meta module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws      []func(stdhttp.Handler) stdhttp.Handler
	register func(httpkit.Router)
}

// New constructs the meta module. ready and cacheStats come from the classify
// module so readiness and cache visibility reflect the real pipeline state.
func New(deps modkit.Deps, ready metahttp.ReadinessPort, cacheStats func() cache.Stats, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("meta")}, opts...)...)

	hd := metahttp.Deps{
		Ready:      ready,
		CacheStats: cacheStats,
		InstanceID: uuid.NewString(),
		StartedAt:  time.Now().UTC(),
	}

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		metahttp.Register(r, hd)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes; meta endpoints live at the root
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
