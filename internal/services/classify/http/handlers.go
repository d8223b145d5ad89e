// Package http provides HTTP transport for the classification service
package http

import (
	stdhttp "net/http"

	"langid/internal/modkit/httpkit"
	"langid/internal/services/classify/domain"
)

// Register mounts classification endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.ClassifyInput](r, "/classify", h.classify)
}

type handlers struct{ svc domain.ServicePort }

// classify validates the body at the boundary and defers the rest of the
// pipeline (readiness, normalize, cache, detect) to the service
func (h *handlers) classify(r *stdhttp.Request, in domain.ClassifyInput) (any, error) {
	topN := in.TopN
	if topN == 0 {
		topN = 1
	}
	return h.svc.Classify(r.Context(), in.Text, topN)
}
