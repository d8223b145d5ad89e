package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"langid/internal/platform/net/middleware"
)

// CommonStack returns the baseline middleware slice shared by every service route
// compose rate limiting or verbose access logging on top in main/api wiring
func CommonStack() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),

		// safety
		middleware.RecoverJSON,

		// cache / freshness
		middleware.NoCache(),

		// cross-origin
		middleware.CORS(middleware.CORSOptions{}),
		middleware.Compress(flate.BestSpeed),
		middleware.RedirectSlashes(),
		middleware.StripSlashes(),
		middleware.Timeout(30 * time.Second),
	}
}
