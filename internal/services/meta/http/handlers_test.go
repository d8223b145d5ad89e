package http

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"langid/internal/platform/cache"
	phttp "langid/internal/platform/net/http"
)

type stubReadiness struct{ ready bool }

func (s *stubReadiness) Ready() bool { return s.ready }

func newHandler(d Deps) stdhttp.Handler {
	m := chi.NewRouter()
	Register(phttp.AdaptChi(m), d)
	return m
}

func get(h stdhttp.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, path, nil))
	return rec
}

func TestHealthAlwaysOK(t *testing.T) {
	h := newHandler(Deps{Ready: &stubReadiness{ready: false}})

	rec := get(h, "/health")
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]bool
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body["ok"] {
		t.Fatalf("body = %s", rec.Body)
	}
}

func TestReadyGatesOnLifecycle(t *testing.T) {
	rdy := &stubReadiness{ready: false}
	h := newHandler(Deps{Ready: rdy})

	rec := get(h, "/ready")
	if rec.Code != stdhttp.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	var body map[string]bool
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["ok"] {
		t.Fatalf("not-ready body = %s", rec.Body)
	}

	rdy.ready = true
	rec = get(h, "/ready")
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200 after readiness", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body["ok"] {
		t.Fatalf("ready body = %s", rec.Body)
	}
}

func TestVersionReportsService(t *testing.T) {
	h := newHandler(Deps{})

	rec := get(h, "/version")
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["service"] != "langid-api" {
		t.Fatalf("service = %q", body["service"])
	}
}

func TestServiceInfo(t *testing.T) {
	started := time.Now().Add(-time.Minute).UTC()
	h := newHandler(Deps{
		Ready:      &stubReadiness{ready: true},
		CacheStats: func() cache.Stats { return cache.Stats{Hits: 3, Misses: 1, Len: 2, Capacity: 8} },
		InstanceID: "instance-123",
		StartedAt:  started,
	})

	rec := get(h, "/service")
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body ServiceInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.InstanceID != "instance-123" {
		t.Fatalf("instance_id = %q", body.InstanceID)
	}
	if !body.Ready {
		t.Fatalf("ready = false, want true")
	}
	if body.Cache.Hits != 3 || body.Cache.Capacity != 8 {
		t.Fatalf("cache = %+v", body.Cache)
	}
	if body.UptimeSeconds < 59 {
		t.Fatalf("uptime_seconds = %v, want about a minute", body.UptimeSeconds)
	}
}
