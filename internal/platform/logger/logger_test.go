package logger

import (
	"bytes"
	"context"
	"testing"

	"langid/internal/platform/testkit"
)

// Init is once-per-process, so tests share a single json-format root logger
// writing into buf.
var buf bytes.Buffer

func initOnce() {
	Init(Options{Level: "debug", Format: "json", Service: "langid-test", Writer: &buf})
}

func TestInitAndGet(t *testing.T) {
	testkit.Serial(t)
	initOnce()
	buf.Reset()

	Get().Info().Str("k", "v").Msg("hello")
	out := buf.String()
	testkit.MustContain(t, out, `"service":"langid-test"`)
	testkit.MustContain(t, out, `"k":"v"`)
	testkit.MustContain(t, out, "hello")
}

func TestNamedAddsComponent(t *testing.T) {
	testkit.Serial(t)
	initOnce()
	buf.Reset()

	Named("cache").Info().Msg("warmed")
	testkit.MustContain(t, buf.String(), `"component":"cache"`)
}

func TestCEnrichesFromContext(t *testing.T) {
	testkit.Serial(t)
	initOnce()
	buf.Reset()

	ctx := WithRequest(context.Background(), "req-123")
	C(ctx).Info().Msg("scoped")
	testkit.MustContain(t, buf.String(), `"request_id":"req-123"`)

	// empty request id adds nothing
	buf.Reset()
	C(context.Background()).Info().Msg("bare")
	if bytes.Contains(buf.Bytes(), []byte("request_id")) {
		t.Fatalf("unexpected request_id field: %s", buf.String())
	}
}

func TestParseLevelFallsBackToDebug(t *testing.T) {
	if parseLevel("nope") != parseLevel("debug") {
		t.Fatalf("unknown level should map to debug")
	}
	if parseLevel("WARN") != parseLevel("warning") {
		t.Fatalf("warn aliases should match")
	}
}
