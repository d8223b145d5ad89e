package net

import (
	"context"
	"testing"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequest(context.Background(), "req-9")
	if got := RequestID(ctx); got != "req-9" {
		t.Fatalf("RequestID = %q", got)
	}
}

func TestEmptyRequestIDNotStored(t *testing.T) {
	ctx := WithRequest(context.Background(), "")
	if got := RequestID(ctx); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
