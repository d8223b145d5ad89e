package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"langid/internal/core/cachekey"
	perr "langid/internal/platform/errors"
	"langid/internal/services/classify/domain"
)

// fakeDetector counts invocations and returns canned guesses
type fakeDetector struct {
	mu       sync.Mutex
	detects  int
	topNs    int
	closes   int
	fail     error
	guess    domain.Guess
	rankings []domain.Guess
}

func (f *fakeDetector) Detect(string) (domain.Guess, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.detects++
	if f.fail != nil {
		return domain.Guess{}, f.fail
	}
	return f.guess, nil
}

func (f *fakeDetector) DetectTopN(_ string, n int) ([]domain.Guess, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.topNs++
	if f.fail != nil {
		return nil, f.fail
	}
	if n < len(f.rankings) {
		return f.rankings[:n], nil
	}
	return f.rankings, nil
}

func (f *fakeDetector) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closes++
	return nil
}

func (f *fakeDetector) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.detects + f.topNs
}

func polish() domain.Guess {
	return domain.Guess{Language: "pl", Probability: 0.98, IsReliable: true, Proportion: 1.0}
}

func readyLifecycle(det domain.Detector) *Lifecycle {
	lc := NewLifecycle()
	lc.handle.Store(&handleBox{det: det})
	return lc
}

func newSvc(det domain.Detector, cfg Config) *Svc {
	if cfg.MaxChars == 0 {
		cfg.MaxChars = 8192
	}
	if cfg.KeyMode == "" {
		cfg.KeyMode = cachekey.ModeDigest
	}
	return New(readyLifecycle(det), cfg)
}

func TestClassifyNotReady(t *testing.T) {
	det := &fakeDetector{guess: polish()}
	s := New(NewLifecycle(), Config{CacheSize: 8, MaxChars: 8192, KeyMode: cachekey.ModeDigest})

	_, err := s.Classify(context.Background(), "Dzień dobry", 1)
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("want unavailable, got %v", err)
	}
	if det.calls() != 0 {
		t.Fatalf("detector must not run before ready")
	}
	if s.cache.Len() != 0 {
		t.Fatalf("rejected request must not touch the cache")
	}
}

func TestClassifySingleGuess(t *testing.T) {
	det := &fakeDetector{guess: polish()}
	s := newSvc(det, Config{CacheSize: 8})

	resp, err := s.Classify(context.Background(), "Dzień dobry, jak się masz?", 1)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if resp.InputLen != 26 {
		t.Fatalf("input_len = %d, want 26", resp.InputLen)
	}
	g, ok := resp.CLD3.(domain.Guess)
	if !ok {
		t.Fatalf("topN=1 must produce a single guess, got %T", resp.CLD3)
	}
	if g != polish() {
		t.Fatalf("guess = %+v", g)
	}
}

func TestClassifyRepeatHitsCache(t *testing.T) {
	det := &fakeDetector{guess: polish()}
	s := newSvc(det, Config{CacheSize: 8})

	first, err := s.Classify(context.Background(), "Dzień dobry, jak się masz?", 1)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	second, err := s.Classify(context.Background(), "Dzień dobry, jak się masz?", 1)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if det.calls() != 1 {
		t.Fatalf("detector ran %d times, want 1", det.calls())
	}
	if first.InputLen != second.InputLen {
		t.Fatalf("cached response must carry the stored input_len")
	}
	if s.cache.Stats().Hits != 1 {
		t.Fatalf("hits = %d, want 1", s.cache.Stats().Hits)
	}
}

func TestClassifyTopNShaping(t *testing.T) {
	det := &fakeDetector{rankings: []domain.Guess{
		{Language: "es", Probability: 0.6, IsReliable: true, Proportion: 0.5},
		{Language: "pt", Probability: 0.3, IsReliable: false, Proportion: 0.3},
		{Language: "gl", Probability: 0.2, IsReliable: false, Proportion: 0.2},
		{Language: "ca", Probability: 0.1, IsReliable: false, Proportion: 0.1},
	}}
	s := newSvc(det, Config{CacheSize: 8})

	resp, err := s.Classify(context.Background(), "hola buenos dias amigos", 3)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	gs, ok := resp.CLD3.([]domain.Guess)
	if !ok {
		t.Fatalf("topN>1 must produce a ranked slice, got %T", resp.CLD3)
	}
	if len(gs) != 3 {
		t.Fatalf("len = %d, want 3", len(gs))
	}
	if det.topNs != 1 || det.detects != 0 {
		t.Fatalf("topN>1 must use the ranked operation")
	}
}

func TestClassifyTopNPartitionsCache(t *testing.T) {
	det := &fakeDetector{
		guess:    polish(),
		rankings: []domain.Guess{polish()},
	}
	s := newSvc(det, Config{CacheSize: 8})

	if _, err := s.Classify(context.Background(), "Dzień dobry", 1); err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if _, err := s.Classify(context.Background(), "Dzień dobry", 3); err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if det.calls() != 2 {
		t.Fatalf("different topN must not share cache entries, detector ran %d times", det.calls())
	}
}

func TestClassifyFastFailBypassesCache(t *testing.T) {
	det := &fakeDetector{guess: polish()}
	s := newSvc(det, Config{CacheSize: 8, MinLen: 10})

	resp, err := s.Classify(context.Background(), "hi", 1)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if resp.InputLen != 2 {
		t.Fatalf("input_len = %d, want 2", resp.InputLen)
	}
	g, ok := resp.CLD3.(domain.Guess)
	if !ok || g != domain.Undetermined() {
		t.Fatalf("short text must yield the undetermined guess, got %+v", resp.CLD3)
	}

	// a second short text under the same topN must not read or write the cache
	if _, err := s.Classify(context.Background(), "yo", 1); err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if det.calls() != 0 {
		t.Fatalf("detector must not run on the fast path")
	}
	if s.cache.Len() != 0 {
		t.Fatalf("fast path must not populate the cache")
	}

	// and the ranked variant returns an empty sequence
	ranked, err := s.Classify(context.Background(), "hi", 3)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	gs, ok := ranked.CLD3.([]domain.Guess)
	if !ok || len(gs) != 0 {
		t.Fatalf("short text with topN>1 must yield an empty sequence, got %+v", ranked.CLD3)
	}
}

func TestClassifyEmptyText(t *testing.T) {
	det := &fakeDetector{guess: polish()}
	s := newSvc(det, Config{CacheSize: 8})

	for _, in := range []string{"", "   ", " \t\n "} {
		_, err := s.Classify(context.Background(), in, 1)
		if !perr.IsCode(err, perr.ErrorCodeValidation) {
			t.Fatalf("Classify(%q): want validation error, got %v", in, err)
		}
	}
	if det.calls() != 0 || s.cache.Len() != 0 {
		t.Fatalf("empty input must stop before cache and detector")
	}
}

func TestClassifyTruncatesLongInput(t *testing.T) {
	det := &fakeDetector{guess: polish()}
	s := newSvc(det, Config{CacheSize: 8, MaxChars: 16})

	resp, err := s.Classify(context.Background(), strings.Repeat("a", 100), 1)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if resp.InputLen != 16 {
		t.Fatalf("input_len = %d, want the truncated length 16", resp.InputLen)
	}
}

func TestClassifyDetectorFault(t *testing.T) {
	det := &fakeDetector{fail: errors.New("model blew up")}
	s := newSvc(det, Config{CacheSize: 8})

	_, err := s.Classify(context.Background(), "some perfectly fine text", 1)
	if !perr.IsCode(err, perr.ErrorCodeDetectFailed) {
		t.Fatalf("want detect-failed, got %v", err)
	}
	if s.cache.Len() != 0 {
		t.Fatalf("failed detections must not be cached")
	}
}

func TestClassifyDisabledCache(t *testing.T) {
	det := &fakeDetector{guess: polish()}
	s := newSvc(det, Config{CacheSize: 0})

	for i := 0; i < 2; i++ {
		if _, err := s.Classify(context.Background(), "Dzień dobry", 1); err != nil {
			t.Fatalf("Classify: %v", err)
		}
	}
	if det.calls() != 2 {
		t.Fatalf("disabled cache must re-run the detector, ran %d times", det.calls())
	}
}

func TestLifecycleStartBecomesReady(t *testing.T) {
	lc := NewLifecycle()
	if lc.Ready() {
		t.Fatalf("fresh lifecycle must not be ready")
	}

	det := &fakeDetector{guess: polish()}
	lc.Start(func() (domain.Detector, error) { return det, nil })

	deadline := time.Now().Add(2 * time.Second)
	for !lc.Ready() {
		if time.Now().After(deadline) {
			t.Fatalf("lifecycle never became ready")
		}
		time.Sleep(time.Millisecond)
	}
	if _, err := lc.Handle(); err != nil {
		t.Fatalf("Handle after ready: %v", err)
	}
}

func TestLifecycleStartFailureStaysNotReady(t *testing.T) {
	lc := NewLifecycle()
	done := make(chan struct{})
	lc.Start(func() (domain.Detector, error) {
		defer close(done)
		return nil, errors.New("models missing")
	})
	<-done

	// give the goroutine's store path (which must not happen) a beat
	time.Sleep(10 * time.Millisecond)
	if lc.Ready() {
		t.Fatalf("failed initialization must leave the lifecycle not ready")
	}
	if _, err := lc.Handle(); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("want unavailable, got %v", err)
	}
}

func TestLifecycleDisposeIdempotent(t *testing.T) {
	det := &fakeDetector{guess: polish()}
	lc := readyLifecycle(det)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			lc.Dispose()
		}()
	}
	wg.Wait()
	lc.Dispose()

	if det.closes != 1 {
		t.Fatalf("Close ran %d times, want 1", det.closes)
	}
}

func TestLifecycleDisposeBeforeReady(t *testing.T) {
	lc := NewLifecycle()
	lc.Dispose() // must not panic with no handle
	if lc.Ready() {
		t.Fatalf("dispose must not make a lifecycle ready")
	}
}

func TestClassifyConcurrentRequests(t *testing.T) {
	det := &fakeDetector{guess: polish()}
	s := newSvc(det, Config{CacheSize: 64})

	var wg sync.WaitGroup
	var failures atomic.Int64
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if _, err := s.Classify(context.Background(), "Dzień dobry, jak się masz?", 1); err != nil {
					failures.Add(1)
				}
			}
		}()
	}
	wg.Wait()
	if failures.Load() != 0 {
		t.Fatalf("%d concurrent requests failed", failures.Load())
	}
}
