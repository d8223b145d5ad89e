package service

import (
	"sync"
	"sync/atomic"

	perr "langid/internal/platform/errors"
	"langid/internal/platform/logger"
	"langid/internal/services/classify/domain"
)

// handleBox keeps the atomic pointer monomorphic across detector implementations
type handleBox struct {
	det domain.Detector
}

// Lifecycle owns the detector handle.
// Uninitialized -> Ready happens at most once per process, driven by Start's
// goroutine; a failed initialization leaves the lifecycle not-Ready forever
// and the error in the log, so operators see it on /ready rather than a retry
// loop masking a broken model load. Dispose is guarded and may be called from
// any number of shutdown paths.
type Lifecycle struct {
	log     *logger.Logger
	handle  atomic.Pointer[handleBox]
	dispose sync.Once
}

// NewLifecycle returns a lifecycle in the uninitialized state
func NewLifecycle() *Lifecycle {
	return &Lifecycle{log: logger.Named("lifecycle")}
}

// Start builds the detector asynchronously and flips the lifecycle to Ready
// on success. Requests arriving before that are rejected, never queued.
func (l *Lifecycle) Start(factory func() (domain.Detector, error)) {
	go func() {
		det, err := factory()
		if err != nil {
			l.log.Error().Err(err).Msg("detector initialization failed; service will never become ready")
			return
		}
		l.handle.Store(&handleBox{det: det})
		l.log.Info().Msg("detector ready")
	}()
}

// Ready reports whether classification requests can be served
func (l *Lifecycle) Ready() bool { return l.handle.Load() != nil }

// Handle returns the detector or an unavailable error while uninitialized
func (l *Lifecycle) Handle() (domain.Detector, error) {
	if box := l.handle.Load(); box != nil {
		return box.det, nil
	}
	return nil, perr.Unavailablef("Detector not ready yet.")
}

// Dispose releases the detector exactly once. Safe to call concurrently,
// repeatedly, and before Ready; failures are logged and swallowed because
// the process exits right after.
func (l *Lifecycle) Dispose() {
	l.dispose.Do(func() {
		box := l.handle.Load()
		if box == nil {
			return
		}
		if err := box.det.Close(); err != nil {
			l.log.Warn().Err(err).Msg("detector disposal failed; continuing shutdown")
			return
		}
		l.log.Info().Msg("detector disposed")
	})
}
