// Package service implements the caching classification pipeline
package service

import (
	"context"

	"langid/internal/core/cachekey"
	"langid/internal/core/normalize"
	"langid/internal/platform/cache"
	"langid/internal/platform/config"
	perr "langid/internal/platform/errors"
	"langid/internal/platform/logger"
	"langid/internal/services/classify/domain"
)

// Config tunes the pipeline
type Config struct {
	// CacheSize caps the LRU entry count, <= 0 disables caching
	CacheSize int

	// MinLen short-circuits text shorter than this many runes, <= 0 disables
	MinLen int

	// MaxChars truncates input to this many runes before classification
	MaxChars int

	// KeyMode selects exact or digest cache keys
	KeyMode cachekey.Mode
}

// ConfigFromEnv reads pipeline config from a CORE_CLASSIFY_ scoped Conf
func ConfigFromEnv(cfg config.Conf) Config {
	return Config{
		CacheSize: cfg.MayInt("CACHE_SIZE", 1024),
		MinLen:    cfg.MayInt("MIN_LEN", 0),
		MaxChars:  cfg.MayInt("MAX_CHARS", 8192),
		KeyMode:   cachekey.ParseMode(cfg.MayEnum("KEY_MODE", string(cachekey.ModeDigest), "exact", "digest")),
	}
}

// Svc runs classification requests through normalize, cache and detector
type Svc struct {
	cfg   Config
	lc    *Lifecycle
	norm  *normalize.Normalizer
	keys  cachekey.Builder
	cache *cache.LRU[string, domain.Response]
}

// compile-time port check
var _ domain.ServicePort = (*Svc)(nil)

// New builds the pipeline around an externally-owned lifecycle
func New(lc *Lifecycle, cfg Config) *Svc {
	return &Svc{
		cfg:   cfg,
		lc:    lc,
		norm:  normalize.New(),
		keys:  cachekey.New(cfg.KeyMode),
		cache: cache.New[string, domain.Response]("classify", cfg.CacheSize),
	}
}

// Ready reports whether the detector can serve
func (s *Svc) Ready() bool { return s.lc.Ready() }

// CacheStats snapshots the LRU counters for the service info endpoint
func (s *Svc) CacheStats() cache.Stats { return s.cache.Stats() }

// Classify runs the full pipeline for one request.
//
// Order matters: readiness is checked before anything else so an
// uninitialized detector costs neither a cache lookup nor a detector call,
// and the minimum-length fast path bypasses the cache in both directions
// because its outcome depends only on length, never on content.
func (s *Svc) Classify(ctx context.Context, text string, topN int) (domain.Response, error) {
	var zero domain.Response

	det, err := s.lc.Handle()
	if err != nil {
		return zero, err
	}
	if topN < 1 {
		topN = 1
	}

	t := normalize.Truncate(s.norm.Normalize(text), s.cfg.MaxChars)
	if t == "" {
		return zero, perr.Validationf("Empty 'text'.")
	}
	runes := normalize.RuneLen(t)

	if s.cfg.MinLen > 0 && runes < s.cfg.MinLen {
		if topN == 1 {
			return domain.Response{InputLen: runes, CLD3: domain.Undetermined()}, nil
		}
		return domain.Response{InputLen: runes, CLD3: []domain.Guess{}}, nil
	}

	key := s.keys.Key(topN, t)
	if hit, ok := s.cache.Get(key); ok {
		logger.C(ctx).Debug().Int("top_n", topN).Msg("classification cache hit")
		return hit, nil
	}

	var result any
	if topN == 1 {
		g, derr := det.Detect(t)
		if derr != nil {
			return zero, perr.Wrapf(derr, perr.ErrorCodeDetectFailed, "language detection failed")
		}
		result = g
	} else {
		gs, derr := det.DetectTopN(t, topN)
		if derr != nil {
			return zero, perr.Wrapf(derr, perr.ErrorCodeDetectFailed, "language detection failed")
		}
		result = gs
	}

	resp := domain.Response{InputLen: runes, CLD3: result}
	s.cache.Set(key, resp)
	logger.C(ctx).Debug().Int("top_n", topN).Int("input_len", runes).Msg("classification computed")
	return resp, nil
}
