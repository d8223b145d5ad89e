// Package cachekey builds deterministic cache keys for classification results.
//
// Two modes exist because the key is a correctness/memory trade-off:
//
//   - ModeExact embeds the full normalized text. Keys can never collide, but
//     cache memory grows with the length of every distinct cached text.
//   - ModeDigest stores a 64-bit xxhash of the text plus its byte length.
//     Keys stay small regardless of input size, at the cost of a nonzero
//     chance that two distinct texts of equal length and equal hash return
//     each other's cached classification.
//
// topN is always part of the key: the same text produces a structurally
// different response for different topN values.
package cachekey

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Mode selects the key construction strategy
type Mode string

const (
	// ModeExact embeds the full text in the key
	ModeExact Mode = "exact"
	// ModeDigest hashes the text and appends its length
	ModeDigest Mode = "digest"
)

// ParseMode maps a config string onto a Mode, defaulting to digest
func ParseMode(s string) Mode {
	if Mode(s) == ModeExact {
		return ModeExact
	}
	return ModeDigest
}

// Builder constructs cache keys in a fixed mode
type Builder struct {
	mode Mode
}

// New returns a Builder for the given mode
func New(mode Mode) Builder { return Builder{mode: mode} }

// Mode returns the configured mode
func (b Builder) Mode() Mode { return b.mode }

// Key maps (topN, text) onto a cache key.
// Equal inputs always map to the same key in either mode.
func (b Builder) Key(topN int, text string) string {
	n := strconv.Itoa(topN)
	if b.mode == ModeExact {
		// "<topN>:<text>" is collision free: topN is all digits, so the first
		// ':' unambiguously splits the two parts
		return n + ":" + text
	}
	h := strconv.FormatUint(xxhash.Sum64String(text), 16)
	l := strconv.Itoa(len(text))
	return n + ":" + h + ":" + l
}
