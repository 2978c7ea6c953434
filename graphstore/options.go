// SPDX-License-Identifier: MIT

// Package graphstore: functional configuration for adjacency construction.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that enforces invariants.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).

package graphstore

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultDirected controls whether edges are treated as directed.
	// false ⇒ undirected: every [u,v] is mirrored into [v,u] before
	// coalescing (loops excepted, they appear once).
	DefaultDirected = false

	// DefaultSelfLoops controls the A+I step. true ⇒ add 1.0 to every
	// diagonal entry after coalescing, so an explicit self-edge in the
	// input ends up with value 2 before normalization.
	DefaultSelfLoops = true

	// DefaultRowNormalize controls the rownorm step. true ⇒ divide every
	// row by its sum; rows summing to zero stay zero.
	DefaultRowNormalize = true

	// DefaultEpsilon is the non-negative tolerance used by structural
	// checks such as IsRowStochastic.
	DefaultEpsilon = 1e-9
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicEpsilonInvalid = "graphstore: WithEpsilon: eps must be finite, non-negative"
)

// ---------- Public option type (functional) ----------

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors MUST panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options carries construction-time switches for NewAdjacency.
// Fields are unexported; public APIs consume ...Option.
type Options struct {
	directed     bool
	selfLoops    bool
	rowNormalize bool
	epsilon      float64
}

// defaultOptions mirrors the Default* constants above.
func defaultOptions() Options {
	return Options{
		directed:     DefaultDirected,
		selfLoops:    DefaultSelfLoops,
		rowNormalize: DefaultRowNormalize,
		epsilon:      DefaultEpsilon,
	}
}

// gatherOptions applies opts over the defaults and enforces invariants.
func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithDirected keeps edges exactly as given (no mirroring) when flag is true.
func WithDirected(flag bool) Option {
	return func(o *Options) { o.directed = flag }
}

// WithSelfLoops toggles the A+I step.
func WithSelfLoops(flag bool) Option {
	return func(o *Options) { o.selfLoops = flag }
}

// WithRowNormalize toggles the rownorm step.
func WithRowNormalize(flag bool) Option {
	return func(o *Options) { o.rowNormalize = flag }
}

// WithEpsilon overrides the tolerance used by structural checks.
// Panics when eps is negative, NaN or ±Inf.
func WithEpsilon(eps float64) Option {
	if eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
		panic(panicEpsilonInvalid)
	}
	return func(o *Options) { o.epsilon = eps }
}
