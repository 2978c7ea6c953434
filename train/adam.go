// SPDX-License-Identifier: MIT

// Package train: Adam optimizer over autograd parameters.
// This file defines:
//   - documented defaults (constants) and AdamOption constructors,
//   - Adam with per-parameter first/second moment state and step counts,
//   - ZeroGrad / Step, the two calls a training epoch makes.
//
// Decay is coupled: the weight-decay term joins the raw gradient before
// the moment updates, so decay passes through the adaptive scaling.
// Parameters whose gradient buffer is nil are skipped entirely, state
// and step count included; a parameter the tape never reaches keeps its
// initial value for the whole run.

package train

import (
	"math"

	"github.com/katalvlaran/gnnlab/autograd"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultLearningRate is the step size when no override is given.
	DefaultLearningRate = 0.01

	// DefaultWeightDecay disables the coupled decay term.
	DefaultWeightDecay = 0.0

	// DefaultBeta1 is the first-moment decay rate.
	DefaultBeta1 = 0.9

	// DefaultBeta2 is the second-moment decay rate.
	DefaultBeta2 = 0.999

	// DefaultEpsilon guards the denominator of the update.
	DefaultEpsilon = 1e-8
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicLearningRate = "train: WithLearningRate: rate must be finite, positive"
	panicWeightDecay  = "train: WithWeightDecay: decay must be finite, non-negative"
	panicBetas        = "train: WithBetas: betas must lie in [0,1)"
	panicAdamEpsilon  = "train: WithAdamEpsilon: eps must be finite, positive"
	panicNilParam     = "train: NewAdam: nil parameter"
)

// AdamOption mutates optimizer construction. Constructors panic only on
// nonsensical values (programmer error).
type AdamOption func(*adamOptions)

type adamOptions struct {
	lr    float64
	decay float64
	beta1 float64
	beta2 float64
	eps   float64
}

func defaultAdamOptions() adamOptions {
	return adamOptions{
		lr:    DefaultLearningRate,
		decay: DefaultWeightDecay,
		beta1: DefaultBeta1,
		beta2: DefaultBeta2,
		eps:   DefaultEpsilon,
	}
}

func gatherAdamOptions(opts ...AdamOption) adamOptions {
	o := defaultAdamOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLearningRate overrides the step size. Panics unless rate is finite
// and positive.
func WithLearningRate(rate float64) AdamOption {
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		panic(panicLearningRate)
	}
	return func(o *adamOptions) { o.lr = rate }
}

// WithWeightDecay overrides the coupled decay coefficient. Panics unless
// decay is finite and non-negative.
func WithWeightDecay(decay float64) AdamOption {
	if decay < 0 || math.IsNaN(decay) || math.IsInf(decay, 0) {
		panic(panicWeightDecay)
	}
	return func(o *adamOptions) { o.decay = decay }
}

// WithBetas overrides both moment decay rates. Panics unless each lies
// in [0,1).
func WithBetas(beta1, beta2 float64) AdamOption {
	if beta1 < 0 || beta1 >= 1 || beta2 < 0 || beta2 >= 1 {
		panic(panicBetas)
	}
	return func(o *adamOptions) { o.beta1, o.beta2 = beta1, beta2 }
}

// WithAdamEpsilon overrides the denominator guard. Panics unless eps is
// finite and positive.
func WithAdamEpsilon(eps float64) AdamOption {
	if eps <= 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
		panic(panicAdamEpsilon)
	}
	return func(o *adamOptions) { o.eps = eps }
}

// adamState holds the moment buffers and step count of one parameter,
// row-major to mirror the parameter's layout.
type adamState struct {
	step int
	m, v []float64
}

// Adam updates parameters in place from their accumulated gradients.
type Adam struct {
	opts   adamOptions
	params []*autograd.Tensor
	state  []adamState
}

// NewAdam builds the optimizer over params. The slice is kept by
// reference; moment buffers are allocated up front. Panics on a nil
// parameter entry.
func NewAdam(params []*autograd.Tensor, opts ...AdamOption) *Adam {
	o := gatherAdamOptions(opts...)
	state := make([]adamState, len(params))
	for i, p := range params {
		if p == nil {
			panic(panicNilParam)
		}
		r, c := p.Dims()
		state[i] = adamState{m: make([]float64, r*c), v: make([]float64, r*c)}
	}
	return &Adam{opts: o, params: params, state: state}
}

// ZeroGrad clears every parameter's gradient buffer ahead of a backward
// pass. Buffers that were never allocated stay nil.
func (a *Adam) ZeroGrad() {
	for _, p := range a.params {
		p.ZeroGrad()
	}
}

// Step applies one bias-corrected update to every parameter that has a
// gradient:
//
//	g  = grad + decay·p
//	m  = β1·m + (1−β1)·g
//	v  = β2·v + (1−β2)·g²
//	p -= lr · (m / (1−β1^t)) / (√(v / (1−β2^t)) + eps)
//
// with t the parameter's own step count.
func (a *Adam) Step() {
	for i, p := range a.params {
		grad := p.Grad()
		if grad == nil {
			continue
		}
		st := &a.state[i]
		st.step++
		bc1 := 1 - math.Pow(a.opts.beta1, float64(st.step))
		bc2 := 1 - math.Pow(a.opts.beta2, float64(st.step))

		val := p.Value().RawMatrix()
		grm := grad.RawMatrix()
		for r := 0; r < val.Rows; r++ {
			vo := r * val.Stride
			ro := r * grm.Stride
			so := r * val.Cols
			for c := 0; c < val.Cols; c++ {
				g := grm.Data[ro+c] + a.opts.decay*val.Data[vo+c]
				k := so + c
				st.m[k] = a.opts.beta1*st.m[k] + (1-a.opts.beta1)*g
				st.v[k] = a.opts.beta2*st.v[k] + (1-a.opts.beta2)*g*g
				val.Data[vo+c] -= a.opts.lr * (st.m[k] / bc1) /
					(math.Sqrt(st.v[k]/bc2) + a.opts.eps)
			}
		}
	}
}
