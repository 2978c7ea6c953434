// Package nn assembles the node-classification models on top of the
// autograd tape: plain layers (Linear, GraphConvolution), the two-layer
// GCN baseline and MLPNorm, an MLP whose output is refined by iterated
// closed-form normalization against the graph.
//
// The MLPNorm pipeline per forward pass:
//
//	X0   = ReLU(δ·Linear1(dropout(features)) + (1−δ)·Linear3(A_dense))
//	H0   = Linear2(dropout(X0))
//	Xᵢ₊₁ = NormStep(Xᵢ, H0, A)        repeated NormLayers times
//	out  = LogSoftmax(X_L)
//
// where NormStep solves a small C×C ridge-style system (C = classes) to
// correct the embedding, propagates the correction through powers of the
// adjacency with one of three weighting strategies, and recombines with
// H0. See normstep.go for the exact algebra and propagation.go for the
// strategies.
//
// Construction is explicit: config structs are validated up front
// (ErrConfig), randomness comes from an injected *rand.Rand or a seed,
// and the propagation strategy and normalization variant are resolved to
// concrete code paths at construction time, never re-dispatched per step.
//
// Snapshots (Snapshot/Restore) deep-copy every parameter, which is what
// early stopping uses to rewind to the best validation epoch.
package nn
