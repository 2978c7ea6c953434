// Package graphstore holds the normalized numeric view of a node-classification
// graph: a sparse adjacency operator, a dense feature matrix, integer class
// labels and the train/validation/test split.
//
// What lives here 🔍
//
//   - CSR — compressed sparse row adjacency with the preprocessing the
//     training pipeline expects baked in: undirected mirroring, duplicate
//     coalescing, self-loop addition and row normalization (A ← rownorm(A+I)).
//   - Row normalization helpers shared by adjacency and features, with the
//     explicit zero-row rule: a row that sums to zero stays zero.
//   - Graph — the validated bundle (adjacency, features, labels, split) that
//     models and the training loop consume.
//   - Split — index sets for train/validation/test with range, emptiness and
//     overlap validation.
//   - Connected components over the adjacency structure, for dataset
//     inspection and sanity tests.
//
// Why a dedicated package? 🚀
//
// Every downstream stage (propagation operators, the normalization step, the
// training loop) assumes the same invariants: finite float64 entries,
// row-stochastic adjacency (rows sum to 1, or to 0 for isolated structure),
// labels in [0, Classes) and disjoint in-range splits. Centralizing the
// construction and validation here means the model code never re-checks them.
//
// Conventions ⚙️
//
//   - Construction and validation return package sentinel errors
//     ("graphstore: ..." prefixed); match them with errors.Is.
//   - Numeric kernels (MulDense, At) follow the gonum/mat convention and
//     panic on shape misuse, since a malformed call is a programmer error.
//   - All dense math is gonum/mat with float64 throughout.
package graphstore
