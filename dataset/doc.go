// Package dataset turns on-disk graph benchmarks into validated
// graphstore.Graph bundles.
//
// # What this package provides
//
//   - 📁 Loaders for the two on-disk layouts the benchmarks ship in:
//     per-line edge/feature files with companion split masks
//     (scheme "edge-list": chameleon, cornell, film, squirrel, texas,
//     wisconsin) and single-archive .npz bundles with mask stacks
//     (scheme "bundle": the directed/filtered squirrel and chameleon
//     variants plus roman_empire, minesweeper, questions,
//     amazon_ratings, tolokers).
//   - 🎲 StratifiedSplit, the per-class-quota split used when a dataset
//     carries no precomputed masks.
//   - 🧪 Synthetic, a seeded planted-partition generator for tests,
//     examples and benchmarks.
//   - 🗂 A name registry (Lookup, Names) so front-ends can validate a
//     dataset flag before touching the filesystem.
//
// # Conventions
//
// Every loader returns a fully validated *graphstore.Graph: adjacency
// with self-loops and row normalization applied, row-normalized
// features, integer labels (one-hot inputs are collapsed by argmax) and
// a disjoint, non-empty train/val/test split. Node identifiers index
// rows directly, so row i of the feature file is node i of the
// adjacency. Malformed files surface ErrFormat with file and line
// context; unknown names surface ErrUnknownDataset; a split id outside
// the stored stack surfaces ErrSplitID.
//
// Determinism: loaders are pure functions of the files; the split and
// synthetic generators draw only from the *rand.Rand they are given.
package dataset
