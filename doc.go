// Package gnnlab is an in-memory workbench for graph neural networks on
// the heterophily benchmarks: from sparse adjacency plumbing to full
// training runs with early stopping.
//
// 🚀 What is gnnlab?
//
//	A small, CPU-only stack that brings together:
//		• Graph storage: CSR adjacency, symmetric self-loop normalization, stored splits
//		• Autograd: a taped Tensor over gonum matrices with reverse-mode gradients
//		• Models: a two-layer GCN and the GGCM normalization network
//		• Training: Adam with coupled weight decay, patience-based early stopping
//		• Datasets: fifteen stored benchmarks plus a seeded synthetic generator
//		• CLI: train, sweep and datasets commands with YAML experiment files
//
// ✨ Why choose gnnlab?
//
//   - Reproducible – one seed drives weights, dropout masks and shuffles
//   - Explicit – every run is a pure function of its configuration
//   - Pure Go – gonum for the math, no cgo, no Python runtime
//   - Inspectable – snapshots, per-epoch history, flat result records
//
// Under the hood, everything is organized under these subpackages:
//
//	graphstore/ — CSR adjacency, row normalization, Graph/Split bundles
//	autograd/   — taped tensors, matrix ops, reverse-mode Backward
//	nn/         — layers and models: Linear, GraphConvolution, GCN, MLPNorm
//	train/      — Adam, the epoch loop, metrics, result records
//	dataset/    — benchmark loaders, stratified splits, synthetic graphs
//	logging/    — slog construction for stderr and dated JSON files
//	cmd/gnnlab  — the command-line interface
//
// Quick ASCII example:
//
//	    x0───x1        row-normalizing A+I smooths neighbor features,
//	    │    │         then two dense layers map the smoothed rows to
//	    x2───x3        class scores.
//
// Dive into DESIGN.md for the decision record and examples/ for
// end-to-end scenarios.
//
//	go get github.com/katalvlaran/gnnlab
package gnnlab
