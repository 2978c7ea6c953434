// Package autograd implements a small reverse-mode differentiation tape
// over gonum dense matrices, sized for full-batch graph model training.
//
// What lives here 🔍
//
//   - Tensor — one node of the tape: a float64 matrix value, its gradient
//     and a closure that pushes the gradient into the node's inputs.
//   - Matrix ops (MatMul, Transpose, Add, Sub, Scale, MulElem, broadcast
//     helpers) with their exact adjoints.
//   - SpMM — sparse adjacency times dense, the propagation workhorse.
//   - Inverse — differentiable matrix inverse, the one op that can fail at
//     run time (singular input) and therefore the one op returning an error.
//   - ReLU, Dropout, LogSoftmax and the masked NLLLoss reduction.
//   - Backward — topological reverse sweep accumulating gradients.
//
// How gradients flow ⚙️
//
// Ops build the graph eagerly: each result remembers the inputs that
// require gradients and a backFn closure holding the adjoint math.
// Backward(root) seeds ∂root/∂root = 1 elementwise (intended for 1×1 loss
// roots), orders the reachable subgraph topologically and runs the
// closures in reverse, so a node's gradient is complete before its own
// closure fires. Gradients accumulate across shared uses, which is what
// lets the same weight matrix appear in every propagation layer.
//
// Conventions
//
//   - Shape misuse panics, matching gonum/mat; only Inverse returns an
//     error, because singularity depends on data, not on the caller.
//   - Values are aliased, not copied: the optimizer may update a
//     parameter's matrix in place between steps, and each forward pass
//     rebuilds the tape against the current values.
//   - Nothing here is safe for concurrent use of one tape; run one
//     training step per goroutine.
package autograd
