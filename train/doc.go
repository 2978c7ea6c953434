// Package train drives full-batch optimization of a nn.Model on a
// graphstore.Graph: a coupled-decay Adam over the autograd parameters,
// metric selection (accuracy for multi-class labels, binary ROC-AUC
// otherwise), the early-stopping loop with best-validation snapshots,
// and the result record written at the end of a run.
//
// The loop follows a fixed discipline per epoch: one training-mode
// forward over the whole graph, negative log-likelihood on the train
// split, backward, one Adam step, then a dropout-free validation pass
// (skipped in fast mode, which scores validation on the training-mode
// output instead). Validation improvement is strict; ties and losses
// burn patience, and a validation metric that becomes undefined (a
// single-class split under ROC-AUC) ends training quietly with whatever
// best snapshot exists.
package train
