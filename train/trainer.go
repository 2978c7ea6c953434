// SPDX-License-Identifier: MIT

package train

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/katalvlaran/gnnlab/autograd"
	"github.com/katalvlaran/gnnlab/graphstore"
	"github.com/katalvlaran/gnnlab/nn"
)

// Config are the loop parameters of one full-batch run.
type Config struct {
	// Epochs bounds the optimization, at least 1.
	Epochs int

	// LearningRate and WeightDecay feed the Adam optimizer unchanged.
	LearningRate float64
	WeightDecay  float64

	// EarlyStopping is the patience: after this many consecutive epochs
	// without strict validation improvement the loop stops. At least 1.
	EarlyStopping int

	// FastMode scores validation on the training-mode output instead of
	// running a second dropout-free forward per epoch.
	FastMode bool
}

func (cfg Config) validate() error {
	if cfg.Epochs < 1 {
		return fmt.Errorf("epochs %d must be at least 1: %w", cfg.Epochs, ErrConfig)
	}
	if cfg.LearningRate <= 0 {
		return fmt.Errorf("learning rate %v must be positive: %w", cfg.LearningRate, ErrConfig)
	}
	if cfg.WeightDecay < 0 {
		return fmt.Errorf("weight decay %v must be non-negative: %w", cfg.WeightDecay, ErrConfig)
	}
	if cfg.EarlyStopping < 1 {
		return fmt.Errorf("early stopping patience %d must be at least 1: %w", cfg.EarlyStopping, ErrConfig)
	}
	return nil
}

// EpochStats records one epoch: training loss and metric from the
// training-mode forward, validation loss and metric from the evaluation
// output (training-mode in fast mode), and wall time.
type EpochStats struct {
	Epoch       int
	TrainLoss   float64
	TrainMetric float64
	ValLoss     float64
	ValMetric   float64
	Elapsed     time.Duration
}

// Summary is the outcome of a run. EpochsRun counts epochs with a
// recorded validation score; an epoch cut short by an undefined
// validation metric has stepped the optimizer but is not counted.
type Summary struct {
	Metric        string
	EpochsRun     int
	BestVal       float64
	Restored      bool
	TestLoss      float64
	TestMetric    float64
	TestDuration  time.Duration
	TotalDuration time.Duration
	History       []EpochStats
}

// Run optimizes model on g until the epoch budget, the patience, or an
// undefined validation metric ends the loop, then restores the
// best-validation snapshot (when one exists; otherwise the final
// parameters stand) and scores the test split.
//
// The context is checked once per epoch. A nil logger falls back to
// slog.Default; per-epoch lines go out at debug level.
func Run(ctx context.Context, model nn.Model, g *graphstore.Graph, cfg Config, log *slog.Logger) (*Summary, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}

	metricFn, metricName := MetricFor(g.Labels)
	opt := NewAdam(model.Params(),
		WithLearningRate(cfg.LearningRate),
		WithWeightDecay(cfg.WeightDecay),
	)
	log.Info("training started",
		"graph", g.Name,
		"nodes", g.NumNodes(),
		"metric", metricName,
		"epochs", cfg.Epochs,
		"patience", cfg.EarlyStopping,
	)

	start := time.Now()
	best := 0.0
	var bestSnap nn.Snapshot
	patience := 0
	history := make([]EpochStats, 0, cfg.Epochs)

	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("train: epoch %d: %w", epoch, err)
		}
		tick := time.Now()

		opt.ZeroGrad()
		out, err := model.Forward(g, true)
		if err != nil {
			return nil, fmt.Errorf("train: epoch %d: %w", epoch, err)
		}
		loss := autograd.NLLLoss(out, g.Labels, g.Split.Train)
		trainLoss := loss.Value().At(0, 0)
		trainMetric, err := metricFn(out.Value(), g.Labels, g.Split.Train)
		if err != nil {
			return nil, fmt.Errorf("train: epoch %d: train metric: %w", epoch, err)
		}
		autograd.Backward(loss)
		opt.Step()

		evalOut := out
		if !cfg.FastMode {
			if evalOut, err = model.Forward(g, false); err != nil {
				return nil, fmt.Errorf("train: epoch %d: %w", epoch, err)
			}
		}
		valLoss := NLLValue(evalOut.Value(), g.Labels, g.Split.Val)
		valMetric, err := metricFn(evalOut.Value(), g.Labels, g.Split.Val)
		if err != nil {
			// A degenerate validation split ends the run with whatever
			// best snapshot exists, mirroring the patience path.
			log.Debug("validation metric undefined, stopping", "epoch", epoch, "reason", err)
			break
		}

		history = append(history, EpochStats{
			Epoch:       epoch,
			TrainLoss:   trainLoss,
			TrainMetric: trainMetric,
			ValLoss:     valLoss,
			ValMetric:   valMetric,
			Elapsed:     time.Since(tick),
		})
		log.Debug("epoch",
			"epoch", epoch,
			"loss_train", trainLoss,
			"metric_train", trainMetric,
			"loss_val", valLoss,
			"metric_val", valMetric,
			"elapsed", time.Since(tick),
		)

		if valMetric > best {
			best = valMetric
			bestSnap = model.Snapshot()
			patience = 0
			log.Info("validation improved", "epoch", epoch, "metric_val", valMetric)
		} else {
			patience++
		}
		if patience >= cfg.EarlyStopping {
			log.Debug("patience exhausted", "epoch", epoch, "best_val", best)
			break
		}
	}

	restored := bestSnap != nil
	if restored {
		model.Restore(bestSnap)
	}

	testStart := time.Now()
	testOut, err := model.Forward(g, false)
	if err != nil {
		return nil, fmt.Errorf("train: test forward: %w", err)
	}
	testLoss := NLLValue(testOut.Value(), g.Labels, g.Split.Test)
	testMetric, err := metricFn(testOut.Value(), g.Labels, g.Split.Test)
	if err != nil {
		return nil, fmt.Errorf("train: test metric: %w", err)
	}
	testDuration := time.Since(testStart)

	sum := &Summary{
		Metric:        metricName,
		EpochsRun:     len(history),
		BestVal:       best,
		Restored:      restored,
		TestLoss:      testLoss,
		TestMetric:    testMetric,
		TestDuration:  testDuration,
		TotalDuration: time.Since(start),
		History:       history,
	}
	log.Info("training finished",
		"graph", g.Name,
		"epochs_run", sum.EpochsRun,
		"best_val", sum.BestVal,
		"restored", sum.Restored,
		"test_loss", sum.TestLoss,
		"test_metric", sum.TestMetric,
		"elapsed", sum.TotalDuration,
	)
	return sum, nil
}
