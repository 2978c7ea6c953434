// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/gnnlab/dataset"
	"github.com/katalvlaran/gnnlab/graphstore"
	"github.com/katalvlaran/gnnlab/logging"
	"github.com/katalvlaran/gnnlab/nn"
	"github.com/katalvlaran/gnnlab/train"
)

// Model names accepted by --model.
const (
	modelGCN     = "gcn"
	modelMLPNorm = "mlp_norm"
)

// deviceCPU is the only compute device this build supports.
const deviceCPU = "cpu"

// Experiment is one complete training configuration. YAML keys match the
// historical argument names, so published experiment files keep working.
type Experiment struct {
	Dataset string `yaml:"dataset"`
	Split   int    `yaml:"split"`
	Model   string `yaml:"model"`
	Seed    int64  `yaml:"seed"`

	Epochs       int     `yaml:"epochs"`
	LearningRate float64 `yaml:"lr"`
	WeightDecay  float64 `yaml:"weight_decay"`
	Hidden       int     `yaml:"hidden"`
	Dropout      float64 `yaml:"dropout"`
	Patience     int     `yaml:"early_stopping"`
	FastMode     bool    `yaml:"fastmode"`

	Alpha        float64 `yaml:"alpha"`
	Beta         float64 `yaml:"beta"`
	Gamma        float64 `yaml:"gamma"`
	Delta        float64 `yaml:"delta"`
	NormLayers   int     `yaml:"norm_layers"`
	Orders       int     `yaml:"orders"`
	NormFuncID   int     `yaml:"norm_func_id"`
	OrdersFuncID int     `yaml:"orders_func_id"`

	Device  string `yaml:"device"`
	DataDir string `yaml:"data_dir"`
	RunsDir string `yaml:"runs_dir"`
}

// defaultExperiment returns the published Wisconsin hyperparameters.
func defaultExperiment() Experiment {
	return Experiment{
		Dataset:      "wisconsin",
		Split:        0,
		Model:        modelMLPNorm,
		Seed:         42,
		Epochs:       200,
		LearningRate: 0.01,
		WeightDecay:  5e-4,
		Hidden:       16,
		Dropout:      0.5,
		Patience:     40,
		Alpha:        0.1,
		Beta:         0.1,
		Gamma:        0.2,
		Delta:        1.0,
		NormLayers:   2,
		Orders:       2,
		NormFuncID:   2,
		OrdersFuncID: 3,
		Device:       deviceCPU,
		DataDir:      ".",
		RunsDir:      "runs",
	}
}

// registerExperimentFlags binds every experiment field except Split, which
// only the train command exposes (sweep drives all splits itself).
func registerExperimentFlags(cmd *cobra.Command, e *Experiment) {
	fs := cmd.Flags()
	fs.StringVar(&e.Dataset, "dataset", e.Dataset, "dataset name (see the datasets command)")
	fs.StringVar(&e.Model, "model", e.Model, "model to train (gcn or mlp_norm)")
	fs.Int64Var(&e.Seed, "seed", e.Seed, "random seed for weights, dropout and shuffles")
	fs.IntVar(&e.Epochs, "epochs", e.Epochs, "maximum training epochs")
	fs.Float64Var(&e.LearningRate, "lr", e.LearningRate, "Adam learning rate")
	fs.Float64Var(&e.WeightDecay, "weight-decay", e.WeightDecay, "L2 penalty coupled into the Adam step")
	fs.IntVar(&e.Hidden, "hidden", e.Hidden, "hidden layer width")
	fs.Float64Var(&e.Dropout, "dropout", e.Dropout, "dropout probability during training")
	fs.IntVar(&e.Patience, "patience", e.Patience, "early-stopping window in epochs")
	fs.BoolVar(&e.FastMode, "fast-mode", e.FastMode, "skip validation and run all epochs")
	fs.Float64Var(&e.Alpha, "alpha", e.Alpha, "correction solve balance (with beta: coe = 1/(alpha+beta))")
	fs.Float64Var(&e.Beta, "beta", e.Beta, "weight of the propagated term in the update")
	fs.Float64Var(&e.Gamma, "gamma", e.Gamma, "weight of the skip connection to the initial embedding")
	fs.Float64Var(&e.Delta, "delta", e.Delta, "mix between the feature and adjacency input branches")
	fs.IntVar(&e.NormLayers, "norm-layers", e.NormLayers, "number of normalization layers")
	fs.IntVar(&e.Orders, "orders", e.Orders, "highest adjacency power in propagation")
	fs.IntVar(&e.NormFuncID, "norm-func", e.NormFuncID, "normalization variant (1 or 2)")
	fs.IntVar(&e.OrdersFuncID, "orders-func", e.OrdersFuncID, "order-combination variant (1, 2 or 3)")
	fs.StringVar(&e.Device, "device", e.Device, "compute device (only cpu)")
	fs.StringVar(&e.DataDir, "data-dir", e.DataDir, "root directory holding the dataset files")
	fs.StringVar(&e.RunsDir, "runs-dir", e.RunsDir, "directory for per-run result records")
}

// applyConfigFile layers a YAML experiment file under the command line:
// file values replace the built-in defaults, and any flag the user set
// explicitly wins over the file.
func applyConfigFile(cmd *cobra.Command, e *Experiment, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	merged := defaultExperiment()
	if err = yaml.Unmarshal(raw, &merged); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}

	flags := *e
	overrides := map[string]func(){
		"dataset":      func() { merged.Dataset = flags.Dataset },
		"split":        func() { merged.Split = flags.Split },
		"model":        func() { merged.Model = flags.Model },
		"seed":         func() { merged.Seed = flags.Seed },
		"epochs":       func() { merged.Epochs = flags.Epochs },
		"lr":           func() { merged.LearningRate = flags.LearningRate },
		"weight-decay": func() { merged.WeightDecay = flags.WeightDecay },
		"hidden":       func() { merged.Hidden = flags.Hidden },
		"dropout":      func() { merged.Dropout = flags.Dropout },
		"patience":     func() { merged.Patience = flags.Patience },
		"fast-mode":    func() { merged.FastMode = flags.FastMode },
		"alpha":        func() { merged.Alpha = flags.Alpha },
		"beta":         func() { merged.Beta = flags.Beta },
		"gamma":        func() { merged.Gamma = flags.Gamma },
		"delta":        func() { merged.Delta = flags.Delta },
		"norm-layers":  func() { merged.NormLayers = flags.NormLayers },
		"orders":       func() { merged.Orders = flags.Orders },
		"norm-func":    func() { merged.NormFuncID = flags.NormFuncID },
		"orders-func":  func() { merged.OrdersFuncID = flags.OrdersFuncID },
		"device":       func() { merged.Device = flags.Device },
		"data-dir":     func() { merged.DataDir = flags.DataDir },
		"runs-dir":     func() { merged.RunsDir = flags.RunsDir },
	}
	for name, keep := range overrides {
		if cmd.Flags().Changed(name) {
			keep()
		}
	}
	*e = merged
	return nil
}

// buildModel constructs the model named by the experiment. The seed feeds a
// private rand.Rand so concurrent runs never share generator state.
func buildModel(e Experiment, g *graphstore.Graph) (nn.Model, error) {
	rng := rand.New(rand.NewSource(e.Seed))
	switch e.Model {
	case modelGCN:
		m, err := nn.NewGCN(nn.GCNConfig{
			InFeatures: g.NumFeatures(),
			Hidden:     e.Hidden,
			Classes:    g.Classes,
			Dropout:    e.Dropout,
			Rand:       rng,
		})
		if err != nil {
			return nil, err
		}
		return m, nil
	case modelMLPNorm:
		m, err := nn.NewMLPNorm(nn.MLPNormConfig{
			Nodes:        g.NumNodes(),
			InFeatures:   g.NumFeatures(),
			Classes:      g.Classes,
			Hidden:       e.Hidden,
			Dropout:      e.Dropout,
			Alpha:        e.Alpha,
			Beta:         e.Beta,
			Gamma:        e.Gamma,
			Delta:        e.Delta,
			NormLayers:   e.NormLayers,
			Orders:       e.Orders,
			NormFuncID:   e.NormFuncID,
			OrdersFuncID: e.OrdersFuncID,
			Rand:         rng,
		})
		if err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unknown model %q (want %q or %q)", e.Model, modelGCN, modelMLPNorm)
	}
}

// fileParams maps an experiment onto the result-record naming scheme.
func fileParams(e Experiment) train.FileParams {
	return train.FileParams{
		Dataset:       e.Dataset,
		LearningRate:  e.LearningRate,
		Dropout:       e.Dropout,
		EarlyStopping: e.Patience,
		WeightDecay:   e.WeightDecay,
		Alpha:         e.Alpha,
		Beta:          e.Beta,
		Gamma:         e.Gamma,
		Delta:         e.Delta,
		NormFuncID:    e.NormFuncID,
		NormLayers:    e.NormLayers,
		OrdersFuncID:  e.OrdersFuncID,
		Orders:        e.Orders,
		Split:         e.Split,
	}
}

// runExperiment loads the dataset, trains the model and writes the result
// record. It returns the training summary and the record path.
func runExperiment(ctx context.Context, e Experiment, log *logging.Logger) (*train.Summary, string, error) {
	if e.Device != deviceCPU {
		return nil, "", fmt.Errorf("device %q not supported, only %q", e.Device, deviceCPU)
	}

	g, err := dataset.Load(e.DataDir, e.Dataset, e.Split)
	if err != nil {
		return nil, "", err
	}
	log.Info("dataset loaded",
		"dataset", e.Dataset,
		"split", e.Split,
		"nodes", g.NumNodes(),
		"features", g.NumFeatures(),
		"classes", g.Classes,
		"nnz", g.Adj.NNZ(),
		"components", len(g.Adj.Components()),
	)
	model, err := buildModel(e, g)
	if err != nil {
		return nil, "", err
	}

	sum, err := train.Run(ctx, model, g, train.Config{
		Epochs:        e.Epochs,
		LearningRate:  e.LearningRate,
		WeightDecay:   e.WeightDecay,
		EarlyStopping: e.Patience,
		FastMode:      e.FastMode,
	}, log.With("dataset", e.Dataset, "split", e.Split, "model", e.Model))
	if err != nil {
		return nil, "", err
	}

	path, err := train.WriteRecord(e.RunsDir, fileParams(e), train.NewRecord(sum))
	if err != nil {
		return nil, "", err
	}
	return sum, path, nil
}
