package train

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FileParams carries every hyperparameter the result file name encodes.
// Two runs differing in any of these land in different files; repeated
// runs of the same configuration overwrite.
type FileParams struct {
	Dataset       string
	LearningRate  float64
	Dropout       float64
	EarlyStopping int
	WeightDecay   float64
	Alpha         float64
	Beta          float64
	Gamma         float64
	Delta         float64
	NormFuncID    int
	NormLayers    int
	OrdersFuncID  int
	Orders        int
	Split         int
}

// Filename renders the flat hyperparameter encoding. Floats render in
// their shortest form, so integral values drop the trailing ".0".
func (p FileParams) Filename() string {
	return fmt.Sprintf(
		"%s_lr%v_do%v_es%d_wd%v_alpha%v_beta%v_gamma%v_delta%v_nlid%d_nl%d_ordersid%d_orders%d_split%d_results.txt",
		p.Dataset, p.LearningRate, p.Dropout, p.EarlyStopping, p.WeightDecay,
		p.Alpha, p.Beta, p.Gamma, p.Delta,
		p.NormFuncID, p.NormLayers, p.OrdersFuncID, p.Orders, p.Split,
	)
}

// Record is the flat result written at the end of a run. Field order is
// the serialization order.
type Record struct {
	TestCost     float64 `json:"test_cost"`
	TestAcc      float64 `json:"test_acc"`
	TestDuration float64 `json:"test_duration"`
	RunID        string  `json:"run_id"`
}

// NewRecord flattens a Summary into a Record with a fresh run id. The
// duration field is seconds of the test evaluation.
func NewRecord(sum *Summary) Record {
	return Record{
		TestCost:     sum.TestLoss,
		TestAcc:      sum.TestMetric,
		TestDuration: sum.TestDuration.Seconds(),
		RunID:        uuid.NewString(),
	}
}

// WriteRecord serializes rec into dir under the FileParams encoding,
// creating dir as needed, and returns the full path written.
func WriteRecord(dir string, p FileParams, rec Record) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("train: results dir: %w", err)
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("train: encode record: %w", err)
	}
	path := filepath.Join(dir, p.Filename())
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("train: write record: %w", err)
	}
	return path, nil
}
