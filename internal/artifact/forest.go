package artifact

import (
	"context"
	"fmt"
	"math"
)

// Tree is one decision tree in flattened array form, the layout the training
// pipeline exports: node i branches left when x[Feature[i]] <= Threshold[i].
// Leaves are marked by ChildrenLeft[i] == -1 and carry the fraction of
// positive-class training samples in Value[i].
type Tree struct {
	Feature       []int     `json:"feature"`
	Threshold     []float64 `json:"threshold"`
	ChildrenLeft  []int     `json:"children_left"`
	ChildrenRight []int     `json:"children_right"`
	Value         []float64 `json:"value"`
}

func (t *Tree) validate(nFeatures int) error {
	n := len(t.Feature)
	if len(t.Threshold) != n || len(t.ChildrenLeft) != n || len(t.ChildrenRight) != n || len(t.Value) != n {
		return fmt.Errorf("tree node arrays have inconsistent lengths")
	}
	if n == 0 {
		return fmt.Errorf("tree has no nodes")
	}
	for i := 0; i < n; i++ {
		if t.ChildrenLeft[i] == -1 {
			continue
		}
		if t.Feature[i] < 0 || t.Feature[i] >= nFeatures {
			return fmt.Errorf("node %d references feature %d of %d", i, t.Feature[i], nFeatures)
		}
		if t.ChildrenLeft[i] >= n || t.ChildrenRight[i] >= n || t.ChildrenLeft[i] < 0 || t.ChildrenRight[i] < 0 {
			return fmt.Errorf("node %d has out-of-range children", i)
		}
	}
	return nil
}

// predict walks the tree for one standardized row.
func (t *Tree) predict(row []float64) float64 {
	i := 0
	for t.ChildrenLeft[i] != -1 {
		if row[t.Feature[i]] <= t.Threshold[i] {
			i = t.ChildrenLeft[i]
		} else {
			i = t.ChildrenRight[i]
		}
	}
	return t.Value[i]
}

// Calibration is the sigmoid (Platt) calibration fit over the raw ensemble
// score: p = 1 / (1 + exp(a*s + b)).
type Calibration struct {
	Method string  `json:"method"`
	A      float64 `json:"a"`
	B      float64 `json:"b"`
}

// Forest is a calibrated random-forest classifier. It is the only classifier
// shape the scoring pipeline invokes; the pipeline sees it purely as a
// probability emitter.
type Forest struct {
	Calibration *Calibration `json:"calibration,omitempty"`
	ModelType   string       `json:"model_type"`
	Trees       []Tree       `json:"trees"`
	NFeatures   int          `json:"n_features"`
}

// Validate checks internal consistency of the loaded ensemble.
func (f *Forest) Validate() error {
	if len(f.Trees) == 0 {
		return fmt.Errorf("forest has no trees")
	}
	if f.NFeatures <= 0 {
		return fmt.Errorf("forest declares %d features", f.NFeatures)
	}
	for i := range f.Trees {
		if err := f.Trees[i].validate(f.NFeatures); err != nil {
			return fmt.Errorf("tree %d: %w", i, err)
		}
	}
	if f.Calibration != nil && f.Calibration.Method != "sigmoid" {
		return fmt.Errorf("unsupported calibration method %q", f.Calibration.Method)
	}
	return nil
}

// PredictProba returns the calibrated positive-class probability for every
// row of a standardized feature matrix.
func (f *Forest) PredictProba(ctx context.Context, matrix [][]float64) ([]float64, error) {
	probs := make([]float64, len(matrix))
	for i, row := range matrix {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(row) != f.NFeatures {
			return nil, fmt.Errorf("row %d has %d features, model expects %d", i, len(row), f.NFeatures)
		}
		var sum float64
		for t := range f.Trees {
			sum += f.Trees[t].predict(row)
		}
		raw := sum / float64(len(f.Trees))
		probs[i] = f.calibrate(raw)
	}
	return probs, nil
}

func (f *Forest) calibrate(raw float64) float64 {
	if f.Calibration == nil {
		return raw
	}
	return 1 / (1 + math.Exp(f.Calibration.A*raw+f.Calibration.B))
}
