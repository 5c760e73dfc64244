package model

import "fmt"

// Scaler holds the per-feature standardization parameters the model was
// trained under, plus the ordered feature list it was fit on. FeatureNames
// may be empty when the training side exported no schema metadata; the
// aligner then falls back to the batch's own column order.
type Scaler struct {
	FeatureNames []string
	Mean         []float64
	Scale        []float64
}

// Validate checks that the parameter arrays agree with each other and with
// the schema when one is present.
func (s *Scaler) Validate() error {
	if len(s.Mean) != len(s.Scale) {
		return fmt.Errorf("scaler mean/scale length mismatch: %d vs %d", len(s.Mean), len(s.Scale))
	}
	if len(s.FeatureNames) > 0 && len(s.FeatureNames) != len(s.Mean) {
		return fmt.Errorf("scaler schema names %d parameters %d", len(s.FeatureNames), len(s.Mean))
	}
	return nil
}

// Transform standardizes one aligned row: (x - mean) / scale.
// A zero scale entry denotes a constant feature and divides by 1.
func (s *Scaler) Transform(row []float64) ([]float64, error) {
	if len(row) != len(s.Mean) {
		return nil, fmt.Errorf("row has %d features, scaler was fit on %d", len(row), len(s.Mean))
	}
	out := make([]float64, len(row))
	for i, x := range row {
		scale := s.Scale[i]
		if scale == 0 {
			scale = 1
		}
		out[i] = (x - s.Mean[i]) / scale
	}
	return out, nil
}
