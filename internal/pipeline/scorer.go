package pipeline

import (
	"context"
	"fmt"

	"github.com/riskline/riskline/internal/common"
	"github.com/riskline/riskline/internal/model"
)

// Scorer standardizes aligned feature rows and obtains calibrated fraud
// probabilities from the classifier. It never retrains or recalibrates;
// it only invokes.
type Scorer struct {
	scaler     *model.Scaler
	classifier Classifier
}

// NewScorer creates a scorer over the fitted scaler and classifier.
func NewScorer(scaler *model.Scaler, classifier Classifier) *Scorer {
	return &Scorer{scaler: scaler, classifier: classifier}
}

// Score scales a full batch matrix and returns one probability per row in a
// single classifier call.
func (s *Scorer) Score(ctx context.Context, matrix [][]float64) ([]float64, error) {
	scaled := make([][]float64, len(matrix))
	for i, row := range matrix {
		transformed, err := s.scaler.Transform(row)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", common.ErrSchemaMismatch, i, err)
		}
		scaled[i] = transformed
	}

	probs, err := s.classifier.PredictProba(ctx, scaled)
	if err != nil {
		return nil, fmt.Errorf("classifier failed: %w", err)
	}
	if len(probs) != len(matrix) {
		return nil, fmt.Errorf("classifier returned %d probabilities for %d rows", len(probs), len(matrix))
	}
	return probs, nil
}

// ScoreOne scores a single aligned row. Guaranteed to match what Score
// produces for the same row within a batch.
func (s *Scorer) ScoreOne(ctx context.Context, row []float64) (float64, error) {
	probs, err := s.Score(ctx, [][]float64{row})
	if err != nil {
		return 0, err
	}
	return probs[0], nil
}
