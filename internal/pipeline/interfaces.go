package pipeline

import "context"

// Classifier is the probability emitter the scoring stage invokes. The
// pipeline never inspects the model; it only asks for per-row positive-class
// probabilities over a standardized feature matrix.
type Classifier interface {
	PredictProba(ctx context.Context, matrix [][]float64) ([]float64, error)
}
