package pipeline

import (
	"log/slog"

	"github.com/riskline/riskline/internal/model"
)

// Alignment fixes the column order handed to the scaler. The emitted order
// must exactly equal the schema the scaler was fit on; a silent transposition
// here produces wrong probabilities with no shape error, which is why the
// schema is resolved once per batch and pinned.
type Alignment struct {
	Schema   []string
	Degraded bool
}

// NewAlignment resolves the expected schema from the scaler artifact. When
// the artifact carries no feature names the batch's own feature order is used
// instead; that disables the ordering guarantee, so the degraded mode is
// logged and flagged rather than applied quietly.
func NewAlignment(scaler *model.Scaler, fallback []string) Alignment {
	if len(scaler.FeatureNames) > 0 {
		return Alignment{Schema: append([]string(nil), scaler.FeatureNames...)}
	}

	slog.Warn("Scaler artifact has no feature schema; falling back to input column order",
		"fallback_features", len(fallback))
	return Alignment{
		Schema:   append([]string(nil), fallback...),
		Degraded: true,
	}
}

// Align emits the vector's values in exactly schema order. Features the
// vector lacks are zero-filled; features outside the schema are discarded.
func (a Alignment) Align(vec model.FeatureVector) []float64 {
	row := make([]float64, len(a.Schema))
	for i, name := range a.Schema {
		row[i] = vec[name]
	}
	return row
}
