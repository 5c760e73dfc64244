package pipeline

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/riskline/riskline/internal/common"
	"github.com/riskline/riskline/internal/model"
)

// Encode converts raw features to numeric values. Features covered by a
// fitted encoder are looked up by their string form, with unseen categories
// mapped through the encoder's "unknown" sentinel. Everything else is assumed
// numeric and parsed; a non-numeric value outside the encoders is a broken
// invariant upstream, not recoverable input noise, so it fails the batch.
//
// Safe for concurrent use across records: the only shared write is sentinel
// registration, which each CategoryEncoder serializes internally.
func Encode(raw model.RawFeatures, encoders model.EncoderSet) (model.FeatureVector, error) {
	vec := make(model.FeatureVector, len(raw))
	for feature, value := range raw {
		if enc, ok := encoders[feature]; ok {
			vec[feature] = float64(enc.Encode(value))
			continue
		}

		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: feature %q has value %q", common.ErrNonNumericFeature, feature, value)
		}
		vec[feature] = parsed
	}
	return vec, nil
}
