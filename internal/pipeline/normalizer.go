// Package pipeline implements the batch fraud-scoring pipeline: feature
// normalization, categorical encoding, schema alignment, scoring, decision
// and result partitioning.
package pipeline

import "github.com/riskline/riskline/internal/model"

// nonPredictiveFields are dropped from every record before feature
// extraction. The set matches the fields the model was trained without.
var nonPredictiveFields = map[string]struct{}{
	"transaction_id":     {},
	"timestamp":          {},
	"fraud_pattern":      {},
	"card_number_masked": {},
	"response_code":      {},
	"status":             {},
	"switch_id":          {},
}

// labelField is the training label; it must never reach the feature vector
// even when present in scoring input.
const labelField = "is_suspicious"

// Normalize derives the raw feature set from one record: non-predictive and
// label fields removed, absent or empty values replaced with a neutral "0".
// Pure; the record is never modified.
func Normalize(record model.TransactionRecord, columns []string) model.RawFeatures {
	features := make(model.RawFeatures, len(columns))
	for _, col := range FeatureColumns(columns) {
		value := record.Fields[col]
		if value == "" {
			value = "0"
		}
		features[col] = value
	}
	return features
}

// FeatureColumns filters a batch's column list down to predictive features,
// preserving input order. This order is also the alignment fallback when the
// scaler artifact carries no schema metadata.
func FeatureColumns(columns []string) []string {
	out := make([]string, 0, len(columns))
	for _, col := range columns {
		if _, dropped := nonPredictiveFields[col]; dropped {
			continue
		}
		if col == labelField {
			continue
		}
		out = append(out, col)
	}
	return out
}
