package pipeline

import (
	"testing"

	"github.com/riskline/riskline/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		fields  map[string]string
		columns []string
		want    model.RawFeatures
	}{
		{
			name:    "drops non-predictive and label fields",
			columns: []string{"transaction_id", "timestamp", "amount", "channel", "is_suspicious", "switch_id"},
			fields: map[string]string{
				"transaction_id": "tx-1",
				"timestamp":      "2024-01-01T10:00:00Z",
				"amount":         "120.50",
				"channel":        "ATM",
				"is_suspicious":  "1",
				"switch_id":      "sw-9",
			},
			want: model.RawFeatures{"amount": "120.50", "channel": "ATM"},
		},
		{
			name:    "fills absent values with zero",
			columns: []string{"amount", "channel", "merchant_id"},
			fields:  map[string]string{"amount": "10"},
			want:    model.RawFeatures{"amount": "10", "channel": "0", "merchant_id": "0"},
		},
		{
			name:    "fills empty values with zero",
			columns: []string{"amount"},
			fields:  map[string]string{"amount": ""},
			want:    model.RawFeatures{"amount": "0"},
		},
		{
			name:    "tolerates drop fields being absent",
			columns: []string{"amount"},
			fields:  map[string]string{"amount": "5"},
			want:    model.RawFeatures{"amount": "5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := model.TransactionRecord{Fields: tt.fields}
			got := Normalize(record, tt.columns)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeDoesNotMutateRecord(t *testing.T) {
	fields := map[string]string{"amount": "", "channel": "POS"}
	record := model.TransactionRecord{Fields: fields}

	_ = Normalize(record, []string{"amount", "channel"})

	assert.Equal(t, map[string]string{"amount": "", "channel": "POS"}, record.Fields)
}

func TestFeatureColumns(t *testing.T) {
	columns := []string{"transaction_id", "amount", "fraud_pattern", "channel", "is_suspicious"}

	got := FeatureColumns(columns)

	assert.Equal(t, []string{"amount", "channel"}, got)
}
