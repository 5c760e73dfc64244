package pipeline

import (
	"testing"

	"github.com/riskline/riskline/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoredWith(probs ...float64) []model.ScoredRecord {
	records := make([]model.ScoredRecord, len(probs))
	for i, p := range probs {
		records[i] = model.ScoredRecord{
			Record:      model.TransactionRecord{ID: string(rune('a' + i)), Index: i},
			Probability: p,
		}
	}
	return records
}

func probabilities(records []model.ScoredRecord) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.Probability
	}
	return out
}

func TestPartition(t *testing.T) {
	results := Partition(scoredWith(0.95, 0.20, 0.60), 0.5)

	assert.Equal(t, []float64{0.95, 0.60, 0.20}, probabilities(results.All))
	assert.Equal(t, []float64{0.95, 0.60}, probabilities(results.Suspicious))
}

func TestPartitionStableOnTies(t *testing.T) {
	results := Partition(scoredWith(0.4, 0.4, 0.9, 0.4), 0.0)

	require.Len(t, results.All, 4)
	assert.Equal(t, 2, results.All[0].Record.Index)
	// Equal probabilities keep original batch order.
	assert.Equal(t, 0, results.All[1].Record.Index)
	assert.Equal(t, 1, results.All[2].Record.Index)
	assert.Equal(t, 3, results.All[3].Record.Index)
}

func TestPartitionThresholdMonotonicity(t *testing.T) {
	scored := scoredWith(0.95, 0.20, 0.60, 0.50, 0.05)

	high := Partition(scored, 0.6)
	low := Partition(scored, 0.2)

	// Lowering the threshold only adds records to the suspicious subset.
	highIDs := make(map[string]bool)
	for _, rec := range high.Suspicious {
		highIDs[rec.Record.ID] = true
	}
	lowIDs := make(map[string]bool)
	for _, rec := range low.Suspicious {
		lowIDs[rec.Record.ID] = true
	}
	for id := range highIDs {
		assert.True(t, lowIDs[id], "record %s disappeared when the threshold dropped", id)
	}
	assert.Greater(t, len(low.Suspicious), len(high.Suspicious))
}

func TestPartitionBoundaryInclusive(t *testing.T) {
	results := Partition(scoredWith(0.5), 0.5)
	assert.Len(t, results.Suspicious, 1)
}

func TestPartitionDoesNotMutateInput(t *testing.T) {
	scored := scoredWith(0.1, 0.9)

	_ = Partition(scored, 0.5)

	assert.Equal(t, []float64{0.1, 0.9}, probabilities(scored))
}
