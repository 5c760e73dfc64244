package csvio

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/riskline/riskline/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoredRecord(id string, prob float64, predicted bool, reason string, fields map[string]string) model.ScoredRecord {
	if fields == nil {
		fields = map[string]string{}
	}
	fields["transaction_id"] = id
	return model.ScoredRecord{
		Record:      model.TransactionRecord{ID: id, Fields: fields},
		Probability: prob,
		Predicted:   predicted,
		Reason:      reason,
	}
}

func readOutput(t *testing.T, path string) (hadBOM bool, rows [][]string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	hadBOM = bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	rows, err = csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return hadBOM, rows
}

func TestWriteResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scored.csv")
	records := []model.ScoredRecord{
		scoredRecord("tx-1", 0.95, true, "extremely atypical amount or pattern",
			map[string]string{"amount": "500"}),
		scoredRecord("tx-2", 0.25, false, "",
			map[string]string{"amount": "12"}),
	}

	skipped, err := WriteResults(path, []string{"transaction_id", "amount"}, records)
	require.NoError(t, err)
	assert.Zero(t, skipped)

	hadBOM, rows := readOutput(t, path)
	assert.True(t, hadBOM)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{
		"transaction_id", "amount",
		"fraud_probability", "predicted_is_suspicious", "is_suspicious", "fraud_pattern",
	}, rows[0])
	assert.Equal(t, []string{"tx-1", "500", "0.95", "1", "1", "extremely atypical amount or pattern"}, rows[1])
	assert.Equal(t, []string{"tx-2", "12", "0.25", "0", "", ""}, rows[2])
}

// Input files routinely carry fraud_pattern and is_suspicious columns of their
// own; the scored values replace them in place instead of duplicating the
// column at the end.
func TestWriteResultsOverwritesExistingScoreColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scored.csv")
	columns := []string{"transaction_id", "fraud_pattern", "is_suspicious", "amount"}
	records := []model.ScoredRecord{
		scoredRecord("tx-1", 0.72, true, "transaction outside normal behavior",
			map[string]string{
				"fraud_pattern": "stale label",
				"is_suspicious": "0",
				"amount":        "80",
			}),
	}

	_, err := WriteResults(path, columns, records)
	require.NoError(t, err)

	_, rows := readOutput(t, path)
	assert.Equal(t, []string{
		"transaction_id", "fraud_pattern", "is_suspicious", "amount",
		"fraud_probability", "predicted_is_suspicious",
	}, rows[0])
	assert.Equal(t, []string{
		"tx-1", "transaction outside normal behavior", "1", "80", "0.72", "1",
	}, rows[1])
}

func TestWriteResultsProbabilityFormatting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scored.csv")
	records := []model.ScoredRecord{
		scoredRecord("tx-1", 0.123456789012345, true, "low risk", nil),
		scoredRecord("tx-2", 1, true, "extremely atypical amount or pattern", nil),
		scoredRecord("tx-3", 0, false, "", nil),
	}

	_, err := WriteResults(path, []string{"transaction_id"}, records)
	require.NoError(t, err)

	_, rows := readOutput(t, path)
	assert.Equal(t, "0.123456789012345", rows[1][1])
	assert.Equal(t, "1", rows[2][1])
	assert.Equal(t, "0", rows[3][1])
}

func TestWriteResultsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scored.csv")

	skipped, err := WriteResults(path, []string{"transaction_id", "amount"}, nil)
	require.NoError(t, err)
	assert.Zero(t, skipped)

	hadBOM, rows := readOutput(t, path)
	assert.True(t, hadBOM)
	// Header only.
	require.Len(t, rows, 1)
}

func TestWriteResultsCreateFailure(t *testing.T) {
	_, err := WriteResults(filepath.Join(t.TempDir(), "missing", "out.csv"), nil, nil)
	assert.Error(t, err)
}
