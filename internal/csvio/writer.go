package csvio

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/riskline/riskline/internal/model"
)

// Score columns appended to the output. If the input already carried one of
// these (fraud_pattern is in the non-predictive drop set, so it often does),
// the scored value replaces it in place rather than duplicating the column.
const (
	colProbability = "fraud_probability"
	colPredicted   = "predicted_is_suspicious"
	colSuspicious  = "is_suspicious"
	colReason      = "fraud_pattern"
)

var scoreColumns = []string{colProbability, colPredicted, colSuspicious, colReason}

// WriteResults writes scored records to path with the batch's original
// columns plus the score columns. A row that fails to serialize is logged and
// skipped rather than aborting the batch; the skipped count is returned.
func WriteResults(path string, columns []string, records []model.ScoredRecord) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("Failed to close output file", "file", path, "error", closeErr)
		}
	}()

	// BOM keeps spreadsheet tools happy with accented merchant names.
	if _, err := f.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", path, err)
	}

	header := outputColumns(columns)
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return 0, fmt.Errorf("failed to write header to %s: %w", path, err)
	}

	skipped := 0
	for _, rec := range records {
		row := buildRow(header, rec)
		if err := w.Write(row); err != nil {
			slog.Error("Failed to write row, skipping",
				"transaction_id", rec.Record.ID,
				"error", err)
			skipped++
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return skipped, fmt.Errorf("failed to flush %s: %w", path, err)
	}

	slog.Info("Wrote results", "file", path, "rows", len(records)-skipped, "skipped", skipped)
	return skipped, nil
}

// outputColumns appends the score columns that are not already present in
// the input column order.
func outputColumns(columns []string) []string {
	out := append([]string(nil), columns...)
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}
	for _, c := range scoreColumns {
		if !present[c] {
			out = append(out, c)
		}
	}
	return out
}

func buildRow(header []string, rec model.ScoredRecord) []string {
	row := make([]string, len(header))
	for i, col := range header {
		switch col {
		case colProbability:
			row[i] = strconv.FormatFloat(rec.Probability, 'g', -1, 64)
		case colPredicted:
			row[i] = boolToFlag(rec.Predicted)
		case colSuspicious:
			// Unset (empty) below threshold, 1 at or above it.
			if rec.Predicted {
				row[i] = "1"
			}
		case colReason:
			row[i] = rec.Reason
		default:
			row[i] = rec.Record.Fields[col]
		}
	}
	return row
}

func boolToFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
