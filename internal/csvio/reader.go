// Package csvio reads transaction batches from delimited text files and
// writes the scored result files.
package csvio

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/riskline/riskline/internal/common"
	"github.com/riskline/riskline/internal/model"
	"golang.org/x/text/encoding/charmap"
)

// idColumn identifies records within a batch; duplicate IDs are dropped,
// first occurrence kept.
const idColumn = "transaction_id"

var delimiterCandidates = []rune{',', ';', '\t', '|'}

// ReadBatch reads a delimited transaction file. The header row defines field
// names (trimmed, lowercased); the delimiter is sniffed from the header line;
// files that are not valid UTF-8 are decoded as Latin-1.
func ReadBatch(path string) (model.Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.Batch{}, fmt.Errorf("%w: %s", common.ErrMissingInput, path)
		}
		return model.Batch{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	data = decode(data)
	delimiter := sniffDelimiter(data)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	rows, err := reader.ReadAll()
	if err != nil {
		return model.Batch{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(rows) == 0 {
		return model.Batch{}, fmt.Errorf("%w: %s has no header row", common.ErrNoRecords, path)
	}

	columns := normalizeHeader(rows[0])

	batch := model.Batch{Columns: columns}
	seen := make(map[string]bool)
	for _, row := range rows[1:] {
		fields := make(map[string]string, len(columns))
		for i, col := range columns {
			if i < len(row) {
				fields[col] = strings.TrimSpace(row[i])
			}
		}

		id := fields[idColumn]
		if id != "" {
			if seen[id] {
				batch.DuplicatesDropped++
				continue
			}
			seen[id] = true
		}

		batch.Records = append(batch.Records, model.TransactionRecord{
			ID:     id,
			Index:  len(batch.Records),
			Fields: fields,
		})
	}

	if batch.DuplicatesDropped > 0 {
		slog.Warn("Dropped duplicate transactions",
			"column", idColumn,
			"dropped", batch.DuplicatesDropped)
	}

	slog.Info("Loaded transaction batch",
		"file", path,
		"records", len(batch.Records),
		"columns", len(columns))

	return batch, nil
}

// decode strips a UTF-8 BOM and falls back to Latin-1 for files that are not
// valid UTF-8.
func decode(data []byte) []byte {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	if utf8.Valid(data) {
		return data
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		// Latin-1 decoding cannot fail on arbitrary bytes; keep the original
		// as a last resort.
		return data
	}
	slog.Debug("Input was not UTF-8, decoded as Latin-1")
	return decoded
}

// sniffDelimiter picks the candidate occurring most often in the header line.
func sniffDelimiter(data []byte) rune {
	header := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		header = data[:i]
	}

	best := ','
	bestCount := 0
	for _, candidate := range delimiterCandidates {
		count := bytes.Count(header, []byte(string(candidate)))
		if count > bestCount {
			best = candidate
			bestCount = count
		}
	}
	return best
}

func normalizeHeader(header []string) []string {
	columns := make([]string, len(header))
	for i, name := range header {
		name = strings.ReplaceAll(name, "\uFEFF", "")
		name = strings.ReplaceAll(name, "ï»¿", "")
		columns[i] = strings.ToLower(strings.TrimSpace(name))
	}
	return columns
}
