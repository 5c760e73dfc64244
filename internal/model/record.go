// Package model defines the core domain models used throughout the application.
package model

// TransactionRecord is a single row of input data: an ordered mapping from
// normalized column name to the raw value read from the batch file. Records
// are immutable once read; every downstream stage works on derived values.
type TransactionRecord struct {
	Fields map[string]string
	ID     string
	Index  int
}

// Batch holds one input file's worth of transactions along with the column
// order of the source file, which output files must preserve.
type Batch struct {
	Columns           []string
	Records           []TransactionRecord
	DuplicatesDropped int
}

// RawFeatures is a transaction's predictive fields before encoding: column
// name to raw string value, with non-predictive and label fields removed.
type RawFeatures map[string]string

// FeatureVector maps feature name to its numeric value after categorical
// encoding.
type FeatureVector map[string]float64

// ScoredRecord is a TransactionRecord augmented with the scoring verdict.
// Predicted is true iff Probability >= the run threshold; Reason is set only
// for predicted-suspicious records.
type ScoredRecord struct {
	Record      TransactionRecord
	Reason      string
	Probability float64
	Predicted   bool
}

// ResultSet holds the two output views of a scored batch: every record in
// probability-descending order, and the suspicious subset in the same order.
type ResultSet struct {
	All        []ScoredRecord
	Suspicious []ScoredRecord
}
