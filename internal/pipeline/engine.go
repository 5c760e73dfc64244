package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/riskline/riskline/internal/artifact"
	"github.com/riskline/riskline/internal/common"
	"github.com/riskline/riskline/internal/model"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
)

// Engine orchestrates the scoring of one batch: normalize, encode, align,
// score, decide, partition. Stages hand off derived values only; no stage
// mutates another's output.
type Engine struct {
	artifacts *artifact.Set
	scorer    *Scorer
	config    Config
}

// Config holds configuration options for the scoring engine. It is passed in
// explicitly so tests can inject a threshold without touching process state.
type Config struct {
	Progress  io.Writer
	Threshold float64
	Workers   int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Threshold: 0.5,
		Workers:   4,
	}
}

// New creates a scoring engine over a loaded artifact set.
func New(artifacts *artifact.Set, config Config) (*Engine, error) {
	if config.Threshold < 0 || config.Threshold > 1 {
		return nil, fmt.Errorf("%w: got %v", common.ErrInvalidThreshold, config.Threshold)
	}
	if config.Workers <= 0 {
		config.Workers = DefaultConfig().Workers
	}

	return &Engine{
		artifacts: artifacts,
		scorer:    NewScorer(artifacts.Scaler, artifacts.Classifier),
		config:    config,
	}, nil
}

// ScoreBatch scores every record in the batch and returns the partitioned
// results plus a run summary. Per-record data anomalies (unseen categories,
// missing features) are absorbed by the encoder and aligner; anything that
// leaves a non-numeric value in the feature matrix aborts the batch instead.
func (e *Engine) ScoreBatch(ctx context.Context, batch model.Batch) (model.ResultSet, model.RunSummary, error) {
	start := time.Now()
	summary := model.RunSummary{
		Threshold:         e.config.Threshold,
		InputRows:         len(batch.Records) + batch.DuplicatesDropped,
		DuplicatesDropped: batch.DuplicatesDropped,
	}

	if len(batch.Records) == 0 {
		return model.ResultSet{}, summary, common.ErrNoRecords
	}

	alignment := NewAlignment(e.artifacts.Scaler, FeatureColumns(batch.Columns))
	summary.DegradedAlignment = alignment.Degraded

	slog.Info("Scoring batch",
		"records", len(batch.Records),
		"features", len(alignment.Schema),
		"threshold", e.config.Threshold,
		"workers", e.config.Workers)

	var bar *progressbar.ProgressBar
	if e.config.Progress != nil {
		bar = progressbar.NewOptions(len(batch.Records),
			progressbar.OptionSetWriter(e.config.Progress),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("Scoring transactions..."))
	}

	// Per-record transform is embarrassingly parallel; the only shared write
	// is sentinel registration inside the encoders, which they serialize.
	matrix := make([][]float64, len(batch.Records))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.config.Workers)
	for i, record := range batch.Records {
		i, record := i, record
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			raw := Normalize(record, batch.Columns)
			vec, err := Encode(raw, e.artifacts.Encoders)
			if err != nil {
				return fmt.Errorf("record %q: %w", record.ID, err)
			}
			matrix[i] = alignment.Align(vec)
			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.ResultSet{}, summary, err
	}

	probs, err := e.scorer.Score(ctx, matrix)
	if err != nil {
		return model.ResultSet{}, summary, err
	}

	scored := make([]model.ScoredRecord, len(batch.Records))
	for i, record := range batch.Records {
		predicted, reason := Decide(probs[i], e.config.Threshold)
		scored[i] = model.ScoredRecord{
			Record:      record,
			Probability: probs[i],
			Predicted:   predicted,
			Reason:      reason,
		}
	}

	results := Partition(scored, e.config.Threshold)

	summary.ScoredRows = len(results.All)
	summary.SuspiciousRows = len(results.Suspicious)
	summary.Duration = time.Since(start)

	slog.Info("Scoring complete",
		"scored", summary.ScoredRows,
		"suspicious", summary.SuspiciousRows,
		"duration", summary.Duration)

	return results, summary, nil
}

// Encoders exposes the engine's encoder set so callers can persist grown
// vocabularies after a run.
func (e *Engine) Encoders() model.EncoderSet {
	return e.artifacts.Encoders
}
