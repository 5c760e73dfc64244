// Package main contains the riskline CLI commands.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/riskline/riskline/internal/artifact"
	"github.com/riskline/riskline/internal/cli"
	"github.com/riskline/riskline/internal/common"
	"github.com/riskline/riskline/internal/config"
	"github.com/riskline/riskline/internal/csvio"
	"github.com/riskline/riskline/internal/model"
	"github.com/riskline/riskline/internal/pipeline"
	"github.com/riskline/riskline/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func scoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score [file]",
		Short: "Score a batch of transactions for fraud risk",
		Long: `Score a delimited transaction file against the trained model.

Writes two files: every record ranked by fraud probability, and the subset at
or above the suspicion threshold. Each flagged record carries a reason code
derived from its probability band.

Examples:
  riskline score transactions.csv
  riskline score transactions.csv --threshold 0.3
  riskline score --input transactions.csv --output scored.csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: runScore,
	}

	cmd.Flags().StringP("input", "i", "", "Input transaction file")
	cmd.Flags().StringP("output", "o", "", "Output file for all scored records")
	cmd.Flags().StringP("suspicious-output", "s", "", "Output file for the suspicious subset")
	cmd.Flags().Float64P("threshold", "t", 0.5, "Minimum probability to flag as suspicious")
	cmd.Flags().StringP("artifacts", "a", "", "Model artifact directory")
	cmd.Flags().Int("workers", 4, "Parallel workers for feature preparation")
	cmd.Flags().Bool("save-encoders", false, "Persist grown encoder vocabularies back to the artifact directory")
	cmd.Flags().Bool("no-progress", false, "Disable the progress bar")

	_ = viper.BindPFlag("score.input", cmd.Flags().Lookup("input"))
	_ = viper.BindPFlag("score.output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("score.suspicious_output", cmd.Flags().Lookup("suspicious-output"))
	_ = viper.BindPFlag("score.threshold", cmd.Flags().Lookup("threshold"))
	_ = viper.BindPFlag("score.workers", cmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag("artifacts.dir", cmd.Flags().Lookup("artifacts"))

	return cmd
}

func runScore(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	input := viper.GetString("score.input")
	if len(args) > 0 {
		input = args[0]
	}
	if input == "" {
		return common.NewUserError("no input file given (pass a file argument or set score.input)", common.ErrMissingConfig)
	}
	input = config.ExpandPath(input)

	threshold := viper.GetFloat64("score.threshold")
	saveEncoders, _ := cmd.Flags().GetBool("save-encoders")
	noProgress, _ := cmd.Flags().GetBool("no-progress")

	// Preconditions first: artifacts, then input. Nothing partial is
	// produced when either is missing.
	artifactsDir := config.ArtifactsDir(viper.GetString("artifacts.dir"))
	artifacts, err := artifact.Load(artifactsDir)
	if err != nil {
		return err
	}
	slog.Info("Loaded model artifacts", "dir", artifactsDir)

	batch, err := csvio.ReadBatch(input)
	if err != nil {
		return err
	}

	db, err := storage.NewSQLiteStorage(config.DatabasePath(viper.GetString("database.path")))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("Failed to close database", "error", closeErr)
		}
	}()
	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	run := &model.ScoringRun{
		InputPath: input,
		Threshold: threshold,
	}
	if err := db.CreateRun(ctx, run); err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	engineCfg := pipeline.Config{
		Threshold: threshold,
		Workers:   viper.GetInt("score.workers"),
	}
	if !noProgress {
		engineCfg.Progress = os.Stderr
	}

	engine, err := pipeline.New(artifacts, engineCfg)
	if err != nil {
		finishRun(ctx, db, run, model.RunStatusFailed, nil)
		return err
	}

	results, summary, err := engine.ScoreBatch(ctx, batch)
	if err != nil {
		finishRun(ctx, db, run, model.RunStatusFailed, &summary)
		return fmt.Errorf("scoring failed: %w", err)
	}

	outAll, outSuspicious := outputPaths(input)

	skippedAll, err := csvio.WriteResults(outAll, batch.Columns, results.All)
	if err != nil {
		finishRun(ctx, db, run, model.RunStatusFailed, &summary)
		return err
	}
	summary.SkippedRows += skippedAll

	skippedSuspicious, err := csvio.WriteResults(outSuspicious, batch.Columns, results.Suspicious)
	if err != nil {
		// The full output exists but the run is incomplete; tag it so the
		// partial state is visible.
		finishRun(ctx, db, run, model.RunStatusPartial, &summary)
		return err
	}
	summary.SkippedRows += skippedSuspicious

	if saveEncoders && encodersGrown(engine.Encoders()) {
		if saveErr := artifact.SaveEncoders(artifactsDir, engine.Encoders()); saveErr != nil {
			slog.Warn("Failed to persist grown encoder vocabularies", "error", saveErr)
		} else {
			slog.Info("Persisted grown encoder vocabularies", "dir", artifactsDir)
		}
	}

	finishRun(ctx, db, run, model.RunStatusComplete, &summary)

	cli.RenderSummary(os.Stdout, summary)
	cli.RenderSuspicious(os.Stdout, results, batch.Columns)
	fmt.Fprintln(os.Stdout, cli.SubtleStyle.Render(
		fmt.Sprintf("results: %s · suspicious: %s", outAll, outSuspicious)))

	return nil
}

// outputPaths derives default output file names from the input file, unless
// explicitly configured.
func outputPaths(input string) (string, string) {
	outAll := viper.GetString("score.output")
	outSuspicious := viper.GetString("score.suspicious_output")

	base := strings.TrimSuffix(input, filepath.Ext(input))
	if outAll == "" {
		outAll = base + "_scored.csv"
	} else {
		outAll = config.ExpandPath(outAll)
	}
	if outSuspicious == "" {
		outSuspicious = base + "_suspicious.csv"
	} else {
		outSuspicious = config.ExpandPath(outSuspicious)
	}
	return outAll, outSuspicious
}

func finishRun(ctx context.Context, db storage.RunStore, run *model.ScoringRun, status model.RunStatus, summary *model.RunSummary) {
	// The run record must be finalized even when the run itself was canceled.
	ctx = context.WithoutCancel(ctx)
	run.Status = status
	if summary != nil {
		run.InputRows = summary.InputRows
		run.DuplicatesDropped = summary.DuplicatesDropped
		run.ScoredRows = summary.ScoredRows
		run.SuspiciousRows = summary.SuspiciousRows
		run.SkippedRows = summary.SkippedRows
		run.DegradedAlignment = summary.DegradedAlignment
	}
	if err := db.FinishRun(ctx, run); err != nil {
		slog.Warn("Failed to record run result", "run_id", run.ID, "error", err)
	}
}

func encodersGrown(encoders model.EncoderSet) bool {
	for _, enc := range encoders {
		if enc.Grown() {
			return true
		}
	}
	return false
}
