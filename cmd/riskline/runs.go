package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/riskline/riskline/internal/cli"
	"github.com/riskline/riskline/internal/config"
	"github.com/riskline/riskline/internal/model"
	"github.com/riskline/riskline/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func runsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent scoring runs",
		Long: `List recent scoring runs from the run history.

Runs whose status is PARTIAL or FAILED did not produce a complete result set
and their output files must not be treated as such.`,
		RunE: runRuns,
	}

	cmd.Flags().IntP("limit", "n", 20, "Maximum number of runs to show")

	return cmd
}

func runRuns(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	limit, _ := cmd.Flags().GetInt("limit")

	db, err := storage.NewSQLiteStorage(config.DatabasePath(viper.GetString("database.path")))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	runs, err := db.ListRuns(ctx, limit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println(cli.SubtleStyle.Render("no scoring runs recorded yet"))
		return nil
	}

	fmt.Println(cli.TitleStyle.Render("Scoring runs"))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTARTED\tSTATUS\tINPUT\tSCORED\tSUSPICIOUS\tTHRESHOLD")
	for _, run := range runs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%d\t%v\n",
			run.ID,
			run.StartedAt.Format("2006-01-02 15:04"),
			renderStatus(run.Status),
			run.InputPath,
			run.ScoredRows,
			run.SuspiciousRows,
			run.Threshold,
		)
	}
	return w.Flush()
}

func renderStatus(status model.RunStatus) string {
	switch status {
	case model.RunStatusComplete:
		return cli.SuccessStyle.Render(string(status))
	case model.RunStatusPartial, model.RunStatusFailed:
		return cli.ErrorStyle.Render(string(status))
	default:
		return string(status)
	}
}
