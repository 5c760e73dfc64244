package main

import (
	"path/filepath"

	"github.com/riskline/riskline/internal/config"
	"github.com/riskline/riskline/internal/csvio"
	"github.com/riskline/riskline/internal/tui"
	"github.com/spf13/cobra"
)

func reviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "review <scored-file>",
		Short: "Browse a scored result file interactively",
		Long: `Open a scored result file in a terminal browser, ranked exactly as the
file was written (fraud probability descending).

Example:
  riskline review transactions_suspicious.csv`,
		Args: cobra.ExactArgs(1),
		RunE: runReview,
	}
}

func runReview(_ *cobra.Command, args []string) error {
	path := config.ExpandPath(args[0])

	batch, err := csvio.ReadBatch(path)
	if err != nil {
		return err
	}

	return tui.Run(filepath.Base(path), batch)
}
