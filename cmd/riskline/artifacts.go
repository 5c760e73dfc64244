package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/riskline/riskline/internal/artifact"
	"github.com/riskline/riskline/internal/cli"
	"github.com/riskline/riskline/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func artifactsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "artifacts",
		Short: "Inspect the loaded model artifacts",
		Long: `Load and describe the model, encoder and scaler artifacts: ensemble size,
calibration, encoder vocabularies and the feature schema the scorer will
enforce.`,
		RunE: runArtifacts,
	}

	cmd.Flags().StringP("artifacts", "a", "", "Model artifact directory")
	_ = viper.BindPFlag("artifacts.dir", cmd.Flags().Lookup("artifacts"))

	return cmd
}

func runArtifacts(_ *cobra.Command, _ []string) error {
	dir := config.ArtifactsDir(viper.GetString("artifacts.dir"))

	set, err := artifact.Load(dir)
	if err != nil {
		return err
	}

	fmt.Println(cli.TitleStyle.Render("Model artifacts"))
	fmt.Println(cli.SubtleStyle.Render(dir))
	fmt.Println()

	calibration := "none"
	if set.Classifier.Calibration != nil {
		calibration = set.Classifier.Calibration.Method
	}
	fmt.Printf("Classifier:  %s, %d trees, %d features, calibration: %s\n",
		set.Classifier.ModelType, len(set.Classifier.Trees), set.Classifier.NFeatures, calibration)

	if len(set.Scaler.FeatureNames) > 0 {
		fmt.Printf("Schema:      %d features (ordered)\n", len(set.Scaler.FeatureNames))
		for i, name := range set.Scaler.FeatureNames {
			fmt.Printf("  %2d. %s\n", i+1, name)
		}
	} else {
		fmt.Println(cli.FormatWarning("scaler carries no feature schema; scoring will align by input column order"))
	}

	fmt.Println()
	fmt.Printf("Encoders:    %d categorical features\n", len(set.Encoders))
	features := make([]string, 0, len(set.Encoders))
	for feature := range set.Encoders {
		features = append(features, feature)
	}
	sort.Strings(features)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, feature := range features {
		fmt.Fprintf(w, "  %s\t%d classes\n", feature, len(set.Encoders[feature].Classes()))
	}
	return w.Flush()
}
