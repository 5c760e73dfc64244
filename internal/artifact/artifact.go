// Package artifact loads and persists the trained model artifacts the
// scoring pipeline consumes: the calibrated classifier, the fitted category
// encoders and the feature scaler. The artifacts are JSON exports produced by
// the training pipeline; nothing here trains or refits anything.
package artifact

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/riskline/riskline/internal/common"
	"github.com/riskline/riskline/internal/model"
)

// Artifact file names within the artifact directory.
const (
	ModelFile    = "model.json"
	EncodersFile = "encoders.json"
	ScalerFile   = "scaler.json"
)

// Set bundles the three fitted artifacts a scoring run needs.
type Set struct {
	Classifier *Forest
	Encoders   model.EncoderSet
	Scaler     *model.Scaler
}

type encodersFile map[string]struct {
	Classes []string `json:"classes"`
}

type scalerFile struct {
	FeatureNames []string  `json:"feature_names,omitempty"`
	Mean         []float64 `json:"mean"`
	Scale        []float64 `json:"scale"`
}

// Load reads the model, encoder and scaler artifacts from dir. A missing
// file is a precondition failure: the caller should abort before touching
// any input data.
func Load(dir string) (*Set, error) {
	forest := &Forest{}
	if err := readJSON(filepath.Join(dir, ModelFile), forest); err != nil {
		return nil, err
	}
	if err := forest.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrCorruptArtifact, ModelFile, err)
	}

	var rawEncoders encodersFile
	if err := readJSON(filepath.Join(dir, EncodersFile), &rawEncoders); err != nil {
		return nil, err
	}
	encoders := make(model.EncoderSet, len(rawEncoders))
	for feature, entry := range rawEncoders {
		encoders[feature] = model.NewCategoryEncoder(feature, entry.Classes)
	}

	var rawScaler scalerFile
	if err := readJSON(filepath.Join(dir, ScalerFile), &rawScaler); err != nil {
		return nil, err
	}
	scaler := &model.Scaler{
		FeatureNames: rawScaler.FeatureNames,
		Mean:         rawScaler.Mean,
		Scale:        rawScaler.Scale,
	}
	if err := scaler.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrCorruptArtifact, ScalerFile, err)
	}

	slog.Debug("Loaded scoring artifacts",
		"dir", dir,
		"trees", len(forest.Trees),
		"encoders", len(encoders),
		"features", len(scaler.Mean))

	return &Set{
		Classifier: forest,
		Encoders:   encoders,
		Scaler:     scaler,
	}, nil
}

// SaveEncoders writes the encoder vocabularies back to dir. Vocabularies only
// ever grow during a run (sentinel registration), so persisting them keeps
// later runs assigning the same code to unseen categories.
func SaveEncoders(dir string, encoders model.EncoderSet) error {
	out := make(encodersFile, len(encoders))
	for feature, enc := range encoders {
		out[feature] = struct {
			Classes []string `json:"classes"`
		}{Classes: enc.Classes()}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal encoders: %w", err)
	}

	path := filepath.Join(dir, EncodersFile)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s (run the training pipeline first)", common.ErrMissingArtifact, path)
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", common.ErrCorruptArtifact, filepath.Base(path), err)
	}
	return nil
}
