package storage

import (
	"context"
	"fmt"

	"github.com/riskline/riskline/internal/model"
)

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return fmt.Errorf("context cannot be nil")
	}
	return ctx.Err()
}

func validateString(value, name string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", name)
	}
	return nil
}

func validateRun(run *model.ScoringRun) error {
	if run == nil {
		return fmt.Errorf("run cannot be nil")
	}
	if run.InputPath == "" {
		return fmt.Errorf("run input path cannot be empty")
	}
	if run.Threshold < 0 || run.Threshold > 1 {
		return fmt.Errorf("run threshold %v out of range", run.Threshold)
	}
	return nil
}
