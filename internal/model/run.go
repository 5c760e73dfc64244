package model

import "time"

// RunStatus tracks the lifecycle of a scoring run.
type RunStatus string

// Run status constants.
const (
	RunStatusRunning  RunStatus = "RUNNING"
	RunStatusComplete RunStatus = "COMPLETE"
	RunStatusPartial  RunStatus = "PARTIAL"
	RunStatusFailed   RunStatus = "FAILED"
)

// ScoringRun records one batch scoring invocation. A run whose status never
// reaches COMPLETE must not have its outputs treated as a full result set.
type ScoringRun struct {
	StartedAt         time.Time
	CompletedAt       time.Time
	InputPath         string
	Status            RunStatus
	ID                int64
	Threshold         float64
	InputRows         int
	DuplicatesDropped int
	ScoredRows        int
	SuspiciousRows    int
	SkippedRows       int
	DegradedAlignment bool
}

// RunSummary is the in-memory result of a scoring run, rendered to the
// terminal and folded into the persisted ScoringRun.
type RunSummary struct {
	Duration          time.Duration
	Threshold         float64
	InputRows         int
	DuplicatesDropped int
	ScoredRows        int
	SuspiciousRows    int
	SkippedRows       int
	DegradedAlignment bool
}
