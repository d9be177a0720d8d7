package ledger

import "time"

// RunStatus is the lifecycle state of an ingestion run.
type RunStatus string

const (
	RunRunning   RunStatus = "running"
	RunSucceeded RunStatus = "succeeded"
	RunFailed    RunStatus = "failed"
)

// ArtifactStatus is the outcome recorded for one artifact URI.
type ArtifactStatus string

const (
	ArtifactIngested ArtifactStatus = "ingested"
	ArtifactSkipped  ArtifactStatus = "skipped"
	ArtifactFailed   ArtifactStatus = "failed"
)

// Run is one invocation of the ingestion driver for an observation.
type Run struct {
	ID            string
	Collection    string
	ObservationID string
	OutputPath    string
	Status        RunStatus
	StartedAt     time.Time
	FinishedAt    *time.Time
	ErrorKind     string
	ErrorMessage  string
}

// Duration reports how long the run took, or zero while it is still running.
func (r Run) Duration() time.Duration {
	if r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Artifact is the per-URI outcome of a run.
type Artifact struct {
	RunID        string
	URI          string
	ProductID    string
	Telescope    string
	HeaderPath   string
	HeaderSHA256 string
	Status       ArtifactStatus
	ErrorKind    string
	ErrorMessage string
	RecordedAt   time.Time
}
