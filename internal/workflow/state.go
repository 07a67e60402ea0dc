package workflow

import (
	"github.com/google/uuid"

	api "github.com/jobmatch/job-matcher/api/v1alpha1"
)

type Status string

const (
	StatusStarted         Status = "started"
	StatusResumeFetched   Status = "resume_fetched"
	StatusEnriched        Status = "enriched"
	StatusJobsFetched     Status = "jobs_fetched"
	StatusJobsScored      Status = "jobs_scored"
	StatusDelivered       Status = "delivered"
	StatusSkippedDelivery Status = "skipped_delivery"
	StatusFailed          Status = "failed"
)

// Terminal reports whether no further stage may run after this status.
func (s Status) Terminal() bool {
	switch s {
	case StatusDelivered, StatusSkippedDelivery, StatusFailed:
		return true
	}
	return false
}

// Policy holds the ranking and batching constants for one orchestrator.
// They are fixed per orchestrator instance, never per run.
type Policy struct {
	// FetchLimit is the per-source item cap passed to every fetcher.
	FetchLimit int
	// BatchSize is the number of jobs submitted per scoring call.
	BatchSize int
	// ScoreThreshold is the minimum score a job must reach to be retained.
	ScoreThreshold float64
	// DegradedScore is assigned to every job of a batch whose scoring call
	// failed.
	DegradedScore float64
	// DegradedReason accompanies DegradedScore.
	DegradedReason string
	// TopSkills is how many leading profile skills form the fetch query.
	TopSkills int
	// DefaultQuery is used when the profile carries no skills at all.
	DefaultQuery string
}

func DefaultPolicy() Policy {
	return Policy{
		FetchLimit:     15,
		BatchSize:      5,
		ScoreThreshold: 60,
		DegradedScore:  50,
		DegradedReason: "Unable to calculate precise match",
		TopSkills:      3,
		DefaultQuery:   "software engineer",
	}
}

func (p Policy) withDefaults() Policy {
	def := DefaultPolicy()
	if p.FetchLimit <= 0 {
		p.FetchLimit = def.FetchLimit
	}
	if p.BatchSize <= 0 {
		p.BatchSize = def.BatchSize
	}
	if p.ScoreThreshold <= 0 {
		p.ScoreThreshold = def.ScoreThreshold
	}
	if p.DegradedScore <= 0 {
		p.DegradedScore = def.DegradedScore
	}
	if p.DegradedReason == "" {
		p.DegradedReason = def.DegradedReason
	}
	if p.TopSkills <= 0 {
		p.TopSkills = def.TopSkills
	}
	if p.DefaultQuery == "" {
		p.DefaultQuery = def.DefaultQuery
	}
	return p
}

// RunRequest is the single entry-point argument of a pipeline run.
type RunRequest struct {
	UserID    string
	ResumeID  uuid.UUID
	Sources   []string
	Deliver   bool
	Recipient string
}

// Outcome is what every run terminates with, regardless of the path taken.
type Outcome struct {
	ExecutionID  uuid.UUID
	Status       Status
	FetchedCount int
	ScoredCount  int
	Matches      api.JobMatchList
	EmailSent    bool
	Err          error
}

// executionState is the one mutable record threaded through the stages.
// It is owned exclusively by a single run and becomes effectively immutable
// once a terminal status is set.
type executionState struct {
	executionID uuid.UUID
	resumeID    uuid.UUID
	userID      string
	profile     api.Profile
	sources     []string
	jobs        []api.Job
	matches     api.JobMatchList
	deliver     bool
	recipient   string
	emailSent   bool
	status      Status
	err         error
}

// fail sets the terminal failure status. Invariant: err is non-nil exactly
// when status is StatusFailed.
func (s *executionState) fail(err error) {
	s.status = StatusFailed
	s.err = err
}
