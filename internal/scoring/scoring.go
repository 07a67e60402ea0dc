// Package scoring rates batches of jobs against an extracted profile.
package scoring

import (
	"context"

	api "github.com/jobmatch/job-matcher/api/v1alpha1"
)

// BatchScore is the verdict for one job, addressed by its position within
// the submitted batch.
type BatchScore struct {
	Index  int
	Score  float64
	Reason string
}

type Scorer interface {
	ScoreBatch(ctx context.Context, profile api.Profile, jobs []api.Job) ([]BatchScore, error)
}

// TransientError marks a scoring failure as retryable by adapters that wrap
// the scorer with retry logic.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	if e == nil || e.Err == nil {
		return "transient error"
	}
	return e.Err.Error()
}

func (e *TransientError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
