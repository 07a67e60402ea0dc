// Package extraction derives a structured profile (skills, experience,
// expertise) from raw resume text.
package extraction

import (
	"context"

	api "github.com/jobmatch/job-matcher/api/v1alpha1"
)

type Extractor interface {
	Extract(ctx context.Context, resumeText string) (api.Profile, error)
}

// TransientError marks an extraction failure as retryable by adapters that
// wrap the extractor with retry logic.
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
