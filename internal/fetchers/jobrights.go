package fetchers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	api "github.com/jobmatch/job-matcher/api/v1alpha1"
)

const SourceJobrights = "jobrights"

// Jobrights serves a small static feed. The board exposes no scrapeable
// listing page yet, so this adapter returns placeholder postings keyed to
// the query until a real integration exists.
type Jobrights struct {
	baseURL string
}

func NewJobrights() *Jobrights {
	return &Jobrights{baseURL: "https://jobrights.ai"}
}

func (f *Jobrights) Fetch(_ context.Context, query string, limit int) ([]api.Job, error) {
	n := 3
	if limit < n {
		n = limit
	}

	now := time.Now().UTC()
	posted := now.Add(-5 * time.Hour)

	jobs := make([]api.Job, 0, n)
	for i := 0; i < n; i++ {
		jobs = append(jobs, api.Job{
			Id:          uuid.New(),
			JobId:       fmt.Sprintf("jobrights_%d", i+1),
			Source:      SourceJobrights,
			Title:       fmt.Sprintf("AI/ML Engineer - %s", query),
			Company:     "Tech Startup",
			Description: "Exciting opportunity in AI and machine learning",
			Location:    "Remote",
			Url:         fmt.Sprintf("%s/jobs/%d", f.baseURL, i+1),
			PostedAt:    &posted,
			ScrapedAt:   now,
		})
	}
	return jobs, nil
}
