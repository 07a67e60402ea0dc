package fetchers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	api "github.com/jobmatch/job-matcher/api/v1alpha1"
)

const SourceBriansJobs = "briansjobs"

// BriansJobs scrapes the curated tech job list at briansjobsearch.com. The
// board has no search; the query is ignored.
type BriansJobs struct {
	client  *Client
	baseURL string
}

func NewBriansJobs(client *Client) *BriansJobs {
	return &BriansJobs{client: client, baseURL: "https://briansjobsearch.com"}
}

func (f *BriansJobs) Fetch(ctx context.Context, _ string, limit int) ([]api.Job, error) {
	doc, err := f.client.Document(ctx, f.baseURL)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	posted := now.Add(-6 * time.Hour)

	var jobs []api.Job
	doc.Find("div.job-card").EachWithBreak(func(_ int, card *goquery.Selection) bool {
		if len(jobs) >= limit {
			return false
		}
		title := strings.TrimSpace(card.Find("h2").First().Text())
		if title == "" {
			return true
		}

		company := strings.TrimSpace(card.Find("p.company").Text())
		if company == "" {
			company = "Various Companies"
		}
		jobURL := f.baseURL
		if href, ok := card.Find("a").First().Attr("href"); ok {
			jobURL = href
		}

		jobs = append(jobs, api.Job{
			Id:          uuid.New(),
			JobId:       fmt.Sprintf("briansjobs_%d", len(jobs)+1),
			Source:      SourceBriansJobs,
			Title:       title,
			Company:     company,
			Description: "Tech job opportunity",
			Location:    "Remote",
			Url:         jobURL,
			PostedAt:    &posted,
			ScrapedAt:   now,
		})
		return true
	})

	return jobs, nil
}
