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

const SourceWellfound = "wellfound"

// Wellfound scrapes the startup job board formerly known as AngelList.
type Wellfound struct {
	client  *Client
	baseURL string
}

func NewWellfound(client *Client) *Wellfound {
	return &Wellfound{client: client, baseURL: "https://wellfound.com"}
}

func (f *Wellfound) Fetch(ctx context.Context, _ string, limit int) ([]api.Job, error) {
	searchURL := f.baseURL + "/jobs"

	doc, err := f.client.Document(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	posted := now.Add(-7 * time.Hour)

	var jobs []api.Job
	doc.Find(`div[data-test="JobSearchResult"]`).EachWithBreak(func(_ int, card *goquery.Selection) bool {
		if len(jobs) >= limit {
			return false
		}
		title := strings.TrimSpace(card.Find("h2").First().Text())
		company := strings.TrimSpace(card.Find("h3").First().Text())
		if title == "" || company == "" {
			return true
		}

		jobURL := searchURL
		if href, ok := card.Find("a").First().Attr("href"); ok {
			jobURL = f.baseURL + href
		}

		jobs = append(jobs, api.Job{
			Id:          uuid.New(),
			JobId:       fmt.Sprintf("wellfound_%d", len(jobs)+1),
			Source:      SourceWellfound,
			Title:       title,
			Company:     company,
			Description: "Startup job on Wellfound",
			Location:    "Remote/Flexible",
			Url:         jobURL,
			PostedAt:    &posted,
			ScrapedAt:   now,
		})
		return true
	})

	return jobs, nil
}
