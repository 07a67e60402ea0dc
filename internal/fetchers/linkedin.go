package fetchers

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	api "github.com/jobmatch/job-matcher/api/v1alpha1"
)

const SourceLinkedIn = "linkedin"

// LinkedIn scrapes the public job search page, restricted to postings from
// the last 24 hours. LinkedIn rate-limits aggressively; a dedicated API
// integration would replace this for production volume.
type LinkedIn struct {
	client  *Client
	baseURL string
}

func NewLinkedIn(client *Client) *LinkedIn {
	return &LinkedIn{client: client, baseURL: "https://www.linkedin.com"}
}

func (l *LinkedIn) Fetch(ctx context.Context, query string, limit int) ([]api.Job, error) {
	// f_TPR=r86400 restricts to the last 24 hours.
	searchURL := fmt.Sprintf("%s/jobs/search/?keywords=%s&f_TPR=r86400", l.baseURL, url.QueryEscape(query))

	doc, err := l.client.Document(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	posted := now.Add(-12 * time.Hour)

	var jobs []api.Job
	doc.Find("div.base-card").EachWithBreak(func(_ int, card *goquery.Selection) bool {
		if len(jobs) >= limit {
			return false
		}
		title := strings.TrimSpace(card.Find("h3.base-search-card__title").Text())
		company := strings.TrimSpace(card.Find("h4.base-search-card__subtitle").Text())
		if title == "" || company == "" {
			return true
		}

		location := strings.TrimSpace(card.Find("span.job-search-card__location").Text())
		if location == "" {
			location = "Remote"
		}
		jobURL, ok := card.Find("a.base-card__full-link").Attr("href")
		if !ok {
			jobURL = searchURL
		}

		jobs = append(jobs, api.Job{
			Id:          uuid.New(),
			JobId:       fmt.Sprintf("linkedin_%d", len(jobs)+1),
			Source:      SourceLinkedIn,
			Title:       title,
			Company:     company,
			Description: "View job details on LinkedIn",
			Location:    location,
			Url:         jobURL,
			PostedAt:    &posted,
			ScrapedAt:   now,
		})
		return true
	})

	return jobs, nil
}
