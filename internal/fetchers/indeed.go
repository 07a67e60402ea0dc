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

const SourceIndeed = "indeed"

// Indeed scrapes the job search page, restricted to postings from the last
// day.
type Indeed struct {
	client   *Client
	baseURL  string
	location string
}

func NewIndeed(client *Client) *Indeed {
	return &Indeed{client: client, baseURL: "https://www.indeed.com", location: "Remote"}
}

func (f *Indeed) Fetch(ctx context.Context, query string, limit int) ([]api.Job, error) {
	// fromage=1 restricts to the last day.
	searchURL := fmt.Sprintf("%s/jobs?q=%s&l=%s&fromage=1",
		f.baseURL, url.QueryEscape(query), url.QueryEscape(f.location))

	doc, err := f.client.Document(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	posted := now.Add(-8 * time.Hour)

	var jobs []api.Job
	doc.Find("div.job_seen_beacon").EachWithBreak(func(_ int, card *goquery.Selection) bool {
		if len(jobs) >= limit {
			return false
		}
		title := strings.TrimSpace(card.Find("h2.jobTitle").Text())
		company := strings.TrimSpace(card.Find("span.companyName").Text())
		if title == "" || company == "" {
			return true
		}

		description := strings.TrimSpace(card.Find("div.job-snippet").Text())
		if description == "" {
			description = "View job details on Indeed"
		}
		location := strings.TrimSpace(card.Find("div.companyLocation").Text())
		if location == "" {
			location = f.location
		}
		jobURL := searchURL
		if href, ok := card.Find("a.jcs-JobTitle").Attr("href"); ok {
			jobURL = f.baseURL + href
		}

		jobs = append(jobs, api.Job{
			Id:          uuid.New(),
			JobId:       fmt.Sprintf("indeed_%d", len(jobs)+1),
			Source:      SourceIndeed,
			Title:       title,
			Company:     company,
			Description: description,
			Location:    location,
			Url:         jobURL,
			PostedAt:    &posted,
			ScrapedAt:   now,
		})
		return true
	})

	return jobs, nil
}
