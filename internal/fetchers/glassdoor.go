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

const SourceGlassdoor = "glassdoor"

type Glassdoor struct {
	client   *Client
	baseURL  string
	location string
}

func NewGlassdoor(client *Client) *Glassdoor {
	return &Glassdoor{client: client, baseURL: "https://www.glassdoor.com", location: "Remote"}
}

func (f *Glassdoor) Fetch(ctx context.Context, query string, limit int) ([]api.Job, error) {
	searchURL := fmt.Sprintf("%s/Job/jobs.htm?sc.keyword=%s", f.baseURL, url.QueryEscape(query))

	doc, err := f.client.Document(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	posted := now.Add(-15 * time.Hour)

	var jobs []api.Job
	doc.Find("li.react-job-listing").EachWithBreak(func(_ int, listing *goquery.Selection) bool {
		if len(jobs) >= limit {
			return false
		}
		titleLink := listing.Find("a.jobLink").First()
		title := strings.TrimSpace(titleLink.Text())
		company := strings.TrimSpace(listing.Find("div.employerName").Text())
		if title == "" || company == "" {
			return true
		}

		location := strings.TrimSpace(listing.Find("span.loc").Text())
		if location == "" {
			location = f.location
		}
		jobURL := searchURL
		if href, ok := titleLink.Attr("href"); ok {
			jobURL = f.baseURL + href
		}

		jobs = append(jobs, api.Job{
			Id:          uuid.New(),
			JobId:       fmt.Sprintf("glassdoor_%d", len(jobs)+1),
			Source:      SourceGlassdoor,
			Title:       title,
			Company:     company,
			Description: "View job details on Glassdoor",
			Location:    location,
			Url:         jobURL,
			PostedAt:    &posted,
			ScrapedAt:   now,
		})
		return true
	})

	return jobs, nil
}
