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

const SourceStartupsGallery = "startups_gallery"

type StartupsGallery struct {
	client  *Client
	baseURL string
}

func NewStartupsGallery(client *Client) *StartupsGallery {
	return &StartupsGallery{client: client, baseURL: "https://startups.gallery"}
}

func (f *StartupsGallery) Fetch(ctx context.Context, _ string, limit int) ([]api.Job, error) {
	searchURL := f.baseURL + "/jobs"

	doc, err := f.client.Document(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	posted := now.Add(-10 * time.Hour)

	var jobs []api.Job
	doc.Find("div.job-listing").EachWithBreak(func(_ int, listing *goquery.Selection) bool {
		if len(jobs) >= limit {
			return false
		}
		title := strings.TrimSpace(listing.Find("h3").First().Text())
		company := strings.TrimSpace(listing.Find("div.company-name").Text())
		if title == "" || company == "" {
			return true
		}

		jobURL := searchURL
		if href, ok := listing.Find("a").First().Attr("href"); ok {
			jobURL = href
		}

		jobs = append(jobs, api.Job{
			Id:          uuid.New(),
			JobId:       fmt.Sprintf("startups_gallery_%d", len(jobs)+1),
			Source:      SourceStartupsGallery,
			Title:       title,
			Company:     company,
			Description: "Startup job opportunity",
			Location:    "Remote/Flexible",
			Url:         jobURL,
			PostedAt:    &posted,
			ScrapedAt:   now,
		})
		return true
	})

	return jobs, nil
}
