// Package gemini scores a batch of jobs against a candidate profile using
// the Gemini API with a constrained JSON response schema.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"

	"google.golang.org/genai"

	api "github.com/jobmatch/job-matcher/api/v1alpha1"
	"github.com/jobmatch/job-matcher/internal/scoring"
)

// maxDescriptionChars bounds how much of each job description enters the
// prompt.
const maxDescriptionChars = 500

type Config struct {
	APIKey string
	Model  string

	// BaseURL overrides the Gemini API base URL. Useful for proxies/testing.
	BaseURL string
}

type Scorer struct {
	client *genai.Client
	model  string
}

func New(ctx context.Context, cfg Config) (*Scorer, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("GEMINI_MODEL is required")
	}

	cc := &genai.ClientConfig{
		APIKey:  strings.TrimSpace(cfg.APIKey),
		Backend: genai.BackendGeminiAPI,
	}
	if strings.TrimSpace(cfg.BaseURL) != "" {
		cc.HTTPOptions.BaseURL = strings.TrimSpace(cfg.BaseURL)
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, err
	}
	return &Scorer{client: client, model: strings.TrimSpace(cfg.Model)}, nil
}

type verdictResponse struct {
	JobIndex    int     `json:"job_index"`
	MatchScore  float64 `json:"match_score"`
	MatchReason string  `json:"match_reason"`
}

var verdictSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"job_index":    {Type: genai.TypeInteger},
			"match_score":  {Type: genai.TypeNumber},
			"match_reason": {Type: genai.TypeString},
		},
		Required: []string{"job_index", "match_score", "match_reason"},
	},
}

func (s *Scorer) ScoreBatch(ctx context.Context, profile api.Profile, jobs []api.Job) ([]scoring.BatchScore, error) {
	if len(jobs) == 0 {
		return nil, nil
	}

	resp, err := s.client.Models.GenerateContent(
		ctx,
		s.model,
		genai.Text(buildPrompt(profile, jobs)),
		&genai.GenerateContentConfig{
			CandidateCount:   1,
			ResponseMIMEType: "application/json",
			ResponseSchema:   verdictSchema,
		},
	)
	if err != nil {
		return nil, classifyErr(err)
	}

	var parsed []verdictResponse
	if err := json.Unmarshal([]byte(resp.Text()), &parsed); err != nil {
		return nil, fmt.Errorf("gemini: parse structured json: %w", err)
	}

	out := make([]scoring.BatchScore, 0, len(parsed))
	for _, v := range parsed {
		out = append(out, scoring.BatchScore{
			Index:  v.JobIndex,
			Score:  v.MatchScore,
			Reason: strings.TrimSpace(v.MatchReason),
		})
	}
	return out, nil
}

func buildPrompt(profile api.Profile, jobs []api.Job) string {
	var b strings.Builder
	b.WriteString("You are an expert job matcher. Analyze these jobs against the candidate's profile and provide match scores.\n\n")
	b.WriteString("Candidate Profile:\n")
	fmt.Fprintf(&b, "- Skills: %s\n", strings.Join(profile.Skills, ", "))
	fmt.Fprintf(&b, "- Experience: %s\n", orNotSpecified(profile.Experience))
	fmt.Fprintf(&b, "- Expertise: %s\n\n", strings.Join(profile.Expertise, ", "))
	b.WriteString("Jobs to evaluate:\n")
	for i, job := range jobs {
		fmt.Fprintf(&b, "Job %d:\nTitle: %s\nCompany: %s\nDescription: %s\n\n",
			i, job.Title, job.Company, truncate(job.Description, maxDescriptionChars))
	}
	b.WriteString("For each job, provide:\n")
	b.WriteString("1. Match score (0-100) based on skills, experience, and fit\n")
	b.WriteString("2. Brief reason for the match score (1-2 sentences)\n\n")
	b.WriteString("Return a JSON array with one entry per job. job_index is the zero-based job number shown above. ")
	b.WriteString(`Example: [{"job_index": 0, "match_score": 85, "match_reason": "..."}]`)
	return b.String()
}

func orNotSpecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not specified"
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func classifyErr(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == 429 || apiErr.Code/100 == 5 {
			return &scoring.TransientError{Err: err}
		}
		return err
	}
	var ne net.Error
	if errors.As(err, &ne) && (ne.Timeout() || ne.Temporary()) {
		return &scoring.TransientError{Err: err}
	}
	return err
}
