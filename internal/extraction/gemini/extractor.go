// Package gemini extracts a structured candidate profile from raw resume
// text using the Gemini API with a constrained JSON response schema.
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
	"github.com/jobmatch/job-matcher/internal/extraction"
)

type Config struct {
	APIKey string
	Model  string

	// BaseURL overrides the Gemini API base URL. Useful for proxies/testing.
	BaseURL string
}

type Extractor struct {
	client *genai.Client
	model  string
}

func New(ctx context.Context, cfg Config) (*Extractor, error) {
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
	return &Extractor{client: client, model: strings.TrimSpace(cfg.Model)}, nil
}

type profileResponse struct {
	Skills     []string `json:"skills"`
	Experience string   `json:"experience"`
	Expertise  []string `json:"expertise"`
}

var profileSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"skills":     {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"experience": {Type: genai.TypeString},
		"expertise":  {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
	},
	Required: []string{"skills", "experience", "expertise"},
}

func (e *Extractor) Extract(ctx context.Context, resumeText string) (api.Profile, error) {
	resumeText = strings.TrimSpace(resumeText)
	if resumeText == "" {
		return api.Profile{}, errors.New("empty resume text")
	}

	resp, err := e.client.Models.GenerateContent(
		ctx,
		e.model,
		genai.Text(buildPrompt(resumeText)),
		&genai.GenerateContentConfig{
			CandidateCount:   1,
			ResponseMIMEType: "application/json",
			ResponseSchema:   profileSchema,
		},
	)
	if err != nil {
		return api.Profile{}, classifyErr(err)
	}

	var parsed profileResponse
	if err := json.Unmarshal([]byte(resp.Text()), &parsed); err != nil {
		return api.Profile{}, fmt.Errorf("gemini: parse structured json: %w", err)
	}

	profile := api.Profile{
		Skills:     parsed.Skills,
		Experience: strings.TrimSpace(parsed.Experience),
		Expertise:  parsed.Expertise,
	}
	if profile.Experience == "" {
		profile.Experience = "Not specified"
	}
	return profile, nil
}

func buildPrompt(resumeText string) string {
	return strings.TrimSpace(`
You are an expert resume parser. Extract the following from this resume:
1. List of technical skills (programming languages, frameworks, tools), most prominent first
2. Years of experience (estimate if not explicitly stated)
3. Key expertise areas

Return ONLY a single JSON object with these keys:
- skills (array of strings)
- experience (string)
- expertise (array of strings)

Resume:
` + resumeText + `
`)
}

func classifyErr(err error) error {
	// Wrap transient failures so callers can decide to retry with backoff.
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == 429 || apiErr.Code/100 == 5 {
			return &extraction.TransientError{Err: err}
		}
		return err
	}
	var ne net.Error
	if errors.As(err, &ne) && (ne.Timeout() || ne.Temporary()) {
		return &extraction.TransientError{Err: err}
	}
	return err
}
