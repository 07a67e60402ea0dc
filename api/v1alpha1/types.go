package v1alpha1

import (
	"time"

	"github.com/google/uuid"
)

// DefaultSources is the set of job boards queried when a workflow request
// does not name its sources explicitly.
var DefaultSources = []string{
	"linkedin",
	"indeed",
	"glassdoor",
	"wellfound",
	"jobrights",
	"startups_gallery",
	"briansjobs",
}

// Profile holds the structured attributes extracted from a resume.
type Profile struct {
	Skills     []string `json:"skills"`
	Experience string   `json:"experience"`
	Expertise  []string `json:"expertise"`
}

// IsEmpty reports whether no extraction has been applied yet.
func (p Profile) IsEmpty() bool {
	return len(p.Skills) == 0 && p.Experience == "" && len(p.Expertise) == 0
}

type Resume struct {
	Id         uuid.UUID `json:"id"`
	UserId     string    `json:"user_id"`
	ResumeText string    `json:"resume_text"`
	Profile    Profile   `json:"profile"`
	FileName   string    `json:"file_name,omitempty"`
	FileType   string    `json:"file_type,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type ResumeList []Resume

// Job is one posting fetched from a single source. Immutable once fetched.
type Job struct {
	Id          uuid.UUID  `json:"id"`
	JobId       string     `json:"job_id"`
	Source      string     `json:"source"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Description string     `json:"description"`
	Location    string     `json:"location,omitempty"`
	Url         string     `json:"url"`
	PostedAt    *time.Time `json:"posted_at,omitempty"`
	ScrapedAt   time.Time  `json:"scraped_at"`
}

// JobMatch is a Job plus its score against a profile, in [0,100].
type JobMatch struct {
	Job       `json:",inline"`
	Score     float64   `json:"match_score"`
	Reason    string    `json:"match_reason"`
	MatchedAt time.Time `json:"matched_at"`
}

type JobMatchList []JobMatch

type Execution struct {
	Id           uuid.UUID  `json:"id"`
	UserId       string     `json:"user_id"`
	ResumeId     uuid.UUID  `json:"resume_id"`
	Status       string     `json:"status"`
	JobsFound    int        `json:"jobs_found"`
	JobsMatched  int        `json:"jobs_matched"`
	EmailSent    bool       `json:"email_sent"`
	ErrorMessage string     `json:"error_message,omitempty"`
	StartedAt    time.Time  `json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// WorkflowRequest asks the service to run the matching pipeline for a resume.
type WorkflowRequest struct {
	ResumeId  uuid.UUID `json:"resume_id"`
	Sources   []string  `json:"job_sources,omitempty"`
	SendEmail bool      `json:"send_email"`
	UserEmail string    `json:"user_email,omitempty"`
}

// WorkflowResult is returned synchronously by the execute endpoint.
type WorkflowResult struct {
	ExecutionId uuid.UUID    `json:"execution_id"`
	Status      string       `json:"status"`
	JobsFound   int          `json:"jobs_found"`
	JobsMatched int          `json:"jobs_matched"`
	Matches     JobMatchList `json:"matched_jobs"`
	Error       string       `json:"error,omitempty"`
}

type ResumeCreate struct {
	UserEmail   string `json:"user_email"`
	ResumeText  string `json:"resume_text,omitempty"`
	FileContent string `json:"file_content,omitempty"` // base64, PDF or plain text
	FileName    string `json:"file_name,omitempty"`
}

type Health struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}

type Error struct {
	Message   string  `json:"message"`
	RequestId *string `json:"request_id,omitempty"`
}
