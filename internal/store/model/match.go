package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	api "github.com/jobmatch/job-matcher/api/v1alpha1"
)

type Match struct {
	ID          uuid.UUID `gorm:"primaryKey;"`
	UserID      string    `gorm:"index:matches_user_id_idx;not null"`
	ExecutionID uuid.UUID `gorm:"index:matches_execution_id_idx;not null"`
	JobID       string    `gorm:"not null"`
	Source      string    `gorm:"type:VARCHAR(50);not null"`
	Title       string
	Company     string
	Description string `gorm:"type:text"`
	Location    string
	Url         string
	Score       float64 `gorm:"not null"`
	Reason      string
	CreatedAt   time.Time
}

type MatchList []Match

// MatchStats feeds the prometheus match collector.
type MatchStats struct {
	TotalMatches int64
	TotalUsers   int64
	BySource     map[string]int64
}

func (m Match) String() string {
	val, _ := json.Marshal(m)
	return string(val)
}

func NewMatchFromApiResource(userID string, executionID uuid.UUID, match api.JobMatch) *Match {
	return &Match{
		ID:          uuid.New(),
		UserID:      userID,
		ExecutionID: executionID,
		JobID:       match.JobId,
		Source:      match.Source,
		Title:       match.Title,
		Company:     match.Company,
		Description: match.Description,
		Location:    match.Location,
		Url:         match.Url,
		Score:       match.Score,
		Reason:      match.Reason,
	}
}

func (m Match) ToApiResource() api.JobMatch {
	return api.JobMatch{
		Job: api.Job{
			Id:          m.ID,
			JobId:       m.JobID,
			Source:      m.Source,
			Title:       m.Title,
			Company:     m.Company,
			Description: m.Description,
			Location:    m.Location,
			Url:         m.Url,
			ScrapedAt:   m.CreatedAt,
		},
		Score:     m.Score,
		Reason:    m.Reason,
		MatchedAt: m.CreatedAt,
	}
}

func (ml MatchList) ToApiResource() api.JobMatchList {
	matchList := make(api.JobMatchList, 0, len(ml))
	for _, m := range ml {
		matchList = append(matchList, m.ToApiResource())
	}
	return matchList
}
