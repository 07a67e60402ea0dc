package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	api "github.com/jobmatch/job-matcher/api/v1alpha1"
)

type Execution struct {
	ID           uuid.UUID `gorm:"primaryKey;"`
	UserID       string    `gorm:"index:executions_user_id_idx;not null"`
	ResumeID     uuid.UUID `gorm:"index:executions_resume_id_idx;not null"`
	Status       string    `gorm:"type:VARCHAR(50);not null"`
	JobsFound    int
	JobsMatched  int
	EmailSent    bool
	ErrorMessage string
	StartedAt    time.Time `gorm:"not null"`
	CompletedAt  *time.Time
}

type ExecutionList []Execution

func (e Execution) String() string {
	val, _ := json.Marshal(e)
	return string(val)
}

func (e Execution) ToApiResource() api.Execution {
	return api.Execution{
		Id:           e.ID,
		UserId:       e.UserID,
		ResumeId:     e.ResumeID,
		Status:       e.Status,
		JobsFound:    e.JobsFound,
		JobsMatched:  e.JobsMatched,
		EmailSent:    e.EmailSent,
		ErrorMessage: e.ErrorMessage,
		StartedAt:    e.StartedAt,
		CompletedAt:  e.CompletedAt,
	}
}

func (el ExecutionList) ToApiResource() []api.Execution {
	executions := make([]api.Execution, 0, len(el))
	for _, e := range el {
		executions = append(executions, e.ToApiResource())
	}
	return executions
}
