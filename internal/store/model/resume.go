package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	api "github.com/jobmatch/job-matcher/api/v1alpha1"
)

type Resume struct {
	ID         uuid.UUID               `gorm:"primaryKey;"`
	UserID     string                  `gorm:"index:resumes_user_id_idx;not null"`
	ResumeText string                  `gorm:"type:text;not null"`
	Profile    *JSONField[api.Profile] `gorm:"type:jsonb"`
	FileName   string
	FileType   string `gorm:"type:VARCHAR(20)"`
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

type ResumeList []Resume

func (r Resume) String() string {
	val, _ := json.Marshal(r)
	return string(val)
}

func NewResumeFromId(id uuid.UUID) *Resume {
	return &Resume{ID: id}
}

func NewResumeFromApiCreate(userID, text, fileName, fileType string) *Resume {
	return &Resume{
		ID:         uuid.New(),
		UserID:     userID,
		ResumeText: text,
		FileName:   fileName,
		FileType:   fileType,
	}
}

func (r Resume) ToApiResource() api.Resume {
	resume := api.Resume{
		Id:         r.ID,
		UserId:     r.UserID,
		ResumeText: r.ResumeText,
		FileName:   r.FileName,
		FileType:   r.FileType,
		UploadedAt: r.CreatedAt,
	}
	if r.Profile != nil {
		resume.Profile = r.Profile.Data
	}
	return resume
}

func (rl ResumeList) ToApiResource() api.ResumeList {
	resumeList := make(api.ResumeList, 0, len(rl))
	for _, r := range rl {
		resumeList = append(resumeList, r.ToApiResource())
	}
	return resumeList
}
