package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	api "github.com/jobmatch/job-matcher/api/v1alpha1"
	"github.com/jobmatch/job-matcher/internal/store/model"
)

type Resume interface {
	Create(ctx context.Context, resume model.Resume) (*api.Resume, error)
	Get(ctx context.Context, id uuid.UUID) (*api.Resume, error)
	ListByUser(ctx context.Context, userID string) (api.ResumeList, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, profile api.Profile) error
	InitialMigration() error
}

type ResumeStore struct {
	db *gorm.DB
}

// Make sure we conform to Resume interface
var _ Resume = (*ResumeStore)(nil)

func NewResumeStore(db *gorm.DB) Resume {
	return &ResumeStore{db: db}
}

func (s *ResumeStore) InitialMigration() error {
	return s.db.AutoMigrate(&model.Resume{})
}

func (s *ResumeStore) Create(ctx context.Context, resume model.Resume) (*api.Resume, error) {
	if resume.ID == (uuid.UUID{}) {
		resume.ID = uuid.New()
	}
	result := s.db.WithContext(ctx).Create(&resume)
	if result.Error != nil {
		return nil, result.Error
	}
	createdResource := resume.ToApiResource()
	return &createdResource, nil
}

func (s *ResumeStore) Get(ctx context.Context, id uuid.UUID) (*api.Resume, error) {
	resume := model.NewResumeFromId(id)
	result := s.db.WithContext(ctx).First(&resume)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	apiResume := resume.ToApiResource()
	return &apiResume, nil
}

func (s *ResumeStore) ListByUser(ctx context.Context, userID string) (api.ResumeList, error) {
	var resumes model.ResumeList
	result := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&resumes)
	if result.Error != nil {
		return nil, result.Error
	}
	return resumes.ToApiResource(), nil
}

func (s *ResumeStore) UpdateProfile(ctx context.Context, id uuid.UUID, profile api.Profile) error {
	result := s.db.WithContext(ctx).
		Model(&model.Resume{ID: id}).
		Update("profile", model.MakeJSONField(profile))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
