package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	api "github.com/jobmatch/job-matcher/api/v1alpha1"
	"github.com/jobmatch/job-matcher/internal/store/model"
)

type Execution interface {
	Create(ctx context.Context, userID string, resumeID uuid.UUID, status string) (*api.Execution, error)
	Get(ctx context.Context, id uuid.UUID) (*api.Execution, error)
	Finalize(ctx context.Context, id uuid.UUID, status string, jobsFound, jobsMatched int, emailSent bool, errMsg string) error
	InitialMigration() error
}

type ExecutionStore struct {
	db *gorm.DB
}

// Make sure we conform to Execution interface
var _ Execution = (*ExecutionStore)(nil)

func NewExecutionStore(db *gorm.DB) Execution {
	return &ExecutionStore{db: db}
}

func (s *ExecutionStore) InitialMigration() error {
	return s.db.AutoMigrate(&model.Execution{})
}

func (s *ExecutionStore) Create(ctx context.Context, userID string, resumeID uuid.UUID, status string) (*api.Execution, error) {
	execution := model.Execution{
		ID:        uuid.New(),
		UserID:    userID,
		ResumeID:  resumeID,
		Status:    status,
		StartedAt: time.Now().UTC(),
	}
	result := s.db.WithContext(ctx).Create(&execution)
	if result.Error != nil {
		return nil, result.Error
	}
	createdResource := execution.ToApiResource()
	return &createdResource, nil
}

func (s *ExecutionStore) Get(ctx context.Context, id uuid.UUID) (*api.Execution, error) {
	execution := model.Execution{ID: id}
	result := s.db.WithContext(ctx).First(&execution)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	apiExecution := execution.ToApiResource()
	return &apiExecution, nil
}

func (s *ExecutionStore) Finalize(ctx context.Context, id uuid.UUID, status string, jobsFound, jobsMatched int, emailSent bool, errMsg string) error {
	now := time.Now().UTC()
	result := s.db.WithContext(ctx).
		Model(&model.Execution{ID: id}).
		Updates(map[string]any{
			"status":        status,
			"jobs_found":    jobsFound,
			"jobs_matched":  jobsMatched,
			"email_sent":    emailSent,
			"error_message": errMsg,
			"completed_at":  &now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
