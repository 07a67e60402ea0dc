package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	api "github.com/jobmatch/job-matcher/api/v1alpha1"
	"github.com/jobmatch/job-matcher/internal/store"
	"github.com/jobmatch/job-matcher/internal/store/model"
	"github.com/jobmatch/job-matcher/pkg/pdf"
)

type ResumeService struct {
	store store.Store
}

func NewResumeService(store store.Store) *ResumeService {
	return &ResumeService{store: store}
}

// CreateResume accepts either raw resume text or a base64 file upload. PDF
// uploads are converted to plain text before storage.
func (s *ResumeService) CreateResume(ctx context.Context, form api.ResumeCreate) (*api.Resume, error) {
	userEmail := strings.TrimSpace(form.UserEmail)
	if userEmail == "" {
		return nil, NewErrInvalidResume("user_email is required")
	}

	text, fileType, err := resolveResumeText(form)
	if err != nil {
		return nil, err
	}

	resume := model.NewResumeFromApiCreate(userEmail, text, form.FileName, fileType)
	created, err := s.store.Resume().Create(ctx, *resume)
	if err != nil {
		return nil, err
	}

	zap.S().Named("service").Infow("resume created",
		"resume_id", created.Id, "user_id", userEmail, "file_type", fileType)
	return created, nil
}

func (s *ResumeService) GetResume(ctx context.Context, id uuid.UUID) (*api.Resume, error) {
	resume, err := s.store.Resume().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrResumeNotFound(id)
		}
		return nil, err
	}
	return resume, nil
}

func (s *ResumeService) ListResumes(ctx context.Context, userID string) (api.ResumeList, error) {
	return s.store.Resume().ListByUser(ctx, userID)
}

func resolveResumeText(form api.ResumeCreate) (text string, fileType string, err error) {
	if strings.TrimSpace(form.ResumeText) != "" {
		return strings.TrimSpace(form.ResumeText), "text", nil
	}
	if form.FileContent == "" {
		return "", "", NewErrInvalidResume("either resume_text or file_content is required")
	}

	content, err := base64.StdEncoding.DecodeString(form.FileContent)
	if err != nil {
		return "", "", NewErrInvalidResumeWrap(fmt.Errorf("file_content is not valid base64: %w", err))
	}

	if strings.HasSuffix(strings.ToLower(form.FileName), ".pdf") {
		extracted, err := pdf.ExtractText(content)
		if err != nil {
			return "", "", NewErrInvalidResumeWrap(err)
		}
		if extracted == "" {
			return "", "", NewErrInvalidResume("pdf contains no extractable text")
		}
		return extracted, "pdf", nil
	}

	decoded := strings.TrimSpace(string(content))
	if decoded == "" {
		return "", "", NewErrInvalidResume("uploaded file is empty")
	}
	return decoded, "text", nil
}
