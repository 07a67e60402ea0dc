package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	api "github.com/jobmatch/job-matcher/api/v1alpha1"
	"github.com/jobmatch/job-matcher/internal/store"
	"github.com/jobmatch/job-matcher/internal/workflow"
)

// Runner is the part of the orchestrator the service depends on.
type Runner interface {
	Run(ctx context.Context, req workflow.RunRequest) (workflow.Outcome, error)
}

type WorkflowService struct {
	store  store.Store
	runner Runner
}

func NewWorkflowService(store store.Store, runner Runner) *WorkflowService {
	return &WorkflowService{store: store, runner: runner}
}

// Execute runs the matching pipeline synchronously for one resume and
// persists the surviving matches.
func (s *WorkflowService) Execute(ctx context.Context, request api.WorkflowRequest) (*api.WorkflowResult, error) {
	resume, err := s.store.Resume().Get(ctx, request.ResumeId)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrResumeNotFound(request.ResumeId)
		}
		return nil, err
	}

	sources := request.Sources
	if len(sources) == 0 {
		sources = api.DefaultSources
	}
	recipient := request.UserEmail
	if recipient == "" {
		recipient = resume.UserId
	}

	outcome, err := s.runner.Run(ctx, workflow.RunRequest{
		UserID:    resume.UserId,
		ResumeID:  resume.Id,
		Sources:   sources,
		Deliver:   request.SendEmail,
		Recipient: recipient,
	})
	if err != nil {
		return nil, err
	}

	if len(outcome.Matches) > 0 {
		if err := s.store.Match().CreateMany(ctx, resume.UserId, outcome.ExecutionID, outcome.Matches); err != nil {
			// Matches are still returned to the caller; only the history is
			// incomplete.
			zap.S().Named("service").Errorw("failed to persist matches",
				"execution_id", outcome.ExecutionID, "error", err)
		}
	}

	result := &api.WorkflowResult{
		ExecutionId: outcome.ExecutionID,
		Status:      string(outcome.Status),
		JobsFound:   outcome.FetchedCount,
		JobsMatched: outcome.ScoredCount,
		Matches:     outcome.Matches,
	}
	if outcome.Err != nil {
		result.Error = outcome.Err.Error()
	}
	return result, nil
}

func (s *WorkflowService) GetExecution(ctx context.Context, id uuid.UUID) (*api.Execution, error) {
	execution, err := s.store.Execution().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrExecutionNotFound(id)
		}
		return nil, err
	}
	return execution, nil
}

func (s *WorkflowService) ListMatches(ctx context.Context, userID string, limit int) (api.JobMatchList, error) {
	return s.store.Match().ListByUser(ctx, userID, limit)
}
