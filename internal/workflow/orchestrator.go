// Package workflow drives the job-matching pipeline: load resume, enrich it,
// fan out to the job sources, score the results in batches, rank and filter,
// then optionally deliver a digest.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	api "github.com/jobmatch/job-matcher/api/v1alpha1"
	"github.com/jobmatch/job-matcher/internal/extraction"
	"github.com/jobmatch/job-matcher/internal/fetchers"
	"github.com/jobmatch/job-matcher/internal/notifier"
	"github.com/jobmatch/job-matcher/internal/scoring"
	"github.com/jobmatch/job-matcher/internal/store"
	"github.com/jobmatch/job-matcher/pkg/metrics"
)

// ResumeStore is the slice of the store the orchestrator reads resumes
// through.
type ResumeStore interface {
	Get(ctx context.Context, id uuid.UUID) (*api.Resume, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, profile api.Profile) error
}

// ExecutionStore records the run outcome: one row at start, one update at
// terminal status.
type ExecutionStore interface {
	Create(ctx context.Context, userID string, resumeID uuid.UUID, status string) (*api.Execution, error)
	Finalize(ctx context.Context, id uuid.UUID, status string, jobsFound, jobsMatched int, emailSent bool, errMsg string) error
}

type Orchestrator struct {
	resumes    ResumeStore
	executions ExecutionStore
	extractor  extraction.Extractor
	registry   *fetchers.Registry
	scorer     scoring.Scorer
	notifier   notifier.Notifier
	policy     Policy
}

func NewOrchestrator(
	resumes ResumeStore,
	executions ExecutionStore,
	extractor extraction.Extractor,
	registry *fetchers.Registry,
	scorer scoring.Scorer,
	notifier notifier.Notifier,
	policy Policy,
) *Orchestrator {
	return &Orchestrator{
		resumes:    resumes,
		executions: executions,
		extractor:  extractor,
		registry:   registry,
		scorer:     scorer,
		notifier:   notifier,
		policy:     policy.withDefaults(),
	}
}

// Run executes the pipeline once. It always terminates with exactly one
// terminal status; stage failures after the execution record exists are
// reported through the Outcome, not as a returned error.
func (o *Orchestrator) Run(ctx context.Context, req RunRequest) (Outcome, error) {
	logger := zap.S().Named("workflow")

	state := &executionState{
		resumeID:  req.ResumeID,
		userID:    req.UserID,
		sources:   req.Sources,
		deliver:   req.Deliver,
		recipient: strings.TrimSpace(req.Recipient),
		status:    StatusStarted,
	}

	execution, err := o.executions.Create(ctx, req.UserID, req.ResumeID, string(StatusStarted))
	if err != nil {
		return Outcome{Status: StatusFailed, Err: err}, fmt.Errorf("failed to create execution record: %w", err)
	}
	state.executionID = execution.Id

	// Caller contract violation, caught before any stage runs.
	if state.deliver && state.recipient == "" {
		state.fail(NewErrMissingRecipient())
	} else {
		o.runStages(ctx, state, logger)
	}

	o.finalize(ctx, state, logger)

	return Outcome{
		ExecutionID:  state.executionID,
		Status:       state.status,
		FetchedCount: len(state.jobs),
		ScoredCount:  len(state.matches),
		Matches:      state.matches,
		EmailSent:    state.emailSent,
		Err:          state.err,
	}, nil
}

func (o *Orchestrator) runStages(ctx context.Context, state *executionState, logger *zap.SugaredLogger) {
	resume := o.fetchResume(ctx, state)
	if state.status.Terminal() {
		return
	}

	o.enrich(ctx, state, resume, logger)
	if state.status.Terminal() {
		return
	}

	o.fetchJobs(ctx, state, logger)
	o.scoreJobs(ctx, state, logger)
	o.deliver(ctx, state, logger)
}

// Stage 1: load the resume. A missing resume is terminal, not retried.
func (o *Orchestrator) fetchResume(ctx context.Context, state *executionState) *api.Resume {
	resume, err := o.resumes.Get(ctx, state.resumeID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			state.fail(NewErrResumeNotFound(state.resumeID))
		} else {
			state.fail(fmt.Errorf("failed to fetch resume: %w", err))
		}
		return nil
	}
	state.status = StatusResumeFetched
	return resume
}

// Stage 2: enrichment is idempotent. A resume that already carries a profile
// skips the extraction call entirely. Extraction failure is terminal:
// matching quality depends on the profile, so the run does not degrade to an
// empty one.
func (o *Orchestrator) enrich(ctx context.Context, state *executionState, resume *api.Resume, logger *zap.SugaredLogger) {
	if !resume.Profile.IsEmpty() {
		state.profile = resume.Profile
		state.status = StatusEnriched
		return
	}

	profile, err := o.extractor.Extract(ctx, resume.ResumeText)
	if err != nil {
		state.fail(NewErrEnrichment(err))
		return
	}
	if profile.Skills == nil {
		profile.Skills = []string{}
	}
	if profile.Expertise == nil {
		profile.Expertise = []string{}
	}

	if err := o.resumes.UpdateProfile(ctx, state.resumeID, profile); err != nil {
		state.fail(fmt.Errorf("failed to persist extracted profile: %w", err))
		return
	}

	logger.Infow("resume enriched", "resume_id", state.resumeID, "skills", len(profile.Skills))
	state.profile = profile
	state.status = StatusEnriched
}

// Stage 3: fan out to every requested source present in the registry.
// Unknown names are ignored. A failing fetcher contributes zero items and
// never fails the run. Aggregation order is declaration order, not
// completion order, so the output is deterministic for a fixed registry.
func (o *Orchestrator) fetchJobs(ctx context.Context, state *executionState, logger *zap.SugaredLogger) {
	query := o.buildQuery(state.profile)

	type fetchResult struct {
		jobs []api.Job
		err  error
	}

	var recognized []string
	var active []fetchers.Fetcher
	for _, name := range state.sources {
		if f, ok := o.registry.Get(name); ok {
			recognized = append(recognized, name)
			active = append(active, f)
		}
	}

	results := make([]fetchResult, len(active))
	var wg sync.WaitGroup
	for i := range active {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					results[i] = fetchResult{err: fmt.Errorf("fetcher panicked: %v", r)}
				}
			}()
			jobs, err := active[i].Fetch(ctx, query, o.policy.FetchLimit)
			results[i] = fetchResult{jobs: jobs, err: err}
		}(i)
	}
	wg.Wait()

	var jobs []api.Job
	for i, res := range results {
		if res.err != nil {
			logger.Warnw("source fetch degraded", "source", recognized[i], "error", res.err)
			continue
		}
		metrics.AddJobsFetchedMetric(recognized[i], len(res.jobs))
		jobs = append(jobs, res.jobs...)
	}

	state.jobs = jobs
	state.status = StatusJobsFetched
}

// Stage 4 + 5: score the aggregate in fixed-size batches, then rank and
// filter. Scoring is best-effort: a failed batch degrades to a uniform
// default score instead of failing the run.
func (o *Orchestrator) scoreJobs(ctx context.Context, state *executionState, logger *zap.SugaredLogger) {
	now := time.Now().UTC()
	scored := make(api.JobMatchList, 0, len(state.jobs))

	for start := 0; start < len(state.jobs); start += o.policy.BatchSize {
		end := start + o.policy.BatchSize
		if end > len(state.jobs) {
			end = len(state.jobs)
		}
		batch := state.jobs[start:end]

		verdicts, err := o.scorer.ScoreBatch(ctx, state.profile, batch)
		if err == nil {
			err = validateVerdicts(verdicts, len(batch))
		}
		if err != nil {
			logger.Warnw("scoring batch degraded", "batch_start", start, "batch_size", len(batch), "error", err)
			for _, job := range batch {
				scored = append(scored, api.JobMatch{
					Job:       job,
					Score:     o.policy.DegradedScore,
					Reason:    o.policy.DegradedReason,
					MatchedAt: now,
				})
			}
			continue
		}

		byIndex := make([]scoring.BatchScore, len(batch))
		for _, v := range verdicts {
			byIndex[v.Index] = v
		}
		for i, job := range batch {
			scored = append(scored, api.JobMatch{
				Job:       job,
				Score:     byIndex[i].Score,
				Reason:    byIndex[i].Reason,
				MatchedAt: now,
			})
		}
	}

	// Stable sort keeps first-seen order between equal scores.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	matches := make(api.JobMatchList, 0, len(scored))
	for _, m := range scored {
		if m.Score >= o.policy.ScoreThreshold {
			matches = append(matches, m)
		}
	}

	state.matches = matches
	state.status = StatusJobsScored
}

// Stage 6: conditional delivery. A requested delivery that fails is a
// pipeline failure, unlike best-effort scoring.
func (o *Orchestrator) deliver(ctx context.Context, state *executionState, logger *zap.SugaredLogger) {
	if !state.deliver || len(state.matches) == 0 {
		state.status = StatusSkippedDelivery
		return
	}

	if err := o.notifier.Deliver(ctx, state.recipient, state.matches); err != nil {
		state.fail(NewErrDelivery(err))
		return
	}

	logger.Infow("match digest delivered", "recipient", state.recipient, "matches", len(state.matches))
	metrics.IncreaseEmailsSentMetric()
	state.emailSent = true
	state.status = StatusDelivered
}

// finalize writes the terminal projection exactly once. A failed write is
// logged but does not alter the run outcome.
func (o *Orchestrator) finalize(ctx context.Context, state *executionState, logger *zap.SugaredLogger) {
	metrics.IncreaseExecutionsTotalMetric(string(state.status))

	errMsg := ""
	if state.err != nil {
		errMsg = state.err.Error()
	}
	err := o.executions.Finalize(
		ctx,
		state.executionID,
		string(state.status),
		len(state.jobs),
		len(state.matches),
		state.emailSent,
		errMsg,
	)
	if err != nil {
		logger.Errorw("failed to finalize execution record", "execution_id", state.executionID, "error", err)
	}
}

func (o *Orchestrator) buildQuery(profile api.Profile) string {
	skills := profile.Skills
	if len(skills) > o.policy.TopSkills {
		skills = skills[:o.policy.TopSkills]
	}
	query := strings.TrimSpace(strings.Join(skills, " "))
	if query == "" {
		return o.policy.DefaultQuery
	}
	return query
}

// validateVerdicts checks that every job of the batch received exactly one
// score, addressed by position.
func validateVerdicts(verdicts []scoring.BatchScore, batchLen int) error {
	if len(verdicts) != batchLen {
		return fmt.Errorf("scoring returned %d verdicts for %d jobs", len(verdicts), batchLen)
	}
	seen := make([]bool, batchLen)
	for _, v := range verdicts {
		if v.Index < 0 || v.Index >= batchLen {
			return fmt.Errorf("scoring verdict index %d out of range", v.Index)
		}
		if seen[v.Index] {
			return fmt.Errorf("scoring verdict index %d duplicated", v.Index)
		}
		seen[v.Index] = true
	}
	return nil
}
