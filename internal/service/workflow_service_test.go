package service_test

import (
	"context"
	"errors"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	api "github.com/jobmatch/job-matcher/api/v1alpha1"
	"github.com/jobmatch/job-matcher/internal/config"
	"github.com/jobmatch/job-matcher/internal/service"
	"github.com/jobmatch/job-matcher/internal/store"
	"github.com/jobmatch/job-matcher/internal/store/model"
	"github.com/jobmatch/job-matcher/internal/workflow"
)

type stubRunner struct {
	outcome workflow.Outcome
	err     error
	last    workflow.RunRequest
}

func (r *stubRunner) Run(_ context.Context, req workflow.RunRequest) (workflow.Outcome, error) {
	r.last = req
	if r.err != nil {
		return workflow.Outcome{}, r.err
	}
	return r.outcome, nil
}

var _ = Describe("workflow service", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
	)

	createResume := func(user string) *api.Resume {
		resume, err := s.Resume().Create(context.TODO(), *model.NewResumeFromApiCreate(user, "text", "", "text"))
		Expect(err).To(BeNil())
		return resume
	}

	BeforeAll(func() {
		db, err := store.InitDB(config.NewDefault())
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
		Expect(s.InitialMigration()).To(BeNil())
	})

	AfterAll(func() {
		s.Close()
	})

	AfterEach(func() {
		gormdb.Exec("DELETE from matches;")
		gormdb.Exec("DELETE from executions;")
		gormdb.Exec("DELETE from resumes;")
	})

	Context("execute", func() {
		It("returns a typed error for a missing resume", func() {
			svc := service.NewWorkflowService(s, &stubRunner{})
			_, err := svc.Execute(context.TODO(), api.WorkflowRequest{ResumeId: uuid.New()})
			var notFound *service.ErrResumeNotFound
			Expect(err).To(BeAssignableToTypeOf(notFound))
		})

		It("defaults sources and recipient", func() {
			resume := createResume("user@example.com")
			runner := &stubRunner{outcome: workflow.Outcome{Status: workflow.StatusSkippedDelivery}}
			svc := service.NewWorkflowService(s, runner)

			_, err := svc.Execute(context.TODO(), api.WorkflowRequest{ResumeId: resume.Id, SendEmail: true})
			Expect(err).To(BeNil())
			Expect(runner.last.Sources).To(Equal(api.DefaultSources))
			Expect(runner.last.Recipient).To(Equal("user@example.com"))
			Expect(runner.last.Deliver).To(BeTrue())
		})

		It("passes explicit sources and recipient through", func() {
			resume := createResume("user@example.com")
			runner := &stubRunner{outcome: workflow.Outcome{Status: workflow.StatusSkippedDelivery}}
			svc := service.NewWorkflowService(s, runner)

			_, err := svc.Execute(context.TODO(), api.WorkflowRequest{
				ResumeId:  resume.Id,
				Sources:   []string{"linkedin"},
				UserEmail: "other@example.com",
			})
			Expect(err).To(BeNil())
			Expect(runner.last.Sources).To(Equal([]string{"linkedin"}))
			Expect(runner.last.Recipient).To(Equal("other@example.com"))
		})

		It("persists surviving matches and maps the outcome", func() {
			resume := createResume("user@example.com")
			executionID := uuid.New()
			matches := api.JobMatchList{
				{Job: api.Job{Id: uuid.New(), JobId: "linkedin_1", Source: "linkedin", Title: "Go Engineer", Company: "Acme", Url: "u"}, Score: 88, Reason: "fit"},
			}
			runner := &stubRunner{outcome: workflow.Outcome{
				ExecutionID:  executionID,
				Status:       workflow.StatusDelivered,
				FetchedCount: 10,
				ScoredCount:  1,
				Matches:      matches,
				EmailSent:    true,
			}}
			svc := service.NewWorkflowService(s, runner)

			result, err := svc.Execute(context.TODO(), api.WorkflowRequest{ResumeId: resume.Id, SendEmail: true})
			Expect(err).To(BeNil())
			Expect(result.ExecutionId).To(Equal(executionID))
			Expect(result.Status).To(Equal("delivered"))
			Expect(result.JobsFound).To(Equal(10))
			Expect(result.JobsMatched).To(Equal(1))
			Expect(result.Matches).To(HaveLen(1))

			persisted, err := s.Match().ListByUser(context.TODO(), "user@example.com", 0)
			Expect(err).To(BeNil())
			Expect(persisted).To(HaveLen(1))
		})

		It("maps a failed outcome without an extra error", func() {
			resume := createResume("user@example.com")
			runner := &stubRunner{outcome: workflow.Outcome{
				ExecutionID: uuid.New(),
				Status:      workflow.StatusFailed,
				Err:         errors.New("resume enrichment failed"),
			}}
			svc := service.NewWorkflowService(s, runner)

			result, err := svc.Execute(context.TODO(), api.WorkflowRequest{ResumeId: resume.Id})
			Expect(err).To(BeNil())
			Expect(result.Status).To(Equal("failed"))
			Expect(result.Error).To(ContainSubstring("enrichment"))
		})
	})

	Context("executions", func() {
		It("returns a typed error for a missing execution", func() {
			svc := service.NewWorkflowService(s, &stubRunner{})
			_, err := svc.GetExecution(context.TODO(), uuid.New())
			var notFound *service.ErrExecutionNotFound
			Expect(err).To(BeAssignableToTypeOf(notFound))
		})

		It("fetches a stored execution", func() {
			execution, err := s.Execution().Create(context.TODO(), "user@example.com", uuid.New(), "started")
			Expect(err).To(BeNil())

			svc := service.NewWorkflowService(s, &stubRunner{})
			fetched, err := svc.GetExecution(context.TODO(), execution.Id)
			Expect(err).To(BeNil())
			Expect(fetched.Id).To(Equal(execution.Id))
		})
	})
})
