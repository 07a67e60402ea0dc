package store_test

import (
	"context"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/jobmatch/job-matcher/internal/config"
	"github.com/jobmatch/job-matcher/internal/store"
)

var _ = Describe("execution store", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
	)

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
		gormdb.Exec("DELETE from executions;")
	})

	Context("create", func() {
		It("records the started execution", func() {
			execution, err := s.Execution().Create(context.TODO(), "user@example.com", uuid.New(), "started")
			Expect(err).To(BeNil())
			Expect(execution.Status).To(Equal("started"))
			Expect(execution.StartedAt).ToNot(BeZero())
			Expect(execution.CompletedAt).To(BeNil())
		})
	})

	Context("finalize", func() {
		It("writes the terminal projection", func() {
			execution, err := s.Execution().Create(context.TODO(), "user@example.com", uuid.New(), "started")
			Expect(err).To(BeNil())

			err = s.Execution().Finalize(context.TODO(), execution.Id, "delivered", 12, 4, true, "")
			Expect(err).To(BeNil())

			finalized, err := s.Execution().Get(context.TODO(), execution.Id)
			Expect(err).To(BeNil())
			Expect(finalized.Status).To(Equal("delivered"))
			Expect(finalized.JobsFound).To(Equal(12))
			Expect(finalized.JobsMatched).To(Equal(4))
			Expect(finalized.EmailSent).To(BeTrue())
			Expect(finalized.CompletedAt).ToNot(BeNil())
		})

		It("keeps the failure message", func() {
			execution, err := s.Execution().Create(context.TODO(), "user@example.com", uuid.New(), "started")
			Expect(err).To(BeNil())

			err = s.Execution().Finalize(context.TODO(), execution.Id, "failed", 0, 0, false, "resume not found")
			Expect(err).To(BeNil())

			finalized, err := s.Execution().Get(context.TODO(), execution.Id)
			Expect(err).To(BeNil())
			Expect(finalized.Status).To(Equal("failed"))
			Expect(finalized.ErrorMessage).To(Equal("resume not found"))
		})

		It("returns ErrRecordNotFound for a missing execution", func() {
			err := s.Execution().Finalize(context.TODO(), uuid.New(), "failed", 0, 0, false, "")
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})
	})

	Context("get", func() {
		It("returns ErrRecordNotFound for a missing execution", func() {
			_, err := s.Execution().Get(context.TODO(), uuid.New())
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})
	})
})
