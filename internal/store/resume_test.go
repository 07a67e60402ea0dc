package store_test

import (
	"context"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	api "github.com/jobmatch/job-matcher/api/v1alpha1"
	"github.com/jobmatch/job-matcher/internal/config"
	"github.com/jobmatch/job-matcher/internal/store"
	"github.com/jobmatch/job-matcher/internal/store/model"
)

var _ = Describe("resume store", Ordered, func() {
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
		gormdb.Exec("DELETE from resumes;")
	})

	Context("create", func() {
		It("successfully creates a resume from text", func() {
			created, err := s.Resume().Create(context.TODO(), *model.NewResumeFromApiCreate("user@example.com", "ten years of Go", "", "text"))
			Expect(err).To(BeNil())
			Expect(created.Id).ToNot(Equal(uuid.UUID{}))
			Expect(created.UserId).To(Equal("user@example.com"))
			Expect(created.ResumeText).To(Equal("ten years of Go"))
			Expect(created.Profile.IsEmpty()).To(BeTrue())

			count := 0
			Expect(gormdb.Raw("SELECT COUNT(*) from resumes;").Scan(&count).Error).To(BeNil())
			Expect(count).To(Equal(1))
		})
	})

	Context("get", func() {
		It("successfully gets a resume", func() {
			created, err := s.Resume().Create(context.TODO(), *model.NewResumeFromApiCreate("user@example.com", "resume text", "cv.pdf", "pdf"))
			Expect(err).To(BeNil())

			resume, err := s.Resume().Get(context.TODO(), created.Id)
			Expect(err).To(BeNil())
			Expect(resume.FileName).To(Equal("cv.pdf"))
			Expect(resume.FileType).To(Equal("pdf"))
		})

		It("returns ErrRecordNotFound for a missing resume", func() {
			_, err := s.Resume().Get(context.TODO(), uuid.New())
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})
	})

	Context("list", func() {
		It("lists only the requested user's resumes", func() {
			_, err := s.Resume().Create(context.TODO(), *model.NewResumeFromApiCreate("a@example.com", "first", "", "text"))
			Expect(err).To(BeNil())
			_, err = s.Resume().Create(context.TODO(), *model.NewResumeFromApiCreate("a@example.com", "second", "", "text"))
			Expect(err).To(BeNil())
			_, err = s.Resume().Create(context.TODO(), *model.NewResumeFromApiCreate("b@example.com", "other", "", "text"))
			Expect(err).To(BeNil())

			resumes, err := s.Resume().ListByUser(context.TODO(), "a@example.com")
			Expect(err).To(BeNil())
			Expect(resumes).To(HaveLen(2))
		})

		It("returns empty list for an unknown user", func() {
			resumes, err := s.Resume().ListByUser(context.TODO(), "nobody@example.com")
			Expect(err).To(BeNil())
			Expect(resumes).To(BeEmpty())
		})
	})

	Context("update profile", func() {
		It("persists the extracted profile", func() {
			created, err := s.Resume().Create(context.TODO(), *model.NewResumeFromApiCreate("user@example.com", "text", "", "text"))
			Expect(err).To(BeNil())

			profile := api.Profile{
				Skills:     []string{"Go", "Postgres"},
				Experience: "5 years",
				Expertise:  []string{"backend"},
			}
			Expect(s.Resume().UpdateProfile(context.TODO(), created.Id, profile)).To(BeNil())

			resume, err := s.Resume().Get(context.TODO(), created.Id)
			Expect(err).To(BeNil())
			Expect(resume.Profile.Skills).To(Equal([]string{"Go", "Postgres"}))
			Expect(resume.Profile.Experience).To(Equal("5 years"))
			Expect(resume.Profile.IsEmpty()).To(BeFalse())
		})

		It("returns ErrRecordNotFound for a missing resume", func() {
			err := s.Resume().UpdateProfile(context.TODO(), uuid.New(), api.Profile{Skills: []string{"Go"}})
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})
	})
})
