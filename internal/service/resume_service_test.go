package service_test

import (
	"context"
	"encoding/base64"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	api "github.com/jobmatch/job-matcher/api/v1alpha1"
	"github.com/jobmatch/job-matcher/internal/config"
	"github.com/jobmatch/job-matcher/internal/service"
	"github.com/jobmatch/job-matcher/internal/store"
)

var _ = Describe("resume service", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
		svc    *service.ResumeService
	)

	BeforeAll(func() {
		db, err := store.InitDB(config.NewDefault())
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
		Expect(s.InitialMigration()).To(BeNil())

		svc = service.NewResumeService(s)
	})

	AfterAll(func() {
		s.Close()
	})

	AfterEach(func() {
		gormdb.Exec("DELETE from resumes;")
	})

	Context("create", func() {
		It("creates a resume from raw text", func() {
			resume, err := svc.CreateResume(context.TODO(), api.ResumeCreate{
				UserEmail:  "user@example.com",
				ResumeText: "  ten years of Go  ",
			})
			Expect(err).To(BeNil())
			Expect(resume.UserId).To(Equal("user@example.com"))
			Expect(resume.ResumeText).To(Equal("ten years of Go"))
			Expect(resume.FileType).To(Equal("text"))
		})

		It("creates a resume from a base64 text upload", func() {
			content := base64.StdEncoding.EncodeToString([]byte("plain text resume"))
			resume, err := svc.CreateResume(context.TODO(), api.ResumeCreate{
				UserEmail:   "user@example.com",
				FileContent: content,
				FileName:    "resume.txt",
			})
			Expect(err).To(BeNil())
			Expect(resume.ResumeText).To(Equal("plain text resume"))
			Expect(resume.FileName).To(Equal("resume.txt"))
		})

		It("rejects a missing user email", func() {
			_, err := svc.CreateResume(context.TODO(), api.ResumeCreate{ResumeText: "text"})
			var invalid *service.ErrInvalidResume
			Expect(err).To(BeAssignableToTypeOf(invalid))
		})

		It("rejects an empty payload", func() {
			_, err := svc.CreateResume(context.TODO(), api.ResumeCreate{UserEmail: "user@example.com"})
			var invalid *service.ErrInvalidResume
			Expect(err).To(BeAssignableToTypeOf(invalid))
		})

		It("rejects invalid base64", func() {
			_, err := svc.CreateResume(context.TODO(), api.ResumeCreate{
				UserEmail:   "user@example.com",
				FileContent: "%%%not-base64%%%",
			})
			var invalid *service.ErrInvalidResume
			Expect(err).To(BeAssignableToTypeOf(invalid))
		})

		It("rejects an undecodable pdf", func() {
			content := base64.StdEncoding.EncodeToString([]byte("this is not a pdf"))
			_, err := svc.CreateResume(context.TODO(), api.ResumeCreate{
				UserEmail:   "user@example.com",
				FileContent: content,
				FileName:    "resume.pdf",
			})
			var invalid *service.ErrInvalidResume
			Expect(err).To(BeAssignableToTypeOf(invalid))
		})
	})

	Context("get", func() {
		It("returns a typed error for a missing resume", func() {
			_, err := svc.GetResume(context.TODO(), uuid.New())
			var notFound *service.ErrResumeNotFound
			Expect(err).To(BeAssignableToTypeOf(notFound))
		})

		It("round-trips a created resume", func() {
			created, err := svc.CreateResume(context.TODO(), api.ResumeCreate{
				UserEmail:  "user@example.com",
				ResumeText: "text",
			})
			Expect(err).To(BeNil())

			fetched, err := svc.GetResume(context.TODO(), created.Id)
			Expect(err).To(BeNil())
			Expect(fetched.Id).To(Equal(created.Id))
		})
	})

	Context("list", func() {
		It("lists resumes per user", func() {
			for _, user := range []string{"a@example.com", "a@example.com", "b@example.com"} {
				_, err := svc.CreateResume(context.TODO(), api.ResumeCreate{UserEmail: user, ResumeText: "text"})
				Expect(err).To(BeNil())
			}

			resumes, err := svc.ListResumes(context.TODO(), "a@example.com")
			Expect(err).To(BeNil())
			Expect(resumes).To(HaveLen(2))
		})
	})
})
