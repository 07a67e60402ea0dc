package store_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	api "github.com/jobmatch/job-matcher/api/v1alpha1"
	"github.com/jobmatch/job-matcher/internal/config"
	"github.com/jobmatch/job-matcher/internal/store"
)

func newMatch(source, title string, score float64) api.JobMatch {
	return api.JobMatch{
		Job: api.Job{
			Id:      uuid.New(),
			JobId:   source + "_1",
			Source:  source,
			Title:   title,
			Company: "Acme",
			Url:     "https://example.com/job",
		},
		Score:     score,
		Reason:    "skill overlap",
		MatchedAt: time.Now().UTC(),
	}
}

var _ = Describe("match store", Ordered, func() {
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
		gormdb.Exec("DELETE from matches;")
	})

	Context("create many", func() {
		It("persists the whole batch", func() {
			executionID := uuid.New()
			matches := api.JobMatchList{
				newMatch("linkedin", "Go Engineer", 88),
				newMatch("indeed", "Backend Engineer", 72),
			}

			Expect(s.Match().CreateMany(context.TODO(), "user@example.com", executionID, matches)).To(BeNil())

			count := 0
			Expect(gormdb.Raw("SELECT COUNT(*) from matches;").Scan(&count).Error).To(BeNil())
			Expect(count).To(Equal(2))
		})

		It("accepts an empty batch", func() {
			Expect(s.Match().CreateMany(context.TODO(), "user@example.com", uuid.New(), nil)).To(BeNil())
		})
	})

	Context("list", func() {
		It("lists matches for one user only", func() {
			Expect(s.Match().CreateMany(context.TODO(), "a@example.com", uuid.New(), api.JobMatchList{
				newMatch("linkedin", "Go Engineer", 88),
			})).To(BeNil())
			Expect(s.Match().CreateMany(context.TODO(), "b@example.com", uuid.New(), api.JobMatchList{
				newMatch("indeed", "Other", 61),
			})).To(BeNil())

			matches, err := s.Match().ListByUser(context.TODO(), "a@example.com", 0)
			Expect(err).To(BeNil())
			Expect(matches).To(HaveLen(1))
			Expect(matches[0].Title).To(Equal("Go Engineer"))
			Expect(matches[0].Score).To(Equal(88.0))
		})

		It("honors the limit", func() {
			batch := api.JobMatchList{}
			for i := 0; i < 5; i++ {
				batch = append(batch, newMatch("linkedin", "Go Engineer", 70))
			}
			Expect(s.Match().CreateMany(context.TODO(), "a@example.com", uuid.New(), batch)).To(BeNil())

			matches, err := s.Match().ListByUser(context.TODO(), "a@example.com", 3)
			Expect(err).To(BeNil())
			Expect(matches).To(HaveLen(3))
		})
	})

	Context("statistics", func() {
		It("aggregates totals and per-source counts", func() {
			Expect(s.Match().CreateMany(context.TODO(), "a@example.com", uuid.New(), api.JobMatchList{
				newMatch("linkedin", "Go Engineer", 88),
				newMatch("linkedin", "Platform Engineer", 75),
				newMatch("indeed", "Backend Engineer", 64),
			})).To(BeNil())
			Expect(s.Match().CreateMany(context.TODO(), "b@example.com", uuid.New(), api.JobMatchList{
				newMatch("wellfound", "Startup Engineer", 90),
			})).To(BeNil())

			stats, err := s.Statistics(context.TODO())
			Expect(err).To(BeNil())
			Expect(stats.TotalMatches).To(Equal(int64(4)))
			Expect(stats.TotalUsers).To(Equal(int64(2)))
			Expect(stats.BySource).To(HaveKeyWithValue("linkedin", int64(2)))
			Expect(stats.BySource).To(HaveKeyWithValue("indeed", int64(1)))
			Expect(stats.BySource).To(HaveKeyWithValue("wellfound", int64(1)))
		})
	})
})
