package service

import (
	"context"

	api "github.com/jobmatch/job-matcher/api/v1alpha1"
	"github.com/jobmatch/job-matcher/internal/store"
)

type HealthService struct {
	store store.Store
}

func NewHealthService(store store.Store) *HealthService {
	return &HealthService{store: store}
}

// Health reports overall service state. The database is the only hard
// dependency; the LLM and SMTP backends are probed lazily on use.
func (s *HealthService) Health(ctx context.Context) api.Health {
	health := api.Health{
		Status:   "healthy",
		Services: map[string]string{"database": "up"},
	}
	if _, err := s.store.Statistics(ctx); err != nil {
		health.Status = "degraded"
		health.Services["database"] = "down"
	}
	return health
}
