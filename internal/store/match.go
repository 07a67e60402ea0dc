package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	api "github.com/jobmatch/job-matcher/api/v1alpha1"
	"github.com/jobmatch/job-matcher/internal/store/model"
)

type Match interface {
	CreateMany(ctx context.Context, userID string, executionID uuid.UUID, matches api.JobMatchList) error
	ListByUser(ctx context.Context, userID string, limit int) (api.JobMatchList, error)
	Statistics(ctx context.Context) (model.MatchStats, error)
	InitialMigration() error
}

type MatchStore struct {
	db *gorm.DB
}

// Make sure we conform to Match interface
var _ Match = (*MatchStore)(nil)

func NewMatchStore(db *gorm.DB) Match {
	return &MatchStore{db: db}
}

func (s *MatchStore) InitialMigration() error {
	return s.db.AutoMigrate(&model.Match{})
}

func (s *MatchStore) CreateMany(ctx context.Context, userID string, executionID uuid.UUID, matches api.JobMatchList) error {
	if len(matches) == 0 {
		return nil
	}
	rows := make(model.MatchList, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, *model.NewMatchFromApiResource(userID, executionID, m))
	}
	return s.db.WithContext(ctx).Create(&rows).Error
}

func (s *MatchStore) ListByUser(ctx context.Context, userID string, limit int) (api.JobMatchList, error) {
	if limit <= 0 {
		limit = 50
	}
	var matches model.MatchList
	result := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&matches)
	if result.Error != nil {
		return nil, result.Error
	}
	return matches.ToApiResource(), nil
}

func (s *MatchStore) Statistics(ctx context.Context) (model.MatchStats, error) {
	stats := model.MatchStats{BySource: make(map[string]int64)}

	if err := s.db.WithContext(ctx).Model(&model.Match{}).Count(&stats.TotalMatches).Error; err != nil {
		return stats, err
	}
	if err := s.db.WithContext(ctx).Model(&model.Match{}).Distinct("user_id").Count(&stats.TotalUsers).Error; err != nil {
		return stats, err
	}

	type sourceCount struct {
		Source string
		Total  int64
	}
	var counts []sourceCount
	if err := s.db.WithContext(ctx).Model(&model.Match{}).
		Select("source, count(*) as total").
		Group("source").
		Scan(&counts).Error; err != nil {
		return stats, err
	}
	for _, c := range counts {
		stats.BySource[c.Source] = c.Total
	}
	return stats, nil
}
