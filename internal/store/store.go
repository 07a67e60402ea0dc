package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/jobmatch/job-matcher/internal/store/model"
)

type Store interface {
	Resume() Resume
	Execution() Execution
	Match() Match
	InitialMigration() error
	Statistics(ctx context.Context) (model.MatchStats, error)
	Close() error
}

type DataStore struct {
	db        *gorm.DB
	resume    Resume
	execution Execution
	match     Match
}

func NewStore(db *gorm.DB) Store {
	return &DataStore{
		db:        db,
		resume:    NewResumeStore(db),
		execution: NewExecutionStore(db),
		match:     NewMatchStore(db),
	}
}

func (s *DataStore) Resume() Resume {
	return s.resume
}

func (s *DataStore) Execution() Execution {
	return s.execution
}

func (s *DataStore) Match() Match {
	return s.match
}

func (s *DataStore) InitialMigration() error {
	if err := s.resume.InitialMigration(); err != nil {
		return err
	}
	if err := s.execution.InitialMigration(); err != nil {
		return err
	}
	return s.match.InitialMigration()
}

func (s *DataStore) Statistics(ctx context.Context) (model.MatchStats, error) {
	return s.match.Statistics(ctx)
}

func (s *DataStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
