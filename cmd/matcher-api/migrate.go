package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jobmatch/job-matcher/internal/config"
	"github.com/jobmatch/job-matcher/internal/store"
	"github.com/jobmatch/job-matcher/pkg/log"
	"github.com/jobmatch/job-matcher/pkg/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the db",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			return err
		}

		logger := log.InitLog(log.NewAtomicLevel(cfg.Service.LogLevel))
		defer func() { _ = logger.Sync() }()
		undo := zap.ReplaceGlobals(logger)
		defer undo()

		zap.S().Named("matcher-api").Info("Initializing data store")
		db, err := store.InitDB(cfg)
		if err != nil {
			zap.S().Named("matcher-api").Fatalf("initializing data store: %v", err)
		}

		s := store.NewStore(db)
		defer s.Close()

		if cfg.Service.MigrationFolder != "" {
			if err := migrations.MigrateStore(db, cfg.Service.MigrationFolder); err != nil {
				zap.S().Named("matcher-api").Fatalf("running migrations: %v", err)
			}
		} else if err := s.InitialMigration(); err != nil {
			zap.S().Named("matcher-api").Fatalf("running initial migration: %v", err)
		}

		zap.S().Named("matcher-api").Info("Db migrated")
		return nil
	},
}
