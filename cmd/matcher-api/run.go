package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	apiserver "github.com/jobmatch/job-matcher/internal/api_server"
	"github.com/jobmatch/job-matcher/internal/config"
	extractorgemini "github.com/jobmatch/job-matcher/internal/extraction/gemini"
	"github.com/jobmatch/job-matcher/internal/fetchers"
	"github.com/jobmatch/job-matcher/internal/notifier"
	scorergemini "github.com/jobmatch/job-matcher/internal/scoring/gemini"
	"github.com/jobmatch/job-matcher/internal/store"
	"github.com/jobmatch/job-matcher/internal/workflow"
	"github.com/jobmatch/job-matcher/pkg/log"
	"github.com/jobmatch/job-matcher/pkg/migrations"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the matcher api",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			return err
		}

		logger := log.InitLog(log.NewAtomicLevel(cfg.Service.LogLevel))
		defer func() { _ = logger.Sync() }()
		undo := zap.ReplaceGlobals(logger)
		defer undo()

		zap.S().Named("matcher-api").Info("Starting API service")
		defer zap.S().Named("matcher-api").Info("API service stopped")

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

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
		defer cancel()

		orchestrator, err := buildOrchestrator(ctx, cfg, s)
		if err != nil {
			zap.S().Named("matcher-api").Fatalf("building pipeline: %v", err)
		}

		go func() {
			defer cancel()
			listener, err := newListener(cfg.Service.Address)
			if err != nil {
				zap.S().Named("matcher-api").Fatalf("creating listener: %s", err)
			}

			server := apiserver.New(cfg, s, orchestrator, listener)
			if err := server.Run(ctx); err != nil {
				zap.S().Named("matcher-api").Fatalf("Error running server: %s", err)
			}
		}()

		go func() {
			defer cancel()
			listener, err := newListener(cfg.Service.MetricsAddress)
			if err != nil {
				zap.S().Named("matcher-api").Fatalf("creating metrics listener: %s", err)
			}

			metricsServer := apiserver.NewMetricServer(cfg.Service.MetricsAddress, listener)
			if err := metricsServer.Run(ctx); err != nil {
				zap.S().Named("matcher-api").Fatalf("Error running metrics server: %s", err)
			}
		}()

		<-ctx.Done()
		return nil
	},
}

func buildOrchestrator(ctx context.Context, cfg *config.Config, s store.Store) (*workflow.Orchestrator, error) {
	extractor, err := extractorgemini.New(ctx, extractorgemini.Config{
		APIKey:  cfg.Gemini.ApiKey,
		Model:   cfg.Gemini.Model,
		BaseURL: cfg.Gemini.BaseUrl,
	})
	if err != nil {
		return nil, err
	}

	scorer, err := scorergemini.New(ctx, scorergemini.Config{
		APIKey:  cfg.Gemini.ApiKey,
		Model:   cfg.Gemini.Model,
		BaseURL: cfg.Gemini.BaseUrl,
	})
	if err != nil {
		return nil, err
	}

	emailNotifier, err := notifier.NewEmailNotifier(notifier.EmailConfig{
		Host:     cfg.Smtp.Host,
		Port:     cfg.Smtp.Port,
		Sender:   cfg.Smtp.Sender,
		Password: cfg.Smtp.Password,
	})
	if err != nil {
		return nil, err
	}

	registry := fetchers.NewDefaultRegistry(fetchers.NewClient(fetchers.ClientConfig{
		Timeout:   cfg.Fetchers.Timeout,
		RateLimit: cfg.Fetchers.RateLimitRPS,
		UserAgent: cfg.Fetchers.UserAgent,
	}))

	return workflow.NewOrchestrator(
		s.Resume(),
		s.Execution(),
		extractor,
		registry,
		scorer,
		emailNotifier,
		workflow.DefaultPolicy(),
	), nil
}

func newListener(address string) (net.Listener, error) {
	if address == "" {
		address = "localhost:0"
	}
	return net.Listen("tcp", address)
}
