package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/CaiooFerreiraa/lab-system-sub001/internal/application/report"
	"github.com/CaiooFerreiraa/lab-system-sub001/internal/config"
	"github.com/CaiooFerreiraa/lab-system-sub001/internal/domain/laudo"
	"github.com/CaiooFerreiraa/lab-system-sub001/internal/domain/material"
	"github.com/CaiooFerreiraa/lab-system-sub001/internal/domain/spec"
	"github.com/CaiooFerreiraa/lab-system-sub001/internal/infrastructure/database/postgres"
	"github.com/CaiooFerreiraa/lab-system-sub001/internal/infrastructure/database/postgres/repositories"
	"github.com/CaiooFerreiraa/lab-system-sub001/internal/infrastructure/database/redis"
	"github.com/CaiooFerreiraa/lab-system-sub001/internal/infrastructure/messaging/kafka"
	"github.com/CaiooFerreiraa/lab-system-sub001/internal/infrastructure/monitoring/logging"
	promx "github.com/CaiooFerreiraa/lab-system-sub001/internal/infrastructure/monitoring/prometheus"
	"github.com/CaiooFerreiraa/lab-system-sub001/internal/infrastructure/storage/minio"
	httpserver "github.com/CaiooFerreiraa/lab-system-sub001/internal/interfaces/http"
	"github.com/CaiooFerreiraa/lab-system-sub001/internal/interfaces/http/handlers"
)

func newServeCmd(cliCtx *CLIContext) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the laudo HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cliCtx.Config == nil {
				return fmt.Errorf("a configuration file is required to serve")
			}
			cfg := cliCtx.Config
			if port > 0 {
				cfg.Server.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return RunServer(ctx, cfg, cliCtx.Logger)
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "HTTP port override")
	return cmd
}

// RunServer wires the full application stack from cfg and serves HTTP until
// ctx is cancelled.
func RunServer(ctx context.Context, cfg *config.Config, logger logging.Logger) error {
	if cfg.Migrations.AutoMigrate {
		if err := postgres.RunMigrations(cfg.Database.DSN(), cfg.Migrations.Path); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("schema migrations applied")
	}

	conn, err := postgres.NewConnection(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer conn.Close()
	pool := conn.Pool()

	laudoRepo := repositories.NewLaudoRepository(pool, logger)
	testRepo := repositories.NewTestRepository(pool, logger)
	materialRepo := repositories.NewMaterialRepository(pool, logger)
	sequenceRepo := repositories.NewSequenceRepository(pool, logger)

	var specRepo spec.Repository = repositories.NewSpecRepository(pool, logger)

	healthChecks := []handlers.Check{
		{Name: "postgres", Probe: conn.HealthCheck},
	}

	if cfg.CacheEnabled {
		redisClient, err := redis.NewClient(cfg.Redis, logger)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer redisClient.Close()
		specRepo = redis.NewSpecCache(specRepo, redisClient, cfg.Redis.RuleTTL, logger)
		healthChecks = append(healthChecks, handlers.Check{Name: "redis", Probe: redisClient.Ping})
	}

	notifier := report.NopNotifier()
	if cfg.EventsEnabled {
		producer, err := kafka.NewProducer(cfg.Kafka, logger)
		if err != nil {
			return fmt.Errorf("init kafka producer: %w", err)
		}
		defer producer.Close()
		notifier = kafka.NewNotifier(producer, logger)
	}

	clock := laudo.SystemClock()
	service := report.NewService(
		laudoRepo,
		testRepo,
		spec.NewResolver(specRepo, logger),
		material.NewResolver(materialRepo, logger),
		laudo.NewCodeAssigner(sequenceRepo, clock),
		clock,
		notifier,
		logger,
	)

	var documents *report.DocumentService
	if cfg.StorageEnabled {
		store, err := minio.NewDocumentStore(ctx, cfg.Storage, logger)
		if err != nil {
			return fmt.Errorf("init document store: %w", err)
		}
		documents = report.NewDocumentService(service, store)
	}

	metrics := promx.NewMetrics()
	router := httpserver.NewRouter(httpserver.RouterConfig{
		Mode:             cfg.Server.Mode,
		Laudos:           handlers.NewLaudoHandler(service, documents, logger),
		Tests:            handlers.NewTestHandler(service, logger),
		Specs:            handlers.NewSpecHandler(specRepo, logger),
		Health:           handlers.NewHealthHandler(logger, healthChecks...),
		Metrics:          metrics,
		Logger:           logger,
		APIKey:           cfg.Auth.APIKey,
		DocumentsEnabled: documents != nil,
	})

	srv := httpserver.NewServer(cfg.Server, router, logger)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
