package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skovtun/lightning-node-registry/internal/config"
	"github.com/skovtun/lightning-node-registry/internal/db"
	"github.com/skovtun/lightning-node-registry/internal/httpapi"
	"github.com/skovtun/lightning-node-registry/internal/mq"
	"github.com/skovtun/lightning-node-registry/internal/repository"
	"github.com/skovtun/lightning-node-registry/internal/scheduler"
	"github.com/skovtun/lightning-node-registry/internal/service"
	"github.com/skovtun/lightning-node-registry/internal/source"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func startServer(
	lc fx.Lifecycle,
	cfg *config.Config,
	logger *zap.Logger,
	router *gin.Engine,
	sched *scheduler.Scheduler,
) {
	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	// The loop's context outlives the start hook; it is cancelled on stop
	// and the stop hook waits for the run in flight to finish.
	loopCtx, cancelLoop := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			sched.Start(loopCtx)

			go func() {
				logger.Info("http server listening", zap.String("addr", cfg.Server.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancelLoop()
			if err := sched.Stop(stopCtx); err != nil {
				logger.Error("failed to stop scheduler", zap.Error(err))
				return err
			}
			if err := srv.Shutdown(stopCtx); err != nil {
				logger.Error("failed to shut down http server", zap.Error(err))
				return err
			}
			logger.Info("server stopped gracefully")
			return nil
		},
	})
}

// ProvideDBPool creates the database connection pool
func ProvideDBPool(lc fx.Lifecycle, logger *zap.Logger, cfg *config.Config) (*db.Pool, error) {
	return db.NewPool(lc, logger, cfg.Database.URL)
}

// ProvideRepository creates the node repository
func ProvideRepository(pool *db.Pool) *repository.Repository {
	return repository.NewRepository(pool)
}

// ProvideSourceClient creates the feed client
func ProvideSourceClient(cfg *config.Config, logger *zap.Logger) *source.Client {
	return source.NewClient(cfg.SourceTimeout(), logger)
}

// ProvideMQConnection creates the (optional) RabbitMQ connection
func ProvideMQConnection(lc fx.Lifecycle, logger *zap.Logger, cfg *config.Config) (*mq.Connection, error) {
	return mq.NewConnection(lc, logger, cfg.RabbitMQ.URL)
}

// ProvidePublisher creates the import event publisher
func ProvidePublisher(conn *mq.Connection, cfg *config.Config, logger *zap.Logger) (*mq.Publisher, error) {
	return mq.NewPublisher(conn, cfg.RabbitMQ.EventsExchange, logger)
}

// ProvideImporter creates the import orchestrator
func ProvideImporter(
	client *source.Client,
	repo *repository.Repository,
	publisher *mq.Publisher,
	cfg *config.Config,
	logger *zap.Logger,
) *service.Importer {
	return service.NewImporter(client, repo, publisher, cfg, logger)
}

// ProvideViewService creates the node view service
func ProvideViewService(repo *repository.Repository, logger *zap.Logger) *service.ViewService {
	return service.NewViewService(repo, logger)
}

// ProvideScheduler creates the periodic import scheduler
func ProvideScheduler(importer *service.Importer, cfg *config.Config, logger *zap.Logger) *scheduler.Scheduler {
	return scheduler.New(importer, cfg.ImportInterval(), logger)
}

// ProvideHandlers creates the HTTP handler set
func ProvideHandlers(importer *service.Importer, view *service.ViewService, logger *zap.Logger) *httpapi.Handlers {
	return httpapi.NewHandlers(importer, view, logger)
}

// ProvideRouter builds the HTTP router
func ProvideRouter(h *httpapi.Handlers) *gin.Engine {
	return httpapi.NewRouter(h)
}
