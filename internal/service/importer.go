package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/skovtun/lightning-node-registry/internal/config"
	"github.com/skovtun/lightning-node-registry/internal/logging"
	"github.com/skovtun/lightning-node-registry/internal/metrics"
	"github.com/skovtun/lightning-node-registry/internal/mq"
	"github.com/skovtun/lightning-node-registry/internal/source"
	"go.uber.org/zap"
)

// Fetcher retrieves the node list from the external feed
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]source.Node, error)
}

// NodeStore persists a batch of feed records in one atomic transaction
type NodeStore interface {
	UpsertBatch(ctx context.Context, nodes []source.Node) (int, error)
}

// EventPublisher emits import completion events
type EventPublisher interface {
	PublishImportEvent(ctx context.Context, event mq.ImportEvent, routingKey string) error
}

// Importer coordinates fetch -> decode -> upsert. It is reentrant: the
// scheduler and the admin endpoint may call ImportAll concurrently, each
// invocation runs its own transaction and the store converges to
// last-commit-wins. No locking is done here on purpose.
type Importer struct {
	fetcher    Fetcher
	store      NodeStore
	publisher  EventPublisher
	sourceURL  string
	routingKey string
	logger     *zap.Logger
}

// NewImporter creates a new import orchestrator
func NewImporter(fetcher Fetcher, store NodeStore, publisher EventPublisher, cfg *config.Config, logger *zap.Logger) *Importer {
	return &Importer{
		fetcher:    fetcher,
		store:      store,
		publisher:  publisher,
		sourceURL:  cfg.Source.URL,
		routingKey: cfg.RabbitMQ.ImportRoutingKey,
		logger:     logger,
	}
}

// ImportAll fetches the full feed and upserts it as one batch, returning
// the number of records fetched. Errors from the feed client and the store
// propagate unchanged; on any failure no partial writes persist.
func (s *Importer) ImportAll(ctx context.Context) (int, error) {
	runID := uuid.NewString()
	runLogger := logging.WithRunID(s.logger, runID)
	start := time.Now()

	runLogger.Info("starting node import", zap.String("source_url", s.sourceURL))

	nodes, err := s.fetcher.Fetch(ctx, s.sourceURL)
	if err != nil {
		metrics.RecordImportFailure(time.Since(start).Seconds())
		runLogger.Error("feed fetch failed", zap.Error(err))
		return 0, err
	}

	if _, err := s.store.UpsertBatch(ctx, nodes); err != nil {
		metrics.RecordImportFailure(time.Since(start).Seconds())
		runLogger.Error("batch upsert failed", zap.Error(err))
		return 0, err
	}

	count := len(nodes)
	completedAt := time.Now()
	elapsed := completedAt.Sub(start)
	metrics.RecordImportSuccess(count, elapsed.Seconds(), completedAt.Unix())

	// Publish only after the transaction committed; a publish failure must
	// not fail the import.
	event := mq.ImportEvent{
		RunID:       runID,
		NodeCount:   count,
		DurationMS:  elapsed.Milliseconds(),
		CompletedAt: completedAt.UTC().Format(time.RFC3339),
	}
	if err := s.publisher.PublishImportEvent(ctx, event, s.routingKey); err != nil {
		runLogger.Error("failed to publish import event", zap.Error(err))
	}

	runLogger.Info("node import completed",
		zap.Int("count", count),
		zap.Duration("duration", elapsed),
	)

	return count, nil
}
