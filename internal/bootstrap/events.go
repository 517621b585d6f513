package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mintforge/packvault/internal/config"
	"github.com/mintforge/packvault/internal/event"
	"github.com/mintforge/packvault/internal/metrics"
	"github.com/mintforge/packvault/internal/worker"
)

// EventSystem bundles the running event components so the caller can wire
// them into services and tear them down in order.
type EventSystem struct {
	Bus        event.Bus
	Publisher  *event.ResilientPublisher
	DeadLetter *event.DeadLetterWriter
	RetryPool  *worker.Pool
}

// InitializeEventSystem creates the event bus, the bounded retry pool and
// the resilient publisher, and registers the metrics collector as the first
// subscriber.
func InitializeEventSystem(cfg *config.Config) (*EventSystem, error) {
	eventBus := metrics.InstrumentBus(event.NewMemoryBus())

	if err := os.MkdirAll(filepath.Dir(cfg.DeadLetterPath), DirPermission); err != nil {
		return nil, fmt.Errorf("%s: %w", LogMsgFailedCreateDeadLetterDir, err)
	}

	deadLetter, err := event.NewDeadLetterWriter(cfg.DeadLetterPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", LogMsgFailedCreateDeadLetterWriter, err)
	}

	retryPool := worker.NewPool(worker.DefaultRetryWorkers, worker.DefaultRetryQueueSize)
	retryPool.Start()

	publisher := event.NewResilientPublisher(eventBus, event.ResilientConfig{
		MaxRetries:   EventDefaultMaxRetries,
		RetryDelay:   EventDefaultRetryDelay,
		DeadLetter:   deadLetter,
		RetryPool:    retryPool,
		OnDeadLetter: metrics.CountDeadLetter,
	})

	if err := metrics.NewEventMetricsCollector().Register(eventBus); err != nil {
		return nil, fmt.Errorf("%s: %w", LogMsgFailedRegisterMetricsCollector, err)
	}

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", EventDefaultMaxRetries,
		"retry_delay", EventDefaultRetryDelay,
		"deadletter_path", cfg.DeadLetterPath)

	return &EventSystem{
		Bus:        eventBus,
		Publisher:  publisher,
		DeadLetter: deadLetter,
		RetryPool:  retryPool,
	}, nil
}
