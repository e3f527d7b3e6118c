package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/taskline/backend/domain"
	"github.com/taskline/backend/internal/infrastructure/outbox"
	"github.com/taskline/backend/usecase"
)

// ConnectionHealth abstracts the connection monitor functionality.
type ConnectionHealth interface {
	IsOnline() bool
}

// ProcessorConfig controls how frequently the outbox is drained.
type ProcessorConfig struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
}

// NotifyProcessor redelivers queued task notifications on a schedule.
// Items that exhaust their retry budget are dropped; notifications are
// best-effort by contract.
type NotifyProcessor struct {
	store    *outbox.Store
	monitor  ConnectionHealth
	notifier usecase.Notifier
	logger   *zap.Logger
	cron     *cron.Cron
	cfg      ProcessorConfig
}

func NewNotifyProcessor(
	store *outbox.Store,
	monitor ConnectionHealth,
	notifier usecase.Notifier,
	logger *zap.Logger,
	cfg ProcessorConfig,
) *NotifyProcessor {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	np := &NotifyProcessor{
		store:    store,
		monitor:  monitor,
		notifier: notifier,
		logger:   logger,
		cfg:      cfg,
		cron:     cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = np.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if err := np.Drain(ctx); err != nil {
			np.logger.Error("outbox drain failed", zap.Error(err))
		}
	})

	return np
}

// Start launches the cron scheduler.
func (np *NotifyProcessor) Start() {
	if np == nil || np.cron == nil {
		return
	}
	np.cron.Start()
	np.logger.Info("notification processor started")
}

// Stop gracefully stops the scheduler.
func (np *NotifyProcessor) Stop(ctx context.Context) {
	if np == nil || np.cron == nil {
		return
	}
	stopCtx := np.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	np.logger.Info("notification processor stopped")
}

// Drain attempts redelivery for the pending batch. While the backing
// services are offline the batch is left untouched so attempts are not
// burned on deliveries that cannot succeed.
func (np *NotifyProcessor) Drain(ctx context.Context) error {
	if np == nil || np.store == nil {
		return nil
	}
	if np.monitor != nil && !np.monitor.IsOnline() {
		np.logger.Debug("skipping outbox drain, services offline")
		return nil
	}

	items, err := np.store.GetBatch(np.cfg.BatchSize)
	if err != nil {
		return err
	}

	for _, item := range items {
		if err := np.deliver(ctx, item); err != nil {
			np.logger.Warn("notification redelivery failed",
				zap.String("item_id", item.ID),
				zap.Int64("user_id", item.UserID),
				zap.Error(err))

			item.Attempts++
			if item.Attempts >= np.cfg.MaxRetries {
				np.logger.Warn("dropping notification (max retries reached)",
					zap.String("item_id", item.ID))
				_ = np.store.Remove(item)
				continue
			}

			if err := np.store.Remove(item); err != nil {
				np.logger.Warn("failed to remove outbox item", zap.Error(err))
			}
			if err := np.store.Requeue(item); err != nil {
				np.logger.Error("failed to requeue outbox item", zap.Error(err))
			}
			continue
		}

		if err := np.store.Remove(item); err != nil {
			np.logger.Warn("failed to purge delivered item", zap.Error(err))
		}
	}
	return nil
}

// Size returns the number of pending notifications.
func (np *NotifyProcessor) Size() int {
	if np == nil || np.store == nil {
		return 0
	}
	size, err := np.store.Size()
	if err != nil {
		return 0
	}
	return size
}

// Enqueue persists a notification for later redelivery.
func (np *NotifyProcessor) Enqueue(item outbox.Item) error {
	if np == nil || np.store == nil {
		return fmt.Errorf("notification processor not configured")
	}
	return np.store.Enqueue(item)
}

func (np *NotifyProcessor) deliver(ctx context.Context, item outbox.Item) error {
	if ctx == nil {
		ctx = context.Background()
	}
	var task domain.Task
	if err := json.Unmarshal(item.Task, &task); err != nil {
		return err
	}
	return np.notifier.NotifyAssigned(ctx, item.UserID, &task)
}
