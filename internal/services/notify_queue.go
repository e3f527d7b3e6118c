package services

import (
	"context"
	"encoding/json"

	"github.com/taskline/backend/domain"
	"github.com/taskline/backend/internal/infrastructure/outbox"
	"github.com/taskline/backend/usecase"
)

// NotifyQueue adapts the processor to the NotificationQueue port so use cases
// stay storage-agnostic.
type NotifyQueue struct {
	processor *NotifyProcessor
}

func NewNotifyQueue(processor *NotifyProcessor) *NotifyQueue {
	return &NotifyQueue{processor: processor}
}

func (q *NotifyQueue) EnqueueAssigned(ctx context.Context, userID int64, task *domain.Task) error {
	if q.processor == nil || task == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(task)
	if err != nil {
		return err
	}
	return q.processor.Enqueue(outbox.Item{
		UserID: userID,
		Task:   payload,
	})
}

var _ usecase.NotificationQueue = (*NotifyQueue)(nil)
