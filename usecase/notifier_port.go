package usecase

import (
	"context"

	"github.com/taskline/backend/domain"
)

// Notifier delivers the new-task message to its assignee. Implementations own
// the transport; the content branch (attachment with caption vs plain text)
// is decided by the implementation from the task itself.
type Notifier interface {
	NotifyAssigned(ctx context.Context, userID int64, task *domain.Task) error
}

// NotificationQueue accepts notifications whose immediate delivery failed so
// they can be retried later with a bounded attempt count.
type NotificationQueue interface {
	EnqueueAssigned(ctx context.Context, userID int64, task *domain.Task) error
}
