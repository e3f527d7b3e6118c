package task

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/taskline/backend/domain"
	"github.com/taskline/backend/repository"
	"github.com/taskline/backend/usecase"
)

// UseCase implements the task lifecycle: creation with an assignee guard and
// the one-way assigned->done transition that records a completion report.
type UseCase struct {
	tasks    repository.TaskRepository
	users    repository.UserRepository
	notifier usecase.Notifier
	queue    usecase.NotificationQueue
	loc      *time.Location
	logger   *zap.Logger
}

func New(
	tasks repository.TaskRepository,
	users repository.UserRepository,
	notifier usecase.Notifier,
	queue usecase.NotificationQueue,
	loc *time.Location,
	logger *zap.Logger,
) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:    tasks,
		users:    users,
		notifier: notifier,
		queue:    queue,
		loc:      loc,
		logger:   logger,
	}
}

// Create persists a task for an existing user and signals the notification
// path exactly once. Delivery is best-effort: a failed send is logged and
// handed to the retry queue, never surfaced to the caller.
func (uc *UseCase) Create(ctx context.Context, assigneeID int64, description, attachmentID string) (*domain.Task, error) {
	if _, err := uc.users.GetByID(ctx, assigneeID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrAssigneeNotFound
		}
		return nil, err
	}

	task, err := uc.tasks.Create(ctx, &domain.Task{
		Description:  description,
		AssignedTo:   assigneeID,
		Status:       domain.TaskStatusAssigned,
		AttachmentID: attachmentID,
	})
	if err != nil {
		return nil, err
	}

	uc.notify(ctx, assigneeID, task)
	return task, nil
}

// Complete marks the requester's task as done and records the completion
// report atomically, both stamped with one shared instant in the display
// time zone.
func (uc *UseCase) Complete(ctx context.Context, taskID, requesterID int64) (*domain.Task, error) {
	requester, err := uc.users.GetByID(ctx, requesterID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	now := time.Now().In(uc.loc)
	text := fmt.Sprintf("User %s completed the task.", requester.Label())

	task, report, err := uc.tasks.Complete(ctx, taskID, requesterID, now, text)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("task completed",
		zap.Int64("task_id", task.ID),
		zap.Int64("user_id", requesterID),
		zap.Int64("report_id", report.ID))
	return task, nil
}

// ListForUser returns the user's tasks in creation order.
func (uc *UseCase) ListForUser(ctx context.Context, userID int64) ([]domain.Task, error) {
	return uc.tasks.ListByAssignee(ctx, userID)
}

// ListAll returns every task; used by reporting.
func (uc *UseCase) ListAll(ctx context.Context) ([]domain.Task, error) {
	return uc.tasks.ListAll(ctx)
}

func (uc *UseCase) notify(ctx context.Context, userID int64, task *domain.Task) {
	if uc.notifier == nil {
		return
	}
	err := uc.notifier.NotifyAssigned(ctx, userID, task)
	if err == nil {
		return
	}
	uc.logger.Warn("task notification failed",
		zap.Int64("task_id", task.ID),
		zap.Int64("user_id", userID),
		zap.Error(err))
	if uc.queue == nil {
		return
	}
	if err := uc.queue.EnqueueAssigned(ctx, userID, task); err != nil {
		uc.logger.Error("failed to queue task notification",
			zap.Int64("task_id", task.ID),
			zap.Error(err))
	}
}
