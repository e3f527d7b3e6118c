package repository

import (
	"context"
	"time"

	"github.com/taskline/backend/domain"
)

type TaskRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	// ListByAssignee returns the user's tasks in creation order.
	ListByAssignee(ctx context.Context, userID int64) ([]domain.Task, error)
	ListAll(ctx context.Context) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	// Complete performs the assigned->done transition for the requester's task
	// and records the completion report in the same transaction. Both rows use
	// the provided instant. It fails with domain.ErrTaskNotFound when the task
	// does not exist or belongs to someone else, and domain.ErrTaskAlreadyDone
	// when the transition already happened.
	Complete(ctx context.Context, taskID, requesterID int64, now time.Time, reportText string) (*domain.Task, *domain.Report, error)
}
