package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskline/backend/domain"
	"github.com/taskline/backend/repository"
)

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

const taskColumns = `id, description, assigned_to, status, attachment_id, created_at, done_at`

func (r *taskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	const query = `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE id = $1
	`
	return scanTask(r.pool.QueryRow(ctx, query, id))
}

func (r *taskRepository) ListByAssignee(ctx context.Context, userID int64) ([]domain.Task, error) {
	const query = `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE assigned_to = $1
	ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTasks(rows)
}

func (r *taskRepository) ListAll(ctx context.Context) ([]domain.Task, error) {
	const query = `
	SELECT ` + taskColumns + `
	FROM tasks
	ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTasks(rows)
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.Status == "" {
		task.Status = domain.TaskStatusAssigned
	}

	const query = `
	INSERT INTO tasks (description, assigned_to, status, attachment_id)
	VALUES ($1, $2, $3, $4)
	RETURNING id, created_at
	`
	if err := r.pool.QueryRow(ctx, query,
		task.Description,
		task.AssignedTo,
		task.Status,
		task.AttachmentID,
	).Scan(&task.ID, &task.CreatedAt); err != nil {
		return nil, err
	}
	return task, nil
}

func (r *taskRepository) Complete(ctx context.Context, taskID, requesterID int64, now time.Time, reportText string) (*domain.Task, *domain.Report, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	// The conditional update is the serialization point: of any concurrent
	// completions for the same task id, exactly one matches status='assigned'.
	const update = `
	UPDATE tasks
	SET status = $3, done_at = $4
	WHERE id = $1 AND assigned_to = $2 AND status = $5
	RETURNING ` + taskColumns + `
	`
	task, err := scanTask(tx.QueryRow(ctx, update,
		taskID, requesterID, domain.TaskStatusDone, now, domain.TaskStatusAssigned))
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return nil, nil, r.classifyMiss(ctx, taskID, requesterID)
		}
		return nil, nil, err
	}

	const insert = `
	INSERT INTO reports (task_id, user_id, report_text, created_at)
	VALUES ($1, $2, $3, $4)
	RETURNING id
	`
	report := &domain.Report{
		TaskID:    task.ID,
		UserID:    requesterID,
		Text:      reportText,
		CreatedAt: now,
	}
	if err := tx.QueryRow(ctx, insert, report.TaskID, report.UserID, report.Text, report.CreatedAt).Scan(&report.ID); err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}
	return task, report, nil
}

// classifyMiss tells a double completion apart from the generic miss. Only a
// task that exists, belongs to the requester and is already done surfaces as
// AlreadyDone; everything else stays deliberately ambiguous.
func (r *taskRepository) classifyMiss(ctx context.Context, taskID, requesterID int64) error {
	task, err := r.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return domain.ErrTaskNotFound
		}
		return err
	}
	if task.AssignedTo == requesterID && task.IsDone() {
		return domain.ErrTaskAlreadyDone
	}
	return domain.ErrTaskNotFound
}

func scanTask(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Task, error) {
	var task domain.Task
	var done *time.Time

	if err := row.Scan(
		&task.ID,
		&task.Description,
		&task.AssignedTo,
		&task.Status,
		&task.AttachmentID,
		&task.CreatedAt,
		&done,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	task.DoneAt = done
	return &task, nil
}

func collectTasks(rows pgx.Rows) ([]domain.Task, error) {
	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}
