package domain

import "time"

// Task statuses. A task starts as assigned and transitions to done exactly
// once; done is terminal.
const (
	TaskStatusAssigned = "assigned"
	TaskStatusDone     = "done"
)

// Task is a unit of work assigned to exactly one user. The assignee is fixed
// at creation; DoneAt is set iff the task has been completed.
type Task struct {
	ID           int64      `json:"id"`
	Description  string     `json:"description"`
	AssignedTo   int64      `json:"assigned_to"`
	Status       string     `json:"status"`
	AttachmentID string     `json:"attachment_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	DoneAt       *time.Time `json:"done_at,omitempty"`
}

func (t *Task) IsDone() bool {
	return t != nil && t.Status == TaskStatusDone
}

// HasAttachment reports whether the task carries a file reference set at
// creation time.
func (t *Task) HasAttachment() bool {
	return t != nil && t.AttachmentID != ""
}
