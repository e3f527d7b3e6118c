package domain

import "time"

// Report is an immutable completion record written at the moment a task
// transitions to done, in the same transaction as that transition.
type Report struct {
	ID        int64     `json:"id"`
	TaskID    int64     `json:"task_id"`
	UserID    int64     `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
