package domain

import "time"

// DialogState identifies the step of a multi-message command flow.
type DialogState string

const (
	DialogIdle             DialogState = ""
	DialogAwaitingAssignee DialogState = "awaiting_assignee"
	DialogAwaitingTaskText DialogState = "awaiting_task_text"
	DialogAwaitingDoneID   DialogState = "awaiting_done_id"
)

// Dialog holds short-lived per-chat conversation state stored in Redis.
// Abandoned dialogs expire with the store TTL; starting a new command
// replaces any in-flight state.
type Dialog struct {
	ChatID     int64       `json:"chat_id"`
	State      DialogState `json:"state"`
	AssigneeID int64       `json:"assignee_id,omitempty"`
	StartedAt  time.Time   `json:"started_at"`
}

func (d *Dialog) IsIdle() bool {
	return d == nil || d.State == DialogIdle
}
