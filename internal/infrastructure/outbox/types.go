package outbox

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Item is a task-assignment notification whose immediate delivery failed and
// that is awaiting redelivery. Task holds the serialized domain.Task.
type Item struct {
	ID       string          `json:"id"`
	UserID   int64           `json:"user_id"`
	Task     json.RawMessage `json:"task"`
	Attempts int             `json:"attempts"`
	QueuedAt time.Time       `json:"queued_at"`

	bucketKey []byte
}

func (i *Item) normalize() {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.QueuedAt.IsZero() {
		i.QueuedAt = time.Now()
	}
}
