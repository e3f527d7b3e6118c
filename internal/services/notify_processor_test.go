package services

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/taskline/backend/domain"
	"github.com/taskline/backend/internal/infrastructure/outbox"
)

type fakeNotifier struct {
	delivered []int64
	err       error
}

func (n *fakeNotifier) NotifyAssigned(_ context.Context, userID int64, _ *domain.Task) error {
	if n.err != nil {
		return n.err
	}
	n.delivered = append(n.delivered, userID)
	return nil
}

type alwaysOnline struct{}

func (alwaysOnline) IsOnline() bool { return true }

type alwaysOffline struct{}

func (alwaysOffline) IsOnline() bool { return false }

func openStore(t *testing.T) *outbox.Store {
	t.Helper()
	store, err := outbox.Open(filepath.Join(t.TempDir(), "outbox.db"), "outbox")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func enqueueTask(t *testing.T, store *outbox.Store, userID int64) {
	t.Helper()
	payload, err := json.Marshal(&domain.Task{ID: 7, Description: "work", AssignedTo: userID})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := store.Enqueue(outbox.Item{UserID: userID, Task: payload}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
}

func TestDrain_DeliversAndPurges(t *testing.T) {
	store := openStore(t)
	notifier := &fakeNotifier{}
	np := NewNotifyProcessor(store, alwaysOnline{}, notifier, nil, ProcessorConfig{
		Interval:   time.Minute,
		MaxRetries: 3,
	})

	enqueueTask(t, store, 42)
	enqueueTask(t, store, 43)

	if err := np.Drain(context.Background()); err != nil {
		t.Fatalf("Drain: %v", err)
	}

	if len(notifier.delivered) != 2 {
		t.Errorf("delivered = %v, want both users", notifier.delivered)
	}
	if size := np.Size(); size != 0 {
		t.Errorf("outbox size after drain = %d, want 0", size)
	}
}

func TestDrain_OfflineLeavesBatchUntouched(t *testing.T) {
	store := openStore(t)
	notifier := &fakeNotifier{}
	np := NewNotifyProcessor(store, alwaysOffline{}, notifier, nil, ProcessorConfig{
		Interval:   time.Minute,
		MaxRetries: 3,
	})

	enqueueTask(t, store, 42)

	if err := np.Drain(context.Background()); err != nil {
		t.Fatalf("Drain: %v", err)
	}

	if len(notifier.delivered) != 0 {
		t.Errorf("no delivery may be attempted while offline, got %v", notifier.delivered)
	}
	items, err := store.GetBatch(10)
	if err != nil {
		t.Fatalf("GetBatch: %v", err)
	}
	if len(items) != 1 || items[0].Attempts != 0 {
		t.Errorf("offline drain must not consume attempts, items = %+v", items)
	}
}

func TestDrain_FailureIncrementsAttempts(t *testing.T) {
	store := openStore(t)
	notifier := &fakeNotifier{err: errors.New("telegram unavailable")}
	np := NewNotifyProcessor(store, alwaysOnline{}, notifier, nil, ProcessorConfig{
		Interval:   time.Minute,
		MaxRetries: 3,
	})

	enqueueTask(t, store, 42)

	if err := np.Drain(context.Background()); err != nil {
		t.Fatalf("Drain: %v", err)
	}

	items, err := store.GetBatch(10)
	if err != nil {
		t.Fatalf("GetBatch: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("item must stay queued, got %d items", len(items))
	}
	if items[0].Attempts != 1 {
		t.Errorf("attempts = %d, want 1", items[0].Attempts)
	}
}

func TestDrain_MaxRetriesDropsItem(t *testing.T) {
	store := openStore(t)
	notifier := &fakeNotifier{err: errors.New("telegram unavailable")}
	np := NewNotifyProcessor(store, alwaysOnline{}, notifier, nil, ProcessorConfig{
		Interval:   time.Minute,
		MaxRetries: 2,
	})

	enqueueTask(t, store, 42)

	for i := 0; i < 2; i++ {
		if err := np.Drain(context.Background()); err != nil {
			t.Fatalf("Drain %d: %v", i, err)
		}
	}

	if size := np.Size(); size != 0 {
		t.Errorf("exhausted item must be dropped, size = %d", size)
	}
}

func TestNotifyQueue_EnqueuesSerializedTask(t *testing.T) {
	store := openStore(t)
	np := NewNotifyProcessor(store, alwaysOnline{}, &fakeNotifier{}, nil, ProcessorConfig{Interval: time.Minute})
	queue := NewNotifyQueue(np)

	task := &domain.Task{ID: 7, Description: "work", AssignedTo: 42}
	if err := queue.EnqueueAssigned(context.Background(), 42, task); err != nil {
		t.Fatalf("EnqueueAssigned: %v", err)
	}

	items, err := store.GetBatch(1)
	if err != nil {
		t.Fatalf("GetBatch: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("want one queued item, got %d", len(items))
	}
	if items[0].UserID != 42 {
		t.Errorf("queued user id = %d", items[0].UserID)
	}

	var decoded domain.Task
	if err := json.Unmarshal(items[0].Task, &decoded); err != nil {
		t.Fatalf("queued task does not decode: %v", err)
	}
	if decoded.ID != 7 || decoded.Description != "work" {
		t.Errorf("decoded task = %+v", decoded)
	}
}

func TestNotifyQueue_NilTask(t *testing.T) {
	queue := NewNotifyQueue(nil)
	if err := queue.EnqueueAssigned(context.Background(), 42, nil); err == nil {
		t.Error("nil task must be rejected")
	}
}
