package bot

import (
	"context"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/taskline/backend/domain"
)

func commandMessage(text string) *tgbotapi.Message {
	msg := &tgbotapi.Message{
		Text: text,
		Chat: &tgbotapi.Chat{ID: 1},
		From: &tgbotapi.User{ID: 42},
	}
	if len(text) > 0 && text[0] == '/' {
		msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(text)}}
	}
	return msg
}

func TestRouter_CommandDispatch(t *testing.T) {
	r := NewRouter()

	var called string
	r.Command("start", func(_ context.Context, _ *tgbotapi.Message) error {
		called = "start"
		return nil
	})

	if err := r.Dispatch(context.Background(), commandMessage("/start"), domain.DialogIdle); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if called != "start" {
		t.Errorf("called = %q, want start", called)
	}
}

func TestRouter_CommandBeatsDialogState(t *testing.T) {
	r := NewRouter()

	var called string
	r.Command("assign", func(_ context.Context, _ *tgbotapi.Message) error {
		called = "command"
		return nil
	})
	r.State(domain.DialogAwaitingDoneID, func(_ context.Context, _ *tgbotapi.Message) error {
		called = "state"
		return nil
	})

	// A slash command typed mid-flow must escape the flow.
	if err := r.Dispatch(context.Background(), commandMessage("/assign"), domain.DialogAwaitingDoneID); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if called != "command" {
		t.Errorf("called = %q, want command", called)
	}
}

func TestRouter_StateDispatch(t *testing.T) {
	r := NewRouter()

	var got string
	r.State(domain.DialogAwaitingAssignee, func(_ context.Context, msg *tgbotapi.Message) error {
		got = msg.Text
		return nil
	})

	if err := r.Dispatch(context.Background(), commandMessage("42"), domain.DialogAwaitingAssignee); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if got != "42" {
		t.Errorf("state handler got %q, want 42", got)
	}
}

func TestRouter_IdleNonCommandIgnored(t *testing.T) {
	r := NewRouter()

	r.State(domain.DialogAwaitingAssignee, func(_ context.Context, _ *tgbotapi.Message) error {
		t.Error("state handler must not run for an idle chat")
		return nil
	})

	if err := r.Dispatch(context.Background(), commandMessage("hello"), domain.DialogIdle); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
}

func TestRouter_Fallback(t *testing.T) {
	r := NewRouter()

	var called bool
	r.Fallback(func(_ context.Context, _ *tgbotapi.Message) error {
		called = true
		return nil
	})

	if err := r.Dispatch(context.Background(), commandMessage("/unknown"), domain.DialogIdle); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if !called {
		t.Error("fallback must catch unregistered commands")
	}
}
