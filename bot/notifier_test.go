package bot

import (
	"context"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/taskline/backend/domain"
)

func TestNotifier_PlainText(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotifier(sender)

	task := &domain.Task{ID: 7, Description: "write docs", AssignedTo: 42}
	if err := n.NotifyAssigned(context.Background(), 42, task); err != nil {
		t.Fatalf("NotifyAssigned: %v", err)
	}

	if len(sender.sent) != 1 {
		t.Fatalf("want one send, got %d", len(sender.sent))
	}
	msg, ok := sender.sent[0].(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("sent %T, want MessageConfig", sender.sent[0])
	}
	if msg.ChatID != 42 {
		t.Errorf("chat id = %d, want the assignee", msg.ChatID)
	}
	if !strings.Contains(msg.Text, "ID: 7") || !strings.Contains(msg.Text, "write docs") {
		t.Errorf("notification text = %q", msg.Text)
	}
}

func TestNotifier_AttachmentGoesAsDocument(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotifier(sender)

	task := &domain.Task{ID: 7, Description: "review this", AssignedTo: 42, AttachmentID: "file-123"}
	if err := n.NotifyAssigned(context.Background(), 42, task); err != nil {
		t.Fatalf("NotifyAssigned: %v", err)
	}

	doc, ok := sender.sent[0].(tgbotapi.DocumentConfig)
	if !ok {
		t.Fatalf("sent %T, want DocumentConfig", sender.sent[0])
	}
	if !strings.Contains(doc.Caption, "review this") {
		t.Errorf("caption = %q", doc.Caption)
	}
}

func TestNotifier_CanceledContext(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotifier(sender)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := n.NotifyAssigned(ctx, 42, &domain.Task{ID: 7, Description: "work"})
	if err == nil {
		t.Fatal("canceled context must fail the delivery")
	}
	if len(sender.sent) != 0 {
		t.Error("nothing must be sent after cancellation")
	}
}
