package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/taskline/backend/domain"
	"github.com/taskline/backend/usecase"
)

// Notifier sends the new-task message to its assignee. A task with an
// attachment goes out as the document with a caption; otherwise as plain
// text. Delivery failures are the caller's to swallow.
type Notifier struct {
	sender Sender
}

func NewNotifier(sender Sender) *Notifier {
	return &Notifier{sender: sender}
}

func (n *Notifier) NotifyAssigned(ctx context.Context, userID int64, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	text := fmt.Sprintf("🆕 You have a new task (ID: %d):\n%s", task.ID, task.Description)

	if task.HasAttachment() {
		doc := tgbotapi.NewDocument(userID, tgbotapi.FileID(task.AttachmentID))
		doc.Caption = text
		_, err := n.sender.Send(doc)
		return err
	}

	_, err := n.sender.Send(tgbotapi.NewMessage(userID, text))
	return err
}

var _ usecase.Notifier = (*Notifier)(nil)
