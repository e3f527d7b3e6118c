package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/taskline/backend/domain"
)

// AssignStart opens the two-step assignment flow: assignee id, then the task
// text. Admin gating happens in middleware before this runs.
func (h *Handler) AssignStart(ctx context.Context, msg *tgbotapi.Message) error {
	if err := h.dialogs.Save(ctx, &domain.Dialog{
		ChatID: msg.Chat.ID,
		State:  domain.DialogAwaitingAssignee,
	}); err != nil {
		return err
	}
	return h.reply(msg.Chat.ID, "👤 Who (user id) should get the task?")
}

// AssignAssignee consumes the assignee id step. Non-numeric input re-prompts
// without losing the flow.
func (h *Handler) AssignAssignee(ctx context.Context, msg *tgbotapi.Message) error {
	assigneeID, err := strconv.ParseInt(msg.Text, 10, 64)
	if err != nil {
		return h.reply(msg.Chat.ID, "❌ Enter the user id as a number.")
	}

	if err := h.dialogs.Save(ctx, &domain.Dialog{
		ChatID:     msg.Chat.ID,
		State:      domain.DialogAwaitingTaskText,
		AssigneeID: assigneeID,
	}); err != nil {
		return err
	}
	return h.reply(msg.Chat.ID, "✏️ Enter the task text:")
}

// AssignTaskText consumes the final step and creates the task. A document in
// the message becomes the task attachment; its caption doubles as the
// description when no text was sent.
func (h *Handler) AssignTaskText(ctx context.Context, msg *tgbotapi.Message) error {
	dialog, err := h.dialogs.Get(ctx, msg.Chat.ID)
	if err != nil {
		if errors.Is(err, domain.ErrDialogNotFound) {
			return h.reply(msg.Chat.ID, "The assignment flow expired, start again with /assign.")
		}
		return err
	}

	description := msg.Text
	attachmentID := ""
	if msg.Document != nil {
		attachmentID = msg.Document.FileID
		if description == "" {
			description = msg.Caption
		}
	}

	task, err := h.tasks.Create(ctx, dialog.AssigneeID, description, attachmentID)
	h.endFlow(ctx, msg.Chat.ID, err)
	if err != nil {
		return h.replyError(msg.Chat.ID, err)
	}
	return h.reply(msg.Chat.ID, fmt.Sprintf("✅ Task assigned to user %d (ID: %d)", dialog.AssigneeID, task.ID))
}
