package bot

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/taskline/backend/domain"
)

// DoneStart opens the completion flow: one step, the task id.
func (h *Handler) DoneStart(ctx context.Context, msg *tgbotapi.Message) error {
	if err := h.dialogs.Save(ctx, &domain.Dialog{
		ChatID: msg.Chat.ID,
		State:  domain.DialogAwaitingDoneID,
	}); err != nil {
		return err
	}
	return h.reply(msg.Chat.ID, "🔢 Which task id did you complete?")
}

// DoneTaskID consumes the task id and performs the completion. Non-numeric
// input re-prompts without losing the flow, and a transient failure keeps
// the step so the id can simply be resent; every settled outcome ends it.
func (h *Handler) DoneTaskID(ctx context.Context, msg *tgbotapi.Message) error {
	taskID, err := strconv.ParseInt(msg.Text, 10, 64)
	if err != nil {
		return h.reply(msg.Chat.ID, "❗ Task id must be a number.")
	}

	task, err := h.tasks.Complete(ctx, taskID, msg.From.ID)
	h.endFlow(ctx, msg.Chat.ID, err)
	if err != nil {
		return h.replyError(msg.Chat.ID, err)
	}
	return h.reply(msg.Chat.ID, fmt.Sprintf("✅ Task %d marked as done.", task.ID))
}
