package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// MyTasks lists the sender's tasks in creation order.
func (h *Handler) MyTasks(ctx context.Context, msg *tgbotapi.Message) error {
	tasks, err := h.tasks.ListForUser(ctx, msg.From.ID)
	if err != nil {
		return h.replyError(msg.Chat.ID, err)
	}
	if len(tasks) == 0 {
		return h.reply(msg.Chat.ID, "📭 You have no tasks.")
	}

	var b strings.Builder
	b.WriteString("📋 Your tasks:\n")
	for _, t := range tasks {
		fmt.Fprintf(&b, "ID: %d, status: %s, text: %s\n", t.ID, t.Status, t.Description)
	}
	return h.reply(msg.Chat.ID, b.String())
}
