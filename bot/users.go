package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Users lists every registered user for the admin.
func (h *Handler) Users(ctx context.Context, msg *tgbotapi.Message) error {
	users, err := h.roster.List(ctx)
	if err != nil {
		return h.replyError(msg.Chat.ID, err)
	}
	if len(users) == 0 {
		return h.reply(msg.Chat.ID, "No users found.")
	}

	var b strings.Builder
	b.WriteString("👥 Users:\n")
	for _, u := range users {
		fmt.Fprintf(&b, "ID: %d, username: %s, admin: %t\n", u.ID, u.Label(), u.IsAdmin)
	}
	return h.reply(msg.Chat.ID, b.String())
}
