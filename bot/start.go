package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Start registers the sender on first contact and greets them.
func (h *Handler) Start(ctx context.Context, msg *tgbotapi.Message) error {
	if _, err := h.roster.GetOrCreate(ctx, msg.From.ID, msg.From.UserName, fullName(msg.From)); err != nil {
		return h.replyError(msg.Chat.ID, err)
	}
	return h.reply(msg.Chat.ID, "Hi! I'm a task management bot.\nUse /menu to see the commands.")
}

// Menu shows the command keyboard.
func (h *Handler) Menu(ctx context.Context, msg *tgbotapi.Message) error {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton("/assign")),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton("/done")),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("/mytasks"),
			tgbotapi.NewKeyboardButton("/report"),
		),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton("/users")),
	)
	keyboard.ResizeKeyboard = true

	reply := tgbotapi.NewMessage(msg.Chat.ID, "📋 Menu:")
	reply.ReplyMarkup = keyboard
	_, err := h.sender.Send(reply)
	return err
}
