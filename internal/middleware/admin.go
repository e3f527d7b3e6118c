package middleware

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/taskline/backend/bot"
	rosterUC "github.com/taskline/backend/usecase/roster"
)

// AdminOnly guards a bot command behind a fresh role lookup. The role is
// never cached on the dialog, so a role change takes effect immediately.
func AdminOnly(roster *rosterUC.UseCase, sender bot.Sender, logger *zap.Logger) func(bot.HandlerFunc) bot.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, msg *tgbotapi.Message) error {
			isAdmin, err := roster.IsAdmin(ctx, msg.From.ID)
			if err != nil {
				logger.Error("admin check failed", zap.Int64("user_id", msg.From.ID), zap.Error(err))
				return err
			}
			if !isAdmin {
				_, err := sender.Send(tgbotapi.NewMessage(msg.Chat.ID, "This command is for admins only."))
				return err
			}
			return next(ctx, msg)
		}
	}
}
