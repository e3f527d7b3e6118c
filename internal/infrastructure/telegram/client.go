package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/taskline/backend/internal/config"
)

// NewBot authorizes against the Bot API; the round trip validates the token.
func NewBot(cfg config.TelegramConfig, logger *zap.Logger) (*tgbotapi.BotAPI, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, err
	}

	logger.Info("authorized on telegram", zap.String("username", api.Self.UserName))
	return api, nil
}
