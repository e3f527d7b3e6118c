package bot

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/taskline/backend/domain"
	"github.com/taskline/backend/repository"
	appLogger "github.com/taskline/backend/pkg/logger"
)

// Poller drives the bot off Telegram long polling. Updates are handled one
// at a time, each under its own timeout; there is no cross-update state
// outside the dialog store.
type Poller struct {
	api           *tgbotapi.BotAPI
	router        *Router
	dialogs       repository.DialogRepository
	handleTimeout time.Duration
	pollTimeout   time.Duration
	logger        *zap.Logger
}

func NewPoller(
	api *tgbotapi.BotAPI,
	router *Router,
	dialogs repository.DialogRepository,
	handleTimeout, pollTimeout time.Duration,
	logger *zap.Logger,
) *Poller {
	if handleTimeout <= 0 {
		handleTimeout = 5 * time.Second
	}
	if pollTimeout <= 0 {
		pollTimeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{
		api:           api,
		router:        router,
		dialogs:       dialogs,
		handleTimeout: handleTimeout,
		pollTimeout:   pollTimeout,
		logger:        logger,
	}
}

// Run blocks until the context is canceled or the update channel closes.
func (p *Poller) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = int(p.pollTimeout.Seconds())

	updates := p.api.GetUpdatesChan(cfg)
	p.logger.Info("bot polling started", zap.String("username", p.api.Self.UserName))

	for {
		select {
		case <-ctx.Done():
			p.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			p.handle(ctx, update)
		}
	}
}

func (p *Poller) handle(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	handleCtx, cancel := context.WithTimeout(ctx, p.handleTimeout)
	defer cancel()
	handleCtx = appLogger.ContextWithUpdateID(handleCtx, update.UpdateID)

	state := domain.DialogIdle
	if dialog, err := p.dialogs.Get(handleCtx, msg.Chat.ID); err == nil {
		state = dialog.State
	}

	if err := p.router.Dispatch(handleCtx, msg, state); err != nil {
		appLogger.WithContext(handleCtx, p.logger).Error("update handling failed",
			zap.Int64("chat_id", msg.Chat.ID),
			zap.Error(err))
	}
}
