package bot

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/taskline/backend/domain"
	"github.com/taskline/backend/repository"
	rosterUC "github.com/taskline/backend/usecase/roster"
	summaryUC "github.com/taskline/backend/usecase/summary"
	taskUC "github.com/taskline/backend/usecase/task"
)

// Sender is the outbound side of the chat API; *tgbotapi.BotAPI satisfies it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Handler carries the use cases behind every bot command.
type Handler struct {
	sender  Sender
	roster  *rosterUC.UseCase
	tasks   *taskUC.UseCase
	summary *summaryUC.UseCase
	dialogs repository.DialogRepository
	logger  *zap.Logger
}

func NewHandler(
	sender Sender,
	roster *rosterUC.UseCase,
	tasks *taskUC.UseCase,
	summary *summaryUC.UseCase,
	dialogs repository.DialogRepository,
	logger *zap.Logger,
) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		sender:  sender,
		roster:  roster,
		tasks:   tasks,
		summary: summary,
		dialogs: dialogs,
		logger:  logger,
	}
}

func (h *Handler) reply(chatID int64, text string) error {
	_, err := h.sender.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

func (h *Handler) clearDialog(ctx context.Context, chatID int64) {
	if err := h.dialogs.Clear(ctx, chatID); err != nil {
		h.logger.Warn("failed to clear dialog", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// endFlow closes the dialog for every settled outcome of a multi-step flow.
// An unclassified error keeps the dialog alive so the user can retry the
// step instead of restarting the command.
func (h *Handler) endFlow(ctx context.Context, chatID int64, err error) {
	if err == nil {
		h.clearDialog(ctx, chatID)
		return
	}
	var dErr *domain.Error
	if errors.As(err, &dErr) {
		h.clearDialog(ctx, chatID)
	}
}

// replyError turns a domain error into the user-facing answer. Unclassified
// errors get a generic message and are reported to the caller for logging;
// everything else is fully recovered here.
func (h *Handler) replyError(chatID int64, err error) error {
	var text string
	switch {
	case errors.Is(err, domain.ErrAssigneeNotFound):
		text = "❌ No user with that id is registered."
	case errors.Is(err, domain.ErrTaskAlreadyDone):
		text = "⚠️ That task is already marked as done."
	case errors.Is(err, domain.ErrTaskNotFound):
		text = "❌ Task not found or not assigned to you."
	case errors.Is(err, domain.ErrNoTasks):
		text = "❌ There are no tasks to report on yet."
	default:
		if replyErr := h.reply(chatID, "Something went wrong, please try again."); replyErr != nil {
			return errors.Join(err, replyErr)
		}
		return err
	}
	return h.reply(chatID, text)
}

func fullName(user *tgbotapi.User) string {
	if user == nil {
		return ""
	}
	if user.LastName == "" {
		return user.FirstName
	}
	return user.FirstName + " " + user.LastName
}
