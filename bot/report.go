package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	chartFileName    = "report.png"
	workbookFileName = "report.xlsx"
)

// Report generates the completion chart and the task workbook and sends both
// to the requesting admin.
func (h *Handler) Report(ctx context.Context, msg *tgbotapi.Message) error {
	summary, err := h.summary.Generate(ctx)
	if err != nil {
		return h.replyError(msg.Chat.ID, err)
	}

	photo := tgbotapi.NewPhoto(msg.Chat.ID, tgbotapi.FileBytes{
		Name:  chartFileName,
		Bytes: summary.ChartPNG,
	})
	photo.Caption = "📊 Completed tasks report"
	if _, err := h.sender.Send(photo); err != nil {
		return err
	}

	doc := tgbotapi.NewDocument(msg.Chat.ID, tgbotapi.FileBytes{
		Name:  workbookFileName,
		Bytes: summary.Spreadsheet,
	})
	doc.Caption = "📁 Task report workbook"
	_, err = h.sender.Send(doc)
	return err
}
