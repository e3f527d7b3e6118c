package repository

import (
	"context"

	"github.com/taskline/backend/domain"
)

type DialogRepository interface {
	Get(ctx context.Context, chatID int64) (*domain.Dialog, error)
	Save(ctx context.Context, dialog *domain.Dialog) error
	Clear(ctx context.Context, chatID int64) error
}
