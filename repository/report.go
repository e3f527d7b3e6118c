package repository

import (
	"context"

	"github.com/taskline/backend/domain"
)

// ReportRepository covers the read side of completion records; writes happen
// inside TaskRepository.Complete.
type ReportRepository interface {
	ListAll(ctx context.Context) ([]domain.Report, error)
}
