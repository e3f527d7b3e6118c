package usecase

import "github.com/taskline/backend/domain"

// ChartSink turns an ordered (day, count) sequence into a displayable image.
// RenderPlaceholder covers the no-completions case with an explanatory image
// instead of an empty chart.
type ChartSink interface {
	RenderHistogram(buckets []domain.DayCount) ([]byte, error)
	RenderPlaceholder(message string) ([]byte, error)
}

// TableSink turns sheets of header+rows into a downloadable tabular artifact.
type TableSink interface {
	Write(sheets []domain.Sheet) ([]byte, error)
}
