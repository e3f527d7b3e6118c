package export

import (
	"bytes"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/taskline/backend/domain"
	"github.com/taskline/backend/usecase"
)

const (
	chartWidth  = 800
	chartHeight = 400
)

// ChartRenderer produces PNG bar charts from histogram buckets.
type ChartRenderer struct {
	title string
}

// NewChartRenderer builds the chart sink. The title heads every rendered
// histogram.
func NewChartRenderer(title string) *ChartRenderer {
	if title == "" {
		title = "Completed tasks per day"
	}
	return &ChartRenderer{title: title}
}

// RenderHistogram draws one bar per day, days ascending left to right.
func (r *ChartRenderer) RenderHistogram(buckets []domain.DayCount) ([]byte, error) {
	bars := make([]chart.Value, 0, len(buckets))
	maxCount := 0
	for _, b := range buckets {
		bars = append(bars, chart.Value{
			Label: b.Day,
			Value: float64(b.Count),
		})
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}

	graph := chart.BarChart{
		Title:    r.title,
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: 40,
		XAxis: chart.Style{
			TextRotationDegrees: 45,
		},
		// The derived y-range has zero span when every bar holds the same
		// count, which go-chart refuses to render. Fix the range explicitly.
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: float64(maxCount + 1)},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderPlaceholder draws an empty frame whose title carries the explanatory
// message, so the admin still receives an image when nothing is done yet.
func (r *ChartRenderer) RenderPlaceholder(message string) ([]byte, error) {
	graph := chart.Chart{
		Title:  message,
		Width:  chartWidth,
		Height: chartHeight,
		XAxis: chart.XAxis{
			Style: chart.Style{Hidden: true},
		},
		YAxis: chart.YAxis{
			Style: chart.Style{Hidden: true},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: []float64{0, 1},
				YValues: []float64{0, 0},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var _ usecase.ChartSink = (*ChartRenderer)(nil)
