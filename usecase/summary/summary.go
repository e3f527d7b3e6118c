package summary

import (
	"context"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/taskline/backend/domain"
	"github.com/taskline/backend/repository"
	"github.com/taskline/backend/usecase"
)

const (
	dayFormat       = "2006-01-02"
	timestampFormat = "2006-01-02 15:04:05"

	tasksSheetName   = "Tasks"
	reportsSheetName = "Reports"
)

// UseCase is the aggregation engine: it derives the per-day completion
// histogram and the full tabular export on demand, with no caching.
type UseCase struct {
	tasks   repository.TaskRepository
	reports repository.ReportRepository
	users   repository.UserRepository
	chart   usecase.ChartSink
	table   usecase.TableSink
	loc     *time.Location
	logger  *zap.Logger
}

func New(
	tasks repository.TaskRepository,
	reports repository.ReportRepository,
	users repository.UserRepository,
	chart usecase.ChartSink,
	table usecase.TableSink,
	loc *time.Location,
	logger *zap.Logger,
) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:   tasks,
		reports: reports,
		users:   users,
		chart:   chart,
		table:   table,
		loc:     loc,
		logger:  logger,
	}
}

// Generate produces both reporting artifacts. An empty task set yields
// domain.ErrNoTasks and no sink calls at all. A non-empty set with no
// completions still produces the spreadsheet plus a placeholder chart.
func (uc *UseCase) Generate(ctx context.Context) (*domain.Summary, error) {
	tasks, err := uc.tasks.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, domain.ErrNoTasks
	}

	users, err := uc.users.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	var chartPNG []byte
	buckets := uc.Histogram(tasks)
	if len(buckets) == 0 {
		chartPNG, err = uc.chart.RenderPlaceholder("No completed tasks yet")
	} else {
		chartPNG, err = uc.chart.RenderHistogram(buckets)
	}
	if err != nil {
		return nil, err
	}

	reports, err := uc.reports.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	sheets := []domain.Sheet{
		uc.taskSheet(tasks, byID),
		uc.reportSheet(reports),
	}
	workbook, err := uc.table.Write(sheets)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("report generated",
		zap.Int("tasks", len(tasks)),
		zap.Int("histogram_days", len(buckets)))

	return &domain.Summary{
		ChartPNG:    chartPNG,
		Spreadsheet: workbook,
	}, nil
}

// Histogram buckets completed tasks by the calendar day of DoneAt in the
// display time zone and returns the buckets in ascending day order.
func (uc *UseCase) Histogram(tasks []domain.Task) []domain.DayCount {
	counts := make(map[string]int)
	for _, t := range tasks {
		if !t.IsDone() || t.DoneAt == nil {
			continue
		}
		day := t.DoneAt.In(uc.loc).Format(dayFormat)
		counts[day]++
	}

	days := make([]string, 0, len(counts))
	for day := range counts {
		days = append(days, day)
	}
	sort.Strings(days)

	buckets := make([]domain.DayCount, 0, len(days))
	for _, day := range days {
		buckets = append(buckets, domain.DayCount{Day: day, Count: counts[day]})
	}
	return buckets
}

func (uc *UseCase) taskSheet(tasks []domain.Task, users map[int64]domain.User) domain.Sheet {
	sheet := domain.Sheet{
		Name:   tasksSheetName,
		Header: []string{"task_id", "assigned_to", "assignee", "description", "status", "done_at", "created_at"},
	}

	for _, t := range tasks {
		label := "unknown"
		if u, ok := users[t.AssignedTo]; ok {
			label = u.Label()
		}

		status := "not done"
		doneAt := ""
		if t.IsDone() {
			status = "done"
			if t.DoneAt != nil {
				doneAt = t.DoneAt.In(uc.loc).Format(timestampFormat)
			}
		}

		sheet.Rows = append(sheet.Rows, []string{
			strconv.FormatInt(t.ID, 10),
			strconv.FormatInt(t.AssignedTo, 10),
			label,
			t.Description,
			status,
			doneAt,
			t.CreatedAt.In(uc.loc).Format(timestampFormat),
		})
	}
	return sheet
}

func (uc *UseCase) reportSheet(reports []domain.Report) domain.Sheet {
	sheet := domain.Sheet{
		Name:   reportsSheetName,
		Header: []string{"report_id", "task_id", "user_id", "report_text", "created_at"},
	}

	for _, r := range reports {
		sheet.Rows = append(sheet.Rows, []string{
			strconv.FormatInt(r.ID, 10),
			strconv.FormatInt(r.TaskID, 10),
			strconv.FormatInt(r.UserID, 10),
			r.Text,
			r.CreatedAt.In(uc.loc).Format(timestampFormat),
		})
	}
	return sheet
}
