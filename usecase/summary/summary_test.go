package summary

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/taskline/backend/domain"
)

type fakeTaskRepo struct {
	tasks []domain.Task
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id int64) (*domain.Task, error) {
	for i := range r.tasks {
		if r.tasks[i].ID == id {
			return &r.tasks[i], nil
		}
	}
	return nil, domain.ErrTaskNotFound
}

func (r *fakeTaskRepo) ListByAssignee(_ context.Context, userID int64) ([]domain.Task, error) {
	var out []domain.Task
	for _, t := range r.tasks {
		if t.AssignedTo == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) ListAll(_ context.Context) ([]domain.Task, error) {
	return r.tasks, nil
}

func (r *fakeTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	return task, nil
}

func (r *fakeTaskRepo) Complete(_ context.Context, _, _ int64, _ time.Time, _ string) (*domain.Task, *domain.Report, error) {
	return nil, nil, domain.ErrTaskNotFound
}

type fakeReportRepo struct {
	reports []domain.Report
}

func (r *fakeReportRepo) ListAll(_ context.Context) ([]domain.Report, error) {
	return r.reports, nil
}

type fakeUserRepo struct {
	users []domain.User
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for i := range r.users {
		if r.users[i].ID == id {
			return &r.users[i], nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, _ *domain.User) error { return nil }

func (r *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	return r.users, nil
}

type fakeChart struct {
	histograms   [][]domain.DayCount
	placeholders []string
}

func (c *fakeChart) RenderHistogram(buckets []domain.DayCount) ([]byte, error) {
	c.histograms = append(c.histograms, buckets)
	return []byte("png"), nil
}

func (c *fakeChart) RenderPlaceholder(message string) ([]byte, error) {
	c.placeholders = append(c.placeholders, message)
	return []byte("png"), nil
}

type fakeTable struct {
	sheets [][]domain.Sheet
}

func (t *fakeTable) Write(sheets []domain.Sheet) ([]byte, error) {
	t.sheets = append(t.sheets, sheets)
	return []byte("xlsx"), nil
}

func at(day string, hour int) *time.Time {
	parsed, err := time.ParseInLocation("2006-01-02", day, time.UTC)
	if err != nil {
		panic(err)
	}
	ts := parsed.Add(time.Duration(hour) * time.Hour)
	return &ts
}

func doneTask(id, assignee int64, doneAt *time.Time) domain.Task {
	return domain.Task{
		ID:          id,
		Description: "work",
		AssignedTo:  assignee,
		Status:      domain.TaskStatusDone,
		CreatedAt:   doneAt.Add(-time.Hour),
		DoneAt:      doneAt,
	}
}

func assignedTask(id, assignee int64) domain.Task {
	return domain.Task{
		ID:          id,
		Description: "work",
		AssignedTo:  assignee,
		Status:      domain.TaskStatusAssigned,
		CreatedAt:   time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func newUseCase(tasks []domain.Task, users []domain.User, chart *fakeChart, table *fakeTable) *UseCase {
	return New(
		&fakeTaskRepo{tasks: tasks},
		&fakeReportRepo{},
		&fakeUserRepo{users: users},
		chart,
		table,
		time.UTC,
		nil,
	)
}

func TestGenerate_NoTasksAtAll(t *testing.T) {
	chart := &fakeChart{}
	table := &fakeTable{}
	uc := newUseCase(nil, nil, chart, table)

	_, err := uc.Generate(context.Background())
	if !errors.Is(err, domain.ErrNoTasks) {
		t.Fatalf("want ErrNoTasks, got %v", err)
	}
	if len(chart.histograms)+len(chart.placeholders) != 0 {
		t.Error("empty input must not touch the chart sink")
	}
	if len(table.sheets) != 0 {
		t.Error("empty input must not touch the table sink")
	}
}

func TestGenerate_NoCompletionsUsesPlaceholder(t *testing.T) {
	chart := &fakeChart{}
	table := &fakeTable{}
	uc := newUseCase([]domain.Task{assignedTask(1, 42)}, nil, chart, table)

	summary, err := uc.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(chart.placeholders) != 1 {
		t.Fatalf("want one placeholder render, got %d", len(chart.placeholders))
	}
	if len(chart.histograms) != 0 {
		t.Error("no completions means no histogram render")
	}
	if len(summary.ChartPNG) == 0 || len(summary.Spreadsheet) == 0 {
		t.Error("both artifacts must still be produced")
	}
}

func TestHistogram_BucketsAndOrder(t *testing.T) {
	uc := newUseCase(nil, nil, &fakeChart{}, &fakeTable{})

	tasks := []domain.Task{
		doneTask(1, 42, at("2024-01-02", 10)),
		doneTask(2, 42, at("2024-01-01", 9)),
		doneTask(3, 43, at("2024-01-01", 18)),
		assignedTask(4, 42),
	}

	buckets := uc.Histogram(tasks)
	if len(buckets) != 2 {
		t.Fatalf("want 2 buckets, got %d", len(buckets))
	}
	if buckets[0].Day != "2024-01-01" || buckets[0].Count != 2 {
		t.Errorf("first bucket = %+v, want 2024-01-01 x2", buckets[0])
	}
	if buckets[1].Day != "2024-01-02" || buckets[1].Count != 1 {
		t.Errorf("second bucket = %+v, want 2024-01-02 x1", buckets[1])
	}
}

func TestHistogram_BucketsByDisplayTimezone(t *testing.T) {
	// 23:30 UTC on Jan 1 is already Jan 2 in a UTC+3 zone.
	loc := time.FixedZone("UTC+3", 3*60*60)
	uc := New(&fakeTaskRepo{}, &fakeReportRepo{}, &fakeUserRepo{}, &fakeChart{}, &fakeTable{}, loc, nil)

	buckets := uc.Histogram([]domain.Task{doneTask(1, 42, at("2024-01-01", 23))})
	if len(buckets) != 1 {
		t.Fatalf("want 1 bucket, got %d", len(buckets))
	}
	if buckets[0].Day != "2024-01-02" {
		t.Errorf("bucket day = %q, want the display-zone day 2024-01-02", buckets[0].Day)
	}
}

func TestGenerate_SpreadsheetRows(t *testing.T) {
	chart := &fakeChart{}
	table := &fakeTable{}
	users := []domain.User{
		{ID: 42, Username: "handle", FullName: "Full Name"},
		{ID: 43, FullName: "Only Name"},
	}
	tasks := []domain.Task{
		doneTask(1, 42, at("2024-01-01", 9)),
		assignedTask(2, 43),
		assignedTask(3, 77),
	}
	uc := newUseCase(tasks, users, chart, table)

	if _, err := uc.Generate(context.Background()); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(table.sheets) != 1 {
		t.Fatalf("want one workbook write, got %d", len(table.sheets))
	}

	sheets := table.sheets[0]
	if len(sheets) != 2 {
		t.Fatalf("want tasks and reports sheets, got %d", len(sheets))
	}

	taskSheet := sheets[0]
	if taskSheet.Name != "Tasks" {
		t.Errorf("first sheet name = %q", taskSheet.Name)
	}
	if len(taskSheet.Rows) != len(tasks) {
		t.Fatalf("want one row per task, got %d for %d tasks", len(taskSheet.Rows), len(tasks))
	}

	// task_id, assigned_to, assignee, description, status, done_at, created_at
	done := taskSheet.Rows[0]
	if done[4] != "done" {
		t.Errorf("completed task status cell = %q", done[4])
	}
	if done[5] != "2024-01-01 09:00:00" {
		t.Errorf("done_at cell = %q", done[5])
	}
	if done[2] != "@handle" {
		t.Errorf("assignee label must prefer the username, got %q", done[2])
	}

	pending := taskSheet.Rows[1]
	if pending[4] != "not done" {
		t.Errorf("pending task status cell = %q", pending[4])
	}
	if pending[5] != "" {
		t.Errorf("pending task done_at cell must be empty, got %q", pending[5])
	}
	if pending[2] != "Only Name" {
		t.Errorf("assignee label falls back to the full name, got %q", pending[2])
	}

	if orphan := taskSheet.Rows[2]; orphan[2] != "unknown" {
		t.Errorf("unregistered assignee label = %q, want unknown", orphan[2])
	}
}
