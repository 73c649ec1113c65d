package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvalente/planner-api/internal/dto"
	"github.com/nvalente/planner-api/internal/models"
	appErrors "github.com/nvalente/planner-api/pkg/errors"
)

type fakeAssignmentRepo struct {
	items   []models.Assignment
	listErr error
	cleared bool
}

func (f *fakeAssignmentRepo) List(context.Context) ([]models.Assignment, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Assignment(nil), f.items...), nil
}

func (f *fakeAssignmentRepo) Upsert(_ context.Context, assignment models.Assignment) error {
	kept := f.items[:0]
	for _, item := range f.items {
		if item.ID != assignment.ID {
			kept = append(kept, item)
		}
	}
	f.items = append(kept, assignment)
	return nil
}

func (f *fakeAssignmentRepo) Delete(_ context.Context, id string) error {
	kept := f.items[:0]
	for _, item := range f.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	f.items = kept
	return nil
}

func (f *fakeAssignmentRepo) Clear(context.Context) error {
	f.cleared = true
	f.items = nil
	return nil
}

type fakeSessionRepo struct {
	items   []models.Session
	listErr error
	cleared bool
}

func (f *fakeSessionRepo) List(context.Context) ([]models.Session, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Session(nil), f.items...), nil
}

func (f *fakeSessionRepo) Upsert(_ context.Context, session models.Session) error {
	kept := f.items[:0]
	for _, item := range f.items {
		if item.ID != session.ID {
			kept = append(kept, item)
		}
	}
	f.items = append(kept, session)
	return nil
}

func (f *fakeSessionRepo) Delete(_ context.Context, id string) error {
	kept := f.items[:0]
	for _, item := range f.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	f.items = kept
	return nil
}

func (f *fakeSessionRepo) Clear(context.Context) error {
	f.cleared = true
	f.items = nil
	return nil
}

type fakeStudentRepo struct {
	student *models.Student
	cleared bool
}

func (f *fakeStudentRepo) Get(context.Context) (*models.Student, error) {
	return f.student, nil
}

func (f *fakeStudentRepo) Save(_ context.Context, student *models.Student) error {
	f.student = student
	return nil
}

func (f *fakeStudentRepo) Clear(context.Context) error {
	f.cleared = true
	f.student = nil
	return nil
}

func newPlannerService(assignments *fakeAssignmentRepo, sessions *fakeSessionRepo, students *fakeStudentRepo) *PlannerService {
	if assignments == nil {
		assignments = &fakeAssignmentRepo{}
	}
	if sessions == nil {
		sessions = &fakeSessionRepo{}
	}
	if students == nil {
		students = &fakeStudentRepo{}
	}
	return NewPlannerService(assignments, sessions, students, nil, nil)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSaveAssignmentMintsIDWhenMissing(t *testing.T) {
	repo := &fakeAssignmentRepo{}
	svc := newPlannerService(repo, nil, nil)

	saved, err := svc.SaveAssignment(context.Background(), dto.UpsertAssignmentRequest{
		Title:   "Essay",
		DueDate: day(2025, 3, 10),
		Course:  "Course 1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, models.PriorityMedium, saved.Priority)
	assert.Equal(t, models.TypeFormative, saved.Type)
	require.Len(t, repo.items, 1)
}

func TestSaveAssignmentRejectsUnknownPriority(t *testing.T) {
	svc := newPlannerService(nil, nil, nil)

	_, err := svc.SaveAssignment(context.Background(), dto.UpsertAssignmentRequest{
		Title:    "Essay",
		DueDate:  day(2025, 3, 10),
		Course:   "Course 1",
		Priority: "Urgent",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestToggleAssignmentCompletion(t *testing.T) {
	repo := &fakeAssignmentRepo{items: []models.Assignment{
		{ID: "1", Title: "Essay", DueDate: day(2025, 3, 10), Priority: models.PriorityHigh, Type: models.TypeSummative},
	}}
	svc := newPlannerService(repo, nil, nil)

	updated, err := svc.ToggleAssignmentCompletion(context.Background(), "1")
	require.NoError(t, err)
	assert.True(t, updated.IsCompleted)

	updated, err = svc.ToggleAssignmentCompletion(context.Background(), "1")
	require.NoError(t, err)
	assert.False(t, updated.IsCompleted)
}

func TestToggleAssignmentCompletionUnknownID(t *testing.T) {
	svc := newPlannerService(&fakeAssignmentRepo{}, nil, nil)

	_, err := svc.ToggleAssignmentCompletion(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestSaveSessionRejectsBadTime(t *testing.T) {
	svc := newPlannerService(nil, nil, nil)

	_, err := svc.SaveSession(context.Background(), dto.UpsertSessionRequest{
		Title:     "Algebra",
		Date:      day(2025, 3, 10),
		StartTime: "9am",
		EndTime:   "10:30",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAttendancePercentage(t *testing.T) {
	sessions := &fakeSessionRepo{items: []models.Session{
		{ID: "1", Date: day(2025, 3, 10), IsAttended: true, Type: models.SessionClass},
		{ID: "2", Date: day(2025, 3, 11), IsAttended: true, Type: models.SessionClass},
		{ID: "3", Date: day(2025, 3, 12), IsAttended: false, Type: models.SessionClass},
		{ID: "4", Date: day(2025, 3, 13), IsAttended: false, Type: models.SessionClass},
	}}
	svc := newPlannerService(nil, sessions, nil)

	pct, err := svc.AttendancePercentage(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 50.0, pct, 0.0001)
}

func TestAttendancePercentageEmpty(t *testing.T) {
	svc := newPlannerService(nil, &fakeSessionRepo{}, nil)

	pct, err := svc.AttendancePercentage(context.Background())
	require.NoError(t, err)
	assert.Zero(t, pct)
}

func TestUpcomingAssignmentsSevenDayWindow(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)
	repo := &fakeAssignmentRepo{items: []models.Assignment{
		{ID: "past", DueDate: day(2025, 3, 9)},
		{ID: "today", DueDate: time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC)},
		{ID: "last-in", DueDate: day(2025, 3, 16)},
		{ID: "first-out", DueDate: day(2025, 3, 17)},
	}}
	svc := newPlannerService(repo, nil, nil)

	upcoming, err := svc.UpcomingAssignments(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "today", upcoming[0].ID)
	assert.Equal(t, "last-in", upcoming[1].ID)
}

func TestWeekScheduleBucketsMondayFirst(t *testing.T) {
	// 2025-03-12 is a Wednesday; its week runs 2025-03-10 through 2025-03-16
	sessions := &fakeSessionRepo{items: []models.Session{
		{ID: "mon", Date: day(2025, 3, 10), StartTime: "10:00", Type: models.SessionClass},
		{ID: "mon-early", Date: time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC), StartTime: "08:00", Type: models.SessionClass},
		{ID: "sun", Date: day(2025, 3, 16), StartTime: "09:00", Type: models.SessionClass},
		{ID: "next-week", Date: day(2025, 3, 17), StartTime: "09:00", Type: models.SessionClass},
	}}
	svc := newPlannerService(nil, sessions, nil)

	week, err := svc.WeekSchedule(context.Background(), day(2025, 3, 12))
	require.NoError(t, err)
	assert.Equal(t, day(2025, 3, 10), week.WeekStart)
	require.Len(t, week.Days, 7)

	monday := week.Days[0]
	require.Len(t, monday.Sessions, 2)
	assert.Equal(t, "mon-early", monday.Sessions[0].ID)
	assert.Equal(t, "mon", monday.Sessions[1].ID)

	sunday := week.Days[6]
	require.Len(t, sunday.Sessions, 1)
	assert.Equal(t, "sun", sunday.Sessions[0].ID)

	for i := 1; i < 6; i++ {
		assert.Empty(t, week.Days[i].Sessions)
	}
}

func TestWeekStartOnSunday(t *testing.T) {
	// Sunday belongs to the week opened by the previous Monday
	assert.Equal(t, day(2025, 3, 10), WeekStart(day(2025, 3, 16)))
	assert.Equal(t, day(2025, 3, 10), WeekStart(day(2025, 3, 10)))
}

func TestDashboardCollectsTodaySessions(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	assignments := &fakeAssignmentRepo{items: []models.Assignment{
		{ID: "due", DueDate: day(2025, 3, 12)},
	}}
	sessions := &fakeSessionRepo{items: []models.Session{
		{ID: "today", Date: day(2025, 3, 10), StartTime: "09:00", IsAttended: true, Type: models.SessionClass},
		{ID: "tomorrow", Date: day(2025, 3, 11), StartTime: "09:00", Type: models.SessionClass},
	}}
	students := &fakeStudentRepo{student: &models.Student{
		Email:   "amina@example.com",
		Courses: []string{"Math", "Physics", "History"},
	}}
	svc := newPlannerService(assignments, sessions, students)

	dash, err := svc.Dashboard(context.Background(), now)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, dash.AttendancePercentage, 0.0001)
	require.Len(t, dash.UpcomingAssignments, 1)
	require.Len(t, dash.TodaySessions, 1)
	assert.Equal(t, "today", dash.TodaySessions[0].ID)
	assert.Equal(t, []string{"Math", "Physics", "History"}, dash.Courses)
}

func TestClearAllWipesEverything(t *testing.T) {
	assignments := &fakeAssignmentRepo{items: []models.Assignment{{ID: "1"}}}
	sessions := &fakeSessionRepo{items: []models.Session{{ID: "s1"}}}
	students := &fakeStudentRepo{student: &models.Student{Email: "amina@example.com"}}
	svc := newPlannerService(assignments, sessions, students)

	require.NoError(t, svc.ClearAll(context.Background()))
	assert.True(t, assignments.cleared)
	assert.True(t, sessions.cleared)
	assert.True(t, students.cleared)
}
