package service

import (
	"context"
	"regexp"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nvalente/planner-api/internal/dto"
	"github.com/nvalente/planner-api/internal/models"
	appErrors "github.com/nvalente/planner-api/pkg/errors"
)

// UpcomingWindow is how far ahead the dashboard looks for due assignments.
const UpcomingWindow = 7 * 24 * time.Hour

var hhmmPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

type assignmentRepository interface {
	List(ctx context.Context) ([]models.Assignment, error)
	Upsert(ctx context.Context, assignment models.Assignment) error
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

type sessionRepository interface {
	List(ctx context.Context) ([]models.Session, error)
	Upsert(ctx context.Context, session models.Session) error
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

type plannerStudentRepository interface {
	Get(ctx context.Context) (*models.Student, error)
	Clear(ctx context.Context) error
}

// PlannerService coordinates the assignment and session workflows plus the
// derived dashboard and calendar views.
type PlannerService struct {
	assignments assignmentRepository
	sessions    sessionRepository
	students    plannerStudentRepository
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewPlannerService constructs the planner service and registers the custom
// payload validators.
func NewPlannerService(assignments assignmentRepository, sessions sessionRepository, students plannerStudentRepository, validate *validator.Validate, logger *zap.Logger) *PlannerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &PlannerService{
		assignments: assignments,
		sessions:    sessions,
		students:    students,
		validator:   validate,
		logger:      logger,
	}
	svc.validator.RegisterValidation("assignment_priority", func(fl validator.FieldLevel) bool {
		return models.AssignmentPriority(fl.Field().String()).Valid()
	})
	svc.validator.RegisterValidation("assignment_type", func(fl validator.FieldLevel) bool {
		return models.AssignmentType(fl.Field().String()).Valid()
	})
	svc.validator.RegisterValidation("session_type", func(fl validator.FieldLevel) bool {
		return models.SessionType(fl.Field().String()).Valid()
	})
	svc.validator.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return hhmmPattern.MatchString(fl.Field().String())
	})
	return svc
}

// Assignments lists every stored assignment sorted by due date.
func (s *PlannerService) Assignments(ctx context.Context) ([]models.Assignment, error) {
	items, err := s.assignments.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to load assignments")
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].DueDate.Before(items[j].DueDate)
	})
	return items, nil
}

// SaveAssignment validates and upserts an assignment, minting an id when the
// client did not supply one.
func (s *PlannerService) SaveAssignment(ctx context.Context, req dto.UpsertAssignmentRequest) (*models.Assignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}

	assignment := req.ToModel()
	if assignment.ID == "" {
		assignment.ID = uuid.NewString()
	}

	if err := s.assignments.Upsert(ctx, assignment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to save assignment")
	}
	return &assignment, nil
}

// DeleteAssignment removes an assignment. Deleting an unknown id succeeds
// without touching the stored data.
func (s *PlannerService) DeleteAssignment(ctx context.Context, id string) error {
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "assignment id is required")
	}
	if err := s.assignments.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to delete assignment")
	}
	return nil
}

// ToggleAssignmentCompletion flips the completion flag of one assignment.
func (s *PlannerService) ToggleAssignmentCompletion(ctx context.Context, id string) (*models.Assignment, error) {
	items, err := s.assignments.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to load assignments")
	}
	for _, item := range items {
		if item.ID != id {
			continue
		}
		item.IsCompleted = !item.IsCompleted
		if err := s.assignments.Upsert(ctx, item); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to save assignment")
		}
		return &item, nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
}

// Sessions lists every stored session sorted by date, then start time.
func (s *PlannerService) Sessions(ctx context.Context) ([]models.Session, error) {
	items, err := s.sessions.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to load sessions")
	}
	sortSessions(items)
	return items, nil
}

// SaveSession validates and upserts a session, minting an id when the client
// did not supply one.
func (s *PlannerService) SaveSession(ctx context.Context, req dto.UpsertSessionRequest) (*models.Session, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session payload")
	}

	session := req.ToModel()
	if session.ID == "" {
		session.ID = uuid.NewString()
	}

	if err := s.sessions.Upsert(ctx, session); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to save session")
	}
	return &session, nil
}

// DeleteSession removes a session. Deleting an unknown id succeeds without
// touching the stored data.
func (s *PlannerService) DeleteSession(ctx context.Context, id string) error {
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "session id is required")
	}
	if err := s.sessions.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to delete session")
	}
	return nil
}

// ToggleSessionAttendance flips the attended flag of one session.
func (s *PlannerService) ToggleSessionAttendance(ctx context.Context, id string) (*models.Session, error) {
	items, err := s.sessions.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to load sessions")
	}
	for _, item := range items {
		if item.ID != id {
			continue
		}
		item.IsAttended = !item.IsAttended
		if err := s.sessions.Upsert(ctx, item); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to save session")
		}
		return &item, nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found")
}

// AttendancePercentage returns 100 * attended / total over all stored
// sessions. An empty collection yields 0 rather than a division error.
func (s *PlannerService) AttendancePercentage(ctx context.Context) (float64, error) {
	items, err := s.sessions.List(ctx)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to load sessions")
	}
	if len(items) == 0 {
		return 0, nil
	}
	attended := 0
	for _, item := range items {
		if item.IsAttended {
			attended++
		}
	}
	return 100 * float64(attended) / float64(len(items)), nil
}

// UpcomingAssignments returns assignments due within the seven days that
// start at now's day, sorted by due date. The window is half open: the
// seventh day out is excluded.
func (s *PlannerService) UpcomingAssignments(ctx context.Context, now time.Time) ([]models.Assignment, error) {
	items, err := s.assignments.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to load assignments")
	}

	from := models.DayOf(now)
	to := from.Add(UpcomingWindow)

	upcoming := make([]models.Assignment, 0, len(items))
	for _, item := range items {
		due := models.DayOf(item.DueDate)
		if due.Before(from) || !due.Before(to) {
			continue
		}
		upcoming = append(upcoming, item)
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].DueDate.Before(upcoming[j].DueDate)
	})
	return upcoming, nil
}

// WeekSchedule buckets the sessions of the Monday-started week containing
// the reference day into seven day groups.
func (s *PlannerService) WeekSchedule(ctx context.Context, reference time.Time) (*dto.WeekScheduleResponse, error) {
	items, err := s.sessions.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to load sessions")
	}

	weekStart := WeekStart(reference)
	response := &dto.WeekScheduleResponse{
		WeekStart: weekStart,
		Days:      make([]dto.DaySchedule, 7),
	}

	byDay := make(map[time.Time][]models.Session, len(items))
	for _, item := range items {
		day := item.Day()
		byDay[day] = append(byDay[day], item)
	}

	for i := 0; i < 7; i++ {
		day := weekStart.AddDate(0, 0, i)
		sessions := byDay[day]
		if sessions == nil {
			sessions = []models.Session{}
		}
		sortSessions(sessions)
		response.Days[i] = dto.DaySchedule{Date: day, Sessions: sessions}
	}
	return response, nil
}

// Dashboard assembles the home-screen payload.
func (s *PlannerService) Dashboard(ctx context.Context, now time.Time) (*dto.DashboardResponse, error) {
	attendance, err := s.AttendancePercentage(ctx)
	if err != nil {
		return nil, err
	}
	upcoming, err := s.UpcomingAssignments(ctx, now)
	if err != nil {
		return nil, err
	}
	sessions, err := s.sessions.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to load sessions")
	}

	today := models.DayOf(now)
	todaySessions := make([]models.Session, 0, len(sessions))
	for _, item := range sessions {
		if item.Day().Equal(today) {
			todaySessions = append(todaySessions, item)
		}
	}
	sortSessions(todaySessions)

	var courses []string
	student, err := s.students.Get(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to read student record")
	}
	if student != nil {
		courses = student.Courses
	}

	return &dto.DashboardResponse{
		AttendancePercentage: attendance,
		UpcomingAssignments:  upcoming,
		TodaySessions:        todaySessions,
		Courses:              courses,
		GeneratedAt:          now.UTC(),
	}, nil
}

// ClearAll wipes the student record and both collections. Used by the
// factory reset endpoint.
func (s *PlannerService) ClearAll(ctx context.Context) error {
	if err := s.assignments.Clear(ctx); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to clear assignments")
	}
	if err := s.sessions.Clear(ctx); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to clear sessions")
	}
	if err := s.students.Clear(ctx); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to clear student record")
	}
	s.logger.Info("planner data cleared")
	return nil
}

// WeekStart returns the Monday midnight that opens the week containing t.
func WeekStart(t time.Time) time.Time {
	day := models.DayOf(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func sortSessions(items []models.Session) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].Day().Equal(items[j].Day()) {
			return items[i].Day().Before(items[j].Day())
		}
		return items[i].StartTime < items[j].StartTime
	})
}
