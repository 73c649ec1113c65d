package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/nvalente/planner-api/internal/dto"
	"github.com/nvalente/planner-api/internal/models"
	appErrors "github.com/nvalente/planner-api/pkg/errors"
)

// StudentService exposes the profile view and course renaming.
type StudentService struct {
	repo      authStudentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo authStudentRepository, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, validator: validate, logger: logger}
}

// Profile returns the stored student, or a not-found error before signup.
func (s *StudentService) Profile(ctx context.Context) (*dto.StudentResponse, error) {
	student, err := s.repo.Get(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to read student record")
	}
	if student == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no account exists yet")
	}
	resp := dto.NewStudentResponse(student)
	return &resp, nil
}

// UpdateCourses replaces the course names. Short lists are padded back to
// three entries on save.
func (s *StudentService) UpdateCourses(ctx context.Context, req dto.UpdateCoursesRequest) (*dto.StudentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid courses payload")
	}

	student, err := s.repo.Get(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to read student record")
	}
	if student == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no account exists yet")
	}

	student.Courses = models.NormalizeCourses(req.Courses)
	if err := s.repo.Save(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to save student record")
	}

	s.logger.Info("courses updated", zap.Strings("courses", student.Courses))
	resp := dto.NewStudentResponse(student)
	return &resp, nil
}
