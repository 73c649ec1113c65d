package repository

import (
	"context"
	"fmt"

	"github.com/nvalente/planner-api/internal/models"
	"github.com/nvalente/planner-api/pkg/kvstore"
)

// StudentRepository persists the singleton student record. Unlike the
// collection kinds, the student is split across three keys; the write is
// not atomic (a crash between keys can leave partial state, acceptable for
// a single-user planner).
type StudentRepository struct {
	store kvstore.Store
}

// NewStudentRepository constructs the repository.
func NewStudentRepository(store kvstore.Store) *StudentRepository {
	return &StudentRepository{store: store}
}

// Get returns the signed-up student, or (nil, nil) when nobody has signed
// up yet. The email key is the presence sentinel.
func (r *StudentRepository) Get(ctx context.Context) (*models.Student, error) {
	email, err := r.store.Get(ctx, KeyStudentEmail)
	if err != nil {
		if kvstore.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read student email: %w", err)
	}

	password, err := r.store.Get(ctx, KeyStudentPassword)
	if err != nil && !kvstore.IsNotFound(err) {
		return nil, fmt.Errorf("read student password: %w", err)
	}

	courses, err := r.store.GetList(ctx, KeyStudentCourses)
	if err != nil && !kvstore.IsNotFound(err) {
		return nil, fmt.Errorf("read student courses: %w", err)
	}

	return &models.Student{
		Email:    email,
		Password: password,
		Courses:  models.NormalizeCourses(courses),
	}, nil
}

// Save replaces the student record wholesale. The course list is forced to
// exactly three entries before writing.
func (r *StudentRepository) Save(ctx context.Context, student *models.Student) error {
	if err := r.store.Set(ctx, KeyStudentEmail, student.Email); err != nil {
		return fmt.Errorf("write student email: %w", err)
	}
	if err := r.store.Set(ctx, KeyStudentPassword, student.Password); err != nil {
		return fmt.Errorf("write student password: %w", err)
	}
	if err := r.store.SetList(ctx, KeyStudentCourses, models.NormalizeCourses(student.Courses)); err != nil {
		return fmt.Errorf("write student courses: %w", err)
	}
	return nil
}

// Clear removes the three student keys.
func (r *StudentRepository) Clear(ctx context.Context) error {
	for _, key := range []string{KeyStudentEmail, KeyStudentPassword, KeyStudentCourses} {
		if err := r.store.Remove(ctx, key); err != nil {
			return fmt.Errorf("remove %s: %w", key, err)
		}
	}
	return nil
}
