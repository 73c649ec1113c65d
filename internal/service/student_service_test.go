package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvalente/planner-api/internal/dto"
	"github.com/nvalente/planner-api/internal/models"
	appErrors "github.com/nvalente/planner-api/pkg/errors"
)

func TestProfileBeforeSignup(t *testing.T) {
	svc := NewStudentService(&fakeStudentRepo{}, nil, nil)

	_, err := svc.Profile(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestUpdateCoursesPadsShortList(t *testing.T) {
	repo := &fakeStudentRepo{student: &models.Student{
		Email:    "amina@example.com",
		Password: "pw",
		Courses:  models.NormalizeCourses(nil),
	}}
	svc := NewStudentService(repo, nil, nil)

	resp, err := svc.UpdateCourses(context.Background(), dto.UpdateCoursesRequest{
		Courses: []string{"Biology", "Chemistry"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Biology", "Chemistry", "Course 3"}, resp.Courses)
	assert.Equal(t, resp.Courses, repo.student.Courses)
}

func TestUpdateCoursesRejectsEmptyList(t *testing.T) {
	repo := &fakeStudentRepo{student: &models.Student{Email: "amina@example.com"}}
	svc := NewStudentService(repo, nil, nil)

	_, err := svc.UpdateCourses(context.Background(), dto.UpdateCoursesRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
