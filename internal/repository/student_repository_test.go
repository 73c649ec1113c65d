package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvalente/planner-api/internal/models"
	"github.com/nvalente/planner-api/pkg/kvstore"
)

func TestStudentGetReturnsNilWhenAbsent(t *testing.T) {
	repo := NewStudentRepository(newTestStore(t))
	student, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, student)
}

func TestStudentSaveAndGet(t *testing.T) {
	store := newTestStore(t)
	repo := NewStudentRepository(store)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &models.Student{
		Email:    "amina@example.com",
		Password: "opaque-secret",
		Courses:  []string{"Math", "Physics", "History"},
	}))

	student, err := repo.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, student)
	assert.Equal(t, "amina@example.com", student.Email)
	assert.Equal(t, "opaque-secret", student.Password)
	assert.Equal(t, []string{"Math", "Physics", "History"}, student.Courses)
}

func TestStudentCoursesPaddedToThree(t *testing.T) {
	store := newTestStore(t)
	repo := NewStudentRepository(store)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &models.Student{
		Email:   "amina@example.com",
		Courses: []string{"Math"},
	}))

	student, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Math", "Course 2", "Course 3"}, student.Courses)
}

func TestStudentCoursesTruncatedToThree(t *testing.T) {
	store := newTestStore(t)
	repo := NewStudentRepository(store)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &models.Student{
		Email:   "amina@example.com",
		Courses: []string{"A", "B", "C", "D", "E"},
	}))

	student, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, student.Courses)
}

func TestStudentCoursesPaddedOnLoad(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// simulate an older install that persisted a single course
	require.NoError(t, store.Set(ctx, KeyStudentEmail, "amina@example.com"))
	require.NoError(t, store.Set(ctx, KeyStudentPassword, "pw"))
	require.NoError(t, store.SetList(ctx, KeyStudentCourses, []string{"Biology"}))

	student, err := NewStudentRepository(store).Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Biology", "Course 2", "Course 3"}, student.Courses)
}

func TestStudentClearRemovesAllKeys(t *testing.T) {
	store := newTestStore(t)
	repo := NewStudentRepository(store)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &models.Student{Email: "amina@example.com", Password: "pw"}))
	require.NoError(t, repo.Clear(ctx))

	student, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, student)

	_, err = store.Get(ctx, KeyStudentPassword)
	assert.True(t, kvstore.IsNotFound(err))
}
