package kvstore

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostgresStoreMock(t *testing.T) (*PostgresStore, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	return NewPostgresStore(sqlxDB), mock, func() {
		sqlxDB.Close()
		db.Close()
	}
}

func expectInit(mock sqlmock.Sqlmock) {
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS planner_settings").
		WillReturnResult(sqlmock.NewResult(0, 0))
}

func TestPostgresStoreGet(t *testing.T) {
	store, mock, cleanup := newPostgresStoreMock(t)
	defer cleanup()

	expectInit(mock)
	mock.ExpectQuery("SELECT value FROM planner_settings").
		WithArgs("student_email").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("amina@example.com"))

	value, err := store.Get(context.Background(), "student_email")
	require.NoError(t, err)
	assert.Equal(t, "amina@example.com", value)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreGetMissingKey(t *testing.T) {
	store, mock, cleanup := newPostgresStoreMock(t)
	defer cleanup()

	expectInit(mock)
	mock.ExpectQuery("SELECT value FROM planner_settings").
		WithArgs("absent").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	_, err := store.Get(context.Background(), "absent")
	assert.True(t, IsNotFound(err))
}

func TestPostgresStoreSetUpserts(t *testing.T) {
	store, mock, cleanup := newPostgresStoreMock(t)
	defer cleanup()

	expectInit(mock)
	mock.ExpectExec("INSERT INTO planner_settings").
		WithArgs("student_email", "amina@example.com").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, store.Set(context.Background(), "student_email", "amina@example.com"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreListRoundTrip(t *testing.T) {
	store, mock, cleanup := newPostgresStoreMock(t)
	defer cleanup()

	expectInit(mock)
	mock.ExpectExec("INSERT INTO planner_settings").
		WithArgs("student_courses", `["Math","Physics","History"]`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT value FROM planner_settings").
		WithArgs("student_courses").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`["Math","Physics","History"]`))

	ctx := context.Background()
	require.NoError(t, store.SetList(ctx, "student_courses", []string{"Math", "Physics", "History"}))

	list, err := store.GetList(ctx, "student_courses")
	require.NoError(t, err)
	assert.Equal(t, []string{"Math", "Physics", "History"}, list)
}

func TestPostgresStoreRemove(t *testing.T) {
	store, mock, cleanup := newPostgresStoreMock(t)
	defer cleanup()

	expectInit(mock)
	mock.ExpectExec("DELETE FROM planner_settings").
		WithArgs("assignments").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Remove(context.Background(), "assignments"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreInitRunsOnce(t *testing.T) {
	store, mock, cleanup := newPostgresStoreMock(t)
	defer cleanup()

	expectInit(mock)
	mock.ExpectExec("INSERT INTO planner_settings").
		WithArgs("a", "1").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO planner_settings").
		WithArgs("b", "2").
		WillReturnResult(sqlmock.NewResult(1, 1))

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "a", "1"))
	require.NoError(t, store.Set(ctx, "b", "2"))
	require.NoError(t, mock.ExpectationsWereMet())
}
