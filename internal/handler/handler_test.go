package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/nvalente/planner-api/internal/repository"
	"github.com/nvalente/planner-api/internal/service"
	"github.com/nvalente/planner-api/pkg/kvstore"
)

type testEnv struct {
	planner *service.PlannerService
	auth    *service.AuthService
	student *service.StudentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := kvstore.NewFileStore(filepath.Join(t.TempDir(), "planner.json"))
	students := repository.NewStudentRepository(store)
	assignments := repository.NewAssignmentRepository(store, nil)
	sessions := repository.NewSessionRepository(store, nil)

	return &testEnv{
		planner: service.NewPlannerService(assignments, sessions, students, nil, nil),
		auth: service.NewAuthService(students, nil, nil, service.AuthConfig{
			Secret:     "test-secret",
			Expiration: time.Hour,
			Issuer:     "planner-api",
		}),
		student: service.NewStudentService(students, nil, nil),
	}
}

func jsonRequest(t *testing.T, method, target string, payload interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, target, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}
