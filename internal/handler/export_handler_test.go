package handler

import (
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvalente/planner-api/internal/dto"
	"github.com/nvalente/planner-api/internal/repository"
	"github.com/nvalente/planner-api/internal/service"
	"github.com/nvalente/planner-api/pkg/kvstore"
	"github.com/nvalente/planner-api/pkg/storage"
)

func newExportHandler(t *testing.T) *ExportHandler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := kvstore.NewFileStore(filepath.Join(t.TempDir(), "planner.json"))
	assignments := repository.NewAssignmentRepository(store, nil)
	sessions := repository.NewSessionRepository(store, nil)

	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("export-secret", time.Minute)

	svc := service.NewExportService(assignments, sessions, files, signer,
		service.ExportConfig{APIPrefix: "/api/v1"}, nil, nil)
	return NewExportHandler(svc)
}

func TestExportHandlerGenerateAndDownload(t *testing.T) {
	handler := newExportHandler(t)

	c, w := jsonRequest(t, http.MethodPost, "/exports", dto.ExportRequest{
		Kind:   dto.ExportKindAssignments,
		Format: dto.ExportFormatCSV,
	})
	handler.Generate(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var res dto.ExportResponse
	decodeData(t, w, &res)
	require.NotEmpty(t, res.Token)

	c, w = jsonRequest(t, http.MethodGet, "/exports/"+res.Token, nil)
	c.Params = gin.Params{{Key: "token", Value: res.Token}}
	handler.Download(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
}

func TestExportHandlerDownloadBadToken(t *testing.T) {
	handler := newExportHandler(t)

	c, w := jsonRequest(t, http.MethodGet, "/exports/bogus", nil)
	c.Params = gin.Params{{Key: "token", Value: "bogus"}}
	handler.Download(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestExportHandlerGenerateRejectsBadKind(t *testing.T) {
	handler := newExportHandler(t)

	c, w := jsonRequest(t, http.MethodPost, "/exports", dto.ExportRequest{
		Kind:   "grades",
		Format: dto.ExportFormatCSV,
	})
	handler.Generate(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
