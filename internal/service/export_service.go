package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nvalente/planner-api/internal/dto"
	"github.com/nvalente/planner-api/internal/models"
	appErrors "github.com/nvalente/planner-api/pkg/errors"
	"github.com/nvalente/planner-api/pkg/export"
	"github.com/nvalente/planner-api/pkg/storage"
)

type exportAssignmentRepository interface {
	List(ctx context.Context) ([]models.Assignment, error)
}

type exportSessionRepository interface {
	List(ctx context.Context) ([]models.Session, error)
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Remove(filename string) error
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string, sections ...export.Section) ([]byte, error)
}

// ExportConfig tunes generated download links.
type ExportConfig struct {
	APIPrefix string
}

// ExportService renders planner data into downloadable CSV and PDF files
// and hands out signed one-shot links.
type ExportService struct {
	assignments exportAssignmentRepository
	sessions    exportSessionRepository
	storage     fileStorage
	csv         csvRenderer
	pdf         pdfRenderer
	signer      *storage.SignedURLSigner
	validator   *validator.Validate
	logger      *zap.Logger
	cfg         ExportConfig
}

// NewExportService constructs an ExportService.
func NewExportService(assignments exportAssignmentRepository, sessions exportSessionRepository, files fileStorage, signer *storage.SignedURLSigner, cfg ExportConfig, validate *validator.Validate, logger *zap.Logger) *ExportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		assignments: assignments,
		sessions:    sessions,
		storage:     files,
		csv:         export.NewCSVExporter(),
		pdf:         export.NewPDFExporter(),
		signer:      signer,
		validator:   validate,
		logger:      logger,
		cfg:         cfg,
	}
}

// Generate renders the requested export, stores it and returns its signed
// download link.
func (s *ExportService) Generate(ctx context.Context, req dto.ExportRequest, now time.Time) (*dto.ExportResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export payload")
	}

	var (
		payload []byte
		err     error
	)
	switch req.Kind {
	case dto.ExportKindAssignments:
		payload, err = s.renderAssignments(ctx, req.Format)
	case dto.ExportKindWeekPlanner:
		payload, err = s.renderWeekPlanner(ctx, req.Format, now)
	default:
		err = appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export kind %q", req.Kind))
	}
	if err != nil {
		return nil, err
	}

	exportID := uuid.NewString()
	filename := fmt.Sprintf("%s_%s.%s", req.Kind, now.UTC().Format("20060102_150405"), req.Format)
	relPath, err := s.storage.Save(filename, payload)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to store export file")
	}

	token, expiresAt, err := s.signer.Generate(exportID, relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign download link")
	}

	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}

	s.logger.Info("export generated",
		zap.String("kind", req.Kind),
		zap.String("format", req.Format),
		zap.String("file", relPath))

	return &dto.ExportResponse{
		ExportID:    exportID,
		DownloadURL: fmt.Sprintf("%s/exports/%s", prefix, token),
		Token:       token,
		Format:      req.Format,
		ExpiresAt:   expiresAt,
	}, nil
}

// Open validates a download token and returns a handle to the stored file.
func (s *ExportService) Open(token string) (*os.File, error) {
	_, relPath, _, err := s.signer.Parse(token)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid download token")
	}
	file, err := s.storage.Open(relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "export file no longer exists")
	}
	return file, nil
}

func (s *ExportService) renderAssignments(ctx context.Context, format string) ([]byte, error) {
	items, err := s.assignments.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to load assignments")
	}

	rows := make([]map[string]string, 0, len(items))
	for _, item := range items {
		completed := "No"
		if item.IsCompleted {
			completed = "Yes"
		}
		rows = append(rows, map[string]string{
			"Title":     item.Title,
			"Course":    item.Course,
			"Due Date":  item.DueDate.UTC().Format("2006-01-02"),
			"Priority":  string(item.Priority),
			"Type":      string(item.Type),
			"Completed": completed,
		})
	}
	dataset := export.Dataset{
		Headers: []string{"Title", "Course", "Due Date", "Priority", "Type", "Completed"},
		Rows:    rows,
	}

	switch format {
	case dto.ExportFormatCSV:
		return s.renderCSV(dataset)
	case dto.ExportFormatPDF:
		return s.renderPDF(dataset, "Assignments")
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

func (s *ExportService) renderWeekPlanner(ctx context.Context, format string, now time.Time) ([]byte, error) {
	items, err := s.sessions.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to load sessions")
	}

	weekStart := WeekStart(now)
	weekEnd := weekStart.AddDate(0, 0, 7)

	headers := []string{"Day", "Start", "End", "Title", "Location", "Type"}
	sections := make([]export.Section, 0, 7)
	flatRows := make([]map[string]string, 0, len(items))

	for i := 0; i < 7; i++ {
		day := weekStart.AddDate(0, 0, i)
		var dayItems []models.Session
		for _, item := range items {
			if item.Day().Equal(day) {
				dayItems = append(dayItems, item)
			}
		}
		sortSessions(dayItems)

		rows := make([]map[string]string, 0, len(dayItems))
		for _, item := range dayItems {
			row := map[string]string{
				"Day":      day.Format("Monday 2006-01-02"),
				"Start":    item.StartTime,
				"End":      item.EndTime,
				"Title":    item.Title,
				"Location": item.Location,
				"Type":     string(item.Type),
			}
			rows = append(rows, row)
			flatRows = append(flatRows, row)
		}
		sections = append(sections, export.Section{
			Caption: day.Format("Monday, 2 January"),
			Rows:    rows,
		})
	}

	dataset := export.Dataset{Headers: headers, Rows: flatRows}
	title := fmt.Sprintf("Week Planner %s to %s",
		weekStart.Format("2006-01-02"), weekEnd.AddDate(0, 0, -1).Format("2006-01-02"))

	switch format {
	case dto.ExportFormatCSV:
		return s.renderCSV(dataset)
	case dto.ExportFormatPDF:
		return s.renderPDF(dataset, title, sections...)
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

func (s *ExportService) renderCSV(dataset export.Dataset) ([]byte, error) {
	payload, err := s.csv.Render(dataset)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
	}
	return payload, nil
}

func (s *ExportService) renderPDF(dataset export.Dataset, title string, sections ...export.Section) ([]byte, error) {
	payload, err := s.pdf.Render(dataset, title, sections...)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
	}
	return payload, nil
}
