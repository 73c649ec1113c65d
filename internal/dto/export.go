package dto

import "time"

// Export kinds and formats accepted by the export endpoint.
const (
	ExportKindAssignments = "assignments"
	ExportKindWeekPlanner = "week-planner"

	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

// ExportRequest asks for a downloadable render of planner data.
type ExportRequest struct {
	Kind   string `json:"kind" validate:"required,oneof=assignments week-planner"`
	Format string `json:"format" validate:"required,oneof=csv pdf"`
}

// ExportResponse returns the signed download link for a generated file.
type ExportResponse struct {
	ExportID    string    `json:"exportId"`
	DownloadURL string    `json:"downloadUrl"`
	Token       string    `json:"token"`
	Format      string    `json:"format"`
	ExpiresAt   time.Time `json:"expiresAt"`
}
