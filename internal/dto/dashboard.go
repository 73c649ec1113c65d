package dto

import (
	"time"

	"github.com/nvalente/planner-api/internal/models"
)

// DashboardResponse is the home-screen payload: attendance so far, work due
// within the next week and today's sessions.
type DashboardResponse struct {
	AttendancePercentage float64             `json:"attendancePercentage"`
	UpcomingAssignments  []models.Assignment `json:"upcomingAssignments"`
	TodaySessions        []models.Session    `json:"todaySessions"`
	Courses              []string            `json:"courses"`
	GeneratedAt          time.Time           `json:"generatedAt"`
}

// DaySchedule groups the sessions of one calendar day.
type DaySchedule struct {
	Date     time.Time        `json:"date"`
	Sessions []models.Session `json:"sessions"`
}

// WeekScheduleResponse buckets a week's sessions by day, Monday first.
type WeekScheduleResponse struct {
	WeekStart time.Time     `json:"weekStart"`
	Days      []DaySchedule `json:"days"`
}
