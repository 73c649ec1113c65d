package dto

import (
	"time"

	"github.com/nvalente/planner-api/internal/models"
)

// UpsertSessionRequest creates or replaces a scheduled session. An empty id
// asks the server to mint one.
type UpsertSessionRequest struct {
	ID         string    `json:"id"`
	Title      string    `json:"title" validate:"required,max=200"`
	Date       time.Time `json:"date" validate:"required"`
	StartTime  string    `json:"startTime" validate:"required,hhmm"`
	EndTime    string    `json:"endTime" validate:"required,hhmm"`
	Location   string    `json:"location" validate:"max=200"`
	Type       string    `json:"sessionType" validate:"omitempty,session_type"`
	IsAttended bool      `json:"isAttended"`
}

// ToModel converts the request into the domain record.
func (r UpsertSessionRequest) ToModel() models.Session {
	s := models.Session{
		ID:         r.ID,
		Title:      r.Title,
		Date:       r.Date,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		Location:   r.Location,
		Type:       models.SessionType(r.Type),
		IsAttended: r.IsAttended,
	}
	s.Normalize()
	return s
}
