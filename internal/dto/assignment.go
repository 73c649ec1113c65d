package dto

import (
	"time"

	"github.com/nvalente/planner-api/internal/models"
)

// UpsertAssignmentRequest creates or replaces an assignment. An empty id
// asks the server to mint one.
type UpsertAssignmentRequest struct {
	ID          string    `json:"id"`
	Title       string    `json:"title" validate:"required,max=200"`
	DueDate     time.Time `json:"dueDate" validate:"required"`
	Course      string    `json:"course" validate:"required,max=100"`
	Priority    string    `json:"priority" validate:"omitempty,assignment_priority"`
	Type        string    `json:"type" validate:"omitempty,assignment_type"`
	IsCompleted bool      `json:"isCompleted"`
}

// ToModel converts the request into the domain record.
func (r UpsertAssignmentRequest) ToModel() models.Assignment {
	a := models.Assignment{
		ID:          r.ID,
		Title:       r.Title,
		DueDate:     r.DueDate,
		Course:      r.Course,
		Priority:    models.AssignmentPriority(r.Priority),
		Type:        models.AssignmentType(r.Type),
		IsCompleted: r.IsCompleted,
	}
	a.Normalize()
	return a
}
