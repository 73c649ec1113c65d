package models

import "time"

// AssignmentPriority orders assignments by urgency.
type AssignmentPriority string

const (
	PriorityHigh   AssignmentPriority = "High"
	PriorityMedium AssignmentPriority = "Medium"
	PriorityLow    AssignmentPriority = "Low"
)

// Valid reports whether the priority is one of the known values.
func (p AssignmentPriority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// AssignmentType distinguishes graded from practice work.
type AssignmentType string

const (
	TypeFormative AssignmentType = "Formative"
	TypeSummative AssignmentType = "Summative"
)

// Valid reports whether the type is one of the known values.
func (t AssignmentType) Valid() bool {
	return t == TypeFormative || t == TypeSummative
}

// Assignment is a user-created task. IDs are caller-supplied and unique;
// by convention clients use a millisecond timestamp string.
type Assignment struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	DueDate     time.Time          `json:"dueDate"`
	Course      string             `json:"course"`
	Priority    AssignmentPriority `json:"priority"`
	Type        AssignmentType     `json:"type"`
	IsCompleted bool               `json:"isCompleted"`
}

// Normalize fills documented defaults for missing or unknown optional
// fields after a defensive decode.
func (a *Assignment) Normalize() {
	if !a.Priority.Valid() {
		a.Priority = PriorityMedium
	}
	if !a.Type.Valid() {
		a.Type = TypeFormative
	}
}
