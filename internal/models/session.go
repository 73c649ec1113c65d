package models

import "time"

// SessionType classifies a scheduled academic session.
type SessionType string

const (
	SessionClass         SessionType = "Class"
	SessionGroupActivity SessionType = "GroupActivity"
	SessionGroupStudy    SessionType = "GroupStudy"
	SessionOfficeHours   SessionType = "OfficeHours"
)

// Valid reports whether the session type is one of the known values.
func (t SessionType) Valid() bool {
	switch t {
	case SessionClass, SessionGroupActivity, SessionGroupStudy, SessionOfficeHours:
		return true
	}
	return false
}

// Session is one scheduled class or event. Date carries the day; the
// time-of-day portion is ignored for weekly grouping. Start and end times
// are zero-padded 24-hour "HH:MM" strings.
type Session struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Date       time.Time   `json:"date"`
	StartTime  string      `json:"startTime"`
	EndTime    string      `json:"endTime"`
	Location   string      `json:"location"`
	Type       SessionType `json:"sessionType"`
	IsAttended bool        `json:"isAttended"`
}

// Normalize fills documented defaults after a defensive decode.
func (s *Session) Normalize() {
	if !s.Type.Valid() {
		s.Type = SessionClass
	}
}

// Day returns the session's date truncated to midnight UTC.
func (s *Session) Day() time.Time {
	return DayOf(s.Date)
}

// DayOf truncates a timestamp to midnight UTC.
func DayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
