package repository

// Persisted key layout. Every key is owned exclusively by the repositories
// in this package; no other component reads or writes the store directly.
const (
	KeyStudentEmail    = "student_email"
	KeyStudentPassword = "student_password"
	KeyStudentCourses  = "student_courses"
	KeyAssignments     = "assignments"
	KeySessions        = "sessions"
)
