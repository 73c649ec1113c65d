package dto

import "github.com/nvalente/planner-api/internal/models"

// StudentResponse is the public view of the student record. The password
// never leaves the server.
type StudentResponse struct {
	Email   string   `json:"email"`
	Courses []string `json:"courses"`
}

// NewStudentResponse maps the model onto its public view.
func NewStudentResponse(student *models.Student) StudentResponse {
	if student == nil {
		return StudentResponse{}
	}
	return StudentResponse{Email: student.Email, Courses: student.Courses}
}

// UpdateCoursesRequest renames the student's courses. Fewer than three
// entries are padded with generated names on save.
type UpdateCoursesRequest struct {
	Courses []string `json:"courses" validate:"required,min=1,max=3,dive,required"`
}
