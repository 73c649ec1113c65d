package models

import "fmt"

// CourseCount is the fixed number of courses every student carries.
const CourseCount = 3

// Student is the single signed-up user of the planner. The password is an
// opaque string compared by exact equality.
type Student struct {
	Email    string   `json:"email"`
	Password string   `json:"-"`
	Courses  []string `json:"courses"`
}

// NormalizeCourses forces the course list to exactly CourseCount entries:
// shorter lists are padded with synthesized "Course N" names, longer lists
// are truncated to the first CourseCount.
func NormalizeCourses(courses []string) []string {
	out := make([]string, 0, CourseCount)
	for i := 0; i < len(courses) && i < CourseCount; i++ {
		out = append(out, courses[i])
	}
	for i := len(out); i < CourseCount; i++ {
		out = append(out, fmt.Sprintf("Course %d", i+1))
	}
	return out
}
