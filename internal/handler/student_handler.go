package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nvalente/planner-api/internal/dto"
	"github.com/nvalente/planner-api/internal/service"
	appErrors "github.com/nvalente/planner-api/pkg/errors"
	"github.com/nvalente/planner-api/pkg/response"
)

// StudentHandler exposes the profile endpoints.
type StudentHandler struct {
	service *service.StudentService
}

// NewStudentHandler creates a new handler.
func NewStudentHandler(svc *service.StudentService) *StudentHandler {
	return &StudentHandler{service: svc}
}

// Profile godoc
// @Summary Student profile
// @Description Return the stored student record
// @Tags Student
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /student [get]
func (h *StudentHandler) Profile(c *gin.Context) {
	res, err := h.service.Profile(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

// UpdateCourses godoc
// @Summary Rename courses
// @Description Replace the student's course names; short lists are padded to three
// @Tags Student
// @Accept json
// @Produce json
// @Param payload body dto.UpdateCoursesRequest true "Courses payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /student/courses [put]
func (h *StudentHandler) UpdateCourses(c *gin.Context) {
	var req dto.UpdateCoursesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid courses payload"))
		return
	}

	res, err := h.service.UpdateCourses(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}
