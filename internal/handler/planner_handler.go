package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nvalente/planner-api/internal/service"
	appErrors "github.com/nvalente/planner-api/pkg/errors"
	"github.com/nvalente/planner-api/pkg/response"
)

// PlannerHandler exposes the derived planner views and the factory reset.
type PlannerHandler struct {
	service *service.PlannerService
}

// NewPlannerHandler creates a new handler.
func NewPlannerHandler(svc *service.PlannerService) *PlannerHandler {
	return &PlannerHandler{service: svc}
}

// Dashboard godoc
// @Summary Home dashboard
// @Description Attendance percentage, assignments due within a week and today's sessions
// @Tags Planner
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /planner/dashboard [get]
func (h *PlannerHandler) Dashboard(c *gin.Context) {
	res, err := h.service.Dashboard(c.Request.Context(), time.Now())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

// Week godoc
// @Summary Weekly calendar
// @Description Sessions of the Monday-started week containing the given date
// @Tags Planner
// @Produce json
// @Param date query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /planner/week [get]
func (h *PlannerHandler) Week(c *gin.Context) {
	reference := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "date must be YYYY-MM-DD"))
			return
		}
		reference = parsed
	}

	res, err := h.service.WeekSchedule(c.Request.Context(), reference)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

// Attendance godoc
// @Summary Attendance percentage
// @Description Percentage of attended sessions over all stored sessions
// @Tags Planner
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /planner/attendance [get]
func (h *PlannerHandler) Attendance(c *gin.Context) {
	pct, err := h.service.AttendancePercentage(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"attendancePercentage": pct})
}

// Reset godoc
// @Summary Factory reset
// @Description Remove the account and all assignments and sessions
// @Tags Planner
// @Produce json
// @Success 204 {object} response.Envelope
// @Security BearerAuth
// @Router /planner [delete]
func (h *PlannerHandler) Reset(c *gin.Context) {
	if err := h.service.ClearAll(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
