package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nvalente/planner-api/internal/dto"
	"github.com/nvalente/planner-api/internal/service"
	appErrors "github.com/nvalente/planner-api/pkg/errors"
	"github.com/nvalente/planner-api/pkg/response"
)

// AssignmentHandler wires HTTP endpoints to the assignment workflows.
type AssignmentHandler struct {
	service *service.PlannerService
}

// NewAssignmentHandler creates a new handler.
func NewAssignmentHandler(svc *service.PlannerService) *AssignmentHandler {
	return &AssignmentHandler{service: svc}
}

// List godoc
// @Summary List assignments
// @Description Return every assignment sorted by due date
// @Tags Assignments
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /assignments [get]
func (h *AssignmentHandler) List(c *gin.Context) {
	items, err := h.service.Assignments(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}

// Save godoc
// @Summary Create or replace an assignment
// @Description Upsert an assignment by id; an empty id mints a new one
// @Tags Assignments
// @Accept json
// @Produce json
// @Param payload body dto.UpsertAssignmentRequest true "Assignment payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /assignments [put]
func (h *AssignmentHandler) Save(c *gin.Context) {
	var req dto.UpsertAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid assignment payload"))
		return
	}

	saved, err := h.service.SaveAssignment(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, saved)
}

// Delete godoc
// @Summary Delete an assignment
// @Description Remove an assignment by id; unknown ids succeed without change
// @Tags Assignments
// @Produce json
// @Param id path string true "Assignment id"
// @Success 204 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /assignments/{id} [delete]
func (h *AssignmentHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteAssignment(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ToggleCompletion godoc
// @Summary Toggle completion
// @Description Flip the completion flag of one assignment
// @Tags Assignments
// @Produce json
// @Param id path string true "Assignment id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /assignments/{id}/toggle [post]
func (h *AssignmentHandler) ToggleCompletion(c *gin.Context) {
	updated, err := h.service.ToggleAssignmentCompletion(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, updated)
}
