package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nvalente/planner-api/internal/dto"
	"github.com/nvalente/planner-api/internal/service"
	appErrors "github.com/nvalente/planner-api/pkg/errors"
	"github.com/nvalente/planner-api/pkg/response"
)

// SessionHandler wires HTTP endpoints to the session workflows.
type SessionHandler struct {
	service *service.PlannerService
}

// NewSessionHandler creates a new handler.
func NewSessionHandler(svc *service.PlannerService) *SessionHandler {
	return &SessionHandler{service: svc}
}

// List godoc
// @Summary List sessions
// @Description Return every session sorted by date and start time
// @Tags Sessions
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /sessions [get]
func (h *SessionHandler) List(c *gin.Context) {
	items, err := h.service.Sessions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}

// Save godoc
// @Summary Create or replace a session
// @Description Upsert a session by id; an empty id mints a new one
// @Tags Sessions
// @Accept json
// @Produce json
// @Param payload body dto.UpsertSessionRequest true "Session payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /sessions [put]
func (h *SessionHandler) Save(c *gin.Context) {
	var req dto.UpsertSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid session payload"))
		return
	}

	saved, err := h.service.SaveSession(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, saved)
}

// Delete godoc
// @Summary Delete a session
// @Description Remove a session by id; unknown ids succeed without change
// @Tags Sessions
// @Produce json
// @Param id path string true "Session id"
// @Success 204 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /sessions/{id} [delete]
func (h *SessionHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteSession(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ToggleAttendance godoc
// @Summary Toggle attendance
// @Description Flip the attended flag of one session
// @Tags Sessions
// @Produce json
// @Param id path string true "Session id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /sessions/{id}/toggle [post]
func (h *SessionHandler) ToggleAttendance(c *gin.Context) {
	updated, err := h.service.ToggleSessionAttendance(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, updated)
}
