package handler

import (
	"bdaywisher/internal/application/dto"
	"bdaywisher/internal/application/service"
	"bdaywisher/internal/pkg/clock"
	"bdaywisher/internal/pkg/logger"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// RosterHandler serves the roster, today/tomorrow and status endpoints.
type RosterHandler struct {
	roster       service.RosterService
	orchestrator service.OrchestratorService
	clock        clock.Clock
	log          logger.Logger
}

// NewRosterHandler creates a new RosterHandler.
func NewRosterHandler(
	roster service.RosterService,
	orchestrator service.OrchestratorService,
	clk clock.Clock,
	log logger.Logger,
) *RosterHandler {
	return &RosterHandler{
		roster:       roster,
		orchestrator: orchestrator,
		clock:        clk,
		log:          log,
	}
}

// addPersonResponse is the reply to a successful add.
type addPersonResponse struct {
	Person     dto.PersonResponse    `json:"person"`
	Reschedule *dto.RescheduleResult `json:"reschedule"`
}

// List handles GET /roster.
func (h *RosterHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.ToPersonResponseList(h.roster.People()))
}

// Add handles POST /roster. Reminders are rebuilt for the whole roster afterwards.
func (h *RosterHandler) Add(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.AddPersonRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	person, err := req.ToEntity()
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.roster.AddPerson(ctx, person); err != nil {
		return respondError(c, err)
	}

	if added, ok := h.roster.Find(person.ID); ok {
		person = added
	}

	result, err := h.orchestrator.RescheduleCurrent(ctx)
	if err != nil {
		h.log.Warn(fmt.Sprintf("Rescheduling after adding %s had failures: %v", person.ID, err))
	}
	return c.JSON(http.StatusCreated, addPersonResponse{
		Person:     dto.ToPersonResponse(person),
		Reschedule: result,
	})
}

// Refresh handles POST /roster/refresh.
func (h *RosterHandler) Refresh(c echo.Context) error {
	people, err := h.roster.RefreshAll(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.ToPersonResponseList(people))
}

// TodayTomorrow handles GET /roster/today-tomorrow.
func (h *RosterHandler) TodayTomorrow(c echo.Context) error {
	snap, err := h.roster.RefreshTodayTomorrow(c.Request().Context(), h.clock.Now())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.ToSnapshotResponse(snap))
}

// Status handles GET /status.
func (h *RosterHandler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, h.roster.Status())
}

// ClearCache handles DELETE /cache.
func (h *RosterHandler) ClearCache(c echo.Context) error {
	if err := h.roster.ClearCaches(c.Request().Context()); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
