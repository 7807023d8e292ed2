package handler

import (
	"bdaywisher/internal/application/dto"
	"bdaywisher/internal/application/service"
	"bdaywisher/internal/pkg/clock"
	appErrors "bdaywisher/internal/pkg/errors"
	"bdaywisher/internal/pkg/logger"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// ReminderHandler serves the reminder ledger and scheduling commands.
type ReminderHandler struct {
	roster       service.RosterService
	scheduler    service.SchedulerService
	ledger       service.LedgerService
	orchestrator service.OrchestratorService
	clock        clock.Clock
	log          logger.Logger
}

// NewReminderHandler creates a new ReminderHandler.
func NewReminderHandler(
	roster service.RosterService,
	scheduler service.SchedulerService,
	ledger service.LedgerService,
	orchestrator service.OrchestratorService,
	clk clock.Clock,
	log logger.Logger,
) *ReminderHandler {
	return &ReminderHandler{
		roster:       roster,
		scheduler:    scheduler,
		ledger:       ledger,
		orchestrator: orchestrator,
		clock:        clk,
		log:          log,
	}
}

// Pending handles GET /reminders/pending.
func (h *ReminderHandler) Pending(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.ToReminderResponseList(h.ledger.Pending()))
}

// Sent handles GET /reminders/sent.
func (h *ReminderHandler) Sent(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.ToReminderResponseList(h.ledger.Sent()))
}

// Custom handles POST /reminders/custom.
func (h *ReminderHandler) Custom(c echo.Context) error {
	var req dto.CustomReminderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if strings.TrimSpace(req.Message) == "" {
		return badRequest(c, "message is required")
	}
	person, ok := h.roster.Find(req.PersonID)
	if !ok {
		return respondError(c, fmt.Errorf("%w: %s", appErrors.ErrPersonNotFound, req.PersonID))
	}

	r, err := h.scheduler.ScheduleCustom(c.Request().Context(), person, req.Message, h.clock.Now())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.ToReminderResponse(r))
}

// Cancel handles DELETE /reminders/:id. Canceling an unknown id succeeds.
func (h *ReminderHandler) Cancel(c echo.Context) error {
	id := c.Param("id")
	if !h.ledger.Cancel(c.Request().Context(), id) {
		h.log.Debug(fmt.Sprintf("Cancel request for reminder %s matched nothing", id))
	}
	return c.NoContent(http.StatusNoContent)
}

// Reschedule handles POST /reminders/reschedule. Per-person failures are
// reported in the body with a 200.
func (h *ReminderHandler) Reschedule(c echo.Context) error {
	result, err := h.orchestrator.RescheduleCurrent(c.Request().Context())
	if err != nil {
		h.log.Warn(fmt.Sprintf("Reschedule finished with failures: %v", err))
	}
	return c.JSON(http.StatusOK, result)
}
