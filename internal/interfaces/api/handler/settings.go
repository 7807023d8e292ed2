package handler

import (
	"bdaywisher/internal/application/dto"
	"bdaywisher/internal/application/service"
	"bdaywisher/internal/domain/entity"
	"bdaywisher/internal/pkg/logger"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
)

const maxSettingsBody = 64 << 10

// SettingsHandler serves the notification settings.
type SettingsHandler struct {
	settings     service.SettingsService
	orchestrator service.OrchestratorService
	log          logger.Logger
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settings service.SettingsService, orchestrator service.OrchestratorService, log logger.Logger) *SettingsHandler {
	return &SettingsHandler{settings: settings, orchestrator: orchestrator, log: log}
}

// settingsResponse is the reply to a settings replacement.
type settingsResponse struct {
	Settings   entity.NotificationSettings `json:"settings"`
	Reschedule *dto.RescheduleResult       `json:"reschedule"`
}

// Get handles GET /settings.
func (h *SettingsHandler) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, h.settings.Current())
}

// Put handles PUT /settings. The body must be a complete settings object;
// pending reminders are rebuilt with the new values.
func (h *SettingsHandler) Put(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxSettingsBody))
	if err != nil {
		return badRequest(c, "failed to read request body")
	}
	settings, err := entity.ParseNotificationSettings(body)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.settings.Replace(ctx, settings); err != nil {
		return respondError(c, err)
	}

	result, err := h.orchestrator.RescheduleCurrent(ctx)
	if err != nil {
		h.log.Warn(fmt.Sprintf("Rescheduling after settings change had failures: %v", err))
	}
	return c.JSON(http.StatusOK, settingsResponse{Settings: h.settings.Current(), Reschedule: result})
}
