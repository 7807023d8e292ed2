package handler

import (
	"bdaywisher/internal/application/dto"
	"bdaywisher/internal/application/service"
	appErrors "bdaywisher/internal/pkg/errors"
	"bdaywisher/internal/pkg/logger"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// WishHandler serves well-wish links and SMS sending.
type WishHandler struct {
	roster service.RosterService
	wish   service.WishService
	log    logger.Logger
}

// NewWishHandler creates a new WishHandler.
func NewWishHandler(roster service.RosterService, wish service.WishService, log logger.Logger) *WishHandler {
	return &WishHandler{roster: roster, wish: wish, log: log}
}

// Links handles GET /roster/:id/wishes?message=...
func (h *WishHandler) Links(c echo.Context) error {
	person, ok := h.roster.Find(c.Param("id"))
	if !ok {
		return respondError(c, fmt.Errorf("%w: %s", appErrors.ErrPersonNotFound, c.Param("id")))
	}
	return c.JSON(http.StatusOK, h.wish.Links(person, c.QueryParam("message")))
}

// SendSMS handles POST /roster/:id/wishes/sms.
func (h *WishHandler) SendSMS(c echo.Context) error {
	person, ok := h.roster.Find(c.Param("id"))
	if !ok {
		return respondError(c, fmt.Errorf("%w: %s", appErrors.ErrPersonNotFound, c.Param("id")))
	}
	var req dto.SendWishRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	id, err := h.wish.SendSMS(c.Request().Context(), person, req.Message)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusAccepted, map[string]string{"message_id": id})
}
