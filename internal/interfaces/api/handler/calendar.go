package handler

import (
	"bdaywisher/internal/application/service"
	"bdaywisher/internal/infrastructure/calendar"
	"bdaywisher/internal/pkg/clock"
	"bdaywisher/internal/pkg/logger"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// CalendarHandler serves pending reminders as an iCalendar feed.
type CalendarHandler struct {
	ledger service.LedgerService
	clock  clock.Clock
	log    logger.Logger
}

// NewCalendarHandler creates a new CalendarHandler.
func NewCalendarHandler(ledger service.LedgerService, clk clock.Clock, log logger.Logger) *CalendarHandler {
	return &CalendarHandler{ledger: ledger, clock: clk, log: log}
}

// ICS handles GET /calendar.ics. The ETag covers the pending reminders, not
// the DTSTAMP, so an unchanged ledger yields 304.
func (h *CalendarHandler) ICS(c echo.Context) error {
	pending := h.ledger.Pending()

	sum := sha256.New()
	for _, r := range pending {
		fmt.Fprintf(sum, "%s|%s|%s|%s\n", r.ID, r.ScheduledTime.UTC().Format(time.RFC3339), r.Kind, r.Message)
	}
	etag := `"` + hex.EncodeToString(sum.Sum(nil))[:32] + `"`

	c.Response().Header().Set("ETag", etag)
	if c.Request().Header.Get("If-None-Match") == etag {
		return c.NoContent(http.StatusNotModified)
	}

	body, err := calendar.Encode(pending, h.clock.Now())
	if err != nil {
		h.log.Error("Failed to encode calendar feed", err)
		return respondError(c, err)
	}
	return c.Blob(http.StatusOK, "text/calendar; charset=utf-8", body)
}
