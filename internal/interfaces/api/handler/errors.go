package handler

import (
	"bdaywisher/internal/application/dto"
	appErrors "bdaywisher/internal/pkg/errors"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// statusFor maps application errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, appErrors.ErrSourceUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, appErrors.ErrInvalidPerson), errors.Is(err, appErrors.ErrInvalidSettings):
		return http.StatusBadRequest
	case errors.Is(err, appErrors.ErrPersonNotFound), errors.Is(err, appErrors.ErrReminderNotFound):
		return http.StatusNotFound
	case errors.Is(err, appErrors.ErrChannelDisabled):
		return http.StatusNotImplemented
	case errors.Is(err, appErrors.ErrSchedulingFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c echo.Context, err error) error {
	return c.JSON(statusFor(err), dto.ErrorResponse{
		Error:     err.Error(),
		Retryable: errors.Is(err, appErrors.ErrSourceUnavailable),
	})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: msg})
}
