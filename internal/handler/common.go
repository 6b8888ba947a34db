package handler

import (
    "errors"
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/skyway-booking/internal/repository"
    "github.com/iliyamo/skyway-booking/internal/service"
)

// parseID reads a positive numeric path parameter.
func parseID(c echo.Context, name string) (uint64, bool) {
    id, err := strconv.ParseUint(c.Param(name), 10, 64)
    if err != nil || id == 0 {
        return 0, false
    }
    return id, true
}

// errorStatus maps domain errors to an HTTP status and a client-safe message.
// Store failures are deliberately generic; details go to the log.
func errorStatus(err error) (int, string) {
    switch {
    case errors.Is(err, service.ErrEmptySelection):
        return http.StatusBadRequest, service.ErrEmptySelection.Error()
    case errors.Is(err, repository.ErrFlightNotFound):
        return http.StatusNotFound, "flight not found"
    case errors.Is(err, repository.ErrSessionNotFound):
        return http.StatusNotFound, "seat session not found"
    case errors.Is(err, service.ErrSeatNotFound):
        return http.StatusNotFound, "seat not found"
    case errors.Is(err, service.ErrSubmitInProgress):
        return http.StatusConflict, "booking already in progress"
    case errors.Is(err, repository.ErrSessionConflict):
        return http.StatusConflict, "seat session is busy, please retry"
    case errors.Is(err, service.ErrInvalidFare):
        return http.StatusUnprocessableEntity, "flight fare is invalid"
    case errors.Is(err, service.ErrBookingFailed):
        return http.StatusBadGateway, "booking failed, please try again"
    }
    return http.StatusInternalServerError, "internal error"
}

func respondError(c echo.Context, err error) error {
    status, msg := errorStatus(err)
    return c.JSON(status, echo.Map{"error": msg})
}
