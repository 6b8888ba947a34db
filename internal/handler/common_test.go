package handler

import (
    "errors"
    "fmt"
    "net/http"
    "testing"

    "github.com/stretchr/testify/assert"

    "github.com/iliyamo/skyway-booking/internal/repository"
    "github.com/iliyamo/skyway-booking/internal/service"
)

func TestErrorStatus(t *testing.T) {
    tests := []struct {
        err    error
        status int
    }{
        {service.ErrEmptySelection, http.StatusBadRequest},
        {repository.ErrFlightNotFound, http.StatusNotFound},
        {repository.ErrSessionNotFound, http.StatusNotFound},
        {service.ErrSeatNotFound, http.StatusNotFound},
        {service.ErrSubmitInProgress, http.StatusConflict},
        {repository.ErrSessionConflict, http.StatusConflict},
        {service.ErrInvalidFare, http.StatusUnprocessableEntity},
        {fmt.Errorf("%w: timeout", service.ErrBookingFailed), http.StatusBadGateway},
        {errors.New("boom"), http.StatusInternalServerError},
    }
    for _, tt := range tests {
        status, msg := errorStatus(tt.err)
        assert.Equal(t, tt.status, status, tt.err.Error())
        assert.NotContains(t, msg, "timeout")
    }
}
