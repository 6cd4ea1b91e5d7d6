package service

import (
	"net/http"

	"github.com/Freeeeeet/skischool_office/internal/pkg/apperror"
)

var (
	ErrInvalidDate        = apperror.New(http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
	ErrInvalidTime        = apperror.New(http.StatusBadRequest, "invalid time, want HH:MM")
	ErrInvalidTimeRange   = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrInstructorNotFound = apperror.New(http.StatusNotFound, "instructor not found")
	ErrSlotNotFound       = apperror.New(http.StatusNotFound, "selected slot not found")
	ErrSessionEmpty       = apperror.New(http.StatusBadRequest, "no slots selected")
	ErrCustomerRequired   = apperror.New(http.StatusBadRequest, "customer name is required")
	ErrSlotTaken          = apperror.New(http.StatusConflict, "Zeitraum bereits belegt")
)
