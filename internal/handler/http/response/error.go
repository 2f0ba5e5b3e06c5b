package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/lshdainty/porest-hr-front-sub002/internal/domain/calendar"
	"github.com/lshdainty/porest-hr-front-sub002/internal/pkg/jwt"
	"github.com/lshdainty/porest-hr-front-sub002/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		BadRequest(w, "Request body too large", nil)
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, jwt.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// Calendar domain errors
	case errors.Is(err, calendar.ErrEventNotFound):
		NotFound(w, "Event not found")
	case errors.Is(err, calendar.ErrEventExists):
		Conflict(w, "Event already exists")
	case errors.Is(err, calendar.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, calendar.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, calendar.ErrCalendarTypeNotFound):
		BadRequest(w, "Calendar type not found", nil)
	case errors.Is(err, calendar.ErrInvalidRRule):
		BadRequest(w, err.Error(), map[string]string{"rrule": "invalid recurrence rule"})
	case errors.Is(err, calendar.ErrInvalidView),
		errors.Is(err, calendar.ErrInvalidSelection),
		errors.Is(err, calendar.ErrInvalidInterval),
		errors.Is(err, calendar.ErrUnknownEventKind):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, calendar.ErrEmptyHolidayFeed):
		BadRequest(w, "Holiday feed contains no events", nil)
	case errors.Is(err, calendar.ErrHolidayFeedDisabled):
		ServiceUnavailable(w, "Holiday feed is not configured")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
