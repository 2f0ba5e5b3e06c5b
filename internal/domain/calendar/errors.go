package calendar

import "errors"

var (
	ErrInvalidInterval      = errors.New("Event start is after its end")
	ErrUnknownEventKind     = errors.New("Unknown event kind")
	ErrInvalidView          = errors.New("Invalid calendar view")
	ErrInvalidSelection     = errors.New("Selection must be \"all\" or a list of ids")
	ErrEventNotFound        = errors.New("Event not found")
	ErrEventExists          = errors.New("Event already exists")
	ErrHolidayNotFound      = errors.New("Holiday not found")
	ErrUserNotFound         = errors.New("User not found")
	ErrCalendarTypeNotFound = errors.New("Calendar type not found")
	ErrHolidayFeedDisabled  = errors.New("Holiday feed is not configured")
	ErrEmptyHolidayFeed     = errors.New("Holiday feed contains no events")
	ErrInvalidRRule         = errors.New("Invalid recurrence rule")
)
