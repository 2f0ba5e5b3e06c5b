package calendar

import (
	"time"

	"github.com/lshdainty/porest-hr-front-sub002/internal/pkg/validator"
)

type LayoutRequest struct {
	View    string    `json:"view"`
	Date    string    `json:"date"`
	UserIDs Selection `json:"selected_user_ids"`
	TypeIDs Selection `json:"selected_type_ids"`
	From    *int      `json:"from,omitempty"`
	To      *int      `json:"to,omitempty"`
}

func (r *LayoutRequest) Validate() error {
	var errs validator.ValidationErrors

	// View
	if validator.IsEmpty(r.View) {
		errs = append(errs, validator.ValidationError{
			Field:   "view",
			Message: "view is required",
		})
	} else if !validator.IsInSlice(r.View, ViewValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "view",
			Message: "view must be one of day, week, month, year, agenda",
		})
	}

	// Date
	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	// Visible hours
	if r.From != nil && !validator.IsValidHour(*r.From, 23) {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from must be between 0 and 23",
		})
	}
	if r.To != nil && (!validator.IsValidHour(*r.To, 24) || *r.To == 0) {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must be between 1 and 24",
		})
	}
	if r.From != nil && r.To != nil && *r.From >= *r.To {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must be after from",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Anchor parses Date as a local calendar day in loc.
func (r *LayoutRequest) Anchor(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DayLayout, r.Date, loc)
}

// VisibleHours returns the requested hour range override, if any.
func (r *LayoutRequest) VisibleHours(fallback HourRange) *HourRange {
	if r.From == nil && r.To == nil {
		return nil
	}
	h := fallback
	if r.From != nil {
		h.From = *r.From
	}
	if r.To != nil {
		h.To = *r.To
	}
	return &h
}

func (r *LayoutRequest) Filter() Filter {
	return Filter{Users: r.UserIDs.OrAll(), Types: r.TypeIDs.OrAll()}
}

// ComputeLayoutRequest runs the engine over caller supplied events.
type ComputeLayoutRequest struct {
	LayoutRequest
	Events   []Event   `json:"events"`
	Holidays []Holiday `json:"holidays,omitempty"`
	Users    []User    `json:"users,omitempty"`
}

func (r *ComputeLayoutRequest) Validate() error {
	var errs validator.ValidationErrors
	if err := r.LayoutRequest.Validate(); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, ve...)
		}
	}

	for _, h := range r.Holidays {
		if !validator.IsValidDateKey(NormalizeDateKey(h.DateKey)) {
			errs = append(errs, validator.ValidationError{
				Field:   "holidays",
				Message: "holiday_date must be in YYYYMMDD format",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PeriodRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

func (r *PeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "startDate",
			Message: "startDate must be in YYYY-MM-DD format",
		})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "endDate",
			Message: "endDate must be in YYYY-MM-DD format",
		})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "endDate",
			Message: "endDate must not be before startDate",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Bounds returns [start 00:00, end 23:59:59.999999999] in loc.
func (r *PeriodRequest) Bounds(loc *time.Location) (time.Time, time.Time) {
	start, _ := time.ParseInLocation(DayLayout, r.StartDate, loc)
	end, _ := time.ParseInLocation(DayLayout, r.EndDate, loc)
	return start, end.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

type CreateEventRequest struct {
	UserID       string  `json:"user_id"`
	TypeID       string  `json:"calendar_type"`
	Title        string  `json:"calendar_name"`
	Description  string  `json:"calendar_desc,omitempty"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	VacationType string  `json:"vacation_type,omitempty"`
	Hours        float64 `json:"hours,omitempty"`
	Location     string  `json:"location,omitempty"`
	RRule        string  `json:"rrule,omitempty"`
}

func (r *CreateEventRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}
	if validator.IsEmpty(r.TypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "calendar_type",
			Message: "calendar_type is required",
		})
	}
	if len(r.Title) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "calendar_name",
			Message: "calendar_name must not exceed 255 characters",
		})
	}

	start, startOK := validator.IsValidDateTime(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be an ISO8601 timestamp",
		})
	}
	end, endOK := validator.IsValidDateTime(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be an ISO8601 timestamp",
		})
	}
	if startOK && endOK && start.After(end) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}
	if r.Hours < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "hours",
			Message: "hours must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// EventResponse is the flat shape of the period listing.
type EventResponse struct {
	CalendarID   string    `json:"calendar_id"`
	UserID       string    `json:"user_id"`
	UserName     string    `json:"user_name"`
	CalendarName string    `json:"calendar_name"`
	CalendarType string    `json:"calendar_type"`
	CalendarDesc string    `json:"calendar_desc,omitempty"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	DomainType   Kind      `json:"domain_type"`
	VacationType string    `json:"vacation_type,omitempty"`
	Color        string    `json:"color_code"`
	IsDate       bool      `json:"is_date"`
}

func NewEventResponse(e Event) EventResponse {
	resp := EventResponse{
		CalendarID:   e.ID,
		UserID:       e.User.ID,
		UserName:     e.User.Name,
		CalendarName: e.Title,
		CalendarType: e.Type.ID,
		CalendarDesc: e.Description,
		StartDate:    e.Start,
		EndDate:      e.End,
		DomainType:   e.Kind(),
		Color:        e.Color(),
		IsDate:       e.Type.IsAllDay,
	}
	if v, ok := e.Payload.(VacationPayload); ok {
		resp.VacationType = v.VacationType
	}
	return resp
}

type LayoutResponse struct {
	Layout ViewLayout `json:"layout"`
	Cached bool       `json:"cached"`
}

type ImportHolidaysResponse struct {
	Imported int `json:"imported"`
}

type SSETokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// InvalidationEvent is pushed to subscribers when stored events change.
type InvalidationEvent struct {
	Reason     string `json:"reason"`
	RangeStart string `json:"range_start,omitempty"`
	RangeEnd   string `json:"range_end,omitempty"`
}

// SSEEvent represents a Server-Sent Event
type SSEEvent struct {
	Event string            `json:"event"`
	Data  InvalidationEvent `json:"data"`
}

const EventCalendarInvalidated = "calendar.invalidated"
