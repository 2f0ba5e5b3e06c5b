package calendar

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type Kind string

const (
	KindVacation Kind = "vacation"
	KindSchedule Kind = "schedule"
	KindHoliday  Kind = "holiday"
)

var KindValues = []string{
	string(KindVacation),
	string(KindSchedule),
	string(KindHoliday),
}

type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// EventType is a calendar category. IsAllDay types are date-only and never
// placed on the hour axis.
type EventType struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Kind     Kind   `json:"kind" yaml:"kind"`
	Color    string `json:"color" yaml:"color"`
	IsAllDay bool   `json:"is_all_day" yaml:"is_all_day"`
}

// Payload is the per-kind part of an Event. The set of payloads is closed.
type Payload interface {
	Kind() Kind
	isPayload()
}

type VacationPayload struct {
	VacationType string  `json:"vacation_type"`
	Hours        float64 `json:"hours,omitempty"`
}

func (VacationPayload) Kind() Kind { return KindVacation }
func (VacationPayload) isPayload() {}

type SchedulePayload struct {
	Location string `json:"location,omitempty"`
	RRule    string `json:"rrule,omitempty"`
}

func (SchedulePayload) Kind() Kind { return KindSchedule }
func (SchedulePayload) isPayload() {}

type HolidayPayload struct {
	HolidayType HolidayType `json:"holiday_type"`
	DateKey     string      `json:"date_key"`
}

func (HolidayPayload) Kind() Kind { return KindHoliday }
func (HolidayPayload) isPayload() {}

// Event is the canonical unit of schedulable time. Start and End are both
// inclusive.
type Event struct {
	ID          string
	Title       string
	Start       time.Time
	End         time.Time
	User        User
	Type        EventType
	Description string
	Payload     Payload
}

// Kind resolves the event kind from its payload, falling back to the type.
func (e Event) Kind() Kind {
	if e.Payload != nil {
		return e.Payload.Kind()
	}
	return e.Type.Kind
}

// Color returns the badge color for the event.
func (e Event) Color() string {
	switch p := e.Payload.(type) {
	case HolidayPayload:
		if c := p.HolidayType.Color(); c != "" {
			return c
		}
	case VacationPayload, SchedulePayload, nil:
	}
	return e.Type.Color
}

func (e Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// Validate reports malformed intervals.
func (e Event) Validate() error {
	if e.Start.After(e.End) {
		return fmt.Errorf("event %s: %w", e.ID, ErrInvalidInterval)
	}
	return nil
}

type eventJSON struct {
	ID          string           `json:"id"`
	Title       string           `json:"title,omitempty"`
	StartDate   time.Time        `json:"start_date"`
	EndDate     time.Time        `json:"end_date"`
	User        User             `json:"user"`
	Type        EventType        `json:"type"`
	Description string           `json:"description,omitempty"`
	Kind        Kind             `json:"kind"`
	Vacation    *VacationPayload `json:"vacation,omitempty"`
	Schedule    *SchedulePayload `json:"schedule,omitempty"`
	Holiday     *HolidayPayload  `json:"holiday,omitempty"`
}

func (e Event) MarshalJSON() ([]byte, error) {
	out := eventJSON{
		ID:          e.ID,
		Title:       e.Title,
		StartDate:   e.Start,
		EndDate:     e.End,
		User:        e.User,
		Type:        e.Type,
		Description: e.Description,
		Kind:        e.Kind(),
	}
	switch p := e.Payload.(type) {
	case VacationPayload:
		out.Vacation = &p
	case SchedulePayload:
		out.Schedule = &p
	case HolidayPayload:
		out.Holiday = &p
	case nil:
	default:
		return nil, fmt.Errorf("marshal event %s: %w", e.ID, ErrUnknownEventKind)
	}
	return json.Marshal(out)
}

func (e *Event) UnmarshalJSON(data []byte) error {
	var in eventJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	kind := in.Kind
	if kind == "" {
		kind = in.Type.Kind
	}

	*e = Event{
		ID:          in.ID,
		Title:       in.Title,
		Start:       in.StartDate,
		End:         in.EndDate,
		User:        in.User,
		Type:        in.Type,
		Description: in.Description,
	}

	switch kind {
	case KindVacation:
		if in.Vacation != nil {
			e.Payload = *in.Vacation
		} else {
			e.Payload = VacationPayload{}
		}
	case KindSchedule:
		if in.Schedule != nil {
			e.Payload = *in.Schedule
		} else {
			e.Payload = SchedulePayload{}
		}
	case KindHoliday:
		if in.Holiday != nil {
			e.Payload = *in.Holiday
		} else {
			e.Payload = HolidayPayload{}
		}
	case "":
	default:
		return fmt.Errorf("event %s kind %q: %w", in.ID, kind, ErrUnknownEventKind)
	}

	if e.Type.Kind == "" {
		e.Type.Kind = kind
	}
	return nil
}

// EncodePayload stores a payload as JSON. A nil payload encodes as "{}".
func EncodePayload(p Payload) ([]byte, error) {
	if p == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(p)
}

// DecodePayload rebuilds the payload for kind from its stored JSON.
func DecodePayload(kind Kind, data []byte) (Payload, error) {
	if len(data) == 0 {
		data = []byte("{}")
	}
	switch kind {
	case KindVacation:
		var p VacationPayload
		err := json.Unmarshal(data, &p)
		return p, err
	case KindSchedule:
		var p SchedulePayload
		err := json.Unmarshal(data, &p)
		return p, err
	case KindHoliday:
		var p HolidayPayload
		err := json.Unmarshal(data, &p)
		return p, err
	}
	return nil, fmt.Errorf("kind %q: %w", kind, ErrUnknownEventKind)
}

// RRule returns the recurrence rule of a schedule event, if any.
func (e Event) RRule() string {
	if p, ok := e.Payload.(SchedulePayload); ok {
		return p.RRule
	}
	return ""
}

type HolidayType string

const (
	HolidayTypePublic     HolidayType = "PUBLIC"
	HolidayTypeSubstitute HolidayType = "SUBSTITUTE"
	HolidayTypeEtc        HolidayType = "ETC"
)

var HolidayTypeValues = []string{
	string(HolidayTypePublic),
	string(HolidayTypeSubstitute),
	string(HolidayTypeEtc),
}

const (
	ColorHolidayRed  = "#ff6767"
	ColorHolidayBlue = "#6767ff"
)

func (t HolidayType) Color() string {
	switch t {
	case HolidayTypePublic, HolidayTypeSubstitute:
		return ColorHolidayRed
	case HolidayTypeEtc:
		return ColorHolidayBlue
	}
	return ""
}

type Holiday struct {
	ID      string      `json:"holiday_id"`
	DateKey string      `json:"holiday_date"` // YYYYMMDD
	Name    string      `json:"holiday_name"`
	Type    HolidayType `json:"holiday_type"`
	Country string      `json:"country_code,omitempty"`
}

// HolidayLookup resolves a holiday by "YYYYMMDD" or "YYYY-MM-DD" date key.
type HolidayLookup interface {
	FindHolidayByDate(dateKey string) (Holiday, bool)
}

const DateKeyLayout = "20060102"

// DateKey formats t as YYYYMMDD in its own location.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// NormalizeDateKey accepts YYYYMMDD or YYYY-MM-DD.
func NormalizeDateKey(key string) string {
	return strings.ReplaceAll(strings.TrimSpace(key), "-", "")
}

type View string

const (
	ViewDay    View = "day"
	ViewWeek   View = "week"
	ViewMonth  View = "month"
	ViewYear   View = "year"
	ViewAgenda View = "agenda"
)

var ViewValues = []string{
	string(ViewDay),
	string(ViewWeek),
	string(ViewMonth),
	string(ViewYear),
	string(ViewAgenda),
}

func ParseView(s string) (View, error) {
	switch v := View(strings.ToLower(strings.TrimSpace(s))); v {
	case ViewDay, ViewWeek, ViewMonth, ViewYear, ViewAgenda:
		return v, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrInvalidView)
}

// HourRange bounds the timed-event axis. To may be 24.
type HourRange struct {
	From int `json:"from" yaml:"from"`
	To   int `json:"to" yaml:"to"`
}

var DefaultVisibleHours = HourRange{From: 7, To: 22}

func (h HourRange) Valid() bool {
	return h.From >= 0 && h.To <= 24 && h.From < h.To
}

func (h HourRange) Len() int {
	return h.To - h.From
}

// Hours lists every hour row in the range.
func (h HourRange) Hours() []int {
	hours := make([]int, 0, max(h.Len(), 0))
	for i := h.From; i < h.To; i++ {
		hours = append(hours, i)
	}
	return hours
}

// WorkingHours is used for background shading only.
type WorkingHours map[time.Weekday]HourRange

func DefaultWorkingHours() WorkingHours {
	return WorkingHours{
		time.Sunday:    {From: 0, To: 0},
		time.Monday:    {From: 7, To: 22},
		time.Tuesday:   {From: 7, To: 22},
		time.Wednesday: {From: 7, To: 22},
		time.Thursday:  {From: 7, To: 22},
		time.Friday:    {From: 7, To: 22},
		time.Saturday:  {From: 0, To: 0},
	}
}

func (w WorkingHours) IsWorkingHour(day time.Time, hour int) bool {
	r, ok := w[day.Weekday()]
	if !ok {
		return false
	}
	return hour >= r.From && hour < r.To
}

// Selection is either the "all" sentinel or an explicit id set.
type Selection struct {
	All bool
	IDs []string
}

func SelectAll() Selection {
	return Selection{All: true}
}

func SelectIDs(ids ...string) Selection {
	if ids == nil {
		ids = []string{}
	}
	return Selection{IDs: ids}
}

// OrAll treats a zero Selection as the "all" sentinel. An explicit empty
// set stays empty.
func (s Selection) OrAll() Selection {
	if !s.All && s.IDs == nil {
		return SelectAll()
	}
	return s
}

func (s Selection) Contains(id string) bool {
	if s.All {
		return true
	}
	for _, v := range s.IDs {
		if v == id {
			return true
		}
	}
	return false
}

// ParseSelection reads a query value: empty or "all" selects everything,
// otherwise a comma separated id list.
func ParseSelection(raw string) Selection {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "all") {
		return SelectAll()
	}
	ids := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			ids = append(ids, part)
		}
	}
	return SelectIDs(ids...)
}

func (s Selection) MarshalJSON() ([]byte, error) {
	if s.All {
		return json.Marshal("all")
	}
	ids := s.IDs
	if ids == nil {
		ids = []string{}
	}
	return json.Marshal(ids)
}

func (s *Selection) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if str != "all" {
			return fmt.Errorf("selection %q: %w", str, ErrInvalidSelection)
		}
		*s = SelectAll()
		return nil
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return fmt.Errorf("selection: %w", ErrInvalidSelection)
	}
	*s = SelectIDs(ids...)
	return nil
}

type Filter struct {
	Users Selection `json:"selected_user_ids"`
	Types Selection `json:"selected_type_ids"`
}

func FilterAll() Filter {
	return Filter{Users: SelectAll(), Types: SelectAll()}
}
