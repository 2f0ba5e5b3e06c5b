package fixtures

import (
	"github.com/lshdainty/porest-hr-front-sub002/internal/domain/calendar"
)

// ==========================================
// DEFAULT CALENDAR TYPES
// ==========================================

// HolidayTypeID is the catalog entry holiday events are filed under.
const HolidayTypeID = "HOLIDAY"

// GetDefaultCalendarTypes returns the built-in vacation and schedule
// categories. Date-only types are laid out as all-day.
func GetDefaultCalendarTypes() []calendar.EventType {
	return []calendar.EventType{
		// Vacations
		{ID: "DAYOFF", Name: "연차", Kind: calendar.KindVacation, Color: "#9e5fff", IsAllDay: true},
		{ID: "MORNINGOFF", Name: "오전반차", Kind: calendar.KindVacation, Color: "#00a9ff"},
		{ID: "AFTERNOONOFF", Name: "오후반차", Kind: calendar.KindVacation, Color: "#ff5583"},
		{ID: "ONETIMEOFF", Name: "1시간 휴가", Kind: calendar.KindVacation, Color: "#ffbb3b"},
		{ID: "TWOTIMEOFF", Name: "2시간 휴가", Kind: calendar.KindVacation, Color: "#ffbb3b"},
		{ID: "THREETIMEOFF", Name: "3시간 휴가", Kind: calendar.KindVacation, Color: "#ffbb3b"},
		{ID: "FIVETIMEOFF", Name: "5시간 휴가", Kind: calendar.KindVacation, Color: "#ffbb3b"},
		{ID: "SIXTIMEOFF", Name: "6시간 휴가", Kind: calendar.KindVacation, Color: "#ffbb3b"},
		{ID: "SEVENTIMEOFF", Name: "7시간 휴가", Kind: calendar.KindVacation, Color: "#ffbb3b"},
		{ID: "HALFTIMEOFF", Name: "30분 휴가", Kind: calendar.KindVacation, Color: "#ffbb3b"},
		{ID: "HEALTHCHECKHALF", Name: "건강검진(반차)", Kind: calendar.KindVacation, Color: "#707bf5"},
		{ID: "DEFENSE", Name: "민방위", Kind: calendar.KindVacation, Color: "#a06549", IsAllDay: true},
		{ID: "DEFENSEHALF", Name: "민방위(반차)", Kind: calendar.KindVacation, Color: "#a06549"},

		// Schedules
		{ID: "BUSINESSTRIP", Name: "출장", Kind: calendar.KindSchedule, Color: "#03bd9e", IsAllDay: true},
		{ID: "EDUCATION", Name: "교육", Kind: calendar.KindSchedule, Color: "#ff6450", IsAllDay: true},
		{ID: "BIRTHDAY", Name: "생일", Kind: calendar.KindSchedule, Color: "#7bb65a", IsAllDay: true},
		{ID: "BIRTHPARTY", Name: "생일파티", Kind: calendar.KindSchedule, Color: "#7bb65a", IsAllDay: true},

		// Holidays
		{ID: HolidayTypeID, Name: "공휴일", Kind: calendar.KindHoliday, Color: calendar.ColorHolidayRed, IsAllDay: true},
	}
}

// GetDefaultVacationHours returns the hours each vacation type deducts.
func GetDefaultVacationHours() map[string]float64 {
	return map[string]float64{
		"DAYOFF":          8,
		"MORNINGOFF":      4,
		"AFTERNOONOFF":    4,
		"ONETIMEOFF":      1,
		"TWOTIMEOFF":      2,
		"THREETIMEOFF":    3,
		"FIVETIMEOFF":     5,
		"SIXTIMEOFF":      6,
		"SEVENTIMEOFF":    7,
		"HALFTIMEOFF":     0.5,
		"HEALTHCHECKHALF": 4,
		"DEFENSE":         8,
		"DEFENSEHALF":     4,
	}
}
