package calendar

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/lshdainty/porest-hr-front-sub002/internal/domain/calendar"
)

var kst = time.FixedZone("KST", 9*60*60)

var (
	meetingType = calendar.EventType{ID: "MEETING", Name: "회의", Kind: calendar.KindSchedule, Color: "#03bd9e"}
	dayoffType  = calendar.EventType{ID: "DAYOFF", Name: "연차", Kind: calendar.KindVacation, Color: "#9e5fff", IsAllDay: true}
)

// at parses "2006-01-02 15:04" in KST.
func at(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", s, kst)
	if err != nil {
		panic(err)
	}
	return t
}

func day(s string) time.Time {
	return at(s + " 00:00")
}

func timed(id, user, start, end string) calendar.Event {
	return calendar.Event{
		ID:      id,
		Title:   "meeting " + id,
		Start:   at(start),
		End:     at(end),
		User:    calendar.User{ID: user, Name: "user " + user},
		Type:    meetingType,
		Payload: calendar.SchedulePayload{},
	}
}

// allDay spans whole days from first to last inclusive.
func allDay(id, user, first, last string) calendar.Event {
	return calendar.Event{
		ID:      id,
		Start:   day(first),
		End:     EndOfDay(day(last)),
		User:    calendar.User{ID: user, Name: "Kim"},
		Type:    dayoffType,
		Payload: calendar.VacationPayload{VacationType: "DAYOFF", Hours: 8},
	}
}

// randomEvents builds a reproducible May 2024 mix of timed and multi-day
// events over four users.
func randomEvents(seed int64, n int) []calendar.Event {
	r := rand.New(rand.NewSource(seed))
	events := make([]calendar.Event, 0, n)
	for i := 0; i < n; i++ {
		start := time.Date(2024, 5, 1+r.Intn(28), 7+r.Intn(13), 15*r.Intn(4), 0, 0, kst)
		var end time.Time
		if r.Intn(5) == 0 {
			end = start.AddDate(0, 0, 1+r.Intn(4))
		} else {
			end = start.Add(time.Duration(30+15*r.Intn(12)) * time.Minute)
		}
		events = append(events, calendar.Event{
			ID:      fmt.Sprintf("e%02d", i),
			Start:   start,
			End:     end,
			User:    calendar.User{ID: fmt.Sprintf("u%d", 1+r.Intn(4))},
			Type:    meetingType,
			Payload: calendar.SchedulePayload{},
		})
	}
	return events
}

func closedOverlap(a, b calendar.Event) bool {
	return !a.Start.After(b.End) && !b.Start.After(a.End)
}
