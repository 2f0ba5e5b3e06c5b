package calendar

import (
	"time"

	"github.com/lshdainty/porest-hr-front-sub002/internal/domain/calendar"
)

type openGroup struct {
	maxEnd time.Time
	events []calendar.Event
}

// GroupOverlapping partitions a day's events into connected components of
// closed-interval overlap. Input order does not matter.
func GroupOverlapping(dayEvents []calendar.Event) [][]calendar.Event {
	groups := make([]*openGroup, 0)

	for _, ev := range sortedByStart(dayEvents) {
		var target *openGroup
		for _, g := range groups {
			if !g.maxEnd.Before(ev.Start) {
				target = g
				break
			}
		}
		if target == nil {
			groups = append(groups, &openGroup{maxEnd: ev.End, events: []calendar.Event{ev}})
			continue
		}
		target.events = append(target.events, ev)
		if ev.End.After(target.maxEnd) {
			target.maxEnd = ev.End
		}
	}

	out := make([][]calendar.Event, 0, len(groups))
	for _, g := range groups {
		out = append(out, g.events)
	}
	return out
}

// DayEvents returns the events that touch day.
func DayEvents(events []calendar.Event, day time.Time) []calendar.Event {
	return SelectEventsInRange(events, StartOfDay(day), EndOfDay(day))
}

func groupIDs(groups [][]calendar.Event) [][]string {
	out := make([][]string, 0, len(groups))
	for _, g := range groups {
		out = append(out, eventIDs(g))
	}
	return out
}
