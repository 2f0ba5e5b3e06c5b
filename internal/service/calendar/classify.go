package calendar

import (
	"sort"
	"time"

	"github.com/lshdainty/porest-hr-front-sub002/internal/domain/calendar"
)

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// StartOfWeek returns midnight of the first day of t's week.
func StartOfWeek(t time.Time, weekStart time.Weekday) time.Time {
	d := StartOfDay(t)
	diff := (int(d.Weekday()) - int(weekStart) + 7) % 7
	return d.AddDate(0, 0, -diff)
}

// dayIn returns midnight of t's calendar date in loc.
func dayIn(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// daysBetween counts calendar days from a to b, ignoring DST shifts.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

func IsSingleDay(e calendar.Event) bool {
	return SameDay(e.Start, e.End)
}

type Classified struct {
	SingleDay []calendar.Event
	MultiDay  []calendar.Event
}

// Classify splits events by whether they start and end on the same day.
func Classify(events []calendar.Event) Classified {
	out := Classified{
		SingleDay: make([]calendar.Event, 0),
		MultiDay:  make([]calendar.Event, 0),
	}
	for _, ev := range events {
		if IsSingleDay(ev) {
			out.SingleDay = append(out.SingleDay, ev)
		} else {
			out.MultiDay = append(out.MultiDay, ev)
		}
	}
	return out
}

// SelectEventsInRange keeps events with start <= rangeEnd and end >= rangeStart.
func SelectEventsInRange(events []calendar.Event, rangeStart, rangeEnd time.Time) []calendar.Event {
	out := make([]calendar.Event, 0)
	for _, ev := range events {
		if !ev.Start.After(rangeEnd) && !ev.End.Before(rangeStart) {
			out = append(out, ev)
		}
	}
	return out
}

// ViewRange returns the inclusive bounds a view covers around date.
func ViewRange(view calendar.View, date time.Time, weekStart time.Weekday) (time.Time, time.Time) {
	switch view {
	case calendar.ViewDay:
		return StartOfDay(date), EndOfDay(date)
	case calendar.ViewWeek:
		start := StartOfWeek(date, weekStart)
		return start, EndOfDay(start.AddDate(0, 0, 6))
	case calendar.ViewYear:
		start := time.Date(date.Year(), time.January, 1, 0, 0, 0, 0, date.Location())
		return start, EndOfDay(time.Date(date.Year(), time.December, 31, 0, 0, 0, 0, date.Location()))
	default:
		// month and agenda
		start := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
		return start, EndOfDay(start.AddDate(0, 1, -1))
	}
}

// sortedByStart returns a copy ordered by start date, ties broken by id.
func sortedByStart(events []calendar.Event) []calendar.Event {
	out := make([]calendar.Event, len(events))
	copy(out, events)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Start.Equal(out[j].Start) {
			return out[i].Start.Before(out[j].Start)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func eventIDs(events []calendar.Event) []string {
	ids := make([]string, 0, len(events))
	for _, ev := range events {
		ids = append(ids, ev.ID)
	}
	return ids
}
