package calendar

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lshdainty/porest-hr-front-sub002/internal/domain/calendar"
)

func mayDays() []time.Time {
	days := make([]time.Time, 0, 31)
	for d := day("2024-05-01"); d.Month() == time.May; d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func TestLayoutIsDeterministic(t *testing.T) {
	events := randomEvents(7, 60)
	engine := NewEngine(Options{Location: kst})

	for _, view := range []calendar.View{calendar.ViewDay, calendar.ViewWeek, calendar.ViewMonth, calendar.ViewYear, calendar.ViewAgenda} {
		vc := ViewContext{Date: day("2024-05-15"), View: view}
		first := engine.Layout(events, calendar.FilterAll(), vc)

		reversed := slices.Clone(events)
		slices.Reverse(reversed)
		second := engine.Layout(reversed, calendar.FilterAll(), vc)

		assert.Equal(t, first, second, view)
	}
}

func TestGroupingCoversEveryEventOnce(t *testing.T) {
	events := randomEvents(11, 80)

	for _, d := range mayDays() {
		dayEvents := DayEvents(events, d)
		groups := GroupOverlapping(dayEvents)

		got := make([]string, 0, len(dayEvents))
		for _, g := range groups {
			got = append(got, eventIDs(g)...)
		}
		want := eventIDs(dayEvents)
		slices.Sort(got)
		slices.Sort(want)
		assert.Equal(t, want, got, d.Format(calendar.DayLayout))
	}
}

func TestOverlapCorrectness(t *testing.T) {
	events := randomEvents(23, 80)

	for _, d := range mayDays() {
		groups := GroupOverlapping(DayEvents(events, d))
		styles := AssignStyles(groups, d, wholeDay)

		groupOf := make(map[string]int)
		byID := make(map[string]calendar.Event)
		for gi, g := range groups {
			for _, ev := range g {
				groupOf[ev.ID] = gi
				byID[ev.ID] = ev
			}
		}

		for idA, a := range byID {
			for idB, b := range byID {
				if idA >= idB {
					continue
				}
				if closedOverlap(a, b) {
					assert.Equal(t, groupOf[idA], groupOf[idB], "%s and %s overlap on %s", idA, idB, d)
				}
				if styles[idA].Lane == styles[idB].Lane {
					assert.False(t, closedOverlap(a, b), "%s and %s share lane %d on %s", idA, idB, styles[idA].Lane, d)
				}
			}
		}
	}
}

func TestMultiDayPositionsAreContinuous(t *testing.T) {
	events := randomEvents(5, 60)
	cells := CellDates(CalendarCells(day("2024-05-15"), time.Sunday))
	positions := ComputePositions(events, cells)

	rows := make(map[string]int)
	for key, pos := range positions {
		if prev, ok := rows[key.EventID]; ok {
			require.Equal(t, prev, pos, "event %s changes row on %s", key.EventID, key.Date)
		}
		rows[key.EventID] = pos
	}

	// Two events never share a row on the same day.
	perDay := make(map[string]map[int]string)
	for key, pos := range positions {
		if perDay[key.Date] == nil {
			perDay[key.Date] = make(map[int]string)
		}
		other, clash := perDay[key.Date][pos]
		assert.False(t, clash, "%s and %s share row %d on %s", other, key.EventID, pos, key.Date)
		perDay[key.Date][pos] = key.EventID
	}
}

func TestAllSentinelIsIdempotent(t *testing.T) {
	events := randomEvents(3, 40)
	users := []calendar.User{{ID: "u1"}, {ID: "u2"}, {ID: "u3"}, {ID: "u4"}}

	explicit := calendar.Filter{Users: calendar.SelectIDs(UserIDs(users)...), Types: calendar.SelectAll()}
	assert.Equal(t, FilterEvents(events, calendar.FilterAll()), FilterEvents(events, explicit))

	engine := NewEngine(Options{Location: kst})
	vc := ViewContext{Date: day("2024-05-15"), View: calendar.ViewMonth}
	assert.Equal(t,
		engine.Layout(events, calendar.FilterAll(), vc),
		engine.Layout(events, explicit, vc),
	)

	again := FilterEvents(FilterEvents(events, calendar.FilterAll()), calendar.FilterAll())
	assert.Equal(t, FilterEvents(events, calendar.FilterAll()), again)
}
