package calendar

import (
	"math"
	"time"

	"github.com/lshdainty/porest-hr-front-sub002/internal/domain/calendar"
)

// StrictlyOverlaps reports a visual collision between two timed events.
// Intervals that only share an endpoint do not collide, except two events
// starting at the same instant.
func StrictlyOverlaps(a, b calendar.Event) bool {
	if a.Start.Equal(b.Start) {
		return true
	}
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// dayWindow is the visible slice of day as absolute times.
func dayWindow(day time.Time, visible calendar.HourRange) (time.Time, time.Time) {
	y, m, d := day.Date()
	loc := day.Location()
	return time.Date(y, m, d, visible.From, 0, 0, 0, loc), time.Date(y, m, d, visible.To, 0, 0, 0, loc)
}

// AssignStyles computes lane and proportional placement for each grouped
// event of day. Groups are expected in GroupOverlapping order. An event
// wholly outside visible collapses onto the nearest edge with both clip
// flags set; widen visible with VisibleHours first to keep it on screen.
func AssignStyles(groups [][]calendar.Event, day time.Time, visible calendar.HourRange) map[string]calendar.BlockStyle {
	styles := make(map[string]calendar.BlockStyle)
	if !visible.Valid() {
		visible = calendar.DefaultVisibleHours
	}
	winStart, winEnd := dayWindow(day, visible)
	winLen := winEnd.Sub(winStart)

	for _, group := range groups {
		k := len(group)
		for lane, ev := range group {
			st := calendar.BlockStyle{
				EventID:   ev.ID,
				Lane:      lane,
				LaneCount: k,
			}

			st.FullWidth = true
			for j, other := range group {
				if j != lane && StrictlyOverlaps(ev, other) {
					st.FullWidth = false
					break
				}
			}
			if st.FullWidth {
				st.Left, st.Width = 0, 100
			} else {
				st.Width = 100 / float64(k)
				st.Left = float64(lane) * st.Width
			}

			start, end := ev.Start, ev.End
			if start.Before(winStart) {
				start = winStart
				st.ClippedTop = true
			}
			if end.After(winEnd) {
				end = winEnd
				st.ClippedBottom = true
			}
			if start.After(winEnd) {
				start = winEnd
			}
			if end.Before(start) {
				end = start
			}
			if ev.End.Before(winStart) || ev.Start.After(winEnd) {
				st.ClippedTop, st.ClippedBottom = true, true
			}
			st.Top = percent(start.Sub(winStart), winLen)
			st.Height = percent(end.Sub(start), winLen)

			styles[ev.ID] = st
		}
	}
	return styles
}

func percent(part, whole time.Duration) float64 {
	if whole <= 0 {
		return 0
	}
	v := float64(part) / float64(whole) * 100
	return math.Round(v*1000) / 1000
}

// VisibleHours widens configured so every timed event fits. The returned
// slice lists the hour rows.
func VisibleHours(configured calendar.HourRange, events []calendar.Event) (calendar.HourRange, []int) {
	r := configured
	if !r.Valid() {
		r = calendar.DefaultVisibleHours
	}
	for _, ev := range events {
		if ev.Type.IsAllDay || !IsSingleDay(ev) {
			continue
		}
		if h := ev.Start.Hour(); h < r.From {
			r.From = h
		}
		endHour := ev.End.Hour()
		if ev.End.Minute() > 0 || ev.End.Second() > 0 || ev.End.Nanosecond() > 0 {
			endHour++
		}
		if endHour > r.To {
			r.To = min(endHour, 24)
		}
	}
	return r, r.Hours()
}

// EventsInProgress returns the events whose interval contains now.
func EventsInProgress(events []calendar.Event, now time.Time) []calendar.Event {
	out := make([]calendar.Event, 0)
	for _, ev := range events {
		if !now.Before(ev.Start) && !now.After(ev.End) {
			out = append(out, ev)
		}
	}
	return out
}

// TimelinePosition places the current-time indicator. ok is false when now
// falls outside the visible window of its day.
func TimelinePosition(now time.Time, visible calendar.HourRange) (float64, bool) {
	winStart, winEnd := dayWindow(now, visible)
	if now.Before(winStart) || now.After(winEnd) {
		return 0, false
	}
	return percent(now.Sub(winStart), winEnd.Sub(winStart)), true
}
