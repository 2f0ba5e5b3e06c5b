package calendar

import (
	"strings"
	"time"

	"github.com/lshdainty/porest-hr-front-sub002/internal/domain/calendar"
)

// ClassifySegment tells which part of ev a cell shows. ok is false when
// cellDate is outside the event's span. forceNone is for single-cell
// contexts such as the day view.
func ClassifySegment(ev calendar.Event, cellDate time.Time, forceNone bool) (calendar.Segment, bool) {
	loc := ev.Start.Location()
	cell := dayIn(cellDate, loc)
	first := StartOfDay(ev.Start)
	last := dayIn(ev.End.In(loc), loc)

	if cell.Before(first) || cell.After(last) {
		return "", false
	}
	switch {
	case forceNone, first.Equal(last):
		return calendar.SegmentNone, true
	case cell.Equal(first):
		return calendar.SegmentFirst, true
	case cell.Equal(last):
		return calendar.SegmentLast, true
	}
	return calendar.SegmentMiddle, true
}

func RulesFor(seg calendar.Segment) calendar.BadgeRules {
	switch seg {
	case calendar.SegmentFirst:
		return calendar.BadgeRules{ShowTitle: true, Time: calendar.TimeHidden, RoundStart: true}
	case calendar.SegmentMiddle:
		return calendar.BadgeRules{Time: calendar.TimeHidden}
	case calendar.SegmentLast:
		return calendar.BadgeRules{Time: calendar.TimeEnd, RoundEnd: true}
	}
	return calendar.BadgeRules{ShowTitle: true, Time: calendar.TimeRange, RoundStart: true, RoundEnd: true}
}

// DayOfSpan returns the 1-based day index of day within ev, and the span length.
func DayOfSpan(ev calendar.Event, day time.Time) (current, total int) {
	loc := ev.Start.Location()
	total = daysBetween(ev.Start, ev.End.In(loc)) + 1
	current = daysBetween(ev.Start, dayIn(day, loc)) + 1
	return min(max(current, 1), total), total
}

// DisplayTitle falls back to "<user> <type>" for untitled events.
func DisplayTitle(ev calendar.Event) string {
	if t := strings.TrimSpace(ev.Title); t != "" {
		return t
	}
	return strings.TrimSpace(ev.User.Name + " " + ev.Type.Name)
}

// BadgeText renders the title and time strings a segment shows.
func BadgeText(ev calendar.Event, seg calendar.Segment, loc *time.Location) (text, clock string) {
	rules := RulesFor(seg)
	if rules.ShowTitle {
		text = DisplayTitle(ev)
	}
	if ev.Type.IsAllDay {
		return text, ""
	}

	start, end := ev.Start, ev.End
	if loc != nil {
		start, end = start.In(loc), end.In(loc)
	}
	switch rules.Time {
	case calendar.TimeEnd:
		clock = end.Format("15:04")
	case calendar.TimeRange:
		clock = start.Format("15:04") + " - " + end.Format("15:04")
	}
	return text, clock
}

func badgeFor(ev calendar.Event, position int, seg calendar.Segment, loc *time.Location) calendar.Badge {
	text, clock := BadgeText(ev, seg, loc)
	return calendar.Badge{
		EventID:  ev.ID,
		Position: position,
		Segment:  seg,
		Rules:    RulesFor(seg),
		Text:     text,
		Time:     clock,
		Color:    ev.Color(),
	}
}
