package calendar

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/lshdainty/porest-hr-front-sub002/internal/domain/calendar"
)

const MaxOccurrencesPerEvent = 500

// ExpandRecurring replaces each schedule event carrying an RRULE with its
// occurrences inside [rangeStart, rangeEnd]. Occurrence ids are
// "<id>@YYYYMMDD" of the occurrence start.
func ExpandRecurring(events []calendar.Event, rangeStart, rangeEnd time.Time) []calendar.Event {
	out := make([]calendar.Event, 0, len(events))
	for _, ev := range events {
		p, ok := ev.Payload.(calendar.SchedulePayload)
		if !ok || p.RRule == "" {
			out = append(out, ev)
			continue
		}

		r, err := rrule.StrToRRule(p.RRule)
		if err != nil {
			slog.Warn("Invalid recurrence rule, keeping base event", "event_id", ev.ID, "rrule", p.RRule, "error", err)
			out = append(out, ev)
			continue
		}
		r.DTStart(ev.Start)

		var set rrule.Set
		set.RRule(r)

		dur := ev.Duration()
		loc := ev.Start.Location()
		// Occurrences that start before the range can still reach into it.
		starts := set.Between(rangeStart.Add(-dur).In(loc), rangeEnd.In(loc), true)
		if len(starts) > MaxOccurrencesPerEvent {
			slog.Warn("Recurrence truncated", "event_id", ev.ID, "occurrences", len(starts), "max", MaxOccurrencesPerEvent)
			starts = starts[:MaxOccurrencesPerEvent]
		}

		for _, s := range starts {
			occ := ev
			occ.ID = ev.ID + "@" + calendar.DateKey(s)
			occ.Start = s
			occ.End = s.Add(dur)
			occ.Payload = calendar.SchedulePayload{Location: p.Location}
			out = append(out, occ)
		}
	}
	return out
}

// ValidateRRule reports whether rule parses as an RFC 5545 RRULE.
func ValidateRRule(rule string) error {
	if _, err := rrule.StrToRRule(rule); err != nil {
		return fmt.Errorf("%w: %v", calendar.ErrInvalidRRule, err)
	}
	return nil
}
