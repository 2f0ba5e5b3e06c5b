package holiday

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/lshdainty/porest-hr-front-sub002/internal/domain/calendar"
)

// Namespace seeds holiday ids so re-importing a feed yields the same ids.
var Namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("porest/holiday"))

// Classifier maps a VEVENT summary and CATEGORIES value to a holiday type.
type Classifier func(summary, categories string) calendar.HolidayType

// DefaultClassifier treats everything as a public holiday unless the
// categories or summary mark it as a substitute day or an observance.
func DefaultClassifier(summary, categories string) calendar.HolidayType {
	c := strings.ToUpper(categories)
	s := strings.ToLower(summary)
	switch {
	case strings.Contains(c, "SUBSTITUTE"), strings.Contains(s, "substitute"), strings.Contains(summary, "대체"):
		return calendar.HolidayTypeSubstitute
	case strings.Contains(c, "ETC"), strings.Contains(c, "OBSERVANCE"):
		return calendar.HolidayTypeEtc
	}
	return calendar.HolidayTypePublic
}

type ParseOptions struct {
	Classify Classifier
	Country  string
	Location *time.Location
}

// ParseICS reads every VEVENT of an iCalendar feed as holidays, one per
// covered day. All-day DTEND is exclusive.
func ParseICS(r io.Reader, opts ParseOptions) ([]calendar.Holiday, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read holiday feed: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, calendar.ErrEmptyHolidayFeed
	}
	if opts.Classify == nil {
		opts.Classify = DefaultClassifier
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse holiday feed: %w", err)
	}

	seen := make(map[string]bool)
	out := make([]calendar.Holiday, 0)
	for _, ve := range cal.Events() {
		summary := ""
		if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
			summary = strings.TrimSpace(p.Value)
		}
		categories := ""
		if p := ve.GetProperty(ical.ComponentPropertyCategories); p != nil {
			categories = p.Value
		}

		start, err := ve.GetStartAt()
		if err != nil {
			slog.Warn("Skipping holiday without DTSTART", "summary", summary, "error", err)
			continue
		}

		allDay := false
		if p := ve.GetProperty(ical.ComponentPropertyDtStart); p != nil && !strings.Contains(p.Value, "T") {
			allDay = true
		}

		first := dayOf(start, loc, allDay)
		last := first
		if end, err := ve.GetEndAt(); err == nil && end.After(start) {
			last = dayOf(end, loc, allDay)
			if allDay {
				last = last.AddDate(0, 0, -1)
			}
		}
		if last.Before(first) {
			last = first
		}

		typ := opts.Classify(summary, categories)
		for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
			key := calendar.DateKey(d)
			if seen[key+summary] {
				continue
			}
			seen[key+summary] = true
			out = append(out, calendar.Holiday{
				ID:      uuid.NewSHA1(Namespace, []byte(key+"|"+summary)).String(),
				DateKey: key,
				Name:    summary,
				Type:    typ,
				Country: opts.Country,
			})
		}
	}

	slog.Info("Holiday feed parsed", "vevents", len(cal.Events()), "holidays", len(out))
	return out, nil
}

// dayOf returns midnight of t's date. Date-only values keep their nominal
// date regardless of the zone the parser attached.
func dayOf(t time.Time, loc *time.Location, allDay bool) time.Time {
	if !allDay {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
