package calendar

import (
	"time"

	"github.com/lshdainty/porest-hr-front-sub002/internal/domain/calendar"
)

type Options struct {
	MaxVisible     int
	WeekStart      time.Weekday
	VisibleHours   calendar.HourRange
	WorkingHours   calendar.WorkingHours
	Location       *time.Location
	YearIndicators int
}

func DefaultOptions() Options {
	return Options{
		MaxVisible:     calendar.DefaultMaxVisible,
		WeekStart:      time.Sunday,
		VisibleHours:   calendar.DefaultVisibleHours,
		WorkingHours:   calendar.DefaultWorkingHours(),
		Location:       time.Local,
		YearIndicators: calendar.DefaultYearIndicators,
	}
}

// ViewContext is the window being rendered. VisibleHours overrides the
// engine default for this pass. A non-zero Now marks the time grid, see
// MarkNow.
type ViewContext struct {
	Date         time.Time
	View         calendar.View
	VisibleHours *calendar.HourRange
	Holidays     calendar.HolidayLookup
	Now          time.Time
}

// Engine composes the layout stages into per-view output. It holds only
// configuration and is safe for concurrent use.
type Engine struct {
	opts Options
}

func NewEngine(opts Options) *Engine {
	def := DefaultOptions()
	if opts.MaxVisible <= 0 {
		opts.MaxVisible = def.MaxVisible
	}
	if !opts.VisibleHours.Valid() {
		opts.VisibleHours = def.VisibleHours
	}
	if opts.WorkingHours == nil {
		opts.WorkingHours = def.WorkingHours
	}
	if opts.Location == nil {
		opts.Location = def.Location
	}
	if opts.YearIndicators <= 0 {
		opts.YearIndicators = def.YearIndicators
	}
	return &Engine{opts: opts}
}

func (e *Engine) Options() Options {
	return e.opts
}

// Layout runs filter, range selection and classification, then the stages
// the view needs.
func (e *Engine) Layout(events []calendar.Event, filter calendar.Filter, vc ViewContext) calendar.ViewLayout {
	date := vc.Date.In(e.opts.Location)
	view := vc.View
	if view == "" {
		view = calendar.ViewMonth
	}

	rangeStart, rangeEnd := ViewRange(view, date, e.opts.WeekStart)
	inRange := sortedByStart(SelectEventsInRange(FilterEvents(events, filter), rangeStart, rangeEnd))
	for i := range inRange {
		inRange[i].Start = inRange[i].Start.In(e.opts.Location)
		inRange[i].End = inRange[i].End.In(e.opts.Location)
	}

	out := calendar.ViewLayout{
		View:       view,
		Date:       date.Format(calendar.DayLayout),
		RangeStart: rangeStart,
		RangeEnd:   rangeEnd,
		Events:     inRange,
	}

	switch view {
	case calendar.ViewDay:
		out.Grid = e.timeGrid(StartOfDay(date), 1, inRange, vc)
	case calendar.ViewWeek:
		out.Grid = e.timeGrid(rangeStart, 7, inRange, vc)
	case calendar.ViewYear:
		out.Year = e.year(date.Year(), inRange, vc.Holidays)
	case calendar.ViewAgenda:
		out.Agenda = e.agenda(rangeStart, rangeEnd, inRange, vc.Holidays)
	default:
		out.Month = e.month(date, inRange, vc.Holidays)
	}
	return e.MarkNow(out, vc.Now)
}

func (e *Engine) timeGrid(start time.Time, days int, events []calendar.Event, vc ViewContext) *calendar.TimeGridLayout {
	classified := Classify(events)
	timed := make([]calendar.Event, 0, len(classified.SingleDay))
	banded := make([]calendar.Event, 0, len(classified.MultiDay))
	for _, ev := range classified.SingleDay {
		if ev.Type.IsAllDay {
			banded = append(banded, ev)
		} else {
			timed = append(timed, ev)
		}
	}
	banded = append(banded, classified.MultiDay...)

	configured := e.opts.VisibleHours
	if vc.VisibleHours != nil && vc.VisibleHours.Valid() {
		configured = *vc.VisibleHours
	}
	visible, hours := VisibleHours(configured, timed)

	grid := &calendar.TimeGridLayout{
		VisibleHours: visible,
		Hours:        hours,
		Columns:      make([]calendar.DayColumn, 0, days),
		Bands:        Bands(banded, start, days),
	}

	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		groups := GroupOverlapping(DayEvents(timed, day))
		styles := AssignStyles(groups, day, visible)

		col := calendar.DayColumn{
			Date:         day.Format(calendar.DayLayout),
			Groups:       groupIDs(groups),
			Blocks:       make([]calendar.BlockStyle, 0, len(styles)),
			WorkingHours: e.opts.WorkingHours[day.Weekday()],
			Decoration:   decorate(day, vc.Holidays),
		}
		for _, g := range groups {
			for _, ev := range g {
				col.Blocks = append(col.Blocks, styles[ev.ID])
			}
		}
		grid.Columns = append(grid.Columns, col)
	}

	return grid
}

// MarkNow fills the clock-dependent parts of a time grid: the events in
// progress and the current-time indicator. l itself is left untouched, so a
// cached layout can be marked on every read.
func (e *Engine) MarkNow(l calendar.ViewLayout, now time.Time) calendar.ViewLayout {
	if l.Grid == nil || now.IsZero() {
		return l
	}
	now = now.In(e.opts.Location)

	grid := *l.Grid
	grid.InProgress = eventIDs(EventsInProgress(l.Events, now))
	grid.Now = nil
	today := now.Format(calendar.DayLayout)
	for _, col := range grid.Columns {
		if col.Date != today {
			continue
		}
		if top, ok := TimelinePosition(now, grid.VisibleHours); ok {
			grid.Now = &calendar.TimeIndicator{Date: today, Top: top}
		}
		break
	}
	l.Grid = &grid
	return l
}

func (e *Engine) month(date time.Time, events []calendar.Event, holidays calendar.HolidayLookup) *calendar.MonthLayout {
	cells := CalendarCells(date, e.opts.WeekStart)
	positions := ComputePositions(events, CellDates(cells))

	out := &calendar.MonthLayout{
		MaxVisible: e.opts.MaxVisible,
		Cells:      make([]calendar.CellLayout, 0, len(cells)),
	}
	for _, c := range cells {
		cell := CellEvents(c.Date, events, positions, e.opts.MaxVisible)
		cell.CurrentMonth = c.CurrentMonth
		cell.Decoration = decorate(c.Date, holidays)
		out.Cells = append(out.Cells, cell)
	}
	return out
}

func (e *Engine) year(year int, events []calendar.Event, holidays calendar.HolidayLookup) *calendar.YearLayout {
	loc := e.opts.Location
	byStart := make(map[string][]calendar.Event)
	for _, ev := range events {
		k := calendar.DateKey(ev.Start.In(loc))
		byStart[k] = append(byStart[k], ev)
	}

	out := &calendar.YearLayout{Year: year, Months: make([]calendar.YearMonth, 0, 12)}
	for m := time.January; m <= time.December; m++ {
		first := time.Date(year, m, 1, 0, 0, 0, 0, loc)
		ym := calendar.YearMonth{Month: int(m)}
		for d := first; d.Month() == m; d = d.AddDate(0, 0, 1) {
			yd := calendar.YearDay{
				Date:       d.Format(calendar.DayLayout),
				Day:        d.Day(),
				Decoration: decorate(d, holidays),
			}
			for i, ev := range byStart[calendar.DateKey(d)] {
				if i >= e.opts.YearIndicators {
					yd.More++
					continue
				}
				yd.Indicators = append(yd.Indicators, calendar.Indicator{EventID: ev.ID, Color: ev.Color()})
			}
			ym.Days = append(ym.Days, yd)
		}
		out.Months = append(out.Months, ym)
	}
	return out
}

func (e *Engine) agenda(rangeStart, rangeEnd time.Time, events []calendar.Event, holidays calendar.HolidayLookup) *calendar.AgendaLayout {
	out := &calendar.AgendaLayout{Days: make([]calendar.AgendaDay, 0)}
	for d := StartOfDay(rangeStart); !d.After(rangeEnd); d = d.AddDate(0, 0, 1) {
		entries := make([]calendar.AgendaEntry, 0)
		for _, ev := range DayEvents(events, d) {
			seg, ok := ClassifySegment(ev, d, false)
			if !ok {
				continue
			}
			entries = append(entries, calendar.AgendaEntry{EventID: ev.ID, Segment: seg})
		}
		if len(entries) == 0 {
			continue
		}
		out.Days = append(out.Days, calendar.AgendaDay{
			Date:       d.Format(calendar.DayLayout),
			Entries:    entries,
			Decoration: decorate(d, holidays),
		})
	}
	return out
}

// decorate picks the background of a day: a holiday wins, then weekends.
func decorate(day time.Time, holidays calendar.HolidayLookup) calendar.Decoration {
	if holidays != nil {
		if h, ok := holidays.FindHolidayByDate(calendar.DateKey(day)); ok {
			color := h.Type.Color()
			if color == "" {
				color = calendar.ColorHolidayRed
			}
			return calendar.Decoration{Holiday: &h, Color: color}
		}
	}
	switch day.Weekday() {
	case time.Sunday:
		return calendar.Decoration{Color: calendar.ColorHolidayRed}
	case time.Saturday:
		return calendar.Decoration{Color: calendar.ColorHolidayBlue}
	}
	return calendar.Decoration{}
}
