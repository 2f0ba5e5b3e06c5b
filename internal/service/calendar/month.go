package calendar

import (
	"sort"
	"time"

	"github.com/lshdainty/porest-hr-front-sub002/internal/domain/calendar"
)

// CalendarCells returns whole weeks covering date's month.
func CalendarCells(date time.Time, weekStart time.Weekday) []calendar.Cell {
	first := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	last := first.AddDate(0, 1, -1)
	start := StartOfWeek(first, weekStart)
	end := StartOfWeek(last, weekStart).AddDate(0, 0, 6)

	cells := make([]calendar.Cell, 0, 42)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		cells = append(cells, calendar.Cell{
			Date:         d,
			Day:          d.Day(),
			CurrentMonth: d.Month() == date.Month(),
		})
	}
	return cells
}

func CellDates(cells []calendar.Cell) []time.Time {
	out := make([]time.Time, 0, len(cells))
	for _, c := range cells {
		out = append(out, c.Date)
	}
	return out
}

// ComputePositions gives every event the lowest row free on all grid days
// it spans, so a multi-day event keeps one row across the grid.
func ComputePositions(events []calendar.Event, cells []time.Time) calendar.Positions {
	positions := make(calendar.Positions)
	if len(events) == 0 || len(cells) == 0 {
		return positions
	}

	loc := cells[0].Location()
	inGrid := make(map[string]bool, len(cells))
	gridStart, gridEnd := dayIn(cells[0], loc), dayIn(cells[0], loc)
	for _, c := range cells {
		d := dayIn(c, loc)
		inGrid[calendar.DateKey(d)] = true
		if d.Before(gridStart) {
			gridStart = d
		}
		if d.After(gridEnd) {
			gridEnd = d
		}
	}

	occupied := make(map[string]map[int]bool)
	for _, ev := range sortedByStart(events) {
		from := dayIn(ev.Start.In(loc), loc)
		to := dayIn(ev.End.In(loc), loc)
		if from.Before(gridStart) {
			from = gridStart
		}
		if to.After(gridEnd) {
			to = gridEnd
		}
		if from.After(to) {
			continue
		}

		keys := make([]string, 0)
		for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
			if k := calendar.DateKey(d); inGrid[k] {
				keys = append(keys, k)
			}
		}
		if len(keys) == 0 {
			continue
		}

		pos := 0
		for taken(occupied, keys, pos) {
			pos++
		}
		for _, k := range keys {
			if occupied[k] == nil {
				occupied[k] = make(map[int]bool)
			}
			occupied[k][pos] = true
			positions[calendar.CellKey{EventID: ev.ID, Date: k}] = pos
		}
	}
	return positions
}

func taken(occupied map[string]map[int]bool, keys []string, pos int) bool {
	for _, k := range keys {
		if occupied[k][pos] {
			return true
		}
	}
	return false
}

// CellEvents builds one month cell. Events with a position below maxVisible
// get a badge, the rest are counted in Overflow.
func CellEvents(date time.Time, events []calendar.Event, positions calendar.Positions, maxVisible int) calendar.CellLayout {
	if maxVisible <= 0 {
		maxVisible = calendar.DefaultMaxVisible
	}
	day := StartOfDay(date)
	out := calendar.CellLayout{
		Date:   day.Format(calendar.DayLayout),
		Day:    day.Day(),
		Badges: make([]calendar.Badge, 0),
	}

	type placed struct {
		ev  calendar.Event
		pos int
	}
	here := make([]placed, 0)
	for _, ev := range DayEvents(events, day) {
		if pos, ok := positions.At(ev.ID, day); ok {
			here = append(here, placed{ev: ev, pos: pos})
		}
	}
	sort.SliceStable(here, func(i, j int) bool { return here[i].pos < here[j].pos })

	for _, p := range here {
		if p.pos >= maxVisible {
			out.HiddenIDs = append(out.HiddenIDs, p.ev.ID)
			continue
		}
		seg, _ := ClassifySegment(p.ev, day, false)
		out.Badges = append(out.Badges, badgeFor(p.ev, p.pos, seg, day.Location()))
	}

	out.Overflow = len(out.HiddenIDs)
	if out.Overflow > 0 {
		out.ShowMore = &calendar.ShowMore{
			Date:  out.Date,
			View:  calendar.ViewDay,
			Count: out.Overflow,
		}
	}
	return out
}
