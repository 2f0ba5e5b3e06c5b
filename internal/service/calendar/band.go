package calendar

import (
	"sort"
	"time"

	"github.com/lshdainty/porest-hr-front-sub002/internal/domain/calendar"
)

// Bands packs date-spanning events into rows over days columns starting at
// start. Each event lands in the first row where it does not share a column.
func Bands(events []calendar.Event, start time.Time, days int) []calendar.BandRow {
	rows := make([]calendar.BandRow, 0)
	if days <= 0 || len(events) == 0 {
		return rows
	}
	first := StartOfDay(start)

	items := make([]calendar.BandItem, 0, len(events))
	for _, ev := range sortedByStart(events) {
		startIdx := daysBetween(first, ev.Start.In(first.Location()))
		endIdx := daysBetween(first, ev.End.In(first.Location()))
		if endIdx < 0 || startIdx > days-1 {
			continue
		}
		startIdx = max(startIdx, 0)
		endIdx = min(endIdx, days-1)

		item := calendar.BandItem{
			EventID:    ev.ID,
			StartIndex: startIdx,
			EndIndex:   endIdx,
			Segments:   make([]calendar.Segment, 0, endIdx-startIdx+1),
		}
		for i := startIdx; i <= endIdx; i++ {
			seg, _ := ClassifySegment(ev, first.AddDate(0, 0, i), days == 1)
			item.Segments = append(item.Segments, seg)
		}
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.StartIndex != b.StartIndex {
			return a.StartIndex < b.StartIndex
		}
		if la, lb := a.EndIndex-a.StartIndex, b.EndIndex-b.StartIndex; la != lb {
			return la > lb
		}
		return a.EventID < b.EventID
	})

	for _, item := range items {
		placed := false
		for r := range rows {
			row := rows[r].Items
			if row[len(row)-1].EndIndex < item.StartIndex {
				rows[r].Items = append(rows[r].Items, item)
				placed = true
				break
			}
		}
		if !placed {
			rows = append(rows, calendar.BandRow{Items: []calendar.BandItem{item}})
		}
	}
	return rows
}

// WeekBands is Bands over the seven days starting at weekStart.
func WeekBands(events []calendar.Event, weekStart time.Time) []calendar.BandRow {
	return Bands(events, weekStart, 7)
}
