package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lshdainty/porest-hr-front-sub002/internal/domain/calendar"
)

func standupLayout() calendar.ViewLayout {
	ev := calendar.Event{
		ID:    "m",
		Title: "Standup",
		Start: time.Date(2024, 5, 14, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 5, 14, 9, 30, 0, 0, time.UTC),
		Type:  calendar.EventType{ID: "MEETING", Kind: calendar.KindSchedule, Color: "#03bd9e"},
	}
	return calendar.ViewLayout{
		View:   calendar.ViewDay,
		Date:   "2024-05-14",
		Events: []calendar.Event{ev},
		Grid: &calendar.TimeGridLayout{
			VisibleHours: calendar.HourRange{From: 7, To: 22},
			Columns: []calendar.DayColumn{{
				Date:   "2024-05-14",
				Blocks: []calendar.BlockStyle{{EventID: "m", LaneCount: 1, FullWidth: true, Width: 100, Top: 13.333, Height: 3.333}},
			}},
			InProgress: []string{"m"},
			Now:        &calendar.TimeIndicator{Date: "2024-05-14", Top: 50},
		},
	}
}

func TestGridRowsPlacesBlocksByHour(t *testing.T) {
	l := standupLayout()
	events := map[string]calendar.Event{"m": l.Events[0]}

	rows := gridRows(l.Grid.Columns[0], l.Grid, events, time.UTC)
	require.Len(t, rows, 15)
	assert.Contains(t, rows[2], "09:00")
	assert.NotContains(t, rows[1], "09:00")
	assert.NotContains(t, rows[3], "09:00")
	assert.Contains(t, rows[7], "▸")

	l.Grid.Now.Date = "2024-05-15"
	rows = gridRows(l.Grid.Columns[0], l.Grid, events, time.UTC)
	for _, r := range rows {
		assert.NotContains(t, r, "▸")
	}
}

func TestRenderTimeGridHeader(t *testing.T) {
	out, err := renderLayout(standupLayout(), time.UTC)
	require.NoError(t, err)
	assert.Contains(t, out, "07:00-22:00")
	assert.Contains(t, out, "now: Standup")
	assert.Contains(t, out, "Tue")

	_, err = renderLayout(calendar.ViewLayout{View: calendar.ViewMonth}, time.UTC)
	assert.Error(t, err)
}
