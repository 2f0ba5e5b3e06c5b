package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lshdainty/porest-hr-front-sub002/internal/domain/calendar"
)

func TestClassify(t *testing.T) {
	single := timed("s", "u1", "2024-05-08 09:00", "2024-05-08 10:00")
	multi := allDay("m", "u1", "2024-05-08", "2024-05-09")

	out := Classify([]calendar.Event{single, multi})
	assert.Equal(t, []string{"s"}, eventIDs(out.SingleDay))
	assert.Equal(t, []string{"m"}, eventIDs(out.MultiDay))
	assert.True(t, IsSingleDay(allDay("one", "u1", "2024-05-08", "2024-05-08")))

	empty := Classify(nil)
	assert.NotNil(t, empty.SingleDay)
	assert.NotNil(t, empty.MultiDay)
}

func TestSelectEventsInRange(t *testing.T) {
	events := []calendar.Event{
		timed("before", "u1", "2024-04-30 09:00", "2024-04-30 10:00"),
		allDay("spanning", "u1", "2024-04-29", "2024-05-02"),
		timed("inside", "u1", "2024-05-10 09:00", "2024-05-10 10:00"),
		timed("touching", "u1", "2024-05-31 23:00", "2024-06-01 01:00"),
		timed("after", "u1", "2024-06-01 09:00", "2024-06-01 10:00"),
	}
	start, end := ViewRange(calendar.ViewMonth, day("2024-05-15"), time.Sunday)
	assert.Equal(t, []string{"spanning", "inside", "touching"}, eventIDs(SelectEventsInRange(events, start, end)))
}

func TestViewRange(t *testing.T) {
	anchor := day("2024-05-15") // Wednesday

	start, end := ViewRange(calendar.ViewWeek, anchor, time.Sunday)
	assert.Equal(t, day("2024-05-12"), start)
	assert.Equal(t, EndOfDay(day("2024-05-18")), end)

	start, _ = ViewRange(calendar.ViewWeek, anchor, time.Monday)
	assert.Equal(t, day("2024-05-13"), start)

	start, end = ViewRange(calendar.ViewDay, at("2024-05-15 13:20"), time.Sunday)
	assert.Equal(t, anchor, start)
	assert.Equal(t, EndOfDay(anchor), end)

	start, end = ViewRange(calendar.ViewYear, anchor, time.Sunday)
	assert.Equal(t, day("2024-01-01"), start)
	assert.Equal(t, EndOfDay(day("2024-12-31")), end)

	start, end = ViewRange(calendar.ViewAgenda, anchor, time.Sunday)
	assert.Equal(t, day("2024-05-01"), start)
	assert.Equal(t, EndOfDay(day("2024-05-31")), end)
}

func TestFullWidthInsideTransitiveGroup(t *testing.T) {
	// Touching intervals share a group but do not collide.
	a := timed("a", "u1", "2024-05-08 09:00", "2024-05-08 10:00")
	b := timed("b", "u1", "2024-05-08 10:00", "2024-05-08 11:00")

	groups := GroupOverlapping([]calendar.Event{a, b})
	require.Len(t, groups, 1)

	styles := AssignStyles(groups, day("2024-05-08"), wholeDay)
	for _, id := range []string{"a", "b"} {
		assert.True(t, styles[id].FullWidth, id)
		assert.Equal(t, 2, styles[id].LaneCount, id)
		assert.Equal(t, 100.0, styles[id].Width, id)
	}
	assert.Equal(t, 1, styles["b"].Lane)

	// A chain: c collides with d only, e collides with d only.
	c := timed("c", "u1", "2024-05-08 13:00", "2024-05-08 14:00")
	d := timed("d", "u1", "2024-05-08 13:30", "2024-05-08 15:00")
	e := timed("e", "u1", "2024-05-08 14:30", "2024-05-08 16:00")
	groups = GroupOverlapping([]calendar.Event{e, d, c})
	require.Len(t, groups, 1)
	styles = AssignStyles(groups, day("2024-05-08"), wholeDay)
	for _, id := range []string{"c", "d", "e"} {
		assert.False(t, styles[id].FullWidth, id)
		assert.InDelta(t, 100.0/3, styles[id].Width, 1e-9, id)
	}
	assert.InDelta(t, 200.0/3, styles["e"].Left, 1e-9)
}

func TestStrictlyOverlaps(t *testing.T) {
	a := timed("a", "u1", "2024-05-08 09:00", "2024-05-08 10:00")
	assert.False(t, StrictlyOverlaps(a, timed("b", "u1", "2024-05-08 10:00", "2024-05-08 11:00")))
	assert.True(t, StrictlyOverlaps(a, timed("c", "u1", "2024-05-08 09:59", "2024-05-08 11:00")))
	assert.True(t, StrictlyOverlaps(a, timed("z", "u1", "2024-05-08 09:00", "2024-05-08 09:00")))
}

func TestAssignStylesClipsToVisibleHours(t *testing.T) {
	early := timed("early", "u1", "2024-05-08 05:00", "2024-05-08 08:00")
	late := timed("late", "u1", "2024-05-08 21:00", "2024-05-08 23:30")
	visible := calendar.HourRange{From: 7, To: 22}

	styles := AssignStyles(GroupOverlapping([]calendar.Event{early, late}), day("2024-05-08"), visible)

	assert.True(t, styles["early"].ClippedTop)
	assert.False(t, styles["early"].ClippedBottom)
	assert.Equal(t, 0.0, styles["early"].Top)
	assert.Equal(t, 6.667, styles["early"].Height)

	assert.True(t, styles["late"].ClippedBottom)
	assert.Equal(t, 93.333, styles["late"].Top)
	assert.Equal(t, 6.667, styles["late"].Height)

	top, height := styles["late"].Pixels(visible, calendar.DefaultHourHeight)
	assert.InDelta(t, 14*96, top, 0.5)
	assert.InDelta(t, 96, height, 0.5)
}

func TestAssignStylesOutsideWindow(t *testing.T) {
	dawn := timed("dawn", "u1", "2024-05-08 04:00", "2024-05-08 05:00")
	night := timed("night", "u1", "2024-05-08 23:00", "2024-05-08 23:30")
	visible := calendar.HourRange{From: 7, To: 22}

	styles := AssignStyles(GroupOverlapping([]calendar.Event{dawn, night}), day("2024-05-08"), visible)

	assert.Equal(t, 0.0, styles["dawn"].Top)
	assert.Equal(t, 0.0, styles["dawn"].Height)
	assert.True(t, styles["dawn"].ClippedTop)
	assert.True(t, styles["dawn"].ClippedBottom)

	assert.Equal(t, 100.0, styles["night"].Top)
	assert.Equal(t, 0.0, styles["night"].Height)
	assert.True(t, styles["night"].ClippedTop)
	assert.True(t, styles["night"].ClippedBottom)
}

func TestVisibleHoursWidens(t *testing.T) {
	events := []calendar.Event{
		timed("dawn", "u1", "2024-05-08 06:00", "2024-05-08 07:30"),
		timed("night", "u1", "2024-05-08 21:30", "2024-05-08 22:30"),
		allDay("off", "u1", "2024-05-08", "2024-05-08"),
	}
	r, hours := VisibleHours(calendar.HourRange{From: 7, To: 22}, events)
	assert.Equal(t, calendar.HourRange{From: 6, To: 23}, r)
	assert.Len(t, hours, 17)
	assert.Equal(t, 6, hours[0])

	r, _ = VisibleHours(calendar.HourRange{From: 9, To: 9}, nil)
	assert.Equal(t, calendar.DefaultVisibleHours, r)

	r, _ = VisibleHours(calendar.HourRange{From: 7, To: 22}, []calendar.Event{timed("late", "u1", "2024-05-08 23:00", "2024-05-08 23:59")})
	assert.Equal(t, 24, r.To)
}

func TestTimelineAndInProgress(t *testing.T) {
	visible := calendar.HourRange{From: 7, To: 22}

	pos, ok := TimelinePosition(at("2024-05-08 14:30"), visible)
	require.True(t, ok)
	assert.Equal(t, 50.0, pos)

	_, ok = TimelinePosition(at("2024-05-08 23:00"), visible)
	assert.False(t, ok)

	events := []calendar.Event{
		timed("now", "u1", "2024-05-08 14:00", "2024-05-08 15:00"),
		timed("done", "u1", "2024-05-08 09:00", "2024-05-08 10:00"),
	}
	assert.Equal(t, []string{"now"}, eventIDs(EventsInProgress(events, at("2024-05-08 14:30"))))
	assert.Empty(t, EventsInProgress(nil, at("2024-05-08 14:30")))
}

func TestSegmentHelpers(t *testing.T) {
	ev := allDay("off", "u1", "2024-05-06", "2024-05-08")

	current, total := DayOfSpan(ev, day("2024-05-07"))
	assert.Equal(t, 2, current)
	assert.Equal(t, 3, total)

	seg, ok := ClassifySegment(ev, day("2024-05-07"), true)
	require.True(t, ok)
	assert.Equal(t, calendar.SegmentNone, seg)

	assert.Equal(t, "Kim 연차", DisplayTitle(ev))
	text, clock := BadgeText(ev, calendar.SegmentNone, kst)
	assert.Equal(t, "Kim 연차", text)
	assert.Empty(t, clock, "all-day events show no clock")

	_, clock = BadgeText(timed("m", "u1", "2024-05-08 09:00", "2024-05-08 10:30"), calendar.SegmentNone, kst)
	assert.Equal(t, "09:00 - 10:30", clock)

	assert.Equal(t, calendar.BadgeRules{Time: calendar.TimeHidden}, RulesFor(calendar.SegmentMiddle))
	assert.Equal(t, calendar.BadgeRules{ShowTitle: true, Time: calendar.TimeRange, RoundStart: true, RoundEnd: true}, RulesFor(calendar.SegmentNone))
}

func TestBandsPacking(t *testing.T) {
	events := []calendar.Event{
		allDay("long", "u1", "2024-05-05", "2024-05-08"),
		allDay("overlap", "u2", "2024-05-07", "2024-05-09"),
		allDay("later", "u3", "2024-05-10", "2024-05-11"),
		allDay("carry", "u4", "2024-05-01", "2024-05-06"),
	}

	rows := Bands(events, day("2024-05-05"), 7)
	require.Len(t, rows, 2)

	// Longer spans go first among items starting in the same column.
	assert.Equal(t, "long", rows[0].Items[0].EventID)
	assert.Equal(t, "later", rows[0].Items[1].EventID)
	assert.Equal(t, 6, rows[0].Items[1].EndIndex)

	// carry is clipped to the first column and continues from last week.
	carry := rows[1].Items[0]
	assert.Equal(t, "carry", carry.EventID)
	assert.Equal(t, 0, carry.StartIndex)
	assert.Equal(t, []calendar.Segment{calendar.SegmentMiddle, calendar.SegmentLast}, carry.Segments)
	assert.Equal(t, "overlap", rows[1].Items[1].EventID)

	dayRows := Bands(events, day("2024-05-07"), 1)
	for _, row := range dayRows {
		for _, item := range row.Items {
			assert.Equal(t, []calendar.Segment{calendar.SegmentNone}, item.Segments, item.EventID)
		}
	}
}

func TestFilterAndToggle(t *testing.T) {
	universe := []string{"u1", "u2", "u3"}

	sel := ToggleSelection(calendar.SelectAll(), "u1", universe)
	assert.Equal(t, calendar.SelectIDs("u2", "u3"), sel)

	sel = ToggleSelection(sel, "u1", universe)
	assert.Equal(t, calendar.SelectAll(), sel)

	assert.Equal(t, calendar.SelectIDs(), ToggleAll(calendar.SelectAll()))
	assert.Equal(t, calendar.SelectAll(), ToggleAll(calendar.SelectIDs("u1")))

	events := []calendar.Event{
		timed("a", "u1", "2024-05-08 09:00", "2024-05-08 10:00"),
		allDay("b", "u2", "2024-05-08", "2024-05-08"),
	}
	ghost := calendar.Filter{Users: calendar.SelectIDs("ghost", "u2"), Types: calendar.SelectAll()}
	assert.Equal(t, []string{"b"}, eventIDs(FilterEvents(events, ghost)))

	byType := calendar.Filter{Users: calendar.SelectAll(), Types: calendar.SelectIDs("MEETING")}
	assert.Equal(t, []string{"a"}, eventIDs(FilterEvents(events, byType)))

	none := calendar.Filter{Users: calendar.SelectIDs(), Types: calendar.SelectAll()}
	filtered := FilterEvents(events, none)
	assert.NotNil(t, filtered)
	assert.Empty(t, filtered)
}

func TestIngest(t *testing.T) {
	good := timed("good", "u1", "2024-05-08 09:00", "2024-05-08 10:00")
	bad := timed("bad", "u1", "2024-05-08 11:00", "2024-05-08 10:00")

	valid, rejected := Ingest([]calendar.Event{good, bad}, IngestOptions{Policy: PolicyCoerce})
	require.Len(t, valid, 2)
	assert.Equal(t, []string{"bad"}, eventIDs(rejected))
	assert.True(t, valid[1].End.Equal(valid[1].Start))

	valid, rejected = Ingest([]calendar.Event{good, bad}, IngestOptions{Policy: PolicyDrop, Location: time.UTC})
	assert.Equal(t, []string{"good"}, eventIDs(valid))
	assert.Len(t, rejected, 1)
	assert.Equal(t, time.UTC, valid[0].Start.Location())
	assert.Equal(t, 0, valid[0].Start.Hour())

	p, err := ParseMalformedPolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyCoerce, p)
	p, err = ParseMalformedPolicy(" DROP ")
	require.NoError(t, err)
	assert.Equal(t, PolicyDrop, p)
	_, err = ParseMalformedPolicy("ignore")
	assert.Error(t, err)
}

func TestCalendarCells(t *testing.T) {
	cells := CalendarCells(day("2024-05-15"), time.Sunday)
	require.Len(t, cells, 35)
	assert.Equal(t, day("2024-04-28"), cells[0].Date)
	assert.False(t, cells[0].CurrentMonth)
	assert.True(t, cells[3].CurrentMonth)
	assert.Equal(t, day("2024-06-01"), cells[34].Date)

	cells = CalendarCells(day("2024-09-01"), time.Monday)
	assert.Equal(t, day("2024-08-26"), cells[0].Date)
	assert.Len(t, cells, 42)
}

func TestGroupOverlappingZeroDuration(t *testing.T) {
	meeting := timed("a", "u1", "2024-05-08 09:00", "2024-05-08 10:00")

	tests := []struct {
		name    string
		instant calendar.Event
		want    [][]string
	}{
		{
			name:    "instant inside an interval",
			instant: timed("z", "u1", "2024-05-08 09:30", "2024-05-08 09:30"),
			want:    [][]string{{"a", "z"}},
		},
		{
			name:    "instant on the closing endpoint",
			instant: timed("z", "u1", "2024-05-08 10:00", "2024-05-08 10:00"),
			want:    [][]string{{"a", "z"}},
		},
		{
			name:    "instant on the opening endpoint",
			instant: timed("z", "u1", "2024-05-08 09:00", "2024-05-08 09:00"),
			want:    [][]string{{"a", "z"}},
		},
		{
			name:    "isolated instant",
			instant: timed("z", "u1", "2024-05-08 10:30", "2024-05-08 10:30"),
			want:    [][]string{{"a"}, {"z"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups := GroupOverlapping([]calendar.Event{tt.instant, meeting})
			assert.Equal(t, tt.want, groupIDs(groups))
		})
	}

	mixed := GroupOverlapping([]calendar.Event{
		timed("y", "u1", "2024-05-08 10:30", "2024-05-08 10:30"),
		timed("z", "u1", "2024-05-08 09:30", "2024-05-08 09:30"),
		meeting,
	})
	assert.Equal(t, [][]string{{"a", "z"}, {"y"}}, groupIDs(mixed))
}

func TestCellEventsOverflowCountsHiddenOnly(t *testing.T) {
	ev := timed("late", "u1", "2024-05-08 09:00", "2024-05-08 10:00")
	positions := calendar.Positions{
		calendar.CellKey{EventID: "late", Date: "20240508"}: 3,
	}

	cell := CellEvents(day("2024-05-08"), []calendar.Event{ev}, positions, 3)

	assert.Empty(t, cell.Badges)
	assert.Equal(t, []string{"late"}, cell.HiddenIDs)
	assert.Equal(t, 1, cell.Overflow)
	require.NotNil(t, cell.ShowMore)
	assert.Equal(t, 1, cell.ShowMore.Count)
	assert.Equal(t, calendar.ViewDay, cell.ShowMore.View)
	assert.Equal(t, "2024-05-08", cell.ShowMore.Date)
}
