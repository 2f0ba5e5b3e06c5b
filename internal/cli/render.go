package cli

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lshdainty/porest-hr-front-sub002/internal/domain/calendar"
)

const (
	cellWidth   = 16
	rowsPerHour = 1
)

var (
	cellStyle    = lipgloss.NewStyle().Width(cellWidth).Border(lipgloss.NormalBorder()).Padding(0, 1)
	headerStyle  = lipgloss.NewStyle().Width(cellWidth + 2).Align(lipgloss.Center).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	dayStyle     = lipgloss.NewStyle().Bold(true)
	moreStyle    = lipgloss.NewStyle().Faint(true).Italic(true)
	lineStyle    = lipgloss.NewStyle().MaxWidth(cellWidth - 2)
	titleStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	nowStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff6767")).Bold(true)
	holidayStyle = func(d calendar.Decoration) lipgloss.Style {
		if d.Color == "" {
			return dayStyle
		}
		return dayStyle.Foreground(lipgloss.Color(d.Color))
	}
)

// renderLayout draws a view as a terminal grid.
func renderLayout(l calendar.ViewLayout, loc *time.Location) (string, error) {
	events := make(map[string]calendar.Event, len(l.Events))
	for _, ev := range l.Events {
		events[ev.ID] = ev
	}

	switch {
	case l.Month != nil:
		return renderMonth(l, events), nil
	case l.Grid != nil:
		return renderTimeGrid(l, events, loc), nil
	case l.Agenda != nil:
		return renderAgenda(l, events, loc), nil
	case l.Year != nil:
		return renderYear(l), nil
	}
	return "", fmt.Errorf("nothing to render for view %q", l.View)
}

func title(events map[string]calendar.Event, id string) string {
	if ev, ok := events[id]; ok && ev.Title != "" {
		return ev.Title
	}
	return id
}

func swatch(color string) string {
	if color == "" {
		return "■"
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("■")
}

func weekdayHeader(dates []string) string {
	cols := make([]string, 0, len(dates))
	for _, d := range dates {
		t, err := time.Parse(calendar.DayLayout, d)
		name := d
		if err == nil {
			name = t.Weekday().String()[:3]
		}
		cols = append(cols, headerStyle.Render(name))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func renderMonth(l calendar.ViewLayout, events map[string]calendar.Event) string {
	cells := l.Month.Cells
	rows := []string{titleStyle.Render(l.Date[:7])}
	if len(cells) >= 7 {
		dates := make([]string, 0, 7)
		for _, c := range cells[:7] {
			dates = append(dates, c.Date)
		}
		rows = append(rows, weekdayHeader(dates))
	}

	for start := 0; start < len(cells); start += 7 {
		end := min(start+7, len(cells))
		week := make([]string, 0, 7)
		for _, c := range cells[start:end] {
			week = append(week, renderMonthCell(c, l.Month.MaxVisible, events))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, week...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderMonthCell(c calendar.CellLayout, maxVisible int, events map[string]calendar.Event) string {
	head := holidayStyle(c.Decoration).Render(fmt.Sprintf("%2d", c.Day))
	if !c.CurrentMonth {
		head = mutedStyle.Render(fmt.Sprintf("%2d", c.Day))
	}
	if c.Decoration.Holiday != nil {
		head += " " + mutedStyle.Render(c.Decoration.Holiday.Name)
	}

	lines := []string{lineStyle.Render(head)}
	for i := 0; i < maxVisible; i++ {
		var badge *calendar.Badge
		for j := range c.Badges {
			if c.Badges[j].Position == i {
				badge = &c.Badges[j]
				break
			}
		}
		if badge == nil {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, lineStyle.Render(badgeLine(*badge, events)))
	}
	if c.ShowMore != nil {
		lines = append(lines, moreStyle.Render(fmt.Sprintf("+%d more", c.ShowMore.Count)))
	} else {
		lines = append(lines, "")
	}
	return cellStyle.Render(strings.Join(lines, "\n"))
}

func badgeLine(b calendar.Badge, events map[string]calendar.Event) string {
	text := b.Text
	if text == "" && b.Rules.ShowTitle {
		text = title(events, b.EventID)
	}
	if text == "" {
		text = "─"
	}
	if b.Time != "" {
		text = b.Time + " " + text
	}
	return swatch(b.Color) + " " + text
}

func renderTimeGrid(l calendar.ViewLayout, events map[string]calendar.Event, loc *time.Location) string {
	grid := l.Grid
	dates := make([]string, 0, len(grid.Columns))
	for _, col := range grid.Columns {
		dates = append(dates, col.Date)
	}

	cols := make([]string, 0, len(grid.Columns))
	for i, col := range grid.Columns {
		lines := []string{lineStyle.Render(holidayStyle(col.Decoration).Render(col.Date[5:]))}

		for _, row := range grid.Bands {
			line := ""
			for _, item := range row.Items {
				if item.StartIndex <= i && i <= item.EndIndex {
					ev := events[item.EventID]
					line = swatch(ev.Color()) + " " + title(events, item.EventID)
					break
				}
			}
			lines = append(lines, lineStyle.Render(line))
		}

		lines = append(lines, gridRows(col, grid, events, loc)...)
		cols = append(cols, cellStyle.Render(strings.Join(lines, "\n")))
	}

	header := fmt.Sprintf("%s  %02d:00-%02d:00", l.Date, grid.VisibleHours.From, grid.VisibleHours.To)
	if len(grid.InProgress) > 0 {
		names := make([]string, 0, len(grid.InProgress))
		for _, id := range grid.InProgress {
			names = append(names, title(events, id))
		}
		header += "  now: " + strings.Join(names, ", ")
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(header),
		weekdayHeader(dates),
		lipgloss.JoinHorizontal(lipgloss.Top, cols...),
	)
}

// gridRows lays a column out one text row per visible hour. Blocks land on
// the row their top edge falls in; events sharing a row are joined.
func gridRows(col calendar.DayColumn, grid *calendar.TimeGridLayout, events map[string]calendar.Event, loc *time.Location) []string {
	n := grid.VisibleHours.Len()
	if n <= 0 {
		return nil
	}
	rows := make([]string, n)
	// Percentages carry three decimals, so 13.333% of 15 rows is row 2.
	row := func(top float64) int {
		return min(max(int(math.Floor(top+0.01)), 0), n-1)
	}

	blocks := append([]calendar.BlockStyle(nil), col.Blocks...)
	sort.SliceStable(blocks, func(a, b int) bool { return blocks[a].Top < blocks[b].Top })
	for _, b := range blocks {
		top, _ := b.Pixels(grid.VisibleHours, rowsPerHour)
		ev := events[b.EventID]
		clock := ev.Start.In(loc).Format("15:04")
		if b.ClippedTop {
			clock = "↑" + clock
		}
		label := swatch(ev.Color()) + " " + clock + " " + title(events, b.EventID)
		r := row(top)
		if rows[r] != "" {
			rows[r] += " "
		}
		rows[r] += label
	}

	if grid.Now != nil && grid.Now.Date == col.Date {
		top := calendar.BlockStyle{Top: grid.Now.Top}
		y, _ := top.Pixels(grid.VisibleHours, rowsPerHour)
		r := row(y)
		rows[r] = nowStyle.Render("▸") + rows[r]
	}

	for i := range rows {
		rows[i] = lineStyle.Render(rows[i])
	}
	return rows
}

func renderAgenda(l calendar.ViewLayout, events map[string]calendar.Event, loc *time.Location) string {
	var b strings.Builder
	for _, day := range l.Agenda.Days {
		head := day.Date
		if day.Decoration.Holiday != nil {
			head += " " + day.Decoration.Holiday.Name
		}
		b.WriteString(holidayStyle(day.Decoration).Render(head))
		b.WriteString("\n")
		for _, entry := range day.Entries {
			ev := events[entry.EventID]
			clock := "all day"
			if !ev.Type.IsAllDay {
				clock = ev.Start.In(loc).Format("15:04") + "-" + ev.End.In(loc).Format("15:04")
			}
			fmt.Fprintf(&b, "  %s %-11s %s\n", swatch(ev.Color()), clock, title(events, entry.EventID))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderYear(l calendar.ViewLayout) string {
	rows := []string{titleStyle.Render(fmt.Sprintf("%d", l.Year.Year))}
	for _, m := range l.Year.Months {
		var b strings.Builder
		fmt.Fprintf(&b, "%-4s", time.Month(m.Month).String()[:3])
		for _, d := range m.Days {
			if len(d.Indicators) == 0 && d.Decoration.Holiday == nil {
				continue
			}
			fmt.Fprintf(&b, " %s", holidayStyle(d.Decoration).Render(fmt.Sprintf("%d", d.Day)))
			for _, ind := range d.Indicators {
				b.WriteString(swatch(ind.Color))
			}
			if d.More > 0 {
				fmt.Fprintf(&b, "+%d", d.More)
			}
		}
		rows = append(rows, b.String())
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
