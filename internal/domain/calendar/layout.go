package calendar

import "time"

const (
	DefaultMaxVisible = 3
	DefaultHourHeight = 96 // px per hour row
	// DefaultYearIndicators caps the dots drawn per day in the year view.
	DefaultYearIndicators = 3

	DayLayout = "2006-01-02"
)

// BlockStyle places a timed event inside a day column. Top, Height, Left and
// Width are percentages of the column.
type BlockStyle struct {
	EventID       string  `json:"event_id"`
	Lane          int     `json:"lane"`
	LaneCount     int     `json:"lane_count"`
	FullWidth     bool    `json:"full_width"`
	Top           float64 `json:"top"`
	Height        float64 `json:"height"`
	Left          float64 `json:"left"`
	Width         float64 `json:"width"`
	ClippedTop    bool    `json:"clipped_top,omitempty"`
	ClippedBottom bool    `json:"clipped_bottom,omitempty"`
}

// Pixels converts the vertical placement to pixels for a grid rendering
// hourHeight px per visible hour.
func (b BlockStyle) Pixels(visible HourRange, hourHeight int) (top, height float64) {
	total := float64(visible.Len() * hourHeight)
	return b.Top / 100 * total, b.Height / 100 * total
}

// CellKey addresses one day of one event in a month grid. Date is YYYYMMDD.
type CellKey struct {
	EventID string
	Date    string
}

type Positions map[CellKey]int

// At returns the row position of an event on a day.
func (p Positions) At(eventID string, day time.Time) (int, bool) {
	pos, ok := p[CellKey{EventID: eventID, Date: DateKey(day)}]
	return pos, ok
}

type Segment string

const (
	SegmentFirst  Segment = "first"
	SegmentMiddle Segment = "middle"
	SegmentLast   Segment = "last"
	SegmentNone   Segment = "none"
)

type TimeDisplay string

const (
	TimeHidden TimeDisplay = "hidden"
	TimeEnd    TimeDisplay = "end"
	TimeRange  TimeDisplay = "range"
)

// BadgeRules tells the renderer what a segment shows. RoundStart and
// RoundEnd are false on edges that join the neighbouring cell.
type BadgeRules struct {
	ShowTitle  bool        `json:"show_title"`
	Time       TimeDisplay `json:"time"`
	RoundStart bool        `json:"round_start"`
	RoundEnd   bool        `json:"round_end"`
}

type Badge struct {
	EventID  string     `json:"event_id"`
	Position int        `json:"position"`
	Segment  Segment    `json:"segment"`
	Rules    BadgeRules `json:"rules"`
	Text     string     `json:"text,omitempty"`
	Time     string     `json:"time,omitempty"`
	Color    string     `json:"color"`
}

type Cell struct {
	Date         time.Time
	Day          int
	CurrentMonth bool
}

// Decoration is background-only information for a day.
type Decoration struct {
	Holiday *Holiday `json:"holiday,omitempty"`
	Color   string   `json:"color,omitempty"`
}

// ShowMore asks the caller to navigate to View on Date.
type ShowMore struct {
	Date  string `json:"date"`
	View  View   `json:"view"`
	Count int    `json:"count"`
}

type CellLayout struct {
	Date         string     `json:"date"`
	Day          int        `json:"day"`
	CurrentMonth bool       `json:"current_month"`
	Badges       []Badge    `json:"badges"`
	HiddenIDs    []string   `json:"hidden_event_ids,omitempty"`
	Overflow     int        `json:"overflow"`
	ShowMore     *ShowMore  `json:"show_more,omitempty"`
	Decoration   Decoration `json:"decoration"`
}

type MonthLayout struct {
	MaxVisible int          `json:"max_visible"`
	Cells      []CellLayout `json:"cells"`
}

type BandItem struct {
	EventID    string    `json:"event_id"`
	StartIndex int       `json:"start_index"`
	EndIndex   int       `json:"end_index"`
	Segments   []Segment `json:"segments"`
}

type BandRow struct {
	Items []BandItem `json:"items"`
}

type DayColumn struct {
	Date         string       `json:"date"`
	Groups       [][]string   `json:"groups"`
	Blocks       []BlockStyle `json:"blocks"`
	WorkingHours HourRange    `json:"working_hours"`
	Decoration   Decoration   `json:"decoration"`
}

// TimeIndicator is the current-time line: Top percent down the column for
// Date.
type TimeIndicator struct {
	Date string  `json:"date"`
	Top  float64 `json:"top"`
}

type TimeGridLayout struct {
	VisibleHours HourRange      `json:"visible_hours"`
	Hours        []int          `json:"hours"`
	Columns      []DayColumn    `json:"columns"`
	Bands        []BandRow      `json:"bands"`
	InProgress   []string       `json:"in_progress,omitempty"`
	Now          *TimeIndicator `json:"now,omitempty"`
}

type Indicator struct {
	EventID string `json:"event_id"`
	Color   string `json:"color"`
}

type YearDay struct {
	Date       string      `json:"date"`
	Day        int         `json:"day"`
	Indicators []Indicator `json:"indicators,omitempty"`
	More       int         `json:"more,omitempty"`
	Decoration Decoration  `json:"decoration"`
}

type YearMonth struct {
	Month int       `json:"month"`
	Days  []YearDay `json:"days"`
}

type YearLayout struct {
	Year   int         `json:"year"`
	Months []YearMonth `json:"months"`
}

type AgendaEntry struct {
	EventID string  `json:"event_id"`
	Segment Segment `json:"segment"`
}

type AgendaDay struct {
	Date       string        `json:"date"`
	Entries    []AgendaEntry `json:"entries"`
	Decoration Decoration    `json:"decoration"`
}

type AgendaLayout struct {
	Days []AgendaDay `json:"days"`
}

// ViewLayout is the engine output for one view pass. Exactly one of Grid,
// Month, Year and Agenda is set.
type ViewLayout struct {
	View       View            `json:"view"`
	Date       string          `json:"date"`
	RangeStart time.Time       `json:"range_start"`
	RangeEnd   time.Time       `json:"range_end"`
	Events     []Event         `json:"events"`
	Grid       *TimeGridLayout `json:"grid,omitempty"`
	Month      *MonthLayout    `json:"month,omitempty"`
	Year       *YearLayout     `json:"year,omitempty"`
	Agenda     *AgendaLayout   `json:"agenda,omitempty"`
}
