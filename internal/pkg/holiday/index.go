package holiday

import (
	"sort"

	"github.com/lshdainty/porest-hr-front-sub002/internal/domain/calendar"
)

// Index answers holiday lookups by date key. When a date carries several
// holidays the public one wins.
type Index struct {
	byDate map[string]calendar.Holiday
}

var _ calendar.HolidayLookup = (*Index)(nil)

func NewIndex(holidays []calendar.Holiday) *Index {
	idx := &Index{byDate: make(map[string]calendar.Holiday, len(holidays))}
	for _, h := range holidays {
		key := calendar.NormalizeDateKey(h.DateKey)
		h.DateKey = key
		if cur, ok := idx.byDate[key]; ok && rank(cur.Type) <= rank(h.Type) {
			continue
		}
		idx.byDate[key] = h
	}
	return idx
}

func rank(t calendar.HolidayType) int {
	switch t {
	case calendar.HolidayTypePublic:
		return 0
	case calendar.HolidayTypeSubstitute:
		return 1
	}
	return 2
}

// FindHolidayByDate accepts YYYYMMDD or YYYY-MM-DD.
func (i *Index) FindHolidayByDate(dateKey string) (calendar.Holiday, bool) {
	if i == nil {
		return calendar.Holiday{}, false
	}
	h, ok := i.byDate[calendar.NormalizeDateKey(dateKey)]
	return h, ok
}

func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.byDate)
}

// All returns the indexed holidays ordered by date.
func (i *Index) All() []calendar.Holiday {
	out := make([]calendar.Holiday, 0, i.Len())
	if i == nil {
		return out
	}
	for _, h := range i.byDate {
		out = append(out, h)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].DateKey < out[b].DateKey })
	return out
}
