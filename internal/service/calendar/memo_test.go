package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lshdainty/porest-hr-front-sub002/internal/domain/calendar"
)

func TestContentKey(t *testing.T) {
	events := []calendar.Event{timed("a", "u1", "2024-05-08 09:00", "2024-05-08 10:00")}
	copied := append([]calendar.Event(nil), events...)

	k1, err := ContentKey(events, calendar.FilterAll(), calendar.ViewMonth)
	require.NoError(t, err)
	k2, err := ContentKey(copied, calendar.FilterAll(), calendar.ViewMonth)
	require.NoError(t, err)
	assert.Equal(t, k1, k2)
	assert.Len(t, k1, 64)

	k3, err := ContentKey(events, calendar.FilterAll(), calendar.ViewWeek)
	require.NoError(t, err)
	assert.NotEqual(t, k1, k3)

	k4, err := ContentKey(events, calendar.Filter{Users: calendar.SelectIDs("u1"), Types: calendar.SelectAll()}, calendar.ViewMonth)
	require.NoError(t, err)
	assert.NotEqual(t, k1, k4)
}

func TestMemo(t *testing.T) {
	m := NewMemo[int](2)
	calls := 0
	compute := func(v int) func() int {
		return func() int {
			calls++
			return v
		}
	}

	v, cached := m.Do("a", compute(1))
	assert.Equal(t, 1, v)
	assert.False(t, cached)

	v, cached = m.Do("a", compute(99))
	assert.Equal(t, 1, v)
	assert.True(t, cached)
	assert.Equal(t, 1, calls)

	m.Put("b", 2)
	m.Put("c", 3) // evicts a, the least recently used

	_, ok := m.Get("a")
	assert.False(t, ok)
	v, ok = m.Get("c")
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	stats := m.Stats()
	assert.Equal(t, 2, stats.Size)
	assert.Equal(t, uint64(2), stats.Hits)
	assert.Equal(t, uint64(2), stats.Misses)

	assert.Equal(t, 2, m.Purge())
	assert.Equal(t, 0, m.Stats().Size)
}

func TestMemoDefaultCapacity(t *testing.T) {
	m := NewMemo[string](0)
	for i := 0; i < 200; i++ {
		m.Put(string(rune('a'+i%26))+string(rune('a'+i/26)), "x")
	}
	assert.Equal(t, 128, m.Stats().Size)
}

func TestMemoEvictsLeastRecentlyUsed(t *testing.T) {
	m := NewMemo[int](2)
	m.Put("a", 1)
	m.Put("b", 2)

	_, ok := m.Get("a")
	require.True(t, ok)
	m.Put("c", 3)

	_, ok = m.Get("b")
	assert.False(t, ok)
	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}
