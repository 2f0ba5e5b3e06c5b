package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lshdainty/porest-hr-front-sub002/internal/domain/calendar"
)

var kst = time.FixedZone("KST", 9*60*60)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "calendar.sqlite"), kst)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func meeting(id, userID, userName string, start time.Time, d time.Duration) calendar.Event {
	return calendar.Event{
		ID:      id,
		Title:   "회의",
		Start:   start,
		End:     start.Add(d),
		User:    calendar.User{ID: userID, Name: userName},
		Type:    calendar.EventType{ID: "MEETING", Name: "회의", Kind: calendar.KindSchedule, Color: "#03bd9e"},
		Payload: calendar.SchedulePayload{Location: "Room 1"},
	}
}

func TestEventRepository(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	repo := s.Events()

	start := time.Date(2024, 5, 14, 9, 0, 0, 0, kst)
	ev := meeting("e1", "u1", "Kim", start, time.Hour)

	_, err := repo.Create(ctx, ev)
	require.NoError(t, err)

	_, err = repo.Create(ctx, ev)
	assert.ErrorIs(t, err, calendar.ErrEventExists)

	got, err := repo.GetByID(ctx, "e1")
	require.NoError(t, err)
	assert.True(t, got.Start.Equal(start))
	assert.Equal(t, kst, got.Start.Location())
	assert.Equal(t, ev.Payload, got.Payload)
	assert.Equal(t, ev.Type, got.Type)
	assert.Equal(t, ev.User, got.User)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, calendar.ErrEventNotFound)
}

func TestEventRepository_ListByPeriod(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	repo := s.Events()

	day := func(d int) time.Time { return time.Date(2024, 5, d, 9, 0, 0, 0, kst) }
	yearly := meeting("bday", "u2", "Lee", time.Date(2020, 5, 10, 0, 0, 0, 0, kst), 23*time.Hour)
	yearly.Payload = calendar.SchedulePayload{RRule: "FREQ=YEARLY"}

	for _, ev := range []calendar.Event{
		meeting("inside", "u1", "Kim", day(14), time.Hour),
		meeting("spanning", "u1", "Kim", day(12), 72*time.Hour),
		meeting("before", "u1", "Kim", day(1), time.Hour),
		yearly,
	} {
		_, err := repo.Create(ctx, ev)
		require.NoError(t, err)
	}

	events, err := repo.ListByPeriod(ctx, time.Date(2024, 5, 13, 0, 0, 0, 0, kst), time.Date(2024, 5, 19, 23, 59, 59, 0, kst))
	require.NoError(t, err)

	ids := make([]string, 0, len(events))
	for _, ev := range events {
		ids = append(ids, ev.ID)
	}
	assert.Equal(t, []string{"bday", "spanning", "inside"}, ids)
	assert.Equal(t, "FREQ=YEARLY", events[0].RRule())
}

func TestEventRepository_Delete(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	repo := s.Events()

	_, err := repo.Create(ctx, meeting("e1", "u1", "Kim", time.Date(2024, 5, 14, 9, 0, 0, 0, kst), time.Hour))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, "e1"))
	assert.ErrorIs(t, repo.Delete(ctx, "e1"), calendar.ErrEventNotFound)
}

func TestHolidayRepository(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	repo := s.Holidays()

	holidays := []calendar.Holiday{
		{ID: "h1", DateKey: "2024-05-05", Name: "어린이날", Type: calendar.HolidayTypePublic, Country: "KR"},
		{ID: "h2", DateKey: "20240506", Name: "대체공휴일", Type: calendar.HolidayTypeSubstitute, Country: "KR"},
		{ID: "h3", DateKey: "20240505", Name: "Company day", Type: calendar.HolidayTypeEtc},
	}
	n, err := repo.Upsert(ctx, holidays)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	holidays[2].Type = calendar.HolidayTypeEtc
	holidays[2].Country = "KR"
	n, err = repo.Upsert(ctx, holidays[2:])
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	list, err := repo.ListByPeriod(ctx, "2024-05-01", "20240531")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "20240505", list[0].DateKey)
	assert.Equal(t, "KR", list[0].Country)

	h, err := repo.GetByDate(ctx, "2024-05-05")
	require.NoError(t, err)
	assert.Equal(t, "어린이날", h.Name)

	_, err = repo.GetByDate(ctx, "20240507")
	assert.ErrorIs(t, err, calendar.ErrHolidayNotFound)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	_, err := s.Users().GetByID(ctx, "u1")
	assert.ErrorIs(t, err, calendar.ErrUserNotFound)

	start := time.Date(2024, 5, 14, 9, 0, 0, 0, kst)
	for _, ev := range []calendar.Event{
		meeting("e1", "u2", "Lee", start, time.Hour),
		meeting("e2", "u1", "Kim", start, time.Hour),
		meeting("e3", "u1", "Kim", start.Add(2*time.Hour), time.Hour),
	} {
		_, err := s.Events().Create(ctx, ev)
		require.NoError(t, err)
	}

	users, err := s.Users().List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []calendar.User{{ID: "u1", Name: "Kim"}, {ID: "u2", Name: "Lee"}}, users)

	u, err := s.Users().GetByID(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, "Lee", u.Name)
}

func TestWithinTx(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	start := time.Date(2024, 5, 14, 9, 0, 0, 0, kst)
	boom := errors.New("boom")

	err := s.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.Events().Create(ctx, meeting("rolled", "u1", "Kim", start, time.Hour)); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	_, err = s.Events().GetByID(ctx, "rolled")
	assert.ErrorIs(t, err, calendar.ErrEventNotFound)

	err = s.WithinTx(ctx, func(ctx context.Context) error {
		_, err := s.Events().Create(ctx, meeting("kept", "u1", "Kim", start, time.Hour))
		return err
	})
	require.NoError(t, err)
	_, err = s.Events().GetByID(ctx, "kept")
	assert.NoError(t, err)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "calendar.sqlite")
	ctx := context.Background()

	s, err := Open(ctx, path, kst)
	require.NoError(t, err)
	_, err = s.Events().Create(ctx, meeting("e1", "u1", "Kim", time.Date(2024, 5, 14, 9, 0, 0, 0, kst), time.Hour))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(ctx, path, kst)
	require.NoError(t, err)
	defer s.Close()
	_, err = s.Events().GetByID(ctx, "e1")
	assert.NoError(t, err)
}
