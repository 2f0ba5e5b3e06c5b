package calendar

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventJSONKeepsPayload(t *testing.T) {
	ev := Event{
		ID:    "e1",
		Start: time.Date(2024, 5, 14, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 5, 14, 23, 59, 59, 0, time.UTC),
		User:  User{ID: "u1", Name: "Kim"},
		Type:  EventType{ID: "DAYOFF", Name: "연차", Kind: KindVacation, Color: "#9e5fff", IsAllDay: true},
		Payload: VacationPayload{
			VacationType: "DAYOFF",
			Hours:        8,
		},
	}

	data, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"kind":"vacation"`)
	assert.Contains(t, string(data), `"vacation":{"vacation_type":"DAYOFF","hours":8}`)
	assert.NotContains(t, string(data), `"schedule"`)

	var back Event
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, ev.Payload, back.Payload)
	assert.True(t, ev.Start.Equal(back.Start))
}

func TestEventUnmarshalFallsBackToTypeKind(t *testing.T) {
	raw := `{"id":"s1","start_date":"2024-05-14T09:00:00Z","end_date":"2024-05-14T10:00:00Z",
		"user":{"id":"u1","name":"Kim"},"type":{"id":"MEETING","name":"회의","kind":"schedule","color":"#03bd9e"}}`

	var ev Event
	require.NoError(t, json.Unmarshal([]byte(raw), &ev))
	assert.Equal(t, KindSchedule, ev.Kind())
	assert.Equal(t, SchedulePayload{}, ev.Payload)

	bad := `{"id":"x","kind":"party","start_date":"2024-05-14T09:00:00Z","end_date":"2024-05-14T10:00:00Z"}`
	assert.ErrorIs(t, json.Unmarshal([]byte(bad), &ev), ErrUnknownEventKind)
}

func TestEventColorAndValidate(t *testing.T) {
	holiday := Event{
		Type:    EventType{Color: "#000000"},
		Payload: HolidayPayload{HolidayType: HolidayTypeEtc},
	}
	assert.Equal(t, ColorHolidayBlue, holiday.Color())
	assert.Equal(t, "#000000", Event{Type: EventType{Color: "#000000"}}.Color())

	start := time.Date(2024, 5, 14, 10, 0, 0, 0, time.UTC)
	bad := Event{ID: "bad", Start: start, End: start.Add(-time.Minute)}
	assert.ErrorIs(t, bad.Validate(), ErrInvalidInterval)
	assert.NoError(t, Event{Start: start, End: start}.Validate())
}

func TestPayloadStorageRoundTrip(t *testing.T) {
	data, err := EncodePayload(nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))

	data, err = EncodePayload(SchedulePayload{Location: "Room 1", RRule: "FREQ=YEARLY"})
	require.NoError(t, err)
	p, err := DecodePayload(KindSchedule, data)
	require.NoError(t, err)
	assert.Equal(t, SchedulePayload{Location: "Room 1", RRule: "FREQ=YEARLY"}, p)

	p, err = DecodePayload(KindHoliday, nil)
	require.NoError(t, err)
	assert.Equal(t, HolidayPayload{}, p)

	_, err = DecodePayload("party", []byte("{}"))
	assert.ErrorIs(t, err, ErrUnknownEventKind)

	assert.Equal(t, "FREQ=YEARLY", Event{Payload: SchedulePayload{RRule: "FREQ=YEARLY"}}.RRule())
	assert.Empty(t, Event{Payload: VacationPayload{}}.RRule())
}

func TestSelection(t *testing.T) {
	assert.True(t, SelectAll().Contains("anyone"))
	assert.False(t, SelectIDs().Contains("u1"))
	assert.True(t, SelectIDs("u1").Contains("u1"))

	assert.Equal(t, SelectAll(), Selection{}.OrAll())
	assert.Equal(t, SelectIDs(), SelectIDs().OrAll())

	assert.Equal(t, SelectAll(), ParseSelection(""))
	assert.Equal(t, SelectAll(), ParseSelection("ALL"))
	assert.Equal(t, SelectIDs("u1", "u2"), ParseSelection(" u1, ,u2 "))

	data, err := json.Marshal(Filter{Users: SelectAll(), Types: SelectIDs()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"selected_user_ids":"all","selected_type_ids":[]}`, string(data))

	var f Filter
	require.NoError(t, json.Unmarshal([]byte(`{"selected_user_ids":["u1"],"selected_type_ids":"all"}`), &f))
	assert.Equal(t, SelectIDs("u1"), f.Users)
	assert.Equal(t, SelectAll(), f.Types)

	assert.ErrorIs(t, json.Unmarshal([]byte(`{"selected_user_ids":"some"}`), &f), ErrInvalidSelection)
}

func TestViewAndHours(t *testing.T) {
	v, err := ParseView(" Week ")
	require.NoError(t, err)
	assert.Equal(t, ViewWeek, v)
	_, err = ParseView("fortnight")
	assert.ErrorIs(t, err, ErrInvalidView)

	assert.Equal(t, []int{7, 8, 9}, HourRange{From: 7, To: 10}.Hours())
	assert.False(t, HourRange{From: 10, To: 10}.Valid())
	assert.True(t, HourRange{From: 0, To: 24}.Valid())

	wh := DefaultWorkingHours()
	monday := time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC)
	assert.True(t, wh.IsWorkingHour(monday, 9))
	assert.False(t, wh.IsWorkingHour(monday, 22))
	assert.False(t, wh.IsWorkingHour(monday.AddDate(0, 0, -1), 9))

	assert.Equal(t, "20240505", NormalizeDateKey("2024-05-05"))
	assert.Equal(t, "20240513", DateKey(monday))
}

func TestHolidayTypeColor(t *testing.T) {
	assert.Equal(t, ColorHolidayRed, HolidayTypePublic.Color())
	assert.Equal(t, ColorHolidayRed, HolidayTypeSubstitute.Color())
	assert.Equal(t, ColorHolidayBlue, HolidayTypeEtc.Color())
	assert.Empty(t, HolidayType("OTHER").Color())
}
