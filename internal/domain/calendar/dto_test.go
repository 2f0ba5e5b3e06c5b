package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lshdainty/porest-hr-front-sub002/internal/pkg/validator"
)

func intPtr(v int) *int { return &v }

func TestLayoutRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     LayoutRequest
		wantErr []string
	}{
		{"valid", LayoutRequest{View: "month", Date: "2024-05-15"}, nil},
		{"missing", LayoutRequest{}, []string{"view", "date"}},
		{"bad view", LayoutRequest{View: "decade", Date: "2024-05-15"}, []string{"view"}},
		{"bad hours", LayoutRequest{View: "day", Date: "2024-05-15", From: intPtr(25), To: intPtr(0)}, []string{"from", "to", "to"}},
		{"inverted hours", LayoutRequest{View: "day", Date: "2024-05-15", From: intPtr(10), To: intPtr(9)}, []string{"to"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			fields := make([]string, 0, len(verrs))
			for _, e := range verrs {
				fields = append(fields, e.Field)
			}
			assert.Equal(t, tt.wantErr, fields)
		})
	}
}

func TestLayoutRequestHelpers(t *testing.T) {
	loc := time.FixedZone("KST", 9*60*60)
	req := LayoutRequest{View: "day", Date: "2024-05-15", To: intPtr(20)}

	anchor, err := req.Anchor(loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 15, 0, 0, 0, 0, loc), anchor)

	assert.Equal(t, &HourRange{From: 7, To: 20}, req.VisibleHours(DefaultVisibleHours))
	assert.Nil(t, (&LayoutRequest{}).VisibleHours(DefaultVisibleHours))
	assert.Equal(t, FilterAll(), req.Filter())
}

func TestComputeLayoutRequestValidate(t *testing.T) {
	req := ComputeLayoutRequest{
		LayoutRequest: LayoutRequest{View: "month", Date: "2024-05-15"},
		Holidays:      []Holiday{{DateKey: "2024-5-5"}},
	}
	var verrs validator.ValidationErrors
	require.ErrorAs(t, req.Validate(), &verrs)
	assert.Equal(t, "holidays", verrs[0].Field)

	req.Holidays[0].DateKey = "2024-05-05"
	assert.NoError(t, req.Validate())
}

func TestPeriodRequest(t *testing.T) {
	req := PeriodRequest{StartDate: "2024-05-01", EndDate: "2024-05-31"}
	require.NoError(t, req.Validate())

	start, end := req.Bounds(time.UTC)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond), end)

	assert.Error(t, (&PeriodRequest{StartDate: "2024-05-31", EndDate: "2024-05-01"}).Validate())
	assert.Error(t, (&PeriodRequest{StartDate: "May 1"}).Validate())
}

func TestCreateEventRequestValidate(t *testing.T) {
	valid := CreateEventRequest{
		UserID:    "u1",
		TypeID:    "DAYOFF",
		StartDate: "2024-05-14T09:00:00+09:00",
		EndDate:   "2024-05-14T18:00:00+09:00",
	}
	assert.NoError(t, valid.Validate())

	inverted := valid
	inverted.EndDate = "2024-05-14T08:00:00+09:00"
	var verrs validator.ValidationErrors
	require.ErrorAs(t, inverted.Validate(), &verrs)
	assert.Equal(t, "end_date", verrs[0].Field)

	empty := CreateEventRequest{Hours: -1}
	require.ErrorAs(t, empty.Validate(), &verrs)
	assert.Len(t, verrs, 5)
}

func TestNewEventResponse(t *testing.T) {
	ev := Event{
		ID:      "e1",
		Title:   "연차",
		User:    User{ID: "u1", Name: "Kim"},
		Type:    EventType{ID: "DAYOFF", Kind: KindVacation, Color: "#9e5fff", IsAllDay: true},
		Payload: VacationPayload{VacationType: "DAYOFF"},
	}
	resp := NewEventResponse(ev)
	assert.Equal(t, "e1", resp.CalendarID)
	assert.Equal(t, "Kim", resp.UserName)
	assert.Equal(t, KindVacation, resp.DomainType)
	assert.Equal(t, "DAYOFF", resp.VacationType)
	assert.Equal(t, "#9e5fff", resp.Color)
	assert.True(t, resp.IsDate)
}
