package calendar

import (
	"context"
	"io"
)

type CalendarService interface {
	// Layout
	Layout(ctx context.Context, req LayoutRequest) (LayoutResponse, error)
	ComputeLayout(ctx context.Context, req ComputeLayoutRequest) (LayoutResponse, error)

	// Events
	ListEvents(ctx context.Context, req PeriodRequest) ([]EventResponse, error)
	CreateEvent(ctx context.Context, req CreateEventRequest) (EventResponse, error)
	DeleteEvent(ctx context.Context, id string) error

	// Holidays
	ListHolidays(ctx context.Context, req PeriodRequest) ([]Holiday, error)
	ImportHolidays(ctx context.Context, r io.Reader) (ImportHolidaysResponse, error)
	SyncHolidayFeed(ctx context.Context) error

	// Invalidation stream
	Subscribe(ctx context.Context, userID string) (<-chan SSEEvent, func())
	PurgeLayoutCache(ctx context.Context) error
}
