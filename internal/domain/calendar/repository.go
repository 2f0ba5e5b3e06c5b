package calendar

import (
	"context"
	"time"
)

type EventRepository interface {
	// ListByPeriod returns events intersecting [start, end], plus recurring
	// events starting before end, ordered by start date.
	ListByPeriod(ctx context.Context, start, end time.Time) ([]Event, error)
	GetByID(ctx context.Context, id string) (Event, error)
	Create(ctx context.Context, event Event) (Event, error)
	Delete(ctx context.Context, id string) error
}

type HolidayRepository interface {
	ListByPeriod(ctx context.Context, startKey, endKey string) ([]Holiday, error)
	GetByDate(ctx context.Context, dateKey string) (Holiday, error)
	Upsert(ctx context.Context, holidays []Holiday) (int, error)
}

type UserRepository interface {
	List(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id string) (User, error)
}
