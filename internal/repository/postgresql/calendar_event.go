package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/lshdainty/porest-hr-front-sub002/internal/domain/calendar"
	"github.com/lshdainty/porest-hr-front-sub002/internal/pkg/database"
)

const uniqueViolation = "23505"

type calendarEventRepositoryImpl struct {
	db *database.DB
}

func NewCalendarEventRepository(db *database.DB) calendar.EventRepository {
	return &calendarEventRepositoryImpl{db: db}
}

const selectEventColumns = `
	SELECT e.id, e.title, e.description, e.start_at, e.end_at,
		   u.id, u.name, u.avatar,
		   e.type_id, e.type_name, e.type_kind, e.type_color, e.type_all_day,
		   e.kind, e.payload
	FROM calendar_events e
	JOIN calendar_users u ON u.id = e.user_id
`

func scanEvent(row pgx.Row) (calendar.Event, error) {
	var (
		ev      calendar.Event
		kind    string
		payload []byte
	)
	err := row.Scan(
		&ev.ID,
		&ev.Title,
		&ev.Description,
		&ev.Start,
		&ev.End,
		&ev.User.ID,
		&ev.User.Name,
		&ev.User.Avatar,
		&ev.Type.ID,
		&ev.Type.Name,
		&ev.Type.Kind,
		&ev.Type.Color,
		&ev.Type.IsAllDay,
		&kind,
		&payload,
	)
	if err != nil {
		return calendar.Event{}, err
	}

	ev.Payload, err = calendar.DecodePayload(calendar.Kind(kind), payload)
	if err != nil {
		return calendar.Event{}, fmt.Errorf("event %s: %w", ev.ID, err)
	}
	return ev, nil
}

// ListByPeriod implements calendar.EventRepository.
func (r *calendarEventRepositoryImpl) ListByPeriod(ctx context.Context, start, end time.Time) ([]calendar.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := selectEventColumns + `
		WHERE (e.start_at <= $2 AND e.end_at >= $1)
		   OR (e.rrule IS NOT NULL AND e.rrule <> '' AND e.start_at <= $2)
		ORDER BY e.start_at, e.id
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	events := make([]calendar.Event, 0)
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	return events, nil
}

// GetByID implements calendar.EventRepository.
func (r *calendarEventRepositoryImpl) GetByID(ctx context.Context, id string) (calendar.Event, error) {
	q := GetQuerier(ctx, r.db)

	ev, err := scanEvent(q.QueryRow(ctx, selectEventColumns+` WHERE e.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return calendar.Event{}, calendar.ErrEventNotFound
		}
		return calendar.Event{}, fmt.Errorf("failed to get event: %w", err)
	}

	return ev, nil
}

// Create implements calendar.EventRepository.
func (r *calendarEventRepositoryImpl) Create(ctx context.Context, ev calendar.Event) (calendar.Event, error) {
	q := GetQuerier(ctx, r.db)

	payload, err := calendar.EncodePayload(ev.Payload)
	if err != nil {
		return calendar.Event{}, fmt.Errorf("failed to encode payload: %w", err)
	}

	var rrule *string
	if rule := ev.RRule(); rule != "" {
		rrule = &rule
	}

	query := `
		INSERT INTO calendar_events (
			id, user_id, title, description, start_at, end_at,
			type_id, type_name, type_kind, type_color, type_all_day,
			kind, payload, rrule
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err = q.Exec(ctx, query,
		ev.ID,
		ev.User.ID,
		ev.Title,
		ev.Description,
		ev.Start,
		ev.End,
		ev.Type.ID,
		ev.Type.Name,
		string(ev.Type.Kind),
		ev.Type.Color,
		ev.Type.IsAllDay,
		string(ev.Kind()),
		payload,
		rrule,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return calendar.Event{}, calendar.ErrEventExists
		}
		return calendar.Event{}, fmt.Errorf("failed to create event: %w", err)
	}

	return ev, nil
}

// Delete implements calendar.EventRepository.
func (r *calendarEventRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM calendar_events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return calendar.ErrEventNotFound
	}

	return nil
}
