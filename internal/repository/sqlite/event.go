package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lshdainty/porest-hr-front-sub002/internal/domain/calendar"
)

type eventRepository struct {
	s *Store
}

func (s *Store) Events() calendar.EventRepository {
	return &eventRepository{s: s}
}

const selectEventColumns = `
	SELECT id, title, description, start_ns, end_ns,
		   user_id, user_name, user_avatar,
		   type_id, type_name, type_kind, type_color, type_all_day,
		   kind, payload
	FROM calendar_events
`

type scanner interface {
	Scan(dest ...any) error
}

func (r *eventRepository) scan(row scanner) (calendar.Event, error) {
	var (
		ev             calendar.Event
		startNS, endNS int64
		typeKind, kind string
		payload        string
	)
	err := row.Scan(
		&ev.ID,
		&ev.Title,
		&ev.Description,
		&startNS,
		&endNS,
		&ev.User.ID,
		&ev.User.Name,
		&ev.User.Avatar,
		&ev.Type.ID,
		&ev.Type.Name,
		&typeKind,
		&ev.Type.Color,
		&ev.Type.IsAllDay,
		&kind,
		&payload,
	)
	if err != nil {
		return calendar.Event{}, err
	}

	ev.Start = r.s.toTime(startNS)
	ev.End = r.s.toTime(endNS)
	ev.Type.Kind = calendar.Kind(typeKind)
	ev.Payload, err = calendar.DecodePayload(calendar.Kind(kind), []byte(payload))
	if err != nil {
		return calendar.Event{}, fmt.Errorf("event %s: %w", ev.ID, err)
	}
	return ev, nil
}

func (r *eventRepository) ListByPeriod(ctx context.Context, start, end time.Time) ([]calendar.Event, error) {
	q := r.s.querier(ctx)

	query := selectEventColumns + `
		WHERE (start_ns <= ? AND end_ns >= ?)
		   OR (rrule IS NOT NULL AND rrule <> '' AND start_ns <= ?)
		ORDER BY start_ns, id
	`

	rows, err := q.QueryContext(ctx, query, end.UnixNano(), start.UnixNano(), end.UnixNano())
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	events := make([]calendar.Event, 0)
	for rows.Next() {
		ev, err := r.scan(rows)
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

func (r *eventRepository) GetByID(ctx context.Context, id string) (calendar.Event, error) {
	q := r.s.querier(ctx)

	ev, err := r.scan(q.QueryRowContext(ctx, selectEventColumns+` WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return calendar.Event{}, calendar.ErrEventNotFound
		}
		return calendar.Event{}, fmt.Errorf("failed to get event: %w", err)
	}
	return ev, nil
}

func (r *eventRepository) Create(ctx context.Context, ev calendar.Event) (calendar.Event, error) {
	q := r.s.querier(ctx)

	payload, err := calendar.EncodePayload(ev.Payload)
	if err != nil {
		return calendar.Event{}, fmt.Errorf("failed to encode payload: %w", err)
	}

	var rrule sql.NullString
	if rule := ev.RRule(); rule != "" {
		rrule = sql.NullString{String: rule, Valid: true}
	}

	query := `
		INSERT INTO calendar_events (
			id, user_id, user_name, user_avatar, title, description, start_ns, end_ns,
			type_id, type_name, type_kind, type_color, type_all_day,
			kind, payload, rrule
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = q.ExecContext(ctx, query,
		ev.ID,
		ev.User.ID,
		ev.User.Name,
		ev.User.Avatar,
		ev.Title,
		ev.Description,
		ev.Start.UnixNano(),
		ev.End.UnixNano(),
		ev.Type.ID,
		ev.Type.Name,
		string(ev.Type.Kind),
		ev.Type.Color,
		ev.Type.IsAllDay,
		string(ev.Kind()),
		string(payload),
		rrule,
	)
	if err != nil {
		if isConstraint(err) {
			return calendar.Event{}, calendar.ErrEventExists
		}
		return calendar.Event{}, fmt.Errorf("failed to create event: %w", err)
	}
	return ev, nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	q := r.s.querier(ctx)

	res, err := q.ExecContext(ctx, `DELETE FROM calendar_events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if n == 0 {
		return calendar.ErrEventNotFound
	}
	return nil
}
