package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lshdainty/porest-hr-front-sub002/internal/domain/calendar"
)

type holidayRepository struct {
	s *Store
}

func (s *Store) Holidays() calendar.HolidayRepository {
	return &holidayRepository{s: s}
}

const selectHolidayColumns = `
	SELECT holiday_id, holiday_date, holiday_name, holiday_type, country_code
	FROM holidays
`

func (r *holidayRepository) ListByPeriod(ctx context.Context, startKey, endKey string) ([]calendar.Holiday, error) {
	q := r.s.querier(ctx)

	query := selectHolidayColumns + `
		WHERE holiday_date BETWEEN ? AND ?
		ORDER BY holiday_date, holiday_name
	`

	rows, err := q.QueryContext(ctx, query, calendar.NormalizeDateKey(startKey), calendar.NormalizeDateKey(endKey))
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	holidays := make([]calendar.Holiday, 0)
	for rows.Next() {
		var h calendar.Holiday
		if err := rows.Scan(&h.ID, &h.DateKey, &h.Name, &h.Type, &h.Country); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate holidays: %w", err)
	}
	return holidays, nil
}

// GetByDate prefers public holidays, then substitutes, when several share a
// day.
func (r *holidayRepository) GetByDate(ctx context.Context, dateKey string) (calendar.Holiday, error) {
	q := r.s.querier(ctx)

	query := selectHolidayColumns + `
		WHERE holiday_date = ?
		ORDER BY CASE holiday_type WHEN 'PUBLIC' THEN 0 WHEN 'SUBSTITUTE' THEN 1 ELSE 2 END, holiday_name
		LIMIT 1
	`

	var h calendar.Holiday
	err := q.QueryRowContext(ctx, query, calendar.NormalizeDateKey(dateKey)).Scan(&h.ID, &h.DateKey, &h.Name, &h.Type, &h.Country)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return calendar.Holiday{}, calendar.ErrHolidayNotFound
		}
		return calendar.Holiday{}, fmt.Errorf("failed to get holiday: %w", err)
	}
	return h, nil
}

func (r *holidayRepository) Upsert(ctx context.Context, holidays []calendar.Holiday) (int, error) {
	if len(holidays) == 0 {
		return 0, nil
	}
	q := r.s.querier(ctx)

	query := `
		INSERT INTO holidays (holiday_id, holiday_date, holiday_name, holiday_type, country_code)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (holiday_date, holiday_name) DO UPDATE
		SET holiday_id = excluded.holiday_id,
			holiday_type = excluded.holiday_type,
			country_code = excluded.country_code
	`

	count := 0
	for _, h := range holidays {
		res, err := q.ExecContext(ctx, query, h.ID, calendar.NormalizeDateKey(h.DateKey), h.Name, string(h.Type), h.Country)
		if err != nil {
			return count, fmt.Errorf("failed to upsert holiday: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return count, fmt.Errorf("failed to upsert holiday: %w", err)
		}
		count += int(n)
	}
	return count, nil
}
