package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lshdainty/porest-hr-front-sub002/internal/domain/calendar"
	"github.com/lshdainty/porest-hr-front-sub002/internal/pkg/database"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) calendar.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

// ListByPeriod implements calendar.HolidayRepository. Keys are YYYYMMDD and
// compare lexically.
func (r *holidayRepositoryImpl) ListByPeriod(ctx context.Context, startKey, endKey string) ([]calendar.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT holiday_id, holiday_date, holiday_name, holiday_type, country_code
		FROM holidays
		WHERE holiday_date BETWEEN $1 AND $2
		ORDER BY holiday_date, holiday_name
	`

	rows, err := q.Query(ctx, query, calendar.NormalizeDateKey(startKey), calendar.NormalizeDateKey(endKey))
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

// GetByDate implements calendar.HolidayRepository. Public holidays win when
// several share a day.
func (r *holidayRepositoryImpl) GetByDate(ctx context.Context, dateKey string) (calendar.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT holiday_id, holiday_date, holiday_name, holiday_type, country_code
		FROM holidays
		WHERE holiday_date = $1
		ORDER BY CASE holiday_type WHEN 'PUBLIC' THEN 0 WHEN 'SUBSTITUTE' THEN 1 ELSE 2 END, holiday_name
		LIMIT 1
	`

	var h calendar.Holiday
	err := q.QueryRow(ctx, query, calendar.NormalizeDateKey(dateKey)).Scan(&h.ID, &h.DateKey, &h.Name, &h.Type, &h.Country)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return calendar.Holiday{}, calendar.ErrHolidayNotFound
		}
		return calendar.Holiday{}, fmt.Errorf("failed to get holiday: %w", err)
	}

	return h, nil
}

// Upsert implements calendar.HolidayRepository.
func (r *holidayRepositoryImpl) Upsert(ctx context.Context, holidays []calendar.Holiday) (int, error) {
	if len(holidays) == 0 {
		return 0, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO holidays (holiday_id, holiday_date, holiday_name, holiday_type, country_code)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (holiday_date, holiday_name) DO UPDATE
		SET holiday_type = EXCLUDED.holiday_type,
			country_code = EXCLUDED.country_code,
			updated_at = NOW()
	`

	batch := &pgx.Batch{}
	for _, h := range holidays {
		batch.Queue(query, h.ID, calendar.NormalizeDateKey(h.DateKey), h.Name, string(h.Type), h.Country)
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()

	count := 0
	for range holidays {
		tag, err := results.Exec()
		if err != nil {
			return count, fmt.Errorf("failed to upsert holiday: %w", err)
		}
		count += int(tag.RowsAffected())
	}

	return count, nil
}
