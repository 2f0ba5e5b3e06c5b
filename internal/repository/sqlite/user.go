package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lshdainty/porest-hr-front-sub002/internal/domain/calendar"
)

// userRepository reads the users recorded on stored events. The local store
// has no separate user table.
type userRepository struct {
	s *Store
}

func (s *Store) Users() calendar.UserRepository {
	return &userRepository{s: s}
}

func (r *userRepository) List(ctx context.Context) ([]calendar.User, error) {
	q := r.s.querier(ctx)

	rows, err := q.QueryContext(ctx, `
		SELECT user_id, MAX(user_name), MAX(user_avatar)
		FROM calendar_events
		GROUP BY user_id
		ORDER BY 2, 1
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]calendar.User, 0)
	for rows.Next() {
		var u calendar.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Avatar); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (calendar.User, error) {
	q := r.s.querier(ctx)

	var u calendar.User
	err := q.QueryRowContext(ctx, `
		SELECT user_id, user_name, user_avatar
		FROM calendar_events
		WHERE user_id = ?
		ORDER BY start_ns DESC
		LIMIT 1
	`, id).Scan(&u.ID, &u.Name, &u.Avatar)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return calendar.User{}, calendar.ErrUserNotFound
		}
		return calendar.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}
