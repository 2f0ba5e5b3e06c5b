package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lshdainty/porest-hr-front-sub002/internal/domain/calendar"
	"github.com/lshdainty/porest-hr-front-sub002/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) calendar.UserRepository {
	return &userRepositoryImpl{db: db}
}

// List implements calendar.UserRepository.
func (r *userRepositoryImpl) List(ctx context.Context) ([]calendar.User, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, name, avatar FROM calendar_users ORDER BY name, id`)
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

// GetByID implements calendar.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (calendar.User, error) {
	q := GetQuerier(ctx, r.db)

	var u calendar.User
	err := q.QueryRow(ctx, `SELECT id, name, avatar FROM calendar_users WHERE id = $1`, id).Scan(&u.ID, &u.Name, &u.Avatar)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return calendar.User{}, calendar.ErrUserNotFound
		}
		return calendar.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}
