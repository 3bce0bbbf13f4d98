package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/iCodeIN/vincent/internal/models"
	"github.com/iCodeIN/vincent/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a user directory backed by PostgreSQL.
func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Track(ctx context.Context, user *models.User) error {
	// Single idempotent upsert: created_at is written once, updated_at
	// only on subsequent sightings.
	query := `
		INSERT INTO users (id, first_name, last_name, username, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET first_name = EXCLUDED.first_name,
		    last_name = EXCLUDED.last_name,
		    username = EXCLUDED.username,
		    updated_at = $5`

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.FirstName,
		nullString(user.LastName),
		nullString(user.Username),
		time.Now().UTC(),
	)
	if err != nil {
		return &repository.StoreError{Op: "track user", UserID: user.ID, Err: err}
	}

	return nil
}

func (r *userRepository) IsBlocked(ctx context.Context, userID int64) (bool, error) {
	query := `SELECT is_blocked FROM users WHERE id = $1`

	var blocked bool
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&blocked)
	if err != nil {
		if err == sql.ErrNoRows {
			err = models.ErrUserNotFound
		}
		return false, &repository.StoreError{Op: "check block state", UserID: userID, Err: err}
	}

	return blocked, nil
}

func (r *userRepository) SetBlocked(ctx context.Context, userID int64, blocked bool) (bool, error) {
	query := `UPDATE users SET is_blocked = $2 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, userID, blocked)
	if err != nil {
		return false, &repository.StoreError{Op: "set block state", UserID: userID, Err: err}
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, &repository.StoreError{Op: "set block state", UserID: userID, Err: err}
	}

	return affected > 0, nil
}

func (r *userRepository) List(ctx context.Context, page int, filter models.BlockFilter) (*models.UserInfoList, error) {
	if page < 1 {
		page = 1
	}

	where := ""
	switch filter {
	case models.FilterBlocked:
		where = " WHERE is_blocked"
	case models.FilterNotBlocked:
		where = " WHERE NOT is_blocked"
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users"+where).Scan(&total); err != nil {
		return nil, &repository.StoreError{Op: "count users", Err: err}
	}

	query := `
		SELECT id, first_name, last_name, username, is_blocked, created_at, updated_at
		FROM users` + where + `
		ORDER BY created_at, id
		LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, models.ListPageSize, (page-1)*models.ListPageSize)
	if err != nil {
		return nil, &repository.StoreError{Op: "list users", Err: err}
	}
	defer rows.Close()

	var items []*models.User
	for rows.Next() {
		user := &models.User{}
		var lastName, username sql.NullString
		var updatedAt sql.NullTime
		if err := rows.Scan(
			&user.ID,
			&user.FirstName,
			&lastName,
			&username,
			&user.IsBlocked,
			&user.CreatedAt,
			&updatedAt,
		); err != nil {
			return nil, &repository.StoreError{Op: "list users", Err: err}
		}
		user.LastName = lastName.String
		user.Username = username.String
		if updatedAt.Valid {
			t := updatedAt.Time
			user.UpdatedAt = &t
		}
		items = append(items, user)
	}
	if err := rows.Err(); err != nil {
		return nil, &repository.StoreError{Op: "list users", Err: err}
	}

	return &models.UserInfoList{
		Items:      items,
		Page:       page,
		TotalItems: total,
		Filter:     filter,
	}, nil
}

// nullString maps an empty string to SQL NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
