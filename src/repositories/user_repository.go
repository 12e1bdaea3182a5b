package repositories

import (
	"context"
	"time"

	"kitesync/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	UpdateKiteCredentials(ctx context.Context, userID int64, kiteUserID, accessToken string, expiry time.Time) error
}

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := r.db.QueryRow(ctx, `
		SELECT id, username, kite_user_id, kite_access_token, kite_token_expiry, created_at
		FROM users
		WHERE id = $1
	`, id).Scan(&u.ID, &u.Username, &u.KiteUserID, &u.KiteAccessToken, &u.KiteTokenExpiry, &u.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) GetAll(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, username, kite_user_id, kite_access_token, kite_token_expiry, created_at
		FROM users
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.KiteUserID, &u.KiteAccessToken, &u.KiteTokenExpiry, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateKiteCredentials overwrites the user's broker credentials after a
// successful token exchange. Re-authentication always replaces the full set.
func (r *userRepo) UpdateKiteCredentials(ctx context.Context, userID int64, kiteUserID, accessToken string, expiry time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users
		SET kite_user_id = $2, kite_access_token = $3, kite_token_expiry = $4
		WHERE id = $1
	`, userID, kiteUserID, accessToken, expiry)
	return err
}
