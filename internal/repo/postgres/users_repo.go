package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/grovebook/mentor-sessions/internal/domain"
)

type UserRepo struct{ pool *pgxpool.Pool }

func NewUserRepo(pool *pgxpool.Pool) *UserRepo { return &UserRepo{pool: pool} }

const userCols = `id, email, password_hash, role, display_name, bio, avatar_upload_id, created_at`

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	const q = `INSERT INTO users (id, email, password_hash, role, display_name, bio, avatar_upload_id)
  VALUES ($1,$2,$3,$4,$5,$6,$7)
  RETURNING created_at`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return r.pool.QueryRow(ctx, q,
		u.ID, u.Email, u.PasswordHash, u.Role, u.DisplayName, u.Bio, u.AvatarUploadID,
	).Scan(&u.CreatedAt)
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const q = `SELECT ` + userCols + ` FROM users WHERE id=$1`
	return r.one(ctx, q, id)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const q = `SELECT ` + userCols + ` FROM users WHERE email=$1`
	return r.one(ctx, q, email)
}

func (r *UserRepo) one(ctx context.Context, q string, args ...any) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var u domain.User
	err := r.pool.QueryRow(ctx, q, args...).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.DisplayName, &u.Bio, &u.AvatarUploadID, &u.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ListMentors(ctx context.Context) ([]domain.User, error) {
	const q = `SELECT ` + userCols + ` FROM users WHERE role='mentor' ORDER BY created_at DESC, id`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var us []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.DisplayName, &u.Bio, &u.AvatarUploadID, &u.CreatedAt,
		); err != nil {
			return nil, err
		}
		us = append(us, u)
	}
	return us, rows.Err()
}
