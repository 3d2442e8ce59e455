package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/grovebook/mentor-sessions/internal/domain"
)

type UploadRepo struct{ pool *pgxpool.Pool }

func NewUploadRepo(pool *pgxpool.Pool) *UploadRepo { return &UploadRepo{pool: pool} }

func (r *UploadRepo) Create(ctx context.Context, u *domain.Upload) error {
	const q = `INSERT INTO uploads (id, owner_id, filename, url)
  VALUES ($1,$2,$3,$4)
  RETURNING created_at`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return r.pool.QueryRow(ctx, q, u.ID, u.OwnerID, u.Filename, u.URL).Scan(&u.CreatedAt)
}

func (r *UploadRepo) Get(ctx context.Context, id string) (*domain.Upload, error) {
	const q = `SELECT id, owner_id, filename, url, created_at FROM uploads WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var u domain.Upload
	err := r.pool.QueryRow(ctx, q, id).Scan(&u.ID, &u.OwnerID, &u.Filename, &u.URL, &u.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UploadRepo) OwnerOf(ctx context.Context, id string) (string, error) {
	const q = `SELECT owner_id FROM uploads WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var owner string
	err := r.pool.QueryRow(ctx, q, id).Scan(&owner)
	if err == pgx.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return owner, nil
}
