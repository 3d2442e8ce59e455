package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/grovebook/mentor-sessions/internal/domain"
)

type BookingRepo struct{ pool *pgxpool.Pool }

func NewBookingRepo(pool *pgxpool.Pool) *BookingRepo { return &BookingRepo{pool: pool} }

const bookingCols = `id, slot_id, mentor_id, user_id, note, upload_id, status, created_at`

func (r *BookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	const q = `INSERT INTO bookings (id, slot_id, mentor_id, user_id, note, upload_id, status)
  VALUES ($1,$2,$3,$4,$5,$6,$7)
  RETURNING created_at`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return r.pool.QueryRow(ctx, q,
		b.ID, b.SlotID, b.MentorID, b.UserID, b.Note, b.UploadID, b.Status,
	).Scan(&b.CreatedAt)
}

func (r *BookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE id=$1`
	return r.one(ctx, q, id)
}

func (r *BookingRepo) GetBySlotID(ctx context.Context, slotID string) (*domain.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE slot_id=$1 AND status='confirmed'`
	return r.one(ctx, q, slotID)
}

func (r *BookingRepo) one(ctx context.Context, q string, args ...any) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var b domain.Booking
	err := r.pool.QueryRow(ctx, q, args...).Scan(
		&b.ID, &b.SlotID, &b.MentorID, &b.UserID, &b.Note, &b.UploadID, &b.Status, &b.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepo) ListByOwner(ctx context.Context, mentorID string) ([]domain.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE mentor_id=$1 ORDER BY created_at DESC, id`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, mentorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bs []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(
			&b.ID, &b.SlotID, &b.MentorID, &b.UserID, &b.Note, &b.UploadID, &b.Status, &b.CreatedAt,
		); err != nil {
			return nil, err
		}
		bs = append(bs, b)
	}
	return bs, rows.Err()
}
