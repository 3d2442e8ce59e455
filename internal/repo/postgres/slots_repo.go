package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/grovebook/mentor-sessions/internal/domain"
)

type SlotRepo struct{ pool *pgxpool.Pool }

func NewSlotRepo(pool *pgxpool.Pool) *SlotRepo { return &SlotRepo{pool: pool} }

const slotCols = `id, mentor_id, start_at, end_at, status, note, created_at`

func (r *SlotRepo) Create(ctx context.Context, s *domain.Slot) error {
	const q = `INSERT INTO slots (id, mentor_id, start_at, end_at, status, note)
  VALUES ($1,$2,$3,$4,$5,$6)
  RETURNING created_at`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return r.pool.QueryRow(ctx, q,
		s.ID, s.MentorID, s.StartAt, s.EndAt, s.Status, s.Note,
	).Scan(&s.CreatedAt)
}

func (r *SlotRepo) Get(ctx context.Context, id string) (*domain.Slot, error) {
	const q = `SELECT ` + slotCols + ` FROM slots WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var s domain.Slot
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&s.ID, &s.MentorID, &s.StartAt, &s.EndAt, &s.Status, &s.Note, &s.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SlotRepo) ListByOwner(ctx context.Context, mentorID string) ([]domain.Slot, error) {
	const q = `SELECT ` + slotCols + ` FROM slots WHERE mentor_id=$1 ORDER BY start_at, id`
	return r.list(ctx, q, mentorID)
}

func (r *SlotRepo) ListBookable(ctx context.Context, mentorID string, now time.Time) ([]domain.Slot, error) {
	const q = `SELECT ` + slotCols + ` FROM slots
  WHERE mentor_id=$1 AND status='available' AND start_at > $2
  ORDER BY start_at, id`
	return r.list(ctx, q, mentorID, now)
}

func (r *SlotRepo) list(ctx context.Context, q string, args ...any) ([]domain.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []domain.Slot
	for rows.Next() {
		var s domain.Slot
		if err := rows.Scan(
			&s.ID, &s.MentorID, &s.StartAt, &s.EndAt, &s.Status, &s.Note, &s.CreatedAt,
		); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

// TryClaim is the concurrency primitive the reservation engine depends
// on: a single conditional UPDATE, so the database serializes racing
// claims and at most one caller observes an affected row.
func (r *SlotRepo) TryClaim(ctx context.Context, id string) (bool, error) {
	const q = `UPDATE slots SET status='booked' WHERE id=$1 AND status='available'`
	return r.transition(ctx, q, id)
}

func (r *SlotRepo) Release(ctx context.Context, id string) (bool, error) {
	const q = `UPDATE slots SET status='available' WHERE id=$1 AND status='booked'`
	return r.transition(ctx, q, id)
}

func (r *SlotRepo) Cancel(ctx context.Context, id string) (bool, error) {
	const q = `UPDATE slots SET status='cancelled' WHERE id=$1 AND status='available'`
	return r.transition(ctx, q, id)
}

func (r *SlotRepo) transition(ctx context.Context, q, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	ct, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}
