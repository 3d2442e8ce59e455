// Package repo defines the storage contracts shared by the postgres
// and memory implementations. Stores hold durable state only; all
// business rules live in internal/service.
package repo

import (
	"context"
	"time"

	"github.com/grovebook/mentor-sessions/internal/domain"
)

// SlotStore is keyed storage of slots. TryClaim, Release and Cancel are
// conditional transitions: each succeeds for at most one caller per
// slot, and the store is the arbiter of which one. Every status write
// goes through one of them; nothing else mutates a slot's status.
type SlotStore interface {
	Create(ctx context.Context, slot *domain.Slot) error

	// Get returns (nil, nil) when the slot does not exist.
	Get(ctx context.Context, id string) (*domain.Slot, error)

	// ListByOwner returns all of a mentor's slots ascending by start
	// time, ties broken by id.
	ListByOwner(ctx context.Context, mentorID string) ([]domain.Slot, error)

	// ListBookable returns a mentor's available slots starting after now,
	// ascending by start time.
	ListBookable(ctx context.Context, mentorID string, now time.Time) ([]domain.Slot, error)

	// TryClaim transitions available -> booked iff the slot is currently
	// available. Returns true iff this call performed the transition.
	TryClaim(ctx context.Context, id string) (bool, error)

	// Release transitions booked -> available. Used only to compensate a
	// claim whose booking insert failed.
	Release(ctx context.Context, id string) (bool, error)

	// Cancel transitions available -> cancelled iff the slot is currently
	// available.
	Cancel(ctx context.Context, id string) (bool, error)
}

type BookingStore interface {
	Create(ctx context.Context, b *domain.Booking) error

	// GetByID returns (nil, nil) when the booking does not exist.
	GetByID(ctx context.Context, id string) (*domain.Booking, error)

	// GetBySlotID returns the confirmed booking for a slot, or (nil, nil).
	GetBySlotID(ctx context.Context, slotID string) (*domain.Booking, error)

	// ListByOwner returns a mentor's bookings descending by creation time.
	ListByOwner(ctx context.Context, mentorID string) ([]domain.Booking, error)
}

type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListMentors returns mentor accounts, newest first.
	ListMentors(ctx context.Context) ([]domain.User, error)
}

type UploadStore interface {
	Create(ctx context.Context, u *domain.Upload) error
	Get(ctx context.Context, id string) (*domain.Upload, error)

	// OwnerOf returns the owning user id, or "" when the upload does
	// not exist.
	OwnerOf(ctx context.Context, id string) (string, error)
}
