package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/grovebook/mentor-sessions/internal/domain"
	"github.com/grovebook/mentor-sessions/internal/repo"
	"github.com/grovebook/mentor-sessions/pkg/events"
	"github.com/grovebook/mentor-sessions/pkg/logger"
)

// ReservationService converts an available slot into a booked one
// exactly once. It holds no locks of its own: mutual exclusion between
// racing claims is delegated entirely to SlotStore.TryClaim.
type ReservationService interface {
	Claim(ctx context.Context, ident domain.Identity, req *domain.ClaimReq) (*domain.Booking, error)
}

type reservationService struct {
	slots    repo.SlotStore
	bookings repo.BookingStore
	uploads  repo.UploadStore
	bus      events.Publisher
}

func NewReservationService(
	slots repo.SlotStore,
	bookings repo.BookingStore,
	uploads repo.UploadStore,
	bus events.Publisher,
) ReservationService {
	return &reservationService{
		slots:    slots,
		bookings: bookings,
		uploads:  uploads,
		bus:      bus,
	}
}

func (s *reservationService) Claim(ctx context.Context, ident domain.Identity, req *domain.ClaimReq) (*domain.Booking, error) {
	if ident.ID == "" {
		return nil, domain.Unauthorized("authentication required")
	}
	if ident.Role != domain.RoleMember {
		return nil, domain.Forbidden("only members can claim slots")
	}

	slot, err := s.slots.Get(ctx, req.SlotID)
	if err != nil {
		return nil, domain.Storage("load slot", err)
	}
	if slot == nil {
		return nil, domain.NotFound("slot not found")
	}
	if slot.Status != domain.SlotAvailable {
		return nil, domain.Conflict("slot unavailable")
	}

	// Attachment ownership cannot change concurrently in a way that
	// matters to the claim, so it is checked before the atomic step.
	var uploadID *string
	if req.UploadID != "" {
		owner, err := s.uploads.OwnerOf(ctx, req.UploadID)
		if err != nil {
			return nil, domain.Storage("check upload owner", err)
		}
		if owner != ident.ID {
			return nil, domain.Validation("invalid upload")
		}
		uploadID = &req.UploadID
	}

	won, err := s.slots.TryClaim(ctx, req.SlotID)
	if err != nil {
		return nil, domain.Storage("claim slot", err)
	}
	if !won {
		// Already booked or cancelled, whether long ago or by a
		// concurrent winner a moment earlier. The caller cannot and
		// need not distinguish these.
		return nil, domain.Conflict("slot unavailable")
	}

	booking := &domain.Booking{
		ID:        uuid.NewString(),
		SlotID:    slot.ID,
		MentorID:  slot.MentorID,
		UserID:    ident.ID,
		Note:      req.Note,
		UploadID:  uploadID,
		Status:    domain.BookingConfirmed,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		// Compensate the won transition so the slot is never stranded
		// as booked with no booking behind it.
		released, relErr := s.slots.Release(ctx, slot.ID)
		if relErr != nil || !released {
			logger.ErrorContext(ctx, "failed to release slot after booking insert failure",
				"slot_id", slot.ID, "error", relErr)
		}
		return nil, domain.Storage("create booking", err)
	}

	if err := s.bus.Publish(ctx, events.BookingCreated, events.BookingCreatedEvent{
		BookingID: booking.ID,
		SlotID:    booking.SlotID,
		MentorID:  booking.MentorID,
		UserID:    booking.UserID,
		StartAt:   slot.StartAt,
		EndAt:     slot.EndAt,
		CreatedAt: booking.CreatedAt,
	}); err != nil {
		logger.ErrorContext(ctx, "failed to publish booking created event",
			"error", err, "booking_id", booking.ID)
	}

	return booking, nil
}
