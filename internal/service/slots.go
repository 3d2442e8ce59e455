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

type SlotService interface {
	Create(ctx context.Context, ident domain.Identity, req *domain.SlotCreateReq) (*domain.Slot, error)
	Cancel(ctx context.Context, ident domain.Identity, slotID string) error
}

type slotService struct {
	slots repo.SlotStore
	bus   events.Publisher
}

func NewSlotService(slots repo.SlotStore, bus events.Publisher) SlotService {
	return &slotService{slots: slots, bus: bus}
}

func (s *slotService) Create(ctx context.Context, ident domain.Identity, req *domain.SlotCreateReq) (*domain.Slot, error) {
	if ident.Role != domain.RoleMentor {
		return nil, domain.Forbidden("only mentors can publish slots")
	}

	startAt, err := time.ParseInLocation("2006-01-02T15:04", req.Date+"T"+req.Time, time.UTC)
	if err != nil {
		return nil, domain.Validation("invalid date/time")
	}
	endAt := startAt.Add(time.Duration(req.DurationMins) * time.Minute)

	slot := &domain.Slot{
		ID:       uuid.NewString(),
		MentorID: ident.ID,
		StartAt:  startAt,
		EndAt:    endAt,
		Status:   domain.SlotAvailable,
		Note:     req.Note,
	}
	if err := s.slots.Create(ctx, slot); err != nil {
		return nil, domain.Storage("create slot", err)
	}

	if err := s.bus.Publish(ctx, events.SlotCreated, events.SlotCreatedEvent{
		SlotID:   slot.ID,
		MentorID: slot.MentorID,
		StartAt:  slot.StartAt,
		EndAt:    slot.EndAt,
	}); err != nil {
		logger.ErrorContext(ctx, "failed to publish slot created event", "error", err, "slot_id", slot.ID)
	}
	return slot, nil
}

func (s *slotService) Cancel(ctx context.Context, ident domain.Identity, slotID string) error {
	if ident.Role != domain.RoleMentor {
		return domain.Forbidden("only mentors can cancel slots")
	}

	slot, err := s.slots.Get(ctx, slotID)
	if err != nil {
		return domain.Storage("load slot", err)
	}
	if slot == nil {
		return domain.NotFound("slot not found")
	}
	if slot.MentorID != ident.ID {
		return domain.Forbidden("not your slot")
	}

	// Same single-winner contract as claiming: a concurrent claim and
	// cancel race, and the store decides which one lands.
	ok, err := s.slots.Cancel(ctx, slotID)
	if err != nil {
		return domain.Storage("cancel slot", err)
	}
	if !ok {
		return domain.Conflict("slot is not available")
	}

	if err := s.bus.Publish(ctx, events.SlotCancelled, events.SlotCancelledEvent{
		SlotID:      slotID,
		MentorID:    ident.ID,
		CancelledAt: time.Now().UTC(),
	}); err != nil {
		logger.ErrorContext(ctx, "failed to publish slot cancelled event", "error", err, "slot_id", slotID)
	}
	return nil
}
