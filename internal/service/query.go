package service

import (
	"context"
	"time"

	"github.com/grovebook/mentor-sessions/internal/domain"
	"github.com/grovebook/mentor-sessions/internal/repo"
	"github.com/grovebook/mentor-sessions/pkg/logger"
)

// QueryService is the read-only projection layer. Nothing here
// mutates state; orderings come straight from the stores.
type QueryService interface {
	Mentors(ctx context.Context) ([]domain.MentorProfile, error)
	MentorDetail(ctx context.Context, mentorID string) (*domain.MentorProfile, []domain.Slot, error)
	MentorSlots(ctx context.Context, mentorID string) ([]domain.Slot, error)
	MentorBookings(ctx context.Context, mentorID string) ([]domain.MentorBooking, error)
}

type queryService struct {
	slots    repo.SlotStore
	bookings repo.BookingStore
	users    repo.UserStore
	uploads  repo.UploadStore
}

func NewQueryService(
	slots repo.SlotStore,
	bookings repo.BookingStore,
	users repo.UserStore,
	uploads repo.UploadStore,
) QueryService {
	return &queryService{slots: slots, bookings: bookings, users: users, uploads: uploads}
}

func (s *queryService) Mentors(ctx context.Context) ([]domain.MentorProfile, error) {
	mentors, err := s.users.ListMentors(ctx)
	if err != nil {
		return nil, domain.Storage("list mentors", err)
	}

	out := make([]domain.MentorProfile, 0, len(mentors))
	for _, m := range mentors {
		out = append(out, s.profile(ctx, &m))
	}
	return out, nil
}

func (s *queryService) MentorDetail(ctx context.Context, mentorID string) (*domain.MentorProfile, []domain.Slot, error) {
	u, err := s.users.GetByID(ctx, mentorID)
	if err != nil {
		return nil, nil, domain.Storage("load mentor", err)
	}
	if u == nil || u.Role != domain.RoleMentor {
		return nil, nil, domain.NotFound("mentor not found")
	}

	slots, err := s.slots.ListBookable(ctx, mentorID, time.Now())
	if err != nil {
		return nil, nil, domain.Storage("list bookable slots", err)
	}

	p := s.profile(ctx, u)
	return &p, slots, nil
}

func (s *queryService) MentorSlots(ctx context.Context, mentorID string) ([]domain.Slot, error) {
	slots, err := s.slots.ListByOwner(ctx, mentorID)
	if err != nil {
		return nil, domain.Storage("list slots", err)
	}
	return slots, nil
}

func (s *queryService) MentorBookings(ctx context.Context, mentorID string) ([]domain.MentorBooking, error) {
	bookings, err := s.bookings.ListByOwner(ctx, mentorID)
	if err != nil {
		return nil, domain.Storage("list bookings", err)
	}

	out := make([]domain.MentorBooking, 0, len(bookings))
	for _, b := range bookings {
		mb := domain.MentorBooking{Booking: b}

		if u, err := s.users.GetByID(ctx, b.UserID); err == nil && u != nil {
			mb.UserDisplayName = u.DisplayName
			mb.UserEmail = u.Email
		}
		if slot, err := s.slots.Get(ctx, b.SlotID); err == nil && slot != nil {
			mb.SlotStartAt = slot.StartAt
			mb.SlotEndAt = slot.EndAt
		}
		if b.UploadID != nil {
			if up, err := s.uploads.Get(ctx, *b.UploadID); err == nil && up != nil {
				mb.UploadURL = &up.URL
			} else if err != nil {
				logger.ErrorContext(ctx, "failed to resolve booking upload", "error", err, "booking_id", b.ID)
			}
		}
		out = append(out, mb)
	}
	return out, nil
}

func (s *queryService) profile(ctx context.Context, u *domain.User) domain.MentorProfile {
	p := domain.MentorProfile{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Bio:         u.Bio,
	}
	if u.AvatarUploadID != nil {
		if up, err := s.uploads.Get(ctx, *u.AvatarUploadID); err == nil && up != nil {
			p.AvatarURL = &up.URL
		}
	}
	return p
}
