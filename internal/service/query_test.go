package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/grovebook/mentor-sessions/internal/domain"
	"github.com/grovebook/mentor-sessions/internal/repo/memory"
)

type queryFixture struct {
	slots    *memory.SlotStore
	bookings *memory.BookingStore
	users    *memory.UserStore
	uploads  *memory.UploadStore
	svc      QueryService
}

func newQueryFixture() *queryFixture {
	f := &queryFixture{
		slots:    memory.NewSlotStore(),
		bookings: memory.NewBookingStore(),
		users:    memory.NewUserStore(),
		uploads:  memory.NewUploadStore(),
	}
	f.svc = NewQueryService(f.slots, f.bookings, f.users, f.uploads)
	return f
}

func TestMentorBookings_JoinsClaimantAndSlot(t *testing.T) {
	ctx := context.Background()
	f := newQueryFixture()

	start := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, f.users.Create(ctx, &domain.User{
		ID: "u1", Email: "ada@example.com", Role: domain.RoleMember, DisplayName: "Ada",
	}))
	require.NoError(t, f.slots.Create(ctx, &domain.Slot{
		ID: "s1", MentorID: "m1", StartAt: start, EndAt: start.Add(time.Hour), Status: domain.SlotBooked,
	}))
	uploadID := "up1"
	require.NoError(t, f.uploads.Create(ctx, &domain.Upload{ID: uploadID, OwnerID: "u1", URL: "/files/up1/notes.pdf"}))
	require.NoError(t, f.bookings.Create(ctx, &domain.Booking{
		ID: "b1", SlotID: "s1", MentorID: "m1", UserID: "u1",
		UploadID: &uploadID, Status: domain.BookingConfirmed,
	}))

	out, err := f.svc.MentorBookings(ctx, "m1")
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "Ada", out[0].UserDisplayName)
	require.Equal(t, "ada@example.com", out[0].UserEmail)
	require.Equal(t, start, out[0].SlotStartAt)
	require.NotNil(t, out[0].UploadURL)
	require.Equal(t, "/files/up1/notes.pdf", *out[0].UploadURL)
}

func TestMentorBookings_NewestFirst(t *testing.T) {
	ctx := context.Background()
	f := newQueryFixture()

	base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "mid", "new"} {
		require.NoError(t, f.bookings.Create(ctx, &domain.Booking{
			ID: id, SlotID: "s-" + id, MentorID: "m1", UserID: "u1",
			Status:    domain.BookingConfirmed,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	out, err := f.svc.MentorBookings(ctx, "m1")
	require.NoError(t, err)
	require.Len(t, out, 3)
	require.Equal(t, "new", out[0].ID)
	require.Equal(t, "old", out[2].ID)
}

func TestMentors_NewestFirstWithAvatars(t *testing.T) {
	ctx := context.Background()
	f := newQueryFixture()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	avatarID := "av1"
	require.NoError(t, f.uploads.Create(ctx, &domain.Upload{ID: avatarID, OwnerID: "m2", URL: "/files/av1/me.png"}))
	require.NoError(t, f.users.Create(ctx, &domain.User{
		ID: "m1", Role: domain.RoleMentor, DisplayName: "First", CreatedAt: base,
	}))
	require.NoError(t, f.users.Create(ctx, &domain.User{
		ID: "m2", Role: domain.RoleMentor, DisplayName: "Second", AvatarUploadID: &avatarID, CreatedAt: base.Add(time.Hour),
	}))
	require.NoError(t, f.users.Create(ctx, &domain.User{
		ID: "u1", Role: domain.RoleMember, DisplayName: "Not a mentor", CreatedAt: base.Add(2 * time.Hour),
	}))

	out, err := f.svc.Mentors(ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, "Second", out[0].DisplayName)
	require.NotNil(t, out[0].AvatarURL)
	require.Equal(t, "First", out[1].DisplayName)
	require.Nil(t, out[1].AvatarURL)
}

func TestMentorDetail_OnlyBookableFutureSlots(t *testing.T) {
	ctx := context.Background()
	f := newQueryFixture()

	require.NoError(t, f.users.Create(ctx, &domain.User{ID: "m1", Role: domain.RoleMentor, DisplayName: "M"}))

	now := time.Now()
	require.NoError(t, f.slots.Create(ctx, &domain.Slot{
		ID: "past", MentorID: "m1", StartAt: now.Add(-time.Hour), EndAt: now, Status: domain.SlotAvailable,
	}))
	require.NoError(t, f.slots.Create(ctx, &domain.Slot{
		ID: "future", MentorID: "m1", StartAt: now.Add(time.Hour), EndAt: now.Add(2 * time.Hour), Status: domain.SlotAvailable,
	}))
	require.NoError(t, f.slots.Create(ctx, &domain.Slot{
		ID: "taken", MentorID: "m1", StartAt: now.Add(3 * time.Hour), EndAt: now.Add(4 * time.Hour), Status: domain.SlotBooked,
	}))

	profile, slots, err := f.svc.MentorDetail(ctx, "m1")
	require.NoError(t, err)
	require.Equal(t, "M", profile.DisplayName)
	require.Len(t, slots, 1)
	require.Equal(t, "future", slots[0].ID)
}

func TestMentorDetail_MemberIsNotAMentor(t *testing.T) {
	ctx := context.Background()
	f := newQueryFixture()
	require.NoError(t, f.users.Create(ctx, &domain.User{ID: "u1", Role: domain.RoleMember}))

	_, _, err := f.svc.MentorDetail(ctx, "u1")
	require.Error(t, err)
	require.Equal(t, domain.KindNotFound, domain.KindOf(err))
}
