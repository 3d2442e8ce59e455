package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/grovebook/mentor-sessions/internal/domain"
	"github.com/grovebook/mentor-sessions/internal/repo/memory"
)

func mentor(id string) domain.Identity {
	return domain.Identity{ID: id, Role: domain.RoleMentor}
}

func TestSlotCreate_ParsesInterval(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSlotStore()
	svc := NewSlotService(store, &captureBus{})

	slot, err := svc.Create(ctx, mentor("m1"), &domain.SlotCreateReq{
		Date:         "2026-04-01",
		Time:         "09:00",
		DurationMins: 60,
		Note:         "office hours",
	})
	require.NoError(t, err)
	require.Equal(t, "m1", slot.MentorID)
	require.Equal(t, domain.SlotAvailable, slot.Status)
	require.Equal(t, time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC), slot.StartAt)
	require.Equal(t, time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC), slot.EndAt)

	stored, err := store.Get(ctx, slot.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestSlotCreate_RejectsBadInput(t *testing.T) {
	svc := NewSlotService(memory.NewSlotStore(), &captureBus{})

	_, err := svc.Create(context.Background(), mentor("m1"), &domain.SlotCreateReq{
		Date: "not-a-date", Time: "09:00", DurationMins: 60,
	})
	require.Error(t, err)
	require.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = svc.Create(context.Background(), member("u1"), &domain.SlotCreateReq{
		Date: "2026-04-01", Time: "09:00", DurationMins: 60,
	})
	require.Error(t, err)
	require.Equal(t, domain.KindForbidden, domain.KindOf(err))
}

func TestSlotCancel_OnlyOwnerAndOnlyAvailable(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSlotStore()
	svc := NewSlotService(store, &captureBus{})

	slot, err := svc.Create(ctx, mentor("m1"), &domain.SlotCreateReq{
		Date: "2026-04-01", Time: "09:00", DurationMins: 60,
	})
	require.NoError(t, err)

	err = svc.Cancel(ctx, mentor("m2"), slot.ID)
	require.Error(t, err)
	require.Equal(t, domain.KindForbidden, domain.KindOf(err))

	require.NoError(t, svc.Cancel(ctx, mentor("m1"), slot.ID))

	// second cancel lost the conditional transition
	err = svc.Cancel(ctx, mentor("m1"), slot.ID)
	require.Error(t, err)
	require.Equal(t, domain.KindConflict, domain.KindOf(err))

	err = svc.Cancel(ctx, mentor("m1"), "no-such-slot")
	require.Error(t, err)
	require.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestSlotCancel_BookedSlotIsConflict(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSlotStore()
	svc := NewSlotService(store, &captureBus{})

	slot, err := svc.Create(ctx, mentor("m1"), &domain.SlotCreateReq{
		Date: "2026-04-01", Time: "09:00", DurationMins: 60,
	})
	require.NoError(t, err)

	won, err := store.TryClaim(ctx, slot.ID)
	require.NoError(t, err)
	require.True(t, won)

	err = svc.Cancel(ctx, mentor("m1"), slot.ID)
	require.Error(t, err)
	require.Equal(t, domain.KindConflict, domain.KindOf(err))
}
