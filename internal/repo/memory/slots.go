// Package memory provides in-memory store implementations. The slot
// store's conditional transitions are serialized by a single mutex,
// which makes them linearizable the same way the postgres conditional
// UPDATE is.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/grovebook/mentor-sessions/internal/domain"
)

type SlotStore struct {
	mu    sync.Mutex
	slots map[string]domain.Slot
}

func NewSlotStore() *SlotStore {
	return &SlotStore{slots: make(map[string]domain.Slot)}
}

func (s *SlotStore) Create(_ context.Context, slot *domain.Slot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slot.CreatedAt.IsZero() {
		slot.CreatedAt = time.Now().UTC()
	}
	s.slots[slot.ID] = *slot
	return nil
}

func (s *SlotStore) Get(_ context.Context, id string) (*domain.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.slots[id]
	if !ok {
		return nil, nil
	}
	return &slot, nil
}

func (s *SlotStore) ListByOwner(_ context.Context, mentorID string) ([]domain.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.Slot
	for _, slot := range s.slots {
		if slot.MentorID == mentorID {
			out = append(out, slot)
		}
	}
	sortSlots(out)
	return out, nil
}

func (s *SlotStore) ListBookable(_ context.Context, mentorID string, now time.Time) ([]domain.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.Slot
	for _, slot := range s.slots {
		if slot.MentorID == mentorID && slot.Status == domain.SlotAvailable && slot.StartAt.After(now) {
			out = append(out, slot)
		}
	}
	sortSlots(out)
	return out, nil
}

func (s *SlotStore) TryClaim(_ context.Context, id string) (bool, error) {
	return s.transition(id, domain.SlotAvailable, domain.SlotBooked), nil
}

func (s *SlotStore) Release(_ context.Context, id string) (bool, error) {
	return s.transition(id, domain.SlotBooked, domain.SlotAvailable), nil
}

func (s *SlotStore) Cancel(_ context.Context, id string) (bool, error) {
	return s.transition(id, domain.SlotAvailable, domain.SlotCancelled), nil
}

func (s *SlotStore) transition(id string, from, to domain.SlotStatus) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	slot, ok := s.slots[id]
	if !ok || slot.Status != from {
		return false
	}
	slot.Status = to
	s.slots[id] = slot
	return true
}

func sortSlots(slots []domain.Slot) {
	sort.Slice(slots, func(i, j int) bool {
		if !slots[i].StartAt.Equal(slots[j].StartAt) {
			return slots[i].StartAt.Before(slots[j].StartAt)
		}
		return slots[i].ID < slots[j].ID
	})
}
