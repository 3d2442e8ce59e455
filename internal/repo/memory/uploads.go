package memory

import (
	"context"
	"sync"
	"time"

	"github.com/grovebook/mentor-sessions/internal/domain"
)

type UploadStore struct {
	mu      sync.Mutex
	uploads map[string]domain.Upload
}

func NewUploadStore() *UploadStore {
	return &UploadStore{uploads: make(map[string]domain.Upload)}
}

func (s *UploadStore) Create(_ context.Context, u *domain.Upload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	s.uploads[u.ID] = *u
	return nil
}

func (s *UploadStore) Get(_ context.Context, id string) (*domain.Upload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.uploads[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *UploadStore) OwnerOf(_ context.Context, id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.uploads[id]
	if !ok {
		return "", nil
	}
	return u.OwnerID, nil
}
