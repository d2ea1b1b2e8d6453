package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fdg312/food-tracker/internal/storage"
	"github.com/google/uuid"
)

type entriesStorage struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]storage.Entry
}

func newEntriesStorage() *entriesStorage {
	return &entriesStorage{
		entries: make(map[uuid.UUID]storage.Entry),
	}
}

func (s *entriesStorage) CreateEntry(ctx context.Context, entry *storage.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	now := time.Now().UTC()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	s.entries[entry.ID] = *entry
	return nil
}

func (s *entriesStorage) GetEntry(ctx context.Context, ownerUserID string, id uuid.UUID) (*storage.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok || e.OwnerUserID != ownerUserID {
		return nil, nil
	}
	return &e, nil
}

func (s *entriesStorage) ReplaceEntry(ctx context.Context, entry *storage.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.entries[entry.ID]
	if !ok || existing.OwnerUserID != entry.OwnerUserID {
		return storage.ErrNotFound
	}

	entry.CreatedAt = existing.CreatedAt
	entry.UpdatedAt = time.Now().UTC()
	s.entries[entry.ID] = *entry
	return nil
}

func (s *entriesStorage) DeleteEntry(ctx context.Context, ownerUserID string, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.entries[id]
	if !ok || existing.OwnerUserID != ownerUserID {
		return storage.ErrNotFound
	}

	delete(s.entries, id)
	return nil
}

func (s *entriesStorage) ListEntriesByDate(ctx context.Context, ownerUserID string, date string) ([]storage.Entry, error) {
	return s.ListEntriesRange(ctx, ownerUserID, date, date)
}

func (s *entriesStorage) ListEntriesRange(ctx context.Context, ownerUserID string, from, to string) ([]storage.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []storage.Entry{}
	for _, e := range s.entries {
		if e.OwnerUserID != ownerUserID {
			continue
		}
		// YYYY-MM-DD compares lexicographically
		if e.Date < from || e.Date > to {
			continue
		}
		result = append(result, e)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date < result[j].Date
		}
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID.String() < result[j].ID.String()
	})

	return result, nil
}
