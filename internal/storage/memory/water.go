package memory

import (
	"context"
	"sync"

	"github.com/fdg312/food-tracker/internal/storage"
)

type waterStorage struct {
	mu     sync.RWMutex
	totals map[string]int // key: "ownerUserID:date"
}

func newWaterStorage() *waterStorage {
	return &waterStorage{
		totals: make(map[string]int),
	}
}

func (s *waterStorage) AddWater(ctx context.Context, ownerUserID string, date string, amountMl int, maxDailyMl int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := ownerUserID + ":" + date
	total := s.totals[key]
	if maxDailyMl > 0 && amountMl > maxDailyMl-total {
		return total, storage.ErrLimitExceeded
	}
	s.totals[key] = total + amountMl
	return total + amountMl, nil
}

func (s *waterStorage) GetWaterDaily(ctx context.Context, ownerUserID string, date string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.totals[ownerUserID+":"+date], nil
}

func (s *waterStorage) ResetWater(ctx context.Context, ownerUserID string, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.totals, ownerUserID+":"+date)
	return nil
}
