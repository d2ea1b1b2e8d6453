package memory

import (
	"context"
	"sync"
	"time"

	"github.com/fdg312/food-tracker/internal/storage"
)

type bodyProfilesStorage struct {
	mu       sync.RWMutex
	profiles map[string]*storage.BodyProfile // key: owner_user_id
}

func newBodyProfilesStorage() *bodyProfilesStorage {
	return &bodyProfilesStorage{
		profiles: make(map[string]*storage.BodyProfile),
	}
}

func (s *bodyProfilesStorage) GetBodyProfile(ctx context.Context, ownerUserID string) (*storage.BodyProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[ownerUserID]
	if !ok {
		return nil, nil // not found, return nil without error
	}

	copied := *p
	return &copied, nil
}

func (s *bodyProfilesStorage) UpsertBodyProfile(ctx context.Context, ownerUserID string, upsert storage.BodyProfileUpsert) (*storage.BodyProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	createdAt := now
	if existing, ok := s.profiles[ownerUserID]; ok {
		createdAt = existing.CreatedAt
	}

	p := &storage.BodyProfile{
		OwnerUserID:    ownerUserID,
		Gender:         upsert.Gender,
		Age:            upsert.Age,
		HeightCm:       upsert.HeightCm,
		WeightKg:       upsert.WeightKg,
		BodyFatPct:     cloneFloat(upsert.BodyFatPct),
		Goal:           upsert.Goal,
		ActivityLevel:  upsert.ActivityLevel,
		TargetWeightKg: cloneFloat(upsert.TargetWeightKg),
		MedicalHistory: upsert.MedicalHistory,
		CreatedAt:      createdAt,
		UpdatedAt:      now,
	}
	s.profiles[ownerUserID] = p

	copied := *p
	return &copied, nil
}
