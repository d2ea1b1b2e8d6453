package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/fdg312/food-tracker/internal/storage"
)

type catalogStorage struct {
	mu     sync.RWMutex
	foods  []storage.Food // ascending id, storage order
	byID   map[int64]int
	byName map[string]int // name_normalized -> index
	nextID int64
}

func newCatalogStorage() *catalogStorage {
	return &catalogStorage{
		byID:   make(map[int64]int),
		byName: make(map[string]int),
		nextID: 1,
	}
}

func (s *catalogStorage) GetFood(ctx context.Context, id int64) (*storage.Food, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	f := cloneFood(s.foods[idx])
	return &f, nil
}

// GetFoods reads every id under one read lock, so callers see a single snapshot.
func (s *catalogStorage) GetFoods(ctx context.Context, ids []int64) (map[int64]storage.Food, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[int64]storage.Food, len(ids))
	for _, id := range ids {
		if idx, ok := s.byID[id]; ok {
			result[id] = cloneFood(s.foods[idx])
		}
	}
	return result, nil
}

func (s *catalogStorage) SearchSubstring(ctx context.Context, term string, limit int) ([]storage.Food, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(term)
	result := []storage.Food{}
	for _, f := range s.foods {
		if limit > 0 && len(result) >= limit {
			break
		}
		if strings.Contains(f.NameNormalized, needle) {
			result = append(result, cloneFood(f))
		}
	}
	return result, nil
}

func (s *catalogStorage) SearchPrefix(ctx context.Context, term string, limit int) ([]storage.Food, error) {
	queryTokens := storage.Tokenize(term)
	result := []storage.Food{}
	if len(queryTokens) == 0 {
		return result, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, f := range s.foods {
		if limit > 0 && len(result) >= limit {
			break
		}
		if storage.MatchesPrefixTokens(storage.Tokenize(f.NameNormalized), queryTokens) {
			result = append(result, cloneFood(f))
		}
	}
	return result, nil
}

func (s *catalogStorage) UpsertFoods(ctx context.Context, foods []storage.FoodUpsert) (int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inserted, updated := 0, 0
	for _, u := range foods {
		norm := u.NameNormalized
		if norm == "" {
			norm = storage.NormalizeName(u.Name)
		}

		if idx, ok := s.byName[norm]; ok {
			id := s.foods[idx].ID
			s.foods[idx] = foodFromUpsert(id, norm, u)
			updated++
			continue
		}

		id := s.nextID
		s.nextID++
		s.foods = append(s.foods, foodFromUpsert(id, norm, u))
		s.byID[id] = len(s.foods) - 1
		s.byName[norm] = len(s.foods) - 1
		inserted++
	}
	return inserted, updated, nil
}

func (s *catalogStorage) CountFoods(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.foods), nil
}

func foodFromUpsert(id int64, norm string, u storage.FoodUpsert) storage.Food {
	return cloneFood(storage.Food{
		ID:             id,
		Name:           strings.TrimSpace(u.Name),
		NameNormalized: norm,
		CaloriesKcal:   u.CaloriesKcal,
		ProteinG:       u.ProteinG,
		FatG:           u.FatG,
		CarbsG:         u.CarbsG,
		FiberG:         u.FiberG,
		SugarG:         u.SugarG,
		SodiumMg:       u.SodiumMg,
		CalciumMg:      u.CalciumMg,
		IronMg:         u.IronMg,
		VitaminCMg:     u.VitaminCMg,
		VitaminB11Mg:   u.VitaminB11Mg,
	})
}

func cloneFood(f storage.Food) storage.Food {
	f.CaloriesKcal = cloneFloat(f.CaloriesKcal)
	f.ProteinG = cloneFloat(f.ProteinG)
	f.FatG = cloneFloat(f.FatG)
	f.CarbsG = cloneFloat(f.CarbsG)
	f.FiberG = cloneFloat(f.FiberG)
	f.SugarG = cloneFloat(f.SugarG)
	f.SodiumMg = cloneFloat(f.SodiumMg)
	f.CalciumMg = cloneFloat(f.CalciumMg)
	f.IronMg = cloneFloat(f.IronMg)
	f.VitaminCMg = cloneFloat(f.VitaminCMg)
	f.VitaminB11Mg = cloneFloat(f.VitaminB11Mg)
	return f
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
