package memory

import (
	"context"

	"github.com/fdg312/food-tracker/internal/storage"
)

// MemoryStorage - in-memory реализация storage.Storage
type MemoryStorage struct {
	catalog      *catalogStorage
	entries      *entriesStorage
	bodyProfiles *bodyProfilesStorage
	water        *waterStorage
}

// New создаёт пустой MemoryStorage
func New() *MemoryStorage {
	return &MemoryStorage{
		catalog:      newCatalogStorage(),
		entries:      newEntriesStorage(),
		bodyProfiles: newBodyProfilesStorage(),
		water:        newWaterStorage(),
	}
}

func (m *MemoryStorage) Catalog() storage.CatalogStorage           { return m.catalog }
func (m *MemoryStorage) Entries() storage.EntriesStorage           { return m.entries }
func (m *MemoryStorage) BodyProfiles() storage.BodyProfilesStorage { return m.bodyProfiles }
func (m *MemoryStorage) Water() storage.WaterStorage               { return m.water }

func (m *MemoryStorage) Ping(ctx context.Context) error {
	return nil
}

func (m *MemoryStorage) Close() error {
	// no-op для memory
	return nil
}
