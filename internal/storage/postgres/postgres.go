package postgres

import (
	"context"

	"github.com/fdg312/food-tracker/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStorage - Postgres реализация storage.Storage
type PostgresStorage struct {
	pool         *pgxpool.Pool
	catalog      *catalogStorage
	entries      *entriesStorage
	bodyProfiles *bodyProfilesStorage
	water        *waterStorage
}

// New создаёт PostgresStorage и проверяет соединение
func New(ctx context.Context, databaseURL string) (*PostgresStorage, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStorage{
		pool:         pool,
		catalog:      newCatalogStorage(pool),
		entries:      newEntriesStorage(pool),
		bodyProfiles: newBodyProfilesStorage(pool),
		water:        newWaterStorage(pool),
	}, nil
}

func (p *PostgresStorage) Catalog() storage.CatalogStorage           { return p.catalog }
func (p *PostgresStorage) Entries() storage.EntriesStorage           { return p.entries }
func (p *PostgresStorage) BodyProfiles() storage.BodyProfilesStorage { return p.bodyProfiles }
func (p *PostgresStorage) Water() storage.WaterStorage               { return p.water }

func (p *PostgresStorage) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}
