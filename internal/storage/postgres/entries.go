package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fdg312/food-tracker/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const entryColumns = `id, owner_user_id, to_char(entry_date, 'YYYY-MM-DD'), meal_type, food_id, quantity_g, created_at, updated_at`

type entriesStorage struct {
	pool *pgxpool.Pool
}

func newEntriesStorage(pool *pgxpool.Pool) *entriesStorage {
	return &entriesStorage{pool: pool}
}

func (s *entriesStorage) CreateEntry(ctx context.Context, entry *storage.Entry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	now := time.Now().UTC()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	query := `
		INSERT INTO diary_entries (id, owner_user_id, entry_date, meal_type, food_id, quantity_g, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := s.pool.Exec(ctx, query,
		entry.ID,
		entry.OwnerUserID,
		entry.Date,
		entry.MealType,
		entry.FoodID,
		entry.QuantityG,
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create entry: %w", err)
	}
	return nil
}

func (s *entriesStorage) GetEntry(ctx context.Context, ownerUserID string, id uuid.UUID) (*storage.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM diary_entries WHERE id = $1 AND owner_user_id = $2`

	e, err := scanEntry(s.pool.QueryRow(ctx, query, id, ownerUserID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return &e, nil
}

func (s *entriesStorage) ReplaceEntry(ctx context.Context, entry *storage.Entry) error {
	entry.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE diary_entries
		SET entry_date = $1, meal_type = $2, food_id = $3, quantity_g = $4, updated_at = $5
		WHERE id = $6 AND owner_user_id = $7
		RETURNING created_at
	`

	err := s.pool.QueryRow(ctx, query,
		entry.Date,
		entry.MealType,
		entry.FoodID,
		entry.QuantityG,
		entry.UpdatedAt,
		entry.ID,
		entry.OwnerUserID,
	).Scan(&entry.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to replace entry: %w", err)
	}
	return nil
}

func (s *entriesStorage) DeleteEntry(ctx context.Context, ownerUserID string, id uuid.UUID) error {
	result, err := s.pool.Exec(ctx, `DELETE FROM diary_entries WHERE id = $1 AND owner_user_id = $2`, id, ownerUserID)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	if result.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *entriesStorage) ListEntriesByDate(ctx context.Context, ownerUserID string, date string) ([]storage.Entry, error) {
	return s.ListEntriesRange(ctx, ownerUserID, date, date)
}

func (s *entriesStorage) ListEntriesRange(ctx context.Context, ownerUserID string, from, to string) ([]storage.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM diary_entries
		WHERE owner_user_id = $1 AND entry_date >= $2 AND entry_date <= $3
		ORDER BY entry_date, created_at, id
	`

	rows, err := s.pool.Query(ctx, query, ownerUserID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	entries := []storage.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entries: %w", err)
	}

	return entries, nil
}

func scanEntry(row pgx.Row) (storage.Entry, error) {
	var e storage.Entry
	err := row.Scan(
		&e.ID,
		&e.OwnerUserID,
		&e.Date,
		&e.MealType,
		&e.FoodID,
		&e.QuantityG,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}
