package postgres

import (
	"context"
	"fmt"

	"github.com/fdg312/food-tracker/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
)

type waterStorage struct {
	pool *pgxpool.Pool
}

func newWaterStorage(pool *pgxpool.Pool) *waterStorage {
	return &waterStorage{pool: pool}
}

// AddWater serializes adds for one owner/day with a transaction-scoped
// advisory lock, so the cap check and the insert see the same total.
func (s *waterStorage) AddWater(ctx context.Context, ownerUserID string, date string, amountMl int, maxDailyMl int) (int, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin water tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, "water:"+ownerUserID+":"+date); err != nil {
		return 0, fmt.Errorf("failed to lock water day: %w", err)
	}

	var total int
	err = tx.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount_ml), 0)
		FROM water_intakes
		WHERE owner_user_id = $1 AND intake_date = $2
	`, ownerUserID, date).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to get daily water: %w", err)
	}
	if maxDailyMl > 0 && amountMl > maxDailyMl-total {
		return total, storage.ErrLimitExceeded
	}

	query := `
		INSERT INTO water_intakes (owner_user_id, intake_date, amount_ml)
		VALUES ($1, $2, $3)
	`
	if _, err := tx.Exec(ctx, query, ownerUserID, date, amountMl); err != nil {
		return 0, fmt.Errorf("failed to add water: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit water: %w", err)
	}
	return total + amountMl, nil
}

func (s *waterStorage) GetWaterDaily(ctx context.Context, ownerUserID string, date string) (int, error) {
	query := `
		SELECT COALESCE(SUM(amount_ml), 0)
		FROM water_intakes
		WHERE owner_user_id = $1 AND intake_date = $2
	`

	var total int
	if err := s.pool.QueryRow(ctx, query, ownerUserID, date).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to get daily water: %w", err)
	}
	return total, nil
}

func (s *waterStorage) ResetWater(ctx context.Context, ownerUserID string, date string) error {
	query := `DELETE FROM water_intakes WHERE owner_user_id = $1 AND intake_date = $2`
	if _, err := s.pool.Exec(ctx, query, ownerUserID, date); err != nil {
		return fmt.Errorf("failed to reset water: %w", err)
	}
	return nil
}
