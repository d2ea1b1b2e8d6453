package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/fdg312/food-tracker/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bodyProfileColumns = `owner_user_id, gender, age, height_cm, weight_kg, body_fat_pct,
	goal, activity_level, target_weight_kg, medical_history, created_at, updated_at`

type bodyProfilesStorage struct {
	pool *pgxpool.Pool
}

func newBodyProfilesStorage(pool *pgxpool.Pool) *bodyProfilesStorage {
	return &bodyProfilesStorage{pool: pool}
}

func (s *bodyProfilesStorage) GetBodyProfile(ctx context.Context, ownerUserID string) (*storage.BodyProfile, error) {
	query := `SELECT ` + bodyProfileColumns + ` FROM body_profiles WHERE owner_user_id = $1`

	p, err := scanBodyProfile(s.pool.QueryRow(ctx, query, ownerUserID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil // not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get body profile: %w", err)
	}
	return &p, nil
}

func (s *bodyProfilesStorage) UpsertBodyProfile(ctx context.Context, ownerUserID string, upsert storage.BodyProfileUpsert) (*storage.BodyProfile, error) {
	query := `
		INSERT INTO body_profiles (owner_user_id, gender, age, height_cm, weight_kg, body_fat_pct,
			goal, activity_level, target_weight_kg, medical_history)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (owner_user_id) DO UPDATE SET
			gender = EXCLUDED.gender,
			age = EXCLUDED.age,
			height_cm = EXCLUDED.height_cm,
			weight_kg = EXCLUDED.weight_kg,
			body_fat_pct = EXCLUDED.body_fat_pct,
			goal = EXCLUDED.goal,
			activity_level = EXCLUDED.activity_level,
			target_weight_kg = EXCLUDED.target_weight_kg,
			medical_history = EXCLUDED.medical_history,
			updated_at = now()
		RETURNING ` + bodyProfileColumns

	p, err := scanBodyProfile(s.pool.QueryRow(ctx, query,
		ownerUserID,
		upsert.Gender,
		upsert.Age,
		upsert.HeightCm,
		upsert.WeightKg,
		upsert.BodyFatPct,
		upsert.Goal,
		upsert.ActivityLevel,
		upsert.TargetWeightKg,
		upsert.MedicalHistory,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert body profile: %w", err)
	}
	return &p, nil
}

func scanBodyProfile(row pgx.Row) (storage.BodyProfile, error) {
	var p storage.BodyProfile
	err := row.Scan(
		&p.OwnerUserID,
		&p.Gender,
		&p.Age,
		&p.HeightCm,
		&p.WeightKg,
		&p.BodyFatPct,
		&p.Goal,
		&p.ActivityLevel,
		&p.TargetWeightKg,
		&p.MedicalHistory,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}
