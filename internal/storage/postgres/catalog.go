package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fdg312/food-tracker/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const foodColumns = `id, name, name_normalized,
	calories_kcal_per_100g, protein_g_per_100g, fat_g_per_100g, carbs_g_per_100g,
	fiber_g_per_100g, sugar_g_per_100g, sodium_mg_per_100g, calcium_mg_per_100g,
	iron_mg_per_100g, vitamin_c_mg_per_100g, vitamin_b11_mg_per_100g`

const (
	getFoodQuery = `SELECT ` + foodColumns + ` FROM foods WHERE id = $1`

	// One statement, one snapshot.
	getFoodsQuery = `SELECT ` + foodColumns + ` FROM foods WHERE id = ANY($1)`

	searchSubstringQuery = `
		SELECT ` + foodColumns + `
		FROM foods
		WHERE name_normalized LIKE '%' || $1 || '%' ESCAPE '\'
		ORDER BY id
		LIMIT $2`

	// name_tokens is written from storage.Tokenize, so both stores split names
	// the same way: every query token must prefix some name token.
	searchPrefixQuery = `
		SELECT ` + foodColumns + `
		FROM foods
		WHERE NOT EXISTS (
			SELECT 1 FROM unnest($1::text[]) AS q(tok)
			WHERE NOT EXISTS (
				SELECT 1 FROM unnest(name_tokens) AS n(tok)
				WHERE starts_with(n.tok, q.tok)
			)
		)
		ORDER BY id
		LIMIT $2`

	upsertFoodQuery = `
		INSERT INTO foods (name, name_normalized, name_tokens,
			calories_kcal_per_100g, protein_g_per_100g, fat_g_per_100g, carbs_g_per_100g,
			fiber_g_per_100g, sugar_g_per_100g, sodium_mg_per_100g, calcium_mg_per_100g,
			iron_mg_per_100g, vitamin_c_mg_per_100g, vitamin_b11_mg_per_100g)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (name_normalized) DO UPDATE SET
			name = EXCLUDED.name,
			name_tokens = EXCLUDED.name_tokens,
			calories_kcal_per_100g = EXCLUDED.calories_kcal_per_100g,
			protein_g_per_100g = EXCLUDED.protein_g_per_100g,
			fat_g_per_100g = EXCLUDED.fat_g_per_100g,
			carbs_g_per_100g = EXCLUDED.carbs_g_per_100g,
			fiber_g_per_100g = EXCLUDED.fiber_g_per_100g,
			sugar_g_per_100g = EXCLUDED.sugar_g_per_100g,
			sodium_mg_per_100g = EXCLUDED.sodium_mg_per_100g,
			calcium_mg_per_100g = EXCLUDED.calcium_mg_per_100g,
			iron_mg_per_100g = EXCLUDED.iron_mg_per_100g,
			vitamin_c_mg_per_100g = EXCLUDED.vitamin_c_mg_per_100g,
			vitamin_b11_mg_per_100g = EXCLUDED.vitamin_b11_mg_per_100g,
			updated_at = now()
		RETURNING (xmax = 0) AS inserted`
)

type catalogStorage struct {
	pool *pgxpool.Pool
}

func newCatalogStorage(pool *pgxpool.Pool) *catalogStorage {
	return &catalogStorage{pool: pool}
}

func (s *catalogStorage) GetFood(ctx context.Context, id int64) (*storage.Food, error) {
	f, err := scanFood(s.pool.QueryRow(ctx, getFoodQuery, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get food: %w", err)
	}
	return &f, nil
}

func (s *catalogStorage) GetFoods(ctx context.Context, ids []int64) (map[int64]storage.Food, error) {
	result := make(map[int64]storage.Food, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	rows, err := s.pool.Query(ctx, getFoodsQuery, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get foods: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		f, err := scanFood(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan food: %w", err)
		}
		result[f.ID] = f
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating foods: %w", err)
	}

	return result, nil
}

func (s *catalogStorage) SearchSubstring(ctx context.Context, term string, limit int) ([]storage.Food, error) {
	return s.search(ctx, searchSubstringQuery, storage.EscapeLike(strings.ToLower(term)), limit)
}

func (s *catalogStorage) SearchPrefix(ctx context.Context, term string, limit int) ([]storage.Food, error) {
	tokens := storage.Tokenize(term)
	if len(tokens) == 0 {
		return []storage.Food{}, nil
	}

	return s.search(ctx, searchPrefixQuery, tokens, limit)
}

func (s *catalogStorage) search(ctx context.Context, query string, arg any, limit int) ([]storage.Food, error) {
	rows, err := s.pool.Query(ctx, query, arg, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search foods: %w", err)
	}
	defer rows.Close()

	foods := []storage.Food{}
	for rows.Next() {
		f, err := scanFood(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan food: %w", err)
		}
		foods = append(foods, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating foods: %w", err)
	}

	return foods, nil
}

func (s *catalogStorage) UpsertFoods(ctx context.Context, foods []storage.FoodUpsert) (int, int, error) {
	if len(foods) == 0 {
		return 0, 0, nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to begin import tx: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, f := range foods {
		norm := f.NameNormalized
		if norm == "" {
			norm = storage.NormalizeName(f.Name)
		}
		batch.Queue(upsertFoodQuery,
			strings.TrimSpace(f.Name), norm, nameTokens(norm),
			f.CaloriesKcal, f.ProteinG, f.FatG, f.CarbsG,
			f.FiberG, f.SugarG, f.SodiumMg, f.CalciumMg,
			f.IronMg, f.VitaminCMg, f.VitaminB11Mg,
		)
	}

	br := tx.SendBatch(ctx, batch)
	inserted, updated := 0, 0
	for range foods {
		var wasInsert bool
		if err := br.QueryRow().Scan(&wasInsert); err != nil {
			br.Close()
			return 0, 0, fmt.Errorf("failed to upsert food: %w", err)
		}
		if wasInsert {
			inserted++
		} else {
			updated++
		}
	}
	if err := br.Close(); err != nil {
		return 0, 0, fmt.Errorf("failed to close import batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, 0, fmt.Errorf("failed to commit import tx: %w", err)
	}

	return inserted, updated, nil
}

// nameTokens never returns nil so the column stays NOT NULL.
func nameTokens(normalized string) []string {
	tokens := storage.Tokenize(normalized)
	if tokens == nil {
		return []string{}
	}
	return tokens
}

func (s *catalogStorage) CountFoods(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM foods`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count foods: %w", err)
	}
	return n, nil
}

func scanFood(row pgx.Row) (storage.Food, error) {
	var f storage.Food
	err := row.Scan(
		&f.ID,
		&f.Name,
		&f.NameNormalized,
		&f.CaloriesKcal,
		&f.ProteinG,
		&f.FatG,
		&f.CarbsG,
		&f.FiberG,
		&f.SugarG,
		&f.SodiumMg,
		&f.CalciumMg,
		&f.IronMg,
		&f.VitaminCMg,
		&f.VitaminB11Mg,
	)
	return f, err
}
