package foods

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/fdg312/food-tracker/internal/logger"
	"github.com/fdg312/food-tracker/internal/storage"
	"go.uber.org/zap"
)

// CSV column headers of the catalog export.
const (
	colName           = "food"
	colNameNormalized = "food_normalized"
	colCalories       = "Calories (kcal per 100g)"
	colProtein        = "Protein (g per 100g)"
	colFat            = "Fat (g per 100g)"
	colCarbs          = "Carbohydrates (g per 100g)"
	colFiber          = "Dietary Fiber (g per 100g)"
	colSugar          = "Sugars (g per 100g)"
	colSodium         = "Sodium (mg per 100g)"
	colCalcium        = "Calcium (mg per 100g)"
	colIron           = "Iron (mg per 100g)"
	colVitaminC       = "Vitamin C (mg per 100g)"
	colVitaminB11     = "Vitamin B11 (mg per 100g)"
)

const defaultImportBatchSize = 500

var ErrMissingNameColumn = errors.New("csv has no food column")

// ImportStats - итог импорта каталога
type ImportStats struct {
	Rows     int `json:"rows"`
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Skipped  int `json:"skipped"`
}

// ImportCSV upserts catalog rows from r in batches of batchSize.
// Missing nutrient columns and empty, "na" or unparsable cells become null.
func ImportCSV(ctx context.Context, r io.Reader, catalog storage.CatalogStorage, batchSize int) (ImportStats, error) {
	if batchSize <= 0 {
		batchSize = defaultImportBatchSize
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return ImportStats{}, fmt.Errorf("read csv header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	if _, ok := index[colName]; !ok {
		return ImportStats{}, ErrMissingNameColumn
	}

	var stats ImportStats
	batch := make([]storage.FoodUpsert, 0, batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		ins, upd, err := catalog.UpsertFoods(ctx, batch)
		if err != nil {
			return fmt.Errorf("upsert batch: %w", err)
		}
		stats.Inserted += ins
		stats.Updated += upd
		batch = batch[:0]
		return nil
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("read csv row %d: %w", stats.Rows+1, err)
		}
		stats.Rows++

		row, ok := parseRow(record, index)
		if !ok {
			stats.Skipped++
			continue
		}
		batch = append(batch, row)

		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return stats, err
			}
		}
	}
	if err := flush(); err != nil {
		return stats, err
	}

	logger.L().Info("catalog import finished",
		zap.Int("rows", stats.Rows),
		zap.Int("inserted", stats.Inserted),
		zap.Int("updated", stats.Updated),
		zap.Int("skipped", stats.Skipped),
	)
	return stats, nil
}

func parseRow(record []string, index map[string]int) (storage.FoodUpsert, bool) {
	cell := func(col string) string {
		i, ok := index[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	num := func(col string) *float64 {
		return parseNutrient(cell(col))
	}

	name := cell(colName)
	if name == "" {
		name = cell(colNameNormalized)
	}
	if name == "" {
		return storage.FoodUpsert{}, false
	}

	normalized := cell(colNameNormalized)
	if normalized == "" {
		normalized = name
	}

	return storage.FoodUpsert{
		Name:           name,
		NameNormalized: storage.NormalizeName(normalized),
		CaloriesKcal:   num(colCalories),
		ProteinG:       num(colProtein),
		FatG:           num(colFat),
		CarbsG:         num(colCarbs),
		FiberG:         num(colFiber),
		SugarG:         num(colSugar),
		SodiumMg:       num(colSodium),
		CalciumMg:      num(colCalcium),
		IronMg:         num(colIron),
		VitaminCMg:     num(colVitaminC),
		VitaminB11Mg:   num(colVitaminB11),
	}, true
}

// parseNutrient returns nil for "unknown": empty, "na", not a number or
// non-finite (ParseFloat accepts "nan" and "inf").
func parseNutrient(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "na") {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
