package diary

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/fdg312/food-tracker/internal/storage"
)

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// MealOrder is the fixed accumulation order for day totals.
var MealOrder = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack}

// ParseMealType is case-insensitive. ok is false for anything outside the four meals.
func ParseMealType(s string) (MealType, bool) {
	m := MealType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range MealOrder {
		if m == known {
			return m, true
		}
	}
	return "", false
}

// MealSummary - суммы шести отслеживаемых нутриентов
type MealSummary struct {
	CaloriesKcal float64 `json:"calories_kcal"`
	ProteinG     float64 `json:"protein_g"`
	FatG         float64 `json:"fat_g"`
	CarbsG       float64 `json:"carbs_g"`
	FiberG       float64 `json:"fiber_g"`
	SodiumMg     float64 `json:"sodium_mg"`
}

func (m *MealSummary) add(o MealSummary) {
	m.CaloriesKcal += o.CaloriesKcal
	m.ProteinG += o.ProteinG
	m.FatG += o.FatG
	m.CarbsG += o.CarbsG
	m.FiberG += o.FiberG
	m.SodiumMg += o.SodiumMg
}

// addScaled adds factor*value for every nutrient; nil counts as 0.
func (m *MealSummary) addScaled(f storage.Food, factor float64) {
	m.CaloriesKcal += factor * valueOrZero(f.CaloriesKcal)
	m.ProteinG += factor * valueOrZero(f.ProteinG)
	m.FatG += factor * valueOrZero(f.FatG)
	m.CarbsG += factor * valueOrZero(f.CarbsG)
	m.FiberG += factor * valueOrZero(f.FiberG)
	m.SodiumMg += factor * valueOrZero(f.SodiumMg)
}

// DaySummary is derived on demand and never persisted.
type DaySummary struct {
	Date       string                   `json:"date"`
	Meals      map[MealType]MealSummary `json:"meals"`
	Total      MealSummary              `json:"total"`
	EntryCount int                      `json:"entry_count"`
}

// FoodLookup resolves a set of catalog ids in a single read.
type FoodLookup interface {
	GetFoods(ctx context.Context, ids []int64) (map[int64]storage.Food, error)
}

// Aggregate rolls one day's entries up into per-meal and day totals.
//
// Entries outside the four meals are dropped. Foods are resolved with exactly
// one GetFoods call so the whole summary sees one snapshot of the catalog.
// Entries whose food is missing contribute nothing, and a meal appears only
// when at least one of its entries resolved.
func Aggregate(ctx context.Context, date string, entries []storage.Entry, lookup FoodLookup) (DaySummary, error) {
	summary := DaySummary{
		Date:  date,
		Meals: make(map[MealType]MealSummary),
	}

	type item struct {
		meal  MealType
		entry storage.Entry
	}
	items := make([]item, 0, len(entries))
	seen := make(map[int64]struct{})
	ids := make([]int64, 0)
	for _, e := range entries {
		meal, ok := ParseMealType(e.MealType)
		if !ok {
			continue
		}
		items = append(items, item{meal: meal, entry: e})
		if _, dup := seen[e.FoodID]; !dup {
			seen[e.FoodID] = struct{}{}
			ids = append(ids, e.FoodID)
		}
	}
	summary.EntryCount = len(items)
	if len(items) == 0 {
		return summary, nil
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	foods, err := lookup.GetFoods(ctx, ids)
	if err != nil {
		return DaySummary{}, fmt.Errorf("resolve foods for %s: %w", date, err)
	}

	for _, it := range items {
		food, ok := foods[it.entry.FoodID]
		if !ok {
			continue
		}
		meal := summary.Meals[it.meal]
		meal.addScaled(food, it.entry.QuantityG/100)
		summary.Meals[it.meal] = meal
	}

	for _, m := range MealOrder {
		if meal, ok := summary.Meals[m]; ok {
			summary.Total.add(meal)
		}
	}

	return summary, nil
}

// snapshot serves lookups from foods fetched earlier in one batch.
type snapshot map[int64]storage.Food

func (s snapshot) GetFoods(_ context.Context, ids []int64) (map[int64]storage.Food, error) {
	out := make(map[int64]storage.Food, len(ids))
	for _, id := range ids {
		if f, ok := s[id]; ok {
			out[id] = f
		}
	}
	return out, nil
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
