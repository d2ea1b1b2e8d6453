package diary

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/fdg312/food-tracker/internal/storage"
)

// countingLookup is a FoodLookup fake that records every batch call.
type countingLookup struct {
	foods map[int64]storage.Food
	calls int
	ids   [][]int64
	err   error
}

func (l *countingLookup) GetFoods(_ context.Context, ids []int64) (map[int64]storage.Food, error) {
	l.calls++
	l.ids = append(l.ids, ids)
	if l.err != nil {
		return nil, l.err
	}
	out := make(map[int64]storage.Food)
	for _, id := range ids {
		if f, ok := l.foods[id]; ok {
			out[id] = f
		}
	}
	return out, nil
}

func ptr(v float64) *float64 { return &v }

func testFood(id int64) storage.Food {
	return storage.Food{
		ID:           id,
		Name:         "food",
		CaloriesKcal: ptr(200),
		ProteinG:     ptr(10),
		FatG:         ptr(5),
		CarbsG:       ptr(20),
		FiberG:       ptr(2),
		SodiumMg:     ptr(50),
	}
}

func TestAggregateSingleBreakfast(t *testing.T) {
	lookup := &countingLookup{foods: map[int64]storage.Food{1: testFood(1)}}
	entries := []storage.Entry{{Date: "2024-05-01", MealType: "breakfast", FoodID: 1, QuantityG: 150}}

	got, err := Aggregate(context.Background(), "2024-05-01", entries, lookup)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := MealSummary{CaloriesKcal: 300, ProteinG: 15, FatG: 7.5, CarbsG: 30, FiberG: 3, SodiumMg: 75}
	if len(got.Meals) != 1 {
		t.Fatalf("expected only breakfast, got %v", got.Meals)
	}
	if got.Meals[MealBreakfast] != want {
		t.Errorf("breakfast = %+v, want %+v", got.Meals[MealBreakfast], want)
	}
	if got.Total != want {
		t.Errorf("total = %+v, want %+v", got.Total, want)
	}
	if got.EntryCount != 1 {
		t.Errorf("expected entry count 1, got %d", got.EntryCount)
	}
}

func TestAggregateMissingFoodDropsMeal(t *testing.T) {
	lookup := &countingLookup{foods: map[int64]storage.Food{1: testFood(1)}}
	entries := []storage.Entry{
		{MealType: "breakfast", FoodID: 1, QuantityG: 100},
		{MealType: "lunch", FoodID: 99, QuantityG: 100},
	}

	got, err := Aggregate(context.Background(), "2024-05-01", entries, lookup)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := got.Meals[MealLunch]; ok {
		t.Error("lunch with only an unresolved food must be absent")
	}
	if got.Total.CaloriesKcal != 200 {
		t.Errorf("expected total 200 kcal, got %v", got.Total.CaloriesKcal)
	}
}

func TestAggregateMissingFoodAlongsideResolvedOne(t *testing.T) {
	lookup := &countingLookup{foods: map[int64]storage.Food{1: testFood(1)}}
	entries := []storage.Entry{
		{MealType: "dinner", FoodID: 1, QuantityG: 50},
		{MealType: "dinner", FoodID: 42, QuantityG: 300},
	}

	got, _ := Aggregate(context.Background(), "2024-05-01", entries, lookup)
	dinner, ok := got.Meals[MealDinner]
	if !ok {
		t.Fatal("expected dinner present")
	}
	if dinner.CaloriesKcal != 100 {
		t.Errorf("expected unresolved entry to contribute 0, got %v kcal", dinner.CaloriesKcal)
	}
}

func TestAggregateSingleBatchCall(t *testing.T) {
	lookup := &countingLookup{foods: map[int64]storage.Food{1: testFood(1), 2: testFood(2), 3: testFood(3)}}
	entries := []storage.Entry{
		{MealType: "breakfast", FoodID: 3, QuantityG: 100},
		{MealType: "lunch", FoodID: 1, QuantityG: 100},
		{MealType: "lunch", FoodID: 3, QuantityG: 100},
		{MealType: "snack", FoodID: 2, QuantityG: 100},
		{MealType: "dinner", FoodID: 1, QuantityG: 100},
	}

	if _, err := Aggregate(context.Background(), "2024-05-01", entries, lookup); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if lookup.calls != 1 {
		t.Fatalf("expected exactly one batch lookup, got %d", lookup.calls)
	}
	if ids := lookup.ids[0]; len(ids) != 3 || ids[0] != 1 || ids[1] != 2 || ids[2] != 3 {
		t.Errorf("expected distinct sorted ids [1 2 3], got %v", ids)
	}
}

func TestAggregateEmptyDay(t *testing.T) {
	lookup := &countingLookup{}

	got, err := Aggregate(context.Background(), "2024-05-01", nil, lookup)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Meals) != 0 {
		t.Errorf("expected no meals, got %v", got.Meals)
	}
	if got.Total != (MealSummary{}) {
		t.Errorf("expected all-zero total, got %+v", got.Total)
	}
	if lookup.calls != 0 {
		t.Errorf("expected no lookup for an empty day, got %d calls", lookup.calls)
	}
}

func TestAggregateDropsUnknownMeal(t *testing.T) {
	lookup := &countingLookup{foods: map[int64]storage.Food{1: testFood(1)}}
	entries := []storage.Entry{
		{MealType: "brunch", FoodID: 1, QuantityG: 100},
		{MealType: "Snack", FoodID: 1, QuantityG: 100},
	}

	got, _ := Aggregate(context.Background(), "2024-05-01", entries, lookup)
	if len(got.Meals) != 1 {
		t.Fatalf("expected only snack, got %v", got.Meals)
	}
	if got.EntryCount != 1 {
		t.Errorf("expected the unknown meal excluded from count, got %d", got.EntryCount)
	}
	if got.Total.CaloriesKcal != 200 {
		t.Errorf("expected 200 kcal, got %v", got.Total.CaloriesKcal)
	}
}

func TestAggregateNilNutrientsCountAsZero(t *testing.T) {
	sparse := storage.Food{ID: 7, CaloriesKcal: ptr(50)}
	lookup := &countingLookup{foods: map[int64]storage.Food{7: sparse}}
	entries := []storage.Entry{{MealType: "lunch", FoodID: 7, QuantityG: 200}}

	got, err := Aggregate(context.Background(), "2024-05-01", entries, lookup)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := MealSummary{CaloriesKcal: 100}
	if got.Meals[MealLunch] != want {
		t.Errorf("lunch = %+v, want %+v", got.Meals[MealLunch], want)
	}
}

func TestAggregateLookupError(t *testing.T) {
	boom := errors.New("db down")
	lookup := &countingLookup{err: boom}
	entries := []storage.Entry{{MealType: "lunch", FoodID: 1, QuantityG: 100}}

	_, err := Aggregate(context.Background(), "2024-05-01", entries, lookup)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped lookup error, got %v", err)
	}
}

func TestAggregateTotalEqualsSumOfMeals(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	foods := make(map[int64]storage.Food)
	for id := int64(1); id <= 20; id++ {
		foods[id] = storage.Food{
			ID:           id,
			CaloriesKcal: ptr(rng.Float64() * 900),
			ProteinG:     ptr(rng.Float64() * 40),
			FatG:         ptr(rng.Float64() * 60),
			CarbsG:       ptr(rng.Float64() * 80),
			FiberG:       ptr(rng.Float64() * 15),
			SodiumMg:     ptr(rng.Float64() * 2000),
		}
	}
	meals := []string{"breakfast", "lunch", "dinner", "snack", "supper"}

	for round := 0; round < 50; round++ {
		n := rng.Intn(30)
		entries := make([]storage.Entry, 0, n)
		for i := 0; i < n; i++ {
			entries = append(entries, storage.Entry{
				MealType:  meals[rng.Intn(len(meals))],
				FoodID:    int64(rng.Intn(25) + 1),
				QuantityG: rng.Float64() * 500,
			})
		}

		got, err := Aggregate(context.Background(), "2024-05-01", entries, &countingLookup{foods: foods})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var sum MealSummary
		for _, m := range MealOrder {
			if meal, ok := got.Meals[m]; ok {
				sum.add(meal)
			}
		}
		if sum != got.Total {
			t.Fatalf("round %d: total %+v != sum of meals %+v", round, got.Total, sum)
		}
	}
}

func TestParseMealType(t *testing.T) {
	for _, in := range []string{"breakfast", " Lunch ", "DINNER", "snack"} {
		if _, ok := ParseMealType(in); !ok {
			t.Errorf("expected %q to parse", in)
		}
	}
	if _, ok := ParseMealType("elevenses"); ok {
		t.Error("expected unknown meal to be rejected")
	}
}
