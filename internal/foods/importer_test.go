package foods

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fdg312/food-tracker/internal/storage/memory"
)

const sampleCSV = `food,food_normalized,Calories (kcal per 100g),Protein (g per 100g),Fat (g per 100g),Carbohydrates (g per 100g),Dietary Fiber (g per 100g),Sodium (mg per 100g)
Brown Rice,brown rice,111,2.6,0.9,23,1.8,5
Mystery Stew,,na,,abc,10,NA,
,,,,,,,
White Rice,,130,2.7,0.3,28,0.4,1
`

func TestImportCSV(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	stats, err := ImportCSV(ctx, strings.NewReader(sampleCSV), store.Catalog(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Rows != 4 || stats.Inserted != 3 || stats.Skipped != 1 || stats.Updated != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	stew, _ := store.Catalog().SearchSubstring(ctx, "mystery", 50)
	if len(stew) != 1 {
		t.Fatalf("expected stew imported, got %d", len(stew))
	}
	s := stew[0]
	if s.NameNormalized != "mystery stew" {
		t.Errorf("expected normalized name from food column, got %q", s.NameNormalized)
	}
	if s.CaloriesKcal != nil || s.ProteinG != nil || s.FatG != nil || s.FiberG != nil || s.SodiumMg != nil {
		t.Errorf("expected na/empty/unparsable cells to be null, got %+v", s)
	}
	if s.CarbsG == nil || *s.CarbsG != 10 {
		t.Errorf("expected carbs 10, got %v", s.CarbsG)
	}
	if s.CalciumMg != nil {
		t.Error("expected missing column to be null")
	}

	// re-import updates by normalized name
	stats, err = ImportCSV(ctx, strings.NewReader(sampleCSV), store.Catalog(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Inserted != 0 || stats.Updated != 3 {
		t.Fatalf("expected only updates on re-import, got %+v", stats)
	}
	n, _ := store.Catalog().CountFoods(ctx)
	if n != 3 {
		t.Fatalf("expected 3 foods, got %d", n)
	}
}

func TestImportCSVNonFiniteCellsAreNull(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	csvData := "food,Calories (kcal per 100g),Protein (g per 100g),Fat (g per 100g)\nRice,nan,2.5,Infinity\n"
	stats, err := ImportCSV(ctx, strings.NewReader(csvData), store.Catalog(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Inserted != 1 {
		t.Fatalf("expected 1 insert, got %+v", stats)
	}

	f, _ := store.Catalog().GetFood(ctx, 1)
	if f == nil {
		t.Fatal("expected Rice to be imported")
	}
	if f.CaloriesKcal != nil || f.FatG != nil {
		t.Errorf("expected non-finite cells to be null, got calories=%v fat=%v", f.CaloriesKcal, f.FatG)
	}
	if f.ProteinG == nil || *f.ProteinG != 2.5 {
		t.Errorf("expected protein 2.5, got %v", f.ProteinG)
	}
}

func TestImportCSVRequiresFoodColumn(t *testing.T) {
	store := memory.New()

	_, err := ImportCSV(context.Background(), strings.NewReader("name,calories\nx,1\n"), store.Catalog(), 10)
	if !errors.Is(err, ErrMissingNameColumn) {
		t.Fatalf("expected ErrMissingNameColumn, got %v", err)
	}
}

func TestParseNutrient(t *testing.T) {
	tests := []struct {
		in   string
		want *float64
	}{
		{"", nil},
		{"na", nil},
		{" NA ", nil},
		{"abc", nil},
		{"12.5", ptr(12.5)},
		{"0", ptr(0)},
		{"nan", nil},
		{"NaN", nil},
		{"inf", nil},
		{"-Infinity", nil},
		{"1e400", nil},
	}
	for _, tt := range tests {
		got := parseNutrient(tt.in)
		if (got == nil) != (tt.want == nil) {
			t.Errorf("parseNutrient(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		if got != nil && *got != *tt.want {
			t.Errorf("parseNutrient(%q) = %v, want %v", tt.in, *got, *tt.want)
		}
	}
}

func ptr(v float64) *float64 { return &v }
