package diary

import (
	"time"

	"github.com/fdg312/food-tracker/internal/nutrition"
	"github.com/google/uuid"
)

// EntryDTO - запись дневника в ответах API
type EntryDTO struct {
	ID        uuid.UUID `json:"id"`
	Date      string    `json:"date"`
	MealType  string    `json:"meal_type"`
	FoodID    int64     `json:"food_id"`
	QuantityG float64   `json:"quantity_g"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EntryRequest - тело POST /v1/entries и PUT /v1/entries/{id}.
// QuantityG nil means "not specified" and takes the configured default.
type EntryRequest struct {
	Date      string   `json:"date"`
	MealType  string   `json:"meal_type"`
	FoodID    int64    `json:"food_id"`
	QuantityG *float64 `json:"quantity_g"`
}

type EntriesResponse struct {
	Date    string     `json:"date"`
	Entries []EntryDTO `json:"entries"`
}

// SummaryResponse compares what was eaten with the profile targets.
type SummaryResponse struct {
	Date       string             `json:"date"`
	Consumed   MealSummary        `json:"consumed"`
	Target     *nutrition.Targets `json:"target"`
	Remaining  *MealSummary       `json:"remaining"`
	HasTargets bool               `json:"has_targets"`
}

// ErrorResponse - формат ошибки
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
