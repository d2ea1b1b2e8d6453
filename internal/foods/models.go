package foods

import "github.com/fdg312/food-tracker/internal/storage"

// FoodDTO - продукт каталога; нутриенты на 100 г, null означает "неизвестно"
type FoodDTO struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	CaloriesKcal *float64 `json:"calories_kcal"`
	ProteinG     *float64 `json:"protein_g"`
	FatG         *float64 `json:"fat_g"`
	CarbsG       *float64 `json:"carbs_g"`
	FiberG       *float64 `json:"fiber_g"`
	SugarG       *float64 `json:"sugar_g"`
	SodiumMg     *float64 `json:"sodium_mg"`
	CalciumMg    *float64 `json:"calcium_mg"`
	IronMg       *float64 `json:"iron_mg"`
	VitaminCMg   *float64 `json:"vitamin_c_mg"`
	VitaminB11Mg *float64 `json:"vitamin_b11_mg"`
}

type SearchResponse struct {
	Query string    `json:"query"`
	Mode  string    `json:"mode"`
	Foods []FoodDTO `json:"foods"`
}

// ErrorResponse - формат ошибки
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func toDTO(f storage.Food) FoodDTO {
	return FoodDTO{
		ID:           f.ID,
		Name:         f.Name,
		CaloriesKcal: f.CaloriesKcal,
		ProteinG:     f.ProteinG,
		FatG:         f.FatG,
		CarbsG:       f.CarbsG,
		FiberG:       f.FiberG,
		SugarG:       f.SugarG,
		SodiumMg:     f.SodiumMg,
		CalciumMg:    f.CalciumMg,
		IronMg:       f.IronMg,
		VitaminCMg:   f.VitaminCMg,
		VitaminB11Mg: f.VitaminB11Mg,
	}
}
