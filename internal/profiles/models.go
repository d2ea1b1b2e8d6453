package profiles

import "time"

// ProfileDTO - тело ответа GET/PUT /v1/profile
type ProfileDTO struct {
	OwnerUserID    string    `json:"owner_user_id"`
	Gender         string    `json:"gender"`
	Age            int       `json:"age"`
	HeightCm       float64   `json:"height_cm"`
	WeightKg       float64   `json:"weight_kg"`
	BodyFatPct     *float64  `json:"body_fat_pct,omitempty"`
	Goal           string    `json:"goal"`
	ActivityLevel  string    `json:"activity_level"`
	TargetWeightKg *float64  `json:"target_weight_kg,omitempty"`
	MedicalHistory *string   `json:"medical_history,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UpsertProfileRequest - запрос PUT /v1/profile (полная замена)
type UpsertProfileRequest struct {
	Gender         string   `json:"gender"`
	Age            int      `json:"age"`
	HeightCm       float64  `json:"height_cm"`
	WeightKg       float64  `json:"weight_kg"`
	BodyFatPct     *float64 `json:"body_fat_pct,omitempty"`
	Goal           string   `json:"goal"`
	ActivityLevel  string   `json:"activity_level"`
	TargetWeightKg *float64 `json:"target_weight_kg,omitempty"`
	MedicalHistory *string  `json:"medical_history,omitempty"`
}

// ErrorResponse - формат ошибки
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail - детали ошибки
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
