package nutrition

// TargetsResponse is returned by GET /v1/nutrition/targets.
type TargetsResponse struct {
	Targets  Targets       `json:"targets"`
	Inputs   TargetsInputs `json:"inputs"`
	Computed bool          `json:"computed"`
}

// TargetsInputs echoes the canonical values the calculator used.
type TargetsInputs struct {
	Gender        string   `json:"gender"`
	Age           int      `json:"age"`
	HeightCm      float64  `json:"height_cm"`
	WeightKg      float64  `json:"weight_kg"`
	BodyFatPct    *float64 `json:"body_fat_pct,omitempty"`
	ActivityLevel string   `json:"activity_level"`
	Goal          string   `json:"goal"`
}

type BMIResponse struct {
	BMIResult
	HeightCm float64 `json:"height_cm"`
	WeightKg float64 `json:"weight_kg"`
}

// ErrorResponse - формат ошибки
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
