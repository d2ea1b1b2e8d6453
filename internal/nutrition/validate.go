package nutrition

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput wraps every TargetInput validation failure.
var ErrInvalidInput = errors.New("invalid nutrition input")

const (
	MinAge = 1
	MaxAge = 120
)

// ValidateInput checks the biometric ranges ComputeTargets relies on.
// Profiles and the preview endpoint share it.
func ValidateInput(in TargetInput) error {
	if in.Age < MinAge || in.Age > MaxAge {
		return invalidInput(fmt.Sprintf("age must be between %d and %d", MinAge, MaxAge))
	}
	if !inRange(in.HeightCm, MinHeightCm, MaxHeightCm) {
		return invalidInput(fmt.Sprintf("height_cm must be between %d and %d", MinHeightCm, MaxHeightCm))
	}
	if !inRange(in.WeightKg, MinWeightKg, MaxWeightKg) {
		return invalidInput(fmt.Sprintf("weight_kg must be between %d and %d", MinWeightKg, MaxWeightKg))
	}
	if in.BodyFatPct != nil {
		bf := *in.BodyFatPct
		if !isFinite(bf) || bf <= 0 || bf >= 100 {
			return invalidInput("body_fat_pct must be greater than 0 and less than 100")
		}
	}
	return nil
}

// inRange is false for NaN and ±Inf.
func inRange(v, min, max float64) bool {
	return isFinite(v) && v >= min && v <= max
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func invalidInput(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}
