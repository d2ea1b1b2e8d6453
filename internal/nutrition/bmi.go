package nutrition

import (
	"errors"
	"math"
)

var (
	ErrBMINonPositive = errors.New("height and weight must be positive")
	ErrBMIOutOfRange  = errors.New("height/weight out of plausible range")
)

const (
	MinHeightCm = 50
	MaxHeightCm = 250
	MinWeightKg = 10
	MaxWeightKg = 400
)

type BMIResult struct {
	BMI      float64 `json:"bmi"`
	Category string  `json:"category"`
}

// CalculateBMI expects height in centimeters and weight in kilograms.
func CalculateBMI(heightCm, weightKg float64) (BMIResult, error) {
	if heightCm <= 0 || weightKg <= 0 {
		return BMIResult{}, ErrBMINonPositive
	}
	if !inRange(heightCm, MinHeightCm, MaxHeightCm) || !inRange(weightKg, MinWeightKg, MaxWeightKg) {
		return BMIResult{}, ErrBMIOutOfRange
	}

	h := heightCm / 100.0
	bmi := weightKg / (h * h)

	return BMIResult{
		BMI:      math.Round(bmi*10) / 10,
		Category: BMICategory(bmi),
	}, nil
}

func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "underweight"
	case bmi < 25.0:
		return "normal"
	case bmi < 30.0:
		return "overweight"
	default:
		return "obese"
	}
}
