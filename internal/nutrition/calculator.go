package nutrition

import (
	"math"
	"strings"
)

type Gender int

const (
	GenderOther Gender = iota
	GenderMale
)

// ParseGender: only "male"/"m" is male, any other value uses the non-male formula.
func ParseGender(s string) Gender {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return GenderMale
	default:
		return GenderOther
	}
}

type ActivityLevel int

const (
	ActivityNone ActivityLevel = iota
	ActivityTwiceWeekly
	ActivityRegular
	ActivityProperWorkout
)

// ParseActivityLevel maps a free string to a level. ok is false for unknown
// values, which fall back to ActivityNone.
func ParseActivityLevel(s string) (ActivityLevel, bool) {
	switch normalizeKey(s) {
	case "none", "sedentary":
		return ActivityNone, true
	case "twice_weekly", "twice_week":
		return ActivityTwiceWeekly, true
	case "regular":
		return ActivityRegular, true
	case "proper_workout":
		return ActivityProperWorkout, true
	default:
		return ActivityNone, false
	}
}

func (a ActivityLevel) Multiplier() float64 {
	switch a {
	case ActivityTwiceWeekly:
		return 1.375
	case ActivityRegular:
		return 1.55
	case ActivityProperWorkout:
		return 1.725
	default:
		return 1.20
	}
}

func (a ActivityLevel) String() string {
	switch a {
	case ActivityTwiceWeekly:
		return "twice-weekly"
	case ActivityRegular:
		return "regular"
	case ActivityProperWorkout:
		return "proper-workout"
	default:
		return "none"
	}
}

type Goal int

const (
	GoalMaintain Goal = iota
	GoalWeightLoss
	GoalGain
	GoalMuscle
)

// ParseGoal maps a free string to a goal. Unknown values give GoalMaintain
// with ok=false.
func ParseGoal(s string) (Goal, bool) {
	switch normalizeKey(s) {
	case "weight_loss", "weightloss":
		return GoalWeightLoss, true
	case "gain":
		return GoalGain, true
	case "muscle":
		return GoalMuscle, true
	case "maintain":
		return GoalMaintain, true
	default:
		return GoalMaintain, false
	}
}

func (g Goal) energyFactor() float64 {
	switch g {
	case GoalWeightLoss:
		return 0.85
	case GoalGain:
		return 1.10
	case GoalMuscle:
		return 1.15
	default:
		return 1.0
	}
}

// proteinPerKg is the goal-specific protein rate in g per kg of body weight.
func (g Goal) proteinPerKg() float64 {
	switch g {
	case GoalMuscle:
		return 2.2
	case GoalWeightLoss:
		return 2.0
	default:
		return 1.8
	}
}

func (g Goal) String() string {
	switch g {
	case GoalWeightLoss:
		return "weight-loss"
	case GoalGain:
		return "gain"
	case GoalMuscle:
		return "muscle"
	default:
		return "maintain"
	}
}

const (
	SodiumTargetMg = 2300

	minCaloriesMale  = 1500
	minCaloriesOther = 1200

	kcalPerGProtein = 4
	kcalPerGCarbs   = 4
	kcalPerGFat     = 9
)

// TargetInput holds biometrics already parsed at the boundary.
type TargetInput struct {
	Gender     Gender
	Age        int
	HeightCm   float64
	WeightKg   float64
	Activity   ActivityLevel
	Goal       Goal
	BodyFatPct *float64
}

// Targets are daily intake targets. Values are truncated, never rounded.
type Targets struct {
	Calories int `json:"calories_kcal"`
	ProteinG int `json:"protein_g"`
	FatG     int `json:"fat_g"`
	CarbsG   int `json:"carbs_g"`
	FiberG   int `json:"fiber_g"`
	SodiumMg int `json:"sodium_mg"`
}

// ComputeTargets derives daily targets from biometrics. It is pure and never fails.
func ComputeTargets(in TargetInput) Targets {
	var bmr float64
	switch {
	case in.BodyFatPct != nil:
		leanMass := in.WeightKg * (1 - *in.BodyFatPct/100)
		bmr = 370 + 21.6*leanMass
	case in.Gender == GenderMale:
		bmr = 10*in.WeightKg + 6.25*in.HeightCm - 5*float64(in.Age) + 5
	default:
		bmr = 10*in.WeightKg + 6.25*in.HeightCm - 5*float64(in.Age) - 161
	}

	calories := bmr * in.Activity.Multiplier() * in.Goal.energyFactor()

	minCalories := float64(minCaloriesOther)
	if in.Gender == GenderMale {
		minCalories = minCaloriesMale
	}
	if calories < minCalories {
		calories = minCalories
	}

	protein := math.Max(1.2*in.WeightKg, in.Goal.proteinPerKg()*in.WeightKg)
	fat := math.Max(0.6*in.WeightKg, 0.30*calories/kcalPerGFat)

	// Protein and fat floors may exceed a low energy budget; carbs then bottom out at zero.
	carbs := (calories - protein*kcalPerGProtein - fat*kcalPerGFat) / kcalPerGCarbs
	if carbs < 0 {
		carbs = 0
	}

	fiber := math.Floor(calories / 1000 * 14)

	return Targets{
		Calories: int(calories),
		ProteinG: int(protein),
		FatG:     int(fat),
		CarbsG:   int(carbs),
		FiberG:   int(fiber),
		SodiumMg: SodiumTargetMg,
	}
}

// normalizeKey lowercases and maps '-' and ' ' to '_' so "Weight-Loss" and
// "weight_loss" compare equal.
func normalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "_", " ", "_").Replace(s)
}
