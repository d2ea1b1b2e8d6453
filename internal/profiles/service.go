package profiles

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fdg312/food-tracker/internal/nutrition"
	"github.com/fdg312/food-tracker/internal/storage"
	"github.com/fdg312/food-tracker/internal/userctx"
)

var (
	ErrNotFound       = errors.New("profile not found")
	ErrInvalidProfile = errors.New("invalid profile")
)

// Service содержит бизнес-логику профиля тела
type Service struct {
	profiles storage.BodyProfilesStorage
}

// NewService создаёт новый сервис
func NewService(profiles storage.BodyProfilesStorage) *Service {
	return &Service{profiles: profiles}
}

// GetProfile возвращает профиль текущего пользователя
func (s *Service) GetProfile(ctx context.Context) (*ProfileDTO, error) {
	profile, err := s.profiles.GetBodyProfile(ctx, userctx.OwnerID(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to get body profile: %w", err)
	}
	if profile == nil {
		return nil, ErrNotFound
	}

	dto := toDTO(*profile)
	return &dto, nil
}

// UpsertProfile валидирует и целиком заменяет профиль
func (s *Service) UpsertProfile(ctx context.Context, req UpsertProfileRequest) (*ProfileDTO, error) {
	upsert, err := validate(req)
	if err != nil {
		return nil, err
	}

	profile, err := s.profiles.UpsertBodyProfile(ctx, userctx.OwnerID(ctx), upsert)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert body profile: %w", err)
	}

	dto := toDTO(*profile)
	return &dto, nil
}

// validate checks ranges and stores canonical enum names so the calculator
// never sees an alias it would have to guess about.
func validate(req UpsertProfileRequest) (storage.BodyProfileUpsert, error) {
	gender := strings.ToLower(strings.TrimSpace(req.Gender))
	if gender == "" {
		return storage.BodyProfileUpsert{}, invalid("gender is required")
	}
	biometrics := nutrition.TargetInput{
		Age:        req.Age,
		HeightCm:   req.HeightCm,
		WeightKg:   req.WeightKg,
		BodyFatPct: req.BodyFatPct,
	}
	if err := nutrition.ValidateInput(biometrics); err != nil {
		return storage.BodyProfileUpsert{}, invalid(strings.TrimPrefix(err.Error(), nutrition.ErrInvalidInput.Error()+": "))
	}
	if req.TargetWeightKg != nil && !(*req.TargetWeightKg >= nutrition.MinWeightKg && *req.TargetWeightKg <= nutrition.MaxWeightKg) {
		return storage.BodyProfileUpsert{}, invalid("target_weight_kg is out of range")
	}

	goal, ok := nutrition.ParseGoal(req.Goal)
	if !ok {
		return storage.BodyProfileUpsert{}, invalid("goal must be one of weight-loss, gain, muscle, maintain")
	}
	activity, ok := nutrition.ParseActivityLevel(req.ActivityLevel)
	if !ok {
		return storage.BodyProfileUpsert{}, invalid("activity_level must be one of none, twice-weekly, regular, proper-workout")
	}

	var medical *string
	if req.MedicalHistory != nil {
		if v := strings.TrimSpace(*req.MedicalHistory); v != "" {
			medical = &v
		}
	}

	return storage.BodyProfileUpsert{
		Gender:         gender,
		Age:            req.Age,
		HeightCm:       req.HeightCm,
		WeightKg:       req.WeightKg,
		BodyFatPct:     req.BodyFatPct,
		Goal:           goal.String(),
		ActivityLevel:  activity.String(),
		TargetWeightKg: req.TargetWeightKg,
		MedicalHistory: medical,
	}, nil
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidProfile, msg)
}

// toDTO конвертирует storage.BodyProfile в ProfileDTO
func toDTO(p storage.BodyProfile) ProfileDTO {
	return ProfileDTO{
		OwnerUserID:    p.OwnerUserID,
		Gender:         p.Gender,
		Age:            p.Age,
		HeightCm:       p.HeightCm,
		WeightKg:       p.WeightKg,
		BodyFatPct:     p.BodyFatPct,
		Goal:           p.Goal,
		ActivityLevel:  p.ActivityLevel,
		TargetWeightKg: p.TargetWeightKg,
		MedicalHistory: p.MedicalHistory,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
