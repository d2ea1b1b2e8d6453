package nutrition

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fdg312/food-tracker/internal/storage"
)

var ErrProfileNotFound = errors.New("profile not found")

// Service computes targets and BMI from stored body profiles.
type Service struct {
	profiles storage.BodyProfilesStorage
}

func NewService(profiles storage.BodyProfilesStorage) *Service {
	return &Service{profiles: profiles}
}

// InputFromProfile parses a stored profile into calculator input.
func InputFromProfile(p storage.BodyProfile) TargetInput {
	activity, _ := ParseActivityLevel(p.ActivityLevel)
	goal, _ := ParseGoal(p.Goal)
	return TargetInput{
		Gender:     ParseGender(p.Gender),
		Age:        p.Age,
		HeightCm:   p.HeightCm,
		WeightKg:   p.WeightKg,
		Activity:   activity,
		Goal:       goal,
		BodyFatPct: p.BodyFatPct,
	}
}

// TargetsForUser recomputes targets from the owner's profile on every call.
func (s *Service) TargetsForUser(ctx context.Context, ownerUserID string) (Targets, error) {
	resp, err := s.GetTargets(ctx, ownerUserID)
	if err != nil {
		return Targets{}, err
	}
	return resp.Targets, nil
}

func (s *Service) GetTargets(ctx context.Context, ownerUserID string) (*TargetsResponse, error) {
	profile, err := s.loadProfile(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}

	in := InputFromProfile(*profile)
	return &TargetsResponse{
		Targets:  ComputeTargets(in),
		Inputs:   inputsDTO(profile.Gender, in),
		Computed: true,
	}, nil
}

// GetBMI uses the stored profile; non-nil overrides replace its height or weight.
func (s *Service) GetBMI(ctx context.Context, ownerUserID string, heightCm, weightKg *float64) (*BMIResponse, error) {
	var h, w float64
	if heightCm == nil || weightKg == nil {
		profile, err := s.loadProfile(ctx, ownerUserID)
		if err != nil {
			return nil, err
		}
		h, w = profile.HeightCm, profile.WeightKg
	}
	if heightCm != nil {
		h = *heightCm
	}
	if weightKg != nil {
		w = *weightKg
	}

	res, err := CalculateBMI(h, w)
	if err != nil {
		return nil, err
	}
	return &BMIResponse{BMIResult: res, HeightCm: h, WeightKg: w}, nil
}

func (s *Service) loadProfile(ctx context.Context, ownerUserID string) (*storage.BodyProfile, error) {
	profile, err := s.profiles.GetBodyProfile(ctx, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get body profile: %w", err)
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

func inputsDTO(gender string, in TargetInput) TargetsInputs {
	return TargetsInputs{
		Gender:        strings.ToLower(strings.TrimSpace(gender)),
		Age:           in.Age,
		HeightCm:      in.HeightCm,
		WeightKg:      in.WeightKg,
		BodyFatPct:    in.BodyFatPct,
		ActivityLevel: in.Activity.String(),
		Goal:          in.Goal.String(),
	}
}
