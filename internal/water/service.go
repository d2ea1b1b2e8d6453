package water

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/fdg312/food-tracker/internal/storage"
	"github.com/fdg312/food-tracker/internal/userctx"
)

const (
	GlassMl       = 250
	DailyTargetMl = 2000
)

var (
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrInvalidDate        = errors.New("invalid date")
	ErrDailyLimitExceeded = errors.New("daily water limit exceeded")
)

type Service struct {
	storage     storage.WaterStorage
	maxMlPerDay int
}

func NewService(st storage.WaterStorage, maxMlPerDay int) *Service {
	return &Service{storage: st, maxMlPerDay: maxMlPerDay}
}

// AddWater adds glasses or millilitres to the day and returns the new daily state.
func (s *Service) AddWater(ctx context.Context, req AddWaterRequest) (*WaterDailyResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	amount := GlassMl
	switch {
	case req.AmountMl != nil:
		amount = *req.AmountMl
	case req.Glasses != nil:
		glasses := *req.Glasses
		if glasses <= 0 {
			return nil, ErrInvalidAmount
		}
		limit := s.maxMlPerDay
		if limit <= 0 {
			limit = math.MaxInt
		}
		if glasses > limit/GlassMl {
			return nil, ErrDailyLimitExceeded
		}
		amount = glasses * GlassMl
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	total, err := s.storage.AddWater(ctx, userctx.OwnerID(ctx), date, amount, s.maxMlPerDay)
	if err != nil {
		if errors.Is(err, storage.ErrLimitExceeded) {
			return nil, ErrDailyLimitExceeded
		}
		return nil, fmt.Errorf("failed to add water: %w", err)
	}
	return daily(date, total), nil
}

func (s *Service) GetDaily(ctx context.Context, date string) (*WaterDailyResponse, error) {
	date, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	total, err := s.storage.GetWaterDaily(ctx, userctx.OwnerID(ctx), date)
	if err != nil {
		return nil, fmt.Errorf("failed to get water total: %w", err)
	}
	return daily(date, total), nil
}

func (s *Service) Reset(ctx context.Context, date string) (*WaterDailyResponse, error) {
	date, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	if err := s.storage.ResetWater(ctx, userctx.OwnerID(ctx), date); err != nil {
		return nil, fmt.Errorf("failed to reset water: %w", err)
	}
	return daily(date, 0), nil
}

func daily(date string, totalMl int) *WaterDailyResponse {
	remaining := DailyTargetMl - totalMl
	if remaining < 0 {
		remaining = 0
	}
	return &WaterDailyResponse{
		Date:          date,
		TotalMl:       totalMl,
		Glasses:       totalMl / GlassMl,
		TargetMl:      DailyTargetMl,
		TargetGlasses: DailyTargetMl / GlassMl,
		RemainingMl:   remaining,
	}
}

func parseDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Now().UTC().Format("2006-01-02"), nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return "", ErrInvalidDate
	}
	return t.Format("2006-01-02"), nil
}
