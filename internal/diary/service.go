package diary

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fdg312/food-tracker/internal/nutrition"
	"github.com/fdg312/food-tracker/internal/storage"
	"github.com/fdg312/food-tracker/internal/userctx"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidMealType = errors.New("invalid meal type")
	ErrInvalidQuantity = errors.New("quantity must be non-negative")
	ErrInvalidFoodID   = errors.New("food_id is required")
	ErrFoodNotFound    = errors.New("food not found")
	ErrEntryNotFound   = errors.New("entry not found")
	ErrInvalidRange    = errors.New("invalid date range")
)

// TargetsProvider recomputes daily targets for a user.
type TargetsProvider interface {
	TargetsForUser(ctx context.Context, ownerUserID string) (nutrition.Targets, error)
}

// Service управляет дневником питания и дневными сводками
type Service struct {
	entries         storage.EntriesStorage
	catalog         storage.CatalogStorage
	targets         TargetsProvider
	defaultQuantity float64
}

func NewService(entries storage.EntriesStorage, catalog storage.CatalogStorage, targets TargetsProvider, defaultQuantityG float64) *Service {
	return &Service{
		entries:         entries,
		catalog:         catalog,
		targets:         targets,
		defaultQuantity: defaultQuantityG,
	}
}

// CreateEntry валидирует и сохраняет новую запись
func (s *Service) CreateEntry(ctx context.Context, req EntryRequest) (*EntryDTO, error) {
	entry, err := s.buildEntry(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.entries.CreateEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}

	dto := toDTO(*entry)
	return &dto, nil
}

// ReplaceEntry полностью заменяет запись по id
func (s *Service) ReplaceEntry(ctx context.Context, id uuid.UUID, req EntryRequest) (*EntryDTO, error) {
	entry, err := s.buildEntry(ctx, req)
	if err != nil {
		return nil, err
	}
	entry.ID = id

	if err := s.entries.ReplaceEntry(ctx, entry); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to replace entry: %w", err)
	}

	dto := toDTO(*entry)
	return &dto, nil
}

func (s *Service) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	if err := s.entries.DeleteEntry(ctx, userctx.OwnerID(ctx), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrEntryNotFound
		}
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return nil
}

func (s *Service) ListEntries(ctx context.Context, date string) (*EntriesResponse, error) {
	date, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	entries, err := s.entries.ListEntriesByDate(ctx, userctx.OwnerID(ctx), date)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	dtos := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, toDTO(e))
	}
	return &EntriesResponse{Date: date, Entries: dtos}, nil
}

// GetDay aggregates the current user's entries for one date.
func (s *Service) GetDay(ctx context.Context, date string) (*DaySummary, error) {
	date, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	entries, err := s.entries.ListEntriesByDate(ctx, userctx.OwnerID(ctx), date)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	summary, err := Aggregate(ctx, date, entries, s.catalog)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// GetSummary returns consumed vs target; targets are null when the user has no profile.
func (s *Service) GetSummary(ctx context.Context, date string) (*SummaryResponse, error) {
	day, err := s.GetDay(ctx, date)
	if err != nil {
		return nil, err
	}

	resp := &SummaryResponse{Date: day.Date, Consumed: day.Total}

	targets, err := s.targets.TargetsForUser(ctx, userctx.OwnerID(ctx))
	if err != nil {
		if errors.Is(err, nutrition.ErrProfileNotFound) {
			return resp, nil
		}
		return nil, fmt.Errorf("failed to compute targets: %w", err)
	}

	remaining := MealSummary{
		CaloriesKcal: float64(targets.Calories) - day.Total.CaloriesKcal,
		ProteinG:     float64(targets.ProteinG) - day.Total.ProteinG,
		FatG:         float64(targets.FatG) - day.Total.FatG,
		CarbsG:       float64(targets.CarbsG) - day.Total.CarbsG,
		FiberG:       float64(targets.FiberG) - day.Total.FiberG,
		SodiumMg:     float64(targets.SodiumMg) - day.Total.SodiumMg,
	}
	resp.Target = &targets
	resp.Remaining = &remaining
	resp.HasTargets = true
	return resp, nil
}

// DaySummaries aggregates every day in [from, to] that has entries, oldest first.
// Foods for the whole range are fetched in one batch.
func (s *Service) DaySummaries(ctx context.Context, ownerUserID, from, to string) ([]DaySummary, error) {
	from, err := parseDate(from)
	if err != nil {
		return nil, err
	}
	to, err = parseDate(to)
	if err != nil {
		return nil, err
	}
	if to < from {
		return nil, ErrInvalidRange
	}

	entries, err := s.entries.ListEntriesRange(ctx, ownerUserID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	byDate := make(map[string][]storage.Entry)
	idSet := make(map[int64]struct{})
	for _, e := range entries {
		byDate[e.Date] = append(byDate[e.Date], e)
		idSet[e.FoodID] = struct{}{}
	}
	if len(byDate) == 0 {
		return []DaySummary{}, nil
	}

	ids := make([]int64, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	foods, err := s.catalog.GetFoods(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve foods for %s..%s: %w", from, to, err)
	}
	snap := snapshot(foods)

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	out := make([]DaySummary, 0, len(dates))
	for _, d := range dates {
		day, err := Aggregate(ctx, d, byDate[d], snap)
		if err != nil {
			return nil, err
		}
		out = append(out, day)
	}
	return out, nil
}

func (s *Service) buildEntry(ctx context.Context, req EntryRequest) (*storage.Entry, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	meal, ok := ParseMealType(req.MealType)
	if !ok {
		return nil, ErrInvalidMealType
	}

	if req.FoodID <= 0 {
		return nil, ErrInvalidFoodID
	}

	qty := s.defaultQuantity
	if req.QuantityG != nil {
		qty = *req.QuantityG
	}
	if qty < 0 {
		return nil, ErrInvalidQuantity
	}

	food, err := s.catalog.GetFood(ctx, req.FoodID)
	if err != nil {
		return nil, fmt.Errorf("failed to get food: %w", err)
	}
	if food == nil {
		return nil, ErrFoodNotFound
	}

	return &storage.Entry{
		OwnerUserID: userctx.OwnerID(ctx),
		Date:        date,
		MealType:    string(meal),
		FoodID:      req.FoodID,
		QuantityG:   qty,
	}, nil
}

// parseDate accepts YYYY-MM-DD; empty means today (UTC).
func parseDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Now().UTC().Format(dateLayout), nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return "", ErrInvalidDate
	}
	return t.Format(dateLayout), nil
}

func toDTO(e storage.Entry) EntryDTO {
	return EntryDTO{
		ID:        e.ID,
		Date:      e.Date,
		MealType:  e.MealType,
		FoodID:    e.FoodID,
		QuantityG: e.QuantityG,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
