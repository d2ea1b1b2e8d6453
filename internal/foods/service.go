package foods

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fdg312/food-tracker/internal/storage"
)

var (
	ErrFoodNotFound      = errors.New("food not found")
	ErrInvalidSearchMode = errors.New("invalid search mode")
)

// Service отвечает за поиск и чтение каталога продуктов
type Service struct {
	catalog     storage.CatalogStorage
	defaultMode SearchMode
}

// NewService uses defaultMode when a request does not name one.
func NewService(catalog storage.CatalogStorage, defaultMode string) *Service {
	mode, ok := ParseSearchMode(defaultMode)
	if !ok {
		mode = ModeSubstring
	}
	return &Service{catalog: catalog, defaultMode: mode}
}

func (s *Service) Search(ctx context.Context, query, modeRaw string) (*SearchResponse, error) {
	mode := s.defaultMode
	if strings.TrimSpace(modeRaw) != "" {
		parsed, ok := ParseSearchMode(modeRaw)
		if !ok {
			return nil, ErrInvalidSearchMode
		}
		mode = parsed
	}

	found, err := Resolve(ctx, query, s.catalog, mode)
	if err != nil {
		return nil, err
	}

	dtos := make([]FoodDTO, 0, len(found))
	for _, f := range found {
		dtos = append(dtos, toDTO(f))
	}
	return &SearchResponse{Query: strings.TrimSpace(query), Mode: string(mode), Foods: dtos}, nil
}

func (s *Service) GetFood(ctx context.Context, id int64) (*FoodDTO, error) {
	food, err := s.catalog.GetFood(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	if food == nil {
		return nil, ErrFoodNotFound
	}
	dto := toDTO(*food)
	return &dto, nil
}
