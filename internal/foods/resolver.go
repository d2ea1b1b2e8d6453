package foods

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fdg312/food-tracker/internal/storage"
)

// MaxResults caps every search. Results keep catalog order, no relevance ranking.
const MaxResults = 50

// ErrCatalogUnavailable means the search failed, as opposed to matching nothing.
var ErrCatalogUnavailable = errors.New("catalog unavailable")

type SearchMode string

const (
	ModeSubstring SearchMode = "substring"
	ModePrefix    SearchMode = "prefix"
)

func ParseSearchMode(s string) (SearchMode, bool) {
	switch SearchMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeSubstring:
		return ModeSubstring, true
	case ModePrefix:
		return ModePrefix, true
	default:
		return "", false
	}
}

// CatalogAccessor is the read side of the catalog the resolver needs.
type CatalogAccessor interface {
	SearchSubstring(ctx context.Context, term string, limit int) ([]storage.Food, error)
	SearchPrefix(ctx context.Context, term string, limit int) ([]storage.Food, error)
}

// Resolve turns a free-text query into at most MaxResults catalog foods.
// A blank query returns an empty slice without touching the catalog.
func Resolve(ctx context.Context, query string, catalog CatalogAccessor, mode SearchMode) ([]storage.Food, error) {
	term := strings.TrimSpace(query)
	if term == "" {
		return []storage.Food{}, nil
	}

	var (
		found []storage.Food
		err   error
	)
	switch mode {
	case ModePrefix:
		found, err = catalog.SearchPrefix(ctx, term, MaxResults)
	default:
		found, err = catalog.SearchSubstring(ctx, term, MaxResults)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	if found == nil {
		found = []storage.Food{}
	}
	if len(found) > MaxResults {
		found = found[:MaxResults]
	}
	return found, nil
}
