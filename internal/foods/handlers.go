package foods

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/fdg312/food-tracker/internal/logger"
	"go.uber.org/zap"
)

// Handler обрабатывает HTTP запросы каталога
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleSearch handles GET /v1/foods/search?q=&mode=substring|prefix
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	resp, err := h.service.Search(r.Context(), q.Get("q"), q.Get("mode"))
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidSearchMode):
			writeError(w, http.StatusBadRequest, "invalid_mode", "mode must be substring or prefix")
		case errors.Is(err, ErrCatalogUnavailable):
			logger.L().Error("food search failed", zap.Error(err))
			writeError(w, http.StatusServiceUnavailable, "catalog_unavailable", "Food catalog is unavailable")
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", "Failed to search foods")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleGetFood handles GET /v1/foods/{id}
func (h *Handler) HandleGetFood(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_id", "Invalid food ID")
		return
	}

	food, err := h.service.GetFood(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrFoodNotFound):
			writeError(w, http.StatusNotFound, "food_not_found", "Food not found")
		case errors.Is(err, ErrCatalogUnavailable):
			logger.L().Error("food lookup failed", zap.Int64("food_id", id), zap.Error(err))
			writeError(w, http.StatusServiceUnavailable, "catalog_unavailable", "Food catalog is unavailable")
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", "Failed to get food")
		}
		return
	}

	writeJSON(w, http.StatusOK, food)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}
