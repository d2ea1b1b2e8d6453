package diary

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fdg312/food-tracker/internal/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler обрабатывает HTTP запросы дневника
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleCreateEntry handles POST /v1/entries
func (h *Handler) HandleCreateEntry(w http.ResponseWriter, r *http.Request) {
	var req EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "Invalid JSON")
		return
	}

	entry, err := h.service.CreateEntry(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "Failed to create entry")
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

// HandleReplaceEntry handles PUT /v1/entries/{id}
func (h *Handler) HandleReplaceEntry(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "Invalid entry ID")
		return
	}

	var req EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "Invalid JSON")
		return
	}

	entry, err := h.service.ReplaceEntry(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, err, "Failed to replace entry")
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

// HandleDeleteEntry handles DELETE /v1/entries/{id}
func (h *Handler) HandleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "Invalid entry ID")
		return
	}

	if err := h.service.DeleteEntry(r.Context(), id); err != nil {
		writeServiceError(w, err, "Failed to delete entry")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleListEntries handles GET /v1/entries?date=YYYY-MM-DD
func (h *Handler) HandleListEntries(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.ListEntries(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		writeServiceError(w, err, "Failed to list entries")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleGetDay handles GET /v1/diary/day?date=YYYY-MM-DD
func (h *Handler) HandleGetDay(w http.ResponseWriter, r *http.Request) {
	day, err := h.service.GetDay(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		writeServiceError(w, err, "Failed to aggregate day")
		return
	}

	writeJSON(w, http.StatusOK, day)
}

// HandleGetSummary handles GET /v1/diary/summary?date=YYYY-MM-DD
func (h *Handler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.GetSummary(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		writeServiceError(w, err, "Failed to build summary")
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidDate):
		writeError(w, http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD")
	case errors.Is(err, ErrInvalidMealType):
		writeError(w, http.StatusBadRequest, "invalid_meal_type", "meal_type must be one of breakfast, lunch, dinner, snack")
	case errors.Is(err, ErrInvalidQuantity):
		writeError(w, http.StatusBadRequest, "invalid_quantity", "quantity_g must be non-negative")
	case errors.Is(err, ErrInvalidFoodID):
		writeError(w, http.StatusBadRequest, "invalid_request", "food_id is required")
	case errors.Is(err, ErrFoodNotFound):
		writeError(w, http.StatusNotFound, "food_not_found", "Food not found")
	case errors.Is(err, ErrEntryNotFound):
		writeError(w, http.StatusNotFound, "entry_not_found", "Entry not found")
	default:
		logger.L().Error("diary request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", fallback)
	}
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
