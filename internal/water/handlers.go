package water

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/fdg312/food-tracker/internal/logger"
	"go.uber.org/zap"
)

type Handlers struct {
	service *Service
}

func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// HandleAddWater handles POST /v1/water
func (h *Handlers) HandleAddWater(w http.ResponseWriter, r *http.Request) {
	var req AddWaterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	resp, err := h.service.AddWater(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleGetWater handles GET /v1/water?date=YYYY-MM-DD
func (h *Handlers) HandleGetWater(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.GetDaily(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleResetWater handles DELETE /v1/water?date=YYYY-MM-DD
func (h *Handlers) HandleResetWater(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Reset(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidDate):
		writeError(w, http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD")
	case errors.Is(err, ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, ErrDailyLimitExceeded):
		writeError(w, http.StatusConflict, "daily_water_limit_exceeded", err.Error())
	default:
		logger.L().Error("water request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
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
