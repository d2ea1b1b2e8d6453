package profiles

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/fdg312/food-tracker/internal/logger"
	"go.uber.org/zap"
)

// Handler содержит HTTP обработчики для профиля
type Handler struct {
	service *Service
}

// NewHandler создаёт новый handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleGet обрабатывает GET /v1/profile
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.GetProfile(r.Context())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			h.sendError(w, http.StatusNotFound, "profile_not_found", "Body profile not found")
			return
		}
		logger.L().Error("get profile failed", zap.Error(err))
		h.sendError(w, http.StatusInternalServerError, "internal_error", "Failed to get profile")
		return
	}

	h.sendJSON(w, http.StatusOK, profile)
}

// HandlePut обрабатывает PUT /v1/profile
func (h *Handler) HandlePut(w http.ResponseWriter, r *http.Request) {
	var req UpsertProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "invalid_json", "Invalid JSON")
		return
	}

	profile, err := h.service.UpsertProfile(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidProfile) {
			msg := strings.TrimPrefix(err.Error(), ErrInvalidProfile.Error()+": ")
			h.sendError(w, http.StatusBadRequest, "invalid_profile", msg)
			return
		}
		logger.L().Error("upsert profile failed", zap.Error(err))
		h.sendError(w, http.StatusInternalServerError, "internal_error", "Failed to save profile")
		return
	}

	h.sendJSON(w, http.StatusOK, profile)
}

// sendJSON отправляет JSON ответ
func (h *Handler) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// sendError отправляет ошибку в формате ErrorResponse
func (h *Handler) sendError(w http.ResponseWriter, status int, code, message string) {
	h.sendJSON(w, status, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}
