package nutrition

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/fdg312/food-tracker/internal/logger"
	"github.com/fdg312/food-tracker/internal/userctx"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for nutrition targets and BMI.
type Handler struct {
	service *Service
}

// NewHandler creates a new nutrition handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleGetTargets handles GET /v1/nutrition/targets
func (h *Handler) HandleGetTargets(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.GetTargets(r.Context(), userctx.OwnerID(r.Context()))
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			writeError(w, http.StatusNotFound, "profile_not_found", "Body profile not found")
			return
		}
		logger.L().Error("compute nutrition targets failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to compute nutrition targets")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandlePreviewTargets handles GET /v1/nutrition/targets/preview
func (h *Handler) HandlePreviewTargets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	age, err := strconv.Atoi(strings.TrimSpace(q.Get("age")))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "age must be an integer")
		return
	}
	heightCm, err := parseFloatParam(q.Get("height_cm"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "height_cm must be a number")
		return
	}
	weightKg, err := parseFloatParam(q.Get("weight_kg"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "weight_kg must be a number")
		return
	}

	var bodyFat *float64
	if raw := strings.TrimSpace(q.Get("body_fat_pct")); raw != "" {
		v, err := parseFloatParam(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "body_fat_pct must be a number")
			return
		}
		bodyFat = &v
	}

	activity, _ := ParseActivityLevel(q.Get("activity"))
	goal, _ := ParseGoal(q.Get("goal"))
	in := TargetInput{
		Gender:     ParseGender(q.Get("gender")),
		Age:        age,
		HeightCm:   heightCm,
		WeightKg:   weightKg,
		Activity:   activity,
		Goal:       goal,
		BodyFatPct: bodyFat,
	}
	if err := ValidateInput(in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", strings.TrimPrefix(err.Error(), ErrInvalidInput.Error()+": "))
		return
	}

	writeJSON(w, http.StatusOK, TargetsResponse{
		Targets:  ComputeTargets(in),
		Inputs:   inputsDTO(q.Get("gender"), in),
		Computed: true,
	})
}

// HandleGetBMI handles GET /v1/nutrition/bmi?height_cm=&weight_kg=
func (h *Handler) HandleGetBMI(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var heightCm, weightKg *float64
	if raw := strings.TrimSpace(q.Get("height_cm")); raw != "" {
		v, err := parseFloatParam(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "height_cm must be a number")
			return
		}
		heightCm = &v
	}
	if raw := strings.TrimSpace(q.Get("weight_kg")); raw != "" {
		v, err := parseFloatParam(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "weight_kg must be a number")
			return
		}
		weightKg = &v
	}

	resp, err := h.service.GetBMI(r.Context(), userctx.OwnerID(r.Context()), heightCm, weightKg)
	if err != nil {
		switch {
		case errors.Is(err, ErrProfileNotFound):
			writeError(w, http.StatusNotFound, "profile_not_found", "Body profile not found")
		case errors.Is(err, ErrBMINonPositive), errors.Is(err, ErrBMIOutOfRange):
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		default:
			logger.L().Error("compute BMI failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal_error", "Failed to compute BMI")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

var errNotFinite = errors.New("not a finite number")

// parseFloatParam rejects "NaN" and "Inf", which strconv accepts.
func parseFloatParam(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if !isFinite(v) {
		return 0, errNotFinite
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes an error response in the standard format.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}
