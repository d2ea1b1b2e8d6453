package reports

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/fdg312/food-tracker/internal/logger"
	"go.uber.org/zap"
)

// Handlers handles HTTP requests for reports
type Handlers struct {
	service *Service
}

// NewHandlers creates new handlers
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// HandleDownload handles GET /v1/reports/diary?from=&to=&format=pdf|csv
func (h *Handlers) HandleDownload(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	file, err := h.service.Build(r.Context(), ReportRequest{
		From:   q.Get("from"),
		To:     q.Get("to"),
		Format: q.Get("format"),
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.WriteHeader(http.StatusOK)
	w.Write(file.Data)
}

// HandleCreate handles POST /v1/reports
func (h *Handlers) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON")
		return
	}

	resp, err := h.service.Upload(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

func (h *Handlers) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidFormat):
		writeError(w, http.StatusBadRequest, "invalid_format", "Format must be 'pdf' or 'csv'")
	case errors.Is(err, ErrInvalidDate):
		writeError(w, http.StatusBadRequest, "invalid_date", "Invalid date format, use YYYY-MM-DD")
	case errors.Is(err, ErrInvalidDateRange):
		writeError(w, http.StatusBadRequest, "invalid_range", "From date must not be after to date")
	case errors.Is(err, ErrRangeTooLarge):
		writeError(w, http.StatusBadRequest, "range_too_large", fmt.Sprintf("Date range exceeds maximum of %d days", h.service.MaxRangeDays()))
	case errors.Is(err, ErrBlobStoreUnavailable):
		writeError(w, http.StatusConflict, "blob_store_not_configured", "Object storage is not configured")
	default:
		logger.L().Error("report failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to build report")
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}
